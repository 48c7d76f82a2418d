package service

import (
	"fmt"

	"github.com/go-openapi/errors"

	"github.com/binplot/binplot/cache"
	"github.com/binplot/binplot/db"
	"github.com/binplot/binplot/forms"
	"github.com/binplot/binplot/layout"
	"github.com/binplot/binplot/logging"
	"github.com/binplot/binplot/metrics"
	"github.com/binplot/binplot/util"
)

const (
	duplicateLabelMessage = "Bin struct with this Label already exists."
	invalidChoiceMessage  = "%s: Select a valid choice. That choice is not one of the available choices."
	duplicateIDMessage    = "%s: Please correct the duplicate data for id, which must be unique."
)

type BinStruct interface {
	ListBinStructs() ([]*db.BinStruct, error)
	GetBinStruct(bsID int64) (*db.BinStruct, error)
	ReconcileFromStruct(bsID int64) ([]forms.BinFieldRow, error)
	SaveBinStruct(bsForm *forms.BinStructForm, bsID *int64, fs *forms.BinFieldFormset) (*SaveResult, error)
	DeleteBinStructs(fs *forms.DeleteFormset) ([]string, error)
	BinFieldChoices(bsID int64) ([]forms.Choice, error)
	BinFieldLabel(bfID string) (string, error)
	SelectBinFieldForms(bsID int64, num int, initials []string) ([]*forms.SelectBinFieldForm, []string, error)
}

// SaveResult is the outcome of SaveBinStruct. When Errors is not empty nothing
// was written and ID is zero.
type SaveResult struct {
	ID     int64
	Errors []string
}

type BinStructService struct {
	binDao       db.BinDao
	cacheService cache.Cache
}

func NewBinStructService(binDao db.BinDao, cache cache.Cache) *BinStructService {
	return &BinStructService{
		binDao:       binDao,
		cacheService: cache,
	}
}

func (s *BinStructService) ListBinStructs() ([]*db.BinStruct, error) {
	return s.binDao.ListBinStructs()
}

func (s *BinStructService) GetBinStruct(bsID int64) (*db.BinStruct, error) {
	bs, err := s.binDao.GetBinStruct(bsID)
	if err != nil {
		return nil, err
	}
	if bs == nil {
		return nil, NotFoundErr.Enrich(fmt.Sprintf("bin struct %d", bsID))
	}
	return bs, nil
}

// ReconcileFromStruct returns the persisted rows of the struct as the
// editable baseline.
func (s *BinStructService) ReconcileFromStruct(bsID int64) ([]forms.BinFieldRow, error) {
	if _, err := s.GetBinStruct(bsID); err != nil {
		return nil, err
	}
	fields, err := s.binDao.ListBinFields(bsID)
	if err != nil {
		return nil, err
	}
	rows := make([]forms.BinFieldRow, 0, len(fields))
	for _, bf := range fields {
		rows = append(rows, forms.RowFromBinField(bf))
	}
	return rows, nil
}

// SaveBinStruct validates the struct form and every field row together and,
// when everything is valid and the total width is makable, stores the struct
// (bsID nil inserts) with exactly the submitted rows. Persisted fields of the
// struct missing from the rows are deleted.
func (s *BinStructService) SaveBinStruct(bsForm *forms.BinStructForm, bsID *int64, fs *forms.BinFieldFormset) (*SaveResult, error) {
	errMsgs := make([]string, 0)

	if bsID != nil {
		if _, err := s.GetBinStruct(*bsID); err != nil {
			return nil, err
		}
	}

	if bsForm.IsValid() {
		other, err := s.binDao.GetBinStructByLabel(*bsForm.Label)
		if err != nil {
			return nil, err
		}
		if other != nil && (bsID == nil || other.Id != *bsID) {
			bsForm.AddError(errors.New(400, duplicateLabelMessage))
		}
	}
	if !bsForm.IsValid() {
		errMsgs = append(errMsgs, bsForm.ErrorMessages()...)
	}

	persisted := make(map[int64]bool)
	if bsID != nil {
		fields, err := s.binDao.ListBinFields(*bsID)
		if err != nil {
			return nil, err
		}
		for _, bf := range fields {
			persisted[bf.Id] = true
		}
	}
	seen := make(map[int64]bool)
	for _, f := range fs.Forms {
		if !f.IsValid() || f.Id == nil {
			continue
		}
		switch {
		case !persisted[*f.Id]:
			f.AddError(errors.New(400, invalidChoiceMessage, f.Prefix()+"-id"))
		case seen[*f.Id]:
			f.AddError(errors.New(400, duplicateIDMessage, f.Prefix()+"-id"))
		}
		seen[*f.Id] = true
	}
	if !fs.IsValid() {
		errMsgs = append(errMsgs, fs.ErrorMessages()...)
	}

	totalBits := 0
	for _, f := range fs.Forms {
		totalBits += f.BitsOrZero()
	}
	if makable, msg := layout.CheckMakable(totalBits); !makable {
		errMsgs = append(errMsgs, msg)
	}

	if len(errMsgs) != 0 {
		metrics.RejectedSaveCounter.Inc()
		return &SaveResult{Errors: errMsgs}, nil
	}

	bs := &db.BinStruct{Label: *bsForm.Label}
	if bsID != nil {
		bs.Id = *bsID
	}
	fields := make([]*db.BinField, 0, len(fs.Forms))
	for _, f := range fs.Forms {
		row := f.Row()
		fields = append(fields, &db.BinField{
			Id:      row.Id,
			Label:   row.Label,
			Bits:    row.Bits,
			TfCoef0: row.TfCoef0,
			TfCoef1: row.TfCoef1,
		})
	}
	if err := s.binDao.SaveBinStructAndFields(bs, fields); err != nil {
		if db.IsDuplicateEntry(err) {
			metrics.RejectedSaveCounter.Inc()
			return &SaveResult{Errors: []string{duplicateLabelMessage}}, nil
		}
		logging.Logger.Errorf("failed to save bin struct, label=%s, err=%s", bs.Label, err.Error())
		return nil, err
	}
	s.cacheService.Remove(choicesCacheKey(bs.Id))
	metrics.SavedBinStructCounter.Inc()
	logging.Logger.Infof("saved bin struct, id=%d, fields=%d, bits=%d", bs.Id, len(fields), totalBits)
	return &SaveResult{ID: bs.Id, Errors: errMsgs}, nil
}

// DeleteBinStructs removes every struct flagged DELETE together with its fields.
func (s *BinStructService) DeleteBinStructs(fs *forms.DeleteFormset) ([]string, error) {
	if !fs.IsValid() {
		return fs.ErrorMessages(), nil
	}
	ids := fs.FlaggedIDs()
	if err := s.binDao.DeleteBinStructs(ids); err != nil {
		return nil, err
	}
	for _, id := range ids {
		s.cacheService.Remove(choicesCacheKey(id))
	}
	if len(ids) != 0 {
		logging.Logger.Infof("deleted bin structs, ids=%v", ids)
	}
	return []string{}, nil
}

func choicesCacheKey(bsID int64) string {
	return "bf_choices_" + util.Int64ToString(bsID)
}

// BinFieldChoices is the index choice followed by the struct's fields.
func (s *BinStructService) BinFieldChoices(bsID int64) ([]forms.Choice, error) {
	key := choicesCacheKey(bsID)
	if cached, found := s.cacheService.Get(key); found {
		return cached.([]forms.Choice), nil
	}
	fields, err := s.binDao.ListBinFields(bsID)
	if err != nil {
		return nil, err
	}
	choices := forms.BinFieldChoices(fields)
	s.cacheService.Set(key, choices)
	return choices, nil
}

// BinFieldLabel resolves a field choice value to its display label.
func (s *BinStructService) BinFieldLabel(bfID string) (string, error) {
	if bfID == db.IndexLabel {
		return db.IndexLabel, nil
	}
	id, err := util.StringToInt64(bfID)
	if err != nil {
		return "", BadRequestErr.Enrich(fmt.Sprintf("invalid bin field id %q", bfID))
	}
	bf, err := s.binDao.GetBinField(id)
	if err != nil {
		return "", err
	}
	if bf == nil {
		return "", NotFoundErr.Enrich(fmt.Sprintf("bin field %d", id))
	}
	return bf.Label, nil
}

// SelectBinFieldForms builds num field selectors for the struct. When exactly
// num initials are given, selector i starts at initials[i] and the initials
// are returned in order.
func (s *BinStructService) SelectBinFieldForms(bsID int64, num int, initials []string) ([]*forms.SelectBinFieldForm, []string, error) {
	choices, err := s.BinFieldChoices(bsID)
	if err != nil {
		return nil, nil, err
	}
	selectors := make([]*forms.SelectBinFieldForm, 0, num)
	bfIDs := make([]string, 0, num)
	for i := 0; i < num; i++ {
		sel := forms.NewSelectBinFieldForm(choices)
		if len(initials) == num {
			sel.Initial = initials[i]
			bfIDs = append(bfIDs, sel.Initial)
		}
		selectors = append(selectors, sel)
	}
	return selectors, bfIDs, nil
}
