package service

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/binplot/binplot/db"
	"github.com/binplot/binplot/forms"
	"github.com/binplot/binplot/layout"
	"github.com/binplot/binplot/metrics"
	"github.com/binplot/binplot/models"
	"github.com/binplot/binplot/util"
)

// MaxGraphDataSize bounds how much of a blob is decoded for one graph.
const MaxGraphDataSize = 64 << 20

type GraphRequest struct {
	BdID    int64
	BsID    int64
	GraphID string
	BfIDs   []string
	Option  *forms.GraphOption
}

type Graph interface {
	GraphSeries(ctx context.Context, req *GraphRequest) (*models.Graph, []string, error)
}

type GraphService struct {
	binDao    db.BinDao
	binStruct BinStruct
	binData   BinData
}

func NewGraphService(binDao db.BinDao, binStruct BinStruct, binData BinData) *GraphService {
	return &GraphService{
		binDao:    binDao,
		binStruct: binStruct,
		binData:   binData,
	}
}

// GraphSeries decodes the bin data with the struct and returns one series
// per selected field. Selection problems come back as messages.
func (s *GraphService) GraphSeries(ctx context.Context, req *GraphRequest) (*models.Graph, []string, error) {
	errMsgs := make([]string, 0)

	graphForm := forms.NewSelectGraphForm().Bind(url.Values{"graph": {req.GraphID}})
	if !graphForm.IsValid() {
		errMsgs = append(errMsgs, graphForm.ErrorMessages()...)
	} else if required := forms.RequiredNum(req.GraphID); len(req.BfIDs) != required {
		errMsgs = append(errMsgs, fmt.Sprintf("The graph needs %d fields, got %d.", required, len(req.BfIDs)))
	}

	choices, err := s.binStruct.BinFieldChoices(req.BsID)
	if err != nil {
		return nil, nil, err
	}
	for _, bfID := range req.BfIDs {
		sel := forms.NewSelectBinFieldForm(choices).Bind(url.Values{"bf": {bfID}})
		if !sel.IsValid() {
			errMsgs = append(errMsgs, sel.ErrorMessages()...)
		}
	}

	option := req.Option
	if option == nil {
		option = forms.NewGraphOption(nil)
	}
	if !option.IsValid() {
		errMsgs = append(errMsgs, option.ErrorMessages()...)
	}
	if len(errMsgs) != 0 {
		return nil, errMsgs, nil
	}

	if _, err := s.binStruct.GetBinStruct(req.BsID); err != nil {
		return nil, nil, err
	}
	fields, err := s.binDao.ListBinFields(req.BsID)
	if err != nil {
		return nil, nil, err
	}
	decoder, err := layout.NewDecoder(fields)
	if err != nil {
		return nil, []string{err.Error()}, nil
	}

	bd, err := s.binData.GetBinData(req.BdID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.binData.Open(ctx, bd)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(io.LimitReader(rc, MaxGraphDataSize))
	if err != nil {
		return nil, nil, err
	}
	records, err := decoder.Decode(data)
	if err != nil {
		return nil, []string{err.Error()}, nil
	}

	width, _ := option.Get("width")
	height, _ := option.Get("height")
	graph := &models.Graph{
		Type:        req.GraphID,
		Width:       width,
		Height:      height,
		RecordCount: len(records),
		Series:      make([]*models.Series, 0, len(req.BfIDs)),
	}
	for _, bfID := range req.BfIDs {
		label, err := s.binStruct.BinFieldLabel(bfID)
		if err != nil {
			return nil, nil, err
		}
		var values []float64
		if bfID == db.IndexLabel {
			values = layout.IndexColumn(len(records))
		} else {
			id, _ := util.StringToInt64(bfID)
			idx := decoder.FieldIndex(id)
			if idx < 0 {
				return nil, nil, NotFoundErr.Enrich(fmt.Sprintf("bin field %d in bin struct %d", id, req.BsID))
			}
			values = layout.Column(records, idx)
		}
		graph.Series = append(graph.Series, &models.Series{Label: label, Values: values})
	}
	metrics.DecodedRecordGauge.Set(float64(len(records)))
	return graph, errMsgs, nil
}
