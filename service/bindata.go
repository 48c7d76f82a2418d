package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/binplot/binplot/config"
	"github.com/binplot/binplot/db"
	"github.com/binplot/binplot/forms"
	"github.com/binplot/binplot/logging"
	"github.com/binplot/binplot/metrics"
	"github.com/binplot/binplot/storage"
	"github.com/binplot/binplot/util"
)

type BinData interface {
	ListBinData() ([]*db.BinData, error)
	GetBinData(bdID int64) (*db.BinData, error)
	Ingest(ctx context.Context, form *forms.FileForm) ([]string, error)
	DeleteBinData(ctx context.Context, fs *forms.DeleteFormset) ([]string, error)
	BinDataPath(bd *db.BinData) string
	Open(ctx context.Context, bd *db.BinData) (io.ReadCloser, error)
}

type BinDataService struct {
	binDao db.BinDao
	store  storage.Store
	config *config.StorageConfig
	now    func() time.Time
}

func NewBinDataService(binDao db.BinDao, store storage.Store, cfg *config.StorageConfig) *BinDataService {
	return &BinDataService{
		binDao: binDao,
		store:  store,
		config: cfg,
		now:    time.Now,
	}
}

func (s *BinDataService) ListBinData() ([]*db.BinData, error) {
	return s.binDao.ListBinData()
}

func (s *BinDataService) GetBinData(bdID int64) (*db.BinData, error) {
	bd, err := s.binDao.GetBinData(bdID)
	if err != nil {
		return nil, err
	}
	if bd == nil {
		return nil, NotFoundErr.Enrich(fmt.Sprintf("bin data %d", bdID))
	}
	return bd, nil
}

// Ingest stores every uploaded file under today's upload directory and records
// a BinData row for each. The whole batch is validated first: if any file is
// rejected nothing is stored and the messages are returned.
func (s *BinDataService) Ingest(ctx context.Context, form *forms.FileForm) ([]string, error) {
	if !form.IsValid() {
		metrics.RejectedUploadCounter.Inc()
		return form.ErrorMessages(), nil
	}

	now := s.now()
	year, month, day := util.DateParts(now)
	bds := make([]*db.BinData, 0, len(form.Uploads))
	var total int64
	for _, f := range form.Uploads {
		key := storage.MakeBinDataKey(s.config.GetUploadRoot(), year, month, day, f.Name())
		bd, err := s.saveUpload(ctx, key, f)
		if err != nil {
			s.discard(ctx, bds)
			return nil, fmt.Errorf("failed to store %s, err=%s", f.Name(), err.Error())
		}
		bd.CreatedTime = now.Unix()
		bds = append(bds, bd)
		total += bd.Size
	}
	if err := s.binDao.CreateBinData(bds); err != nil {
		s.discard(ctx, bds)
		return nil, err
	}
	metrics.IngestedFileCounter.Add(float64(len(bds)))
	metrics.IngestedBytesCounter.Add(float64(total))
	logging.Logger.Infof("ingested bin data, files=%d, bytes=%d", len(bds), total)
	return []string{}, nil
}

func (s *BinDataService) saveUpload(ctx context.Context, key string, f forms.UploadedFile) (*db.BinData, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	cr := util.NewChecksumReader(rc)
	stored, err := s.store.Save(ctx, key, cr)
	if err != nil {
		return nil, err
	}
	return &db.BinData{
		File:     stored,
		Fname:    f.Name(),
		Size:     cr.Size(),
		Checksum: cr.Sum(),
	}, nil
}

// discard removes blobs stored before a batch failed.
func (s *BinDataService) discard(ctx context.Context, bds []*db.BinData) {
	for _, bd := range bds {
		if err := s.store.Delete(ctx, bd.File); err != nil {
			logging.Logger.Errorf("failed to remove stored bin data, file=%s, err=%s", bd.File, err.Error())
		}
	}
}

// DeleteBinData removes the rows flagged DELETE and then their blobs.
func (s *BinDataService) DeleteBinData(ctx context.Context, fs *forms.DeleteFormset) ([]string, error) {
	if !fs.IsValid() {
		return fs.ErrorMessages(), nil
	}
	ids := fs.FlaggedIDs()
	bds := make([]*db.BinData, 0, len(ids))
	for _, id := range ids {
		bd, err := s.binDao.GetBinData(id)
		if err != nil {
			return nil, err
		}
		if bd != nil {
			bds = append(bds, bd)
		}
	}
	if err := s.binDao.DeleteBinData(ids); err != nil {
		return nil, err
	}
	s.discard(ctx, bds)
	return []string{}, nil
}

// BinDataPath is where the blob of bd lives, or "" without bd.
func (s *BinDataService) BinDataPath(bd *db.BinData) string {
	if bd == nil {
		return ""
	}
	return s.store.Location(bd.File)
}

func (s *BinDataService) Open(ctx context.Context, bd *db.BinData) (io.ReadCloser, error) {
	return s.store.Open(ctx, bd.File)
}
