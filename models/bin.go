package models

import (
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/binplot/binplot/db"
)

type BinStruct struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

type BinField struct {
	ID      int64   `json:"id"`
	BsID    int64   `json:"bs_id"`
	Label   string  `json:"label"`
	Bits    int     `json:"bits"`
	TfCoef0 float64 `json:"tf_coef0"`
	TfCoef1 float64 `json:"tf_coef1"`
}

type BinData struct {
	ID        int64           `json:"id"`
	Fname     string          `json:"fname"`
	File      string          `json:"file"`
	Path      string          `json:"path"`
	Size      int64           `json:"size"`
	Checksum  string          `json:"checksum,omitempty"`
	CreatedAt strfmt.DateTime `json:"created_at"`
}

func NewBinStruct(bs *db.BinStruct) *BinStruct {
	return &BinStruct{ID: bs.Id, Label: bs.Label}
}

func NewBinField(bf *db.BinField) *BinField {
	return &BinField{
		ID:      bf.Id,
		BsID:    bf.BsId,
		Label:   bf.Label,
		Bits:    bf.Bits,
		TfCoef0: bf.TfCoef0,
		TfCoef1: bf.TfCoef1,
	}
}

// NewBinData converts a stored row; path is where the blob can be read.
func NewBinData(bd *db.BinData, path string) *BinData {
	return &BinData{
		ID:        bd.Id,
		Fname:     bd.Fname,
		File:      bd.File,
		Path:      path,
		Size:      bd.Size,
		Checksum:  bd.Checksum,
		CreatedAt: strfmt.DateTime(time.Unix(bd.CreatedTime, 0).UTC()),
	}
}

// Series is one plotted axis.
type Series struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

type Graph struct {
	Type        string    `json:"type"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	RecordCount int       `json:"record_count"`
	Series      []*Series `json:"series"`
}
