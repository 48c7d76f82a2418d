package db

const (
	// IndexLabel is the pseudo field standing for the record index of decoded data.
	IndexLabel = "index"

	DefaultFieldLabel   = ""
	DefaultFieldBits    = 8
	DefaultFieldTfCoef0 = 0.0
	DefaultFieldTfCoef1 = 1.0

	MaxLabelLength = 64
)

// BinField is one bit field of a BinStruct. A raw value is decoded as
// raw*TfCoef1 + TfCoef0.
type BinField struct {
	Id      int64
	BsId    int64   `gorm:"column:bs_id;NOT NULL;index:idx_bin_field_bs_id"`
	Label   string  `gorm:"NOT NULL;size:64"`
	Bits    int     `gorm:"NOT NULL"`
	TfCoef0 float64 `gorm:"column:tf_coef0;NOT NULL"`
	TfCoef1 float64 `gorm:"column:tf_coef1;NOT NULL"`
}

func (*BinField) TableName() string {
	return "bin_field"
}

// NewDefaultBinField returns a field carrying the declared defaults.
func NewDefaultBinField() *BinField {
	return &BinField{
		Label:   DefaultFieldLabel,
		Bits:    DefaultFieldBits,
		TfCoef0: DefaultFieldTfCoef0,
		TfCoef1: DefaultFieldTfCoef1,
	}
}
