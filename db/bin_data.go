package db

type BinData struct {
	Id          int64
	File        string `gorm:"NOT NULL;size:255"` // File is the stored location relative to the media root
	Fname       string `gorm:"NOT NULL;size:255"`
	Size        int64  `gorm:"NOT NULL"`
	Checksum    string `gorm:"size:64"`
	CreatedTime int64  `gorm:"NOT NULL;comment:created_time"`
}

func (*BinData) TableName() string {
	return "bin_data"
}
