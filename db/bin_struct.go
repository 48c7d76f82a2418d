package db

type BinStruct struct {
	Id    int64
	Label string `gorm:"NOT NULL;uniqueIndex:idx_bin_struct_label;size:64"`
}

func (*BinStruct) TableName() string {
	return "bin_struct"
}
