package db

import (
	"gorm.io/gorm"
)

type BinDao interface {
	BinStructDB
	BinFieldDB
	BinDataDB
	SaveBinStructAndFields(bs *BinStruct, fields []*BinField) error
}

type BinSvcDB struct {
	db *gorm.DB
}

func NewBinSvcDB(db *gorm.DB) BinDao {
	return &BinSvcDB{
		db,
	}
}

type BinStructDB interface {
	GetBinStruct(id int64) (*BinStruct, error)
	GetBinStructByLabel(label string) (*BinStruct, error)
	ListBinStructs() ([]*BinStruct, error)
	DeleteBinStructs(ids []int64) error
}

// GetBinStruct returns nil without error when no struct has the id.
func (d *BinSvcDB) GetBinStruct(id int64) (*BinStruct, error) {
	bs := BinStruct{}
	err := d.db.Model(BinStruct{}).Where("id = ?", id).Take(&bs).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &bs, nil
}

func (d *BinSvcDB) GetBinStructByLabel(label string) (*BinStruct, error) {
	bs := BinStruct{}
	err := d.db.Model(BinStruct{}).Where("label = ?", label).Take(&bs).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &bs, nil
}

func (d *BinSvcDB) ListBinStructs() ([]*BinStruct, error) {
	structs := make([]*BinStruct, 0)
	if err := d.db.Order("id asc").Find(&structs).Error; err != nil {
		return structs, err
	}
	return structs, nil
}

// DeleteBinStructs removes the structs and every field they own.
func (d *BinSvcDB) DeleteBinStructs(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return d.db.Transaction(func(dbTx *gorm.DB) error {
		if err := dbTx.Where("bs_id in (?)", ids).Delete(&BinField{}).Error; err != nil {
			return err
		}
		return dbTx.Where("id in (?)", ids).Delete(&BinStruct{}).Error
	})
}

type BinFieldDB interface {
	GetBinField(id int64) (*BinField, error)
	ListBinFields(bsID int64) ([]*BinField, error)
}

func (d *BinSvcDB) GetBinField(id int64) (*BinField, error) {
	bf := BinField{}
	err := d.db.Model(BinField{}).Where("id = ?", id).Take(&bf).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &bf, nil
}

func (d *BinSvcDB) ListBinFields(bsID int64) ([]*BinField, error) {
	fields := make([]*BinField, 0)
	if err := d.db.Where("bs_id = ?", bsID).Order("id asc").Find(&fields).Error; err != nil {
		return fields, err
	}
	return fields, nil
}

type BinDataDB interface {
	GetBinData(id int64) (*BinData, error)
	ListBinData() ([]*BinData, error)
	CreateBinData(bds []*BinData) error
	DeleteBinData(ids []int64) error
}

func (d *BinSvcDB) GetBinData(id int64) (*BinData, error) {
	bd := BinData{}
	err := d.db.Model(BinData{}).Where("id = ?", id).Take(&bd).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &bd, nil
}

func (d *BinSvcDB) ListBinData() ([]*BinData, error) {
	bds := make([]*BinData, 0)
	if err := d.db.Order("id asc").Find(&bds).Error; err != nil {
		return bds, err
	}
	return bds, nil
}

func (d *BinSvcDB) CreateBinData(bds []*BinData) error {
	if len(bds) == 0 {
		return nil
	}
	return d.db.Transaction(func(dbTx *gorm.DB) error {
		return dbTx.Create(bds).Error
	})
}

func (d *BinSvcDB) DeleteBinData(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return d.db.Transaction(func(dbTx *gorm.DB) error {
		return dbTx.Where("id in (?)", ids).Delete(&BinData{}).Error
	})
}

// SaveBinStructAndFields inserts or updates the struct and its fields, then
// prunes the struct's persisted fields that are not among the saved ones.
// Rows with a zero Id are inserted; bs.Id and the field ids are set on return.
func (d *BinSvcDB) SaveBinStructAndFields(bs *BinStruct, fields []*BinField) error {
	return d.db.Transaction(func(dbTx *gorm.DB) error {
		if bs.Id == 0 {
			if err := dbTx.Create(bs).Error; err != nil {
				return err
			}
		} else {
			err := dbTx.Model(&BinStruct{}).Where("id = ?", bs.Id).Update("label", bs.Label).Error
			if err != nil {
				return err
			}
		}

		savedIDs := make([]int64, 0, len(fields))
		for _, bf := range fields {
			bf.BsId = bs.Id
			if bf.Id == 0 {
				if err := dbTx.Create(bf).Error; err != nil {
					return err
				}
			} else {
				err := dbTx.Model(&BinField{}).Where("id = ?", bf.Id).Updates(map[string]interface{}{
					"bs_id":    bf.BsId,
					"label":    bf.Label,
					"bits":     bf.Bits,
					"tf_coef0": bf.TfCoef0,
					"tf_coef1": bf.TfCoef1,
				}).Error
				if err != nil {
					return err
				}
			}
			savedIDs = append(savedIDs, bf.Id)
		}

		stale := dbTx.Where("bs_id = ?", bs.Id)
		if len(savedIDs) != 0 {
			stale = stale.Where("id not in (?)", savedIDs)
		}
		return stale.Delete(&BinField{}).Error
	})
}

func AutoMigrateDB(db *gorm.DB) {
	var err error
	if err = db.AutoMigrate(&BinStruct{}); err != nil {
		panic(err)
	}
	if err = db.AutoMigrate(&BinField{}); err != nil {
		panic(err)
	}
	if err = db.AutoMigrate(&BinData{}); err != nil {
		panic(err)
	}
}
