package catalog

import (
	"wrench/bizerror"
	"wrench/domain"
	"wrench/idgen"
	"wrench/persistence"
	"wrench/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	itemIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateItemFunc = CreateItem
	QueryItemsFunc = QueryItems
	DetailItemFunc = DetailItem
)

func CreateItem(c *domain.CatalogItemCreation, sec *session.Context) (*domain.CatalogItem, error) {
	if sec == nil || !sec.Perms.HasAdminRole() {
		return nil, bizerror.ErrForbidden
	}

	record := domain.CatalogItem{
		ID:         idgen.NextID(itemIdWorker),
		SKU:        c.SKU,
		Name:       c.Name,
		Quantity:   c.Quantity,
		UnitValue:  c.UnitValue,
		CreateTime: types.CurrentTimestamp(),
	}
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func QueryItems(sec *session.Context) ([]domain.CatalogItem, error) {
	if sec == nil {
		return nil, bizerror.ErrForbidden
	}
	var records []domain.CatalogItem
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Order("sku ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func DetailItem(id types.ID, sec *session.Context) (*domain.CatalogItem, error) {
	if sec == nil {
		return nil, bizerror.ErrForbidden
	}
	record := domain.CatalogItem{}
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Where(&domain.CatalogItem{ID: id}).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateItemPrice changes the live unit value. Existing part lines are not
// snapshotted; the next cost aggregation picks the new price up.
func UpdateItemPrice(id types.ID, unitValue float64, sec *session.Context) error {
	if sec == nil || !sec.Perms.HasAdminRole() {
		return bizerror.ErrForbidden
	}
	db := persistence.ActiveDataSourceManager.GormDB()
	query := db.Model(&domain.CatalogItem{}).Where(&domain.CatalogItem{ID: id}).
		Update("unit_value", unitValue)
	if query.Error != nil {
		return query.Error
	}
	if query.RowsAffected != 1 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
