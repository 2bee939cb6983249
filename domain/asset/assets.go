package asset

import (
	"fmt"

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
	assetIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateAssetFunc    = CreateAsset
	QueryAssetsFunc    = QueryAssets
	CreateCategoryFunc = CreateCategory
	QueryCategoriesFunc = QueryCategories
)

func CreateCategory(c *domain.AssetCategoryCreation, sec *session.Context) (*domain.AssetCategory, error) {
	if sec == nil || !sec.Perms.HasAdminRole() {
		return nil, bizerror.ErrForbidden
	}

	record := domain.AssetCategory{
		ID:              idgen.NextID(assetIdWorker),
		Name:            c.Name,
		Prefix:          c.Prefix,
		NextOrderNumber: 1,
	}
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func QueryCategories(sec *session.Context) ([]domain.AssetCategory, error) {
	if sec == nil {
		return nil, bizerror.ErrForbidden
	}
	var records []domain.AssetCategory
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func CreateAsset(c *domain.AssetCreation, sec *session.Context) (*domain.Asset, error) {
	if sec == nil || !sec.Perms.HasAdminRole() {
		return nil, bizerror.ErrForbidden
	}

	db := persistence.ActiveDataSourceManager.GormDB()
	record := domain.Asset{
		ID:         idgen.NextID(assetIdWorker),
		Code:       c.Code,
		Name:       c.Name,
		Sector:     c.Sector,
		Model:      c.Model,
		CategoryID: c.CategoryID,
		CreateTime: types.CurrentTimestamp(),
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		category := domain.AssetCategory{}
		if err := tx.Where(&domain.AssetCategory{ID: c.CategoryID}).First(&category).Error; err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func QueryAssets(sec *session.Context) ([]domain.Asset, error) {
	if sec == nil {
		return nil, bizerror.ErrForbidden
	}
	var records []domain.Asset
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Order("code ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// NextOrderNumber consumes the sequential counter of the asset's category
// and renders the human-readable order number, e.g. MAQ-007. The counter
// update is conditional on its known value so concurrent creations never
// hand out the same number.
func NextOrderNumber(assetId types.ID, tx *gorm.DB) (string, error) {
	asset := domain.Asset{}
	if err := tx.Where(&domain.Asset{ID: assetId}).First(&asset).Error; err != nil {
		return "", err
	}
	category := domain.AssetCategory{}
	if err := tx.Where(&domain.AssetCategory{ID: asset.CategoryID}).First(&category).Error; err != nil {
		return "", err
	}

	// consume current value
	orderNumber := fmt.Sprintf("%s-%03d", category.Prefix, category.NextOrderNumber)
	// generate next value
	db := tx.Model(&domain.AssetCategory{}).
		Where(&domain.AssetCategory{ID: category.ID, NextOrderNumber: category.NextOrderNumber}).
		Update("next_order_number", category.NextOrderNumber+1)
	if db.Error != nil {
		return "", db.Error
	}
	if db.RowsAffected != 1 {
		return "", bizerror.ErrConflict
	}
	return orderNumber, nil
}
