package domain

import "github.com/fundwit/go-commons/types"

// CatalogItem is a part in the inventory catalog. UnitValue is the live
// price consulted on every cost aggregation.
type CatalogItem struct {
	ID        types.ID `json:"id" gorm:"primary_key"`
	SKU       string   `json:"sku"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	UnitValue float64  `json:"unitValue"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

type CatalogItemCreation struct {
	SKU       string  `json:"sku" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Quantity  int     `json:"quantity"`
	UnitValue float64 `json:"unitValue"`
}
