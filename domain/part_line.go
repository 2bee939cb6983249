package domain

import "github.com/fundwit/go-commons/types"

// PartLine records consumption intent of a catalog item against a work
// order. Unit value is not snapshotted; cost aggregation resolves the
// current catalog price every time.
type PartLine struct {
	ID          types.ID `json:"id" gorm:"primary_key"`
	WorkOrderID types.ID `json:"workOrderId"`
	ItemID      types.ID `json:"itemId"`
	Quantity    int      `json:"quantity"`

	CreatorID  types.ID        `json:"creatorId"`
	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

type PartLineCreation struct {
	WorkOrderID types.ID `json:"workOrderId" binding:"required"`
	ItemID      types.ID `json:"itemId" binding:"required"`
	Quantity    int      `json:"quantity" binding:"required"`
}
