package domain

import "github.com/fundwit/go-commons/types"

// Rating is created at most once per work order, after completion.
type Rating struct {
	ID          types.ID `json:"id" gorm:"primary_key"`
	WorkOrderID types.ID `json:"workOrderId"`

	AssigneeType string   `json:"assigneeType"` // technician | third_party
	AssigneeID   types.ID `json:"assigneeId"`

	Score   int    `json:"score"`
	Comment string `json:"comment"`

	CreatorID  types.ID        `json:"creatorId"`
	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

const (
	AssigneeTypeTechnician = "technician"
	AssigneeTypeThirdParty = "third_party"
)

type RatingCreation struct {
	WorkOrderID types.ID `json:"workOrderId" binding:"required"`
	Score       int      `json:"score" binding:"required"`
	Comment     string   `json:"comment"`
}
