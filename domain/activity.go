package domain

import "github.com/fundwit/go-commons/types"

const (
	ActivityStatusChange = "status_change"
	ActivityAssignment   = "assignment"
	ActivityReopen       = "reopen"
	ActivityCancel       = "cancel"
	ActivityComment      = "comment"
)

// ActivityRecord is an append-only audit entry. Rows are only ever
// inserted; no update or delete path exists.
type ActivityRecord struct {
	ID          types.ID `json:"id" gorm:"primary_key"`
	WorkOrderID types.ID `json:"workOrderId"`

	Type        string `json:"type"`
	Description string `json:"description"`
	ActorName   string `json:"actorName"`

	Timestamp types.Timestamp `json:"timestamp" sql:"type:DATETIME(6) NOT NULL"`
}

type ActivityQuery struct {
	WorkOrderID types.ID `json:"workOrderId" form:"workOrderId" binding:"required"`
}
