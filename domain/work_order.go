package domain

import (
	"wrench/domain/status"

	"github.com/fundwit/go-commons/types"
)

type WorkOrder struct {
	ID          types.ID `json:"id" gorm:"primary_key"`
	OrderNumber string   `json:"orderNumber"`

	Issue           string `json:"issue"`
	FailureType     string `json:"failureType"`
	TechnicalReport string `json:"technicalReport" sql:"type:TEXT"`

	Status   status.Status   `json:"status"`
	Priority status.Priority `json:"priority"`

	AssetID     types.ID `json:"assetId"`
	RequesterID types.ID `json:"requesterId"`

	// exactly one of TechnicianID/ThirdPartyID is set once assigned
	TechnicianID types.ID `json:"technicianId"`
	ThirdPartyID types.ID `json:"thirdPartyId"`
	// lump sum billed for the whole order, meaningful only for third parties
	LaborRate float64 `json:"laborRate"`

	OpenedAt    types.Timestamp `json:"openedAt" sql:"type:DATETIME(6) NOT NULL"`
	RespondedAt types.Timestamp `json:"respondedAt" sql:"type:DATETIME(6)"`
	ResolvedAt  types.Timestamp `json:"resolvedAt" sql:"type:DATETIME(6)"`

	ResponseHours float64 `json:"responseHours"`
	RepairHours   float64 `json:"repairHours"`
	DowntimeHours float64 `json:"downtimeHours"`

	PartsCost float64 `json:"partsCost"`
	TotalCost float64 `json:"totalCost"`

	// bumped on every mutation, mutations are conditional on the known value
	Version int `json:"version"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (w *WorkOrder) Assigned() bool {
	return w.TechnicianID != 0 || w.ThirdPartyID != 0
}

func (w *WorkOrder) ThirdPartyAssigned() bool {
	return w.ThirdPartyID != 0
}

type WorkOrderCreation struct {
	AssetID     types.ID        `json:"assetId" binding:"required"`
	Issue       string          `json:"issue" binding:"required"`
	FailureType string          `json:"failureType"`
	Priority    status.Priority `json:"priority"`
}

type WorkOrderAssignment struct {
	AssigneeID   types.ID `json:"assigneeId" binding:"required"`
	IsThirdParty bool     `json:"isThirdParty"`
	LaborRate    float64  `json:"laborRate"`
}

type WorkOrderStatusUpdating struct {
	Status status.Status `json:"status" binding:"required"`
}

type WorkOrderReportUpdating struct {
	TechnicalReport string `json:"technicalReport"`
}

type WorkOrderQuery struct {
	AssetID  types.ID        `json:"assetId" form:"assetId"`
	Statuses []status.Status `json:"statuses" form:"status"`
}
