package order

import (
	"wrench/bizerror"
	"wrench/domain"
	"wrench/domain/costing"
	"wrench/domain/sla"
	"wrench/event"
	"wrench/persistence"
	"wrench/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

var (
	AssignWorkOrderFunc = AssignWorkOrder
)

// AssignWorkOrder sets the responsible party. Technician and third party
// are mutually exclusive; assigning one clears the other. A labor rate is
// accepted only for third parties, internal staff is never billed.
func AssignWorkOrder(id types.ID, a *domain.WorkOrderAssignment, sec *session.Context) (*domain.WorkOrder, error) {
	if sec == nil || !sec.Perms.HasAdminRole() {
		return nil, bizerror.ErrForbidden
	}

	var updated domain.WorkOrder
	var ev *event.EventRecord
	db := persistence.ActiveDataSourceManager.GormDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		workOrder, err := findWorkOrder(tx, id)
		if err != nil {
			return err
		}
		if workOrder.Status.IsTerminal() {
			return bizerror.ErrStatusInvalid
		}

		var technicianId, thirdPartyId types.ID
		var assigneeName string
		laborRate := float64(0)
		if a.IsThirdParty {
			thirdParty := domain.ThirdParty{}
			if err := tx.Where(&domain.ThirdParty{ID: a.AssigneeID}).First(&thirdParty).Error; err != nil {
				return err
			}
			thirdPartyId = thirdParty.ID
			assigneeName = thirdParty.Name
			laborRate = a.LaborRate
		} else {
			technician := domain.Technician{}
			if err := tx.Where(&domain.Technician{ID: a.AssigneeID}).First(&technician).Error; err != nil {
				return err
			}
			technicianId = technician.ID
			assigneeName = technician.Name
		}

		assigneeChanged := workOrder.TechnicianID != technicianId || workOrder.ThirdPartyID != thirdPartyId
		rateChanged := workOrder.LaborRate != laborRate
		if !assigneeChanged && !rateChanged {
			updated = *workOrder
			return nil
		}

		now := sla.NowFunc()
		oldAssignee := currentAssigneeRef(workOrder)
		if err := updateWorkOrder(tx, workOrder, map[string]interface{}{
			"technician_id":  technicianId,
			"third_party_id": thirdPartyId,
			"labor_rate":     laborRate,
		}); err != nil {
			return err
		}
		workOrder.TechnicianID = technicianId
		workOrder.ThirdPartyID = thirdPartyId
		workOrder.LaborRate = laborRate

		if err := costing.RecomputeCosts(tx, workOrder); err != nil {
			return err
		}

		if assigneeChanged {
			if err := appendActivity(tx, workOrder.ID, domain.ActivityAssignment,
				"assigned to "+assigneeName, sec, now); err != nil {
				return err
			}
		}

		ev, err = CreateWorkOrderAssignedEvent(workOrder, oldAssignee, assigneeRef(technicianId, thirdPartyId),
			assigneeName, &sec.Identity, now, tx)
		if err != nil {
			return err
		}

		return tx.Where(&domain.WorkOrder{ID: id}).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}

	if ev != nil && event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	return &updated, nil
}

func currentAssigneeRef(w *domain.WorkOrder) string {
	return assigneeRef(w.TechnicianID, w.ThirdPartyID)
}

func assigneeRef(technicianId, thirdPartyId types.ID) string {
	if thirdPartyId != 0 {
		return domain.AssigneeTypeThirdParty + ":" + thirdPartyId.String()
	}
	if technicianId != 0 {
		return domain.AssigneeTypeTechnician + ":" + technicianId.String()
	}
	return ""
}
