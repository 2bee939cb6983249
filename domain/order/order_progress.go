package order

import (
	"wrench/bizerror"
	"wrench/domain"
	"wrench/domain/costing"
	"wrench/domain/sla"
	"wrench/domain/status"
	"wrench/event"
	"wrench/persistence"
	"wrench/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

var (
	TransitionStatusFunc = TransitionStatus
	ReopenWorkOrderFunc  = ReopenWorkOrder
	CancelWorkOrderFunc  = CancelWorkOrder
)

// TransitionStatus moves a work order to another status. Response and
// resolution timestamps are computed at most once per life of the order:
// a status re-entered later never overwrites them.
func TransitionStatus(id types.ID, u *domain.WorkOrderStatusUpdating, sec *session.Context) (*domain.WorkOrder, error) {
	if sec == nil || !sec.Perms.HasAdminRole() {
		return nil, bizerror.ErrForbidden
	}
	if !u.Status.IsValid() {
		return nil, bizerror.ErrUnknownStatus
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
		if workOrder.Status == u.Status {
			// no-op: no activity, no event
			updated = *workOrder
			return nil
		}
		if !status.CanTransition(workOrder.Status, u.Status) {
			return bizerror.ErrStatusInvalid
		}

		now := sla.NowFunc()
		fromStatus := workOrder.Status
		changes := map[string]interface{}{"status": u.Status}

		responseHours := workOrder.ResponseHours
		if (u.Status == status.InMaintenance || u.Status == status.Completed) && workOrder.RespondedAt.IsZero() {
			responseHours = sla.ResponseHours(workOrder.OpenedAt, now)
			changes["responded_at"] = now
			changes["response_hours"] = responseHours
		}
		if u.Status == status.Completed && workOrder.ResolvedAt.IsZero() {
			downtimeHours := sla.DowntimeHours(workOrder.OpenedAt, now)
			changes["resolved_at"] = now
			changes["downtime_hours"] = downtimeHours
			changes["repair_hours"] = sla.RepairHours(downtimeHours, responseHours)
		}

		if err := updateWorkOrder(tx, workOrder, changes); err != nil {
			return err
		}
		workOrder.Status = u.Status

		if u.Status == status.Completed {
			if err := costing.RecomputeCosts(tx, workOrder); err != nil {
				return err
			}
		}

		if err := appendActivity(tx, workOrder.ID, domain.ActivityStatusChange,
			string(fromStatus)+" -> "+string(u.Status), sec, now); err != nil {
			return err
		}

		ev, err = CreateWorkOrderPropertyUpdatedEvent(workOrder,
			[]event.UpdatedProperty{{
				PropertyName: "Status", PropertyDesc: "Status",
				OldValue: string(fromStatus), OldValueDesc: string(fromStatus),
				NewValue: string(u.Status), NewValueDesc: string(u.Status),
			}}, &sec.Identity, now, tx)
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

// ReopenWorkOrder restarts a completed order's lifecycle. The SLA clock
// restarts from a fresh open instant; the order number survives.
func ReopenWorkOrder(id types.ID, sec *session.Context) (*domain.WorkOrder, error) {
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
		if workOrder.Status != status.Completed {
			return bizerror.ErrStatusInvalid
		}

		now := sla.NowFunc()
		if err := updateWorkOrder(tx, workOrder, map[string]interface{}{
			"status":           status.Pending,
			"opened_at":        now,
			"responded_at":     types.Timestamp{},
			"resolved_at":      types.Timestamp{},
			"response_hours":   float64(0),
			"repair_hours":     float64(0),
			"downtime_hours":   float64(0),
			"technical_report": "",
		}); err != nil {
			return err
		}

		if err := appendActivity(tx, workOrder.ID, domain.ActivityReopen,
			"work order reopened", sec, now); err != nil {
			return err
		}

		ev, err = CreateWorkOrderReopenedEvent(workOrder, &sec.Identity, now, tx)
		if err != nil {
			return err
		}

		return tx.Where(&domain.WorkOrder{ID: id}).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	return &updated, nil
}

// CancelWorkOrder marks the order Cancelled, a terminal tombstone. The row
// and its activity trail survive and the order number is never reissued.
// The emitted event is built from the pre-cancellation record.
func CancelWorkOrder(id types.ID, sec *session.Context) (*domain.WorkOrder, error) {
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

		now := sla.NowFunc()
		// event first, while the record still carries pre-cancel state
		ev, err = CreateWorkOrderCancelledEvent(workOrder, &sec.Identity, now, tx)
		if err != nil {
			return err
		}

		if err := updateWorkOrder(tx, workOrder, map[string]interface{}{
			"status": status.Cancelled,
		}); err != nil {
			return err
		}

		if err := appendActivity(tx, workOrder.ID, domain.ActivityCancel,
			"work order cancelled", sec, now); err != nil {
			return err
		}

		return tx.Where(&domain.WorkOrder{ID: id}).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	return &updated, nil
}
