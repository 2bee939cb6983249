package order

import (
	"errors"
	"strings"

	"wrench/bizerror"
	"wrench/domain"
	"wrench/domain/asset"
	"wrench/domain/sla"
	"wrench/domain/status"
	"wrench/event"
	"wrench/idgen"
	"wrench/persistence"
	"wrench/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	workOrderIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateWorkOrderFunc = CreateWorkOrder
	DetailWorkOrderFunc = DetailWorkOrder
	QueryWorkOrdersFunc = QueryWorkOrders
	UpdateReportFunc    = UpdateReport
)

type WorkOrderDetail struct {
	domain.WorkOrder

	Asset     *domain.Asset     `json:"asset,omitempty"`
	PartLines []domain.PartLine `json:"partLines"`

	// running response delay while nobody has responded yet; equals the
	// persisted ResponseHours afterwards
	CurrentResponseHours float64 `json:"currentResponseHours"`
}

func CreateWorkOrder(c *domain.WorkOrderCreation, sec *session.Context) (*domain.WorkOrder, error) {
	if sec == nil {
		return nil, bizerror.ErrForbidden
	}
	if strings.TrimSpace(c.Issue) == "" {
		return nil, &bizerror.ErrBadParam{Cause: errors.New("issue must not be empty")}
	}
	if c.AssetID == 0 {
		return nil, &bizerror.ErrBadParam{Cause: errors.New("assetId must not be empty")}
	}
	priority := c.Priority
	if priority == "" {
		priority = status.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, &bizerror.ErrBadParam{Cause: errors.New("unknown priority '" + string(c.Priority) + "'")}
	}

	now := sla.NowFunc()
	workOrder := domain.WorkOrder{
		ID:          idgen.NextID(workOrderIdWorker),
		Issue:       c.Issue,
		FailureType: c.FailureType,
		Status:      status.Pending,
		Priority:    priority,
		AssetID:     c.AssetID,
		RequesterID: sec.Identity.ID,
		OpenedAt:    now,
		Version:     1,
		CreateTime:  now,
	}

	var ev *event.EventRecord
	db := persistence.ActiveDataSourceManager.GormDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		orderNumber, err := asset.NextOrderNumber(c.AssetID, tx)
		if err != nil {
			return err
		}
		workOrder.OrderNumber = orderNumber

		if err := tx.Create(&workOrder).Error; err != nil {
			return err
		}

		ev, err = CreateWorkOrderCreatedEvent(&workOrder, &sec.Identity, now, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	return &workOrder, nil
}

func DetailWorkOrder(id types.ID, sec *session.Context) (*WorkOrderDetail, error) {
	if sec == nil {
		return nil, bizerror.ErrForbidden
	}

	detail := WorkOrderDetail{}
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Where(&domain.WorkOrder{ID: id}).First(&detail.WorkOrder).Error; err != nil {
		return nil, err
	}

	assetRecord := domain.Asset{}
	if err := db.Where(&domain.Asset{ID: detail.AssetID}).First(&assetRecord).Error; err == nil {
		detail.Asset = &assetRecord
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := db.Where(&domain.PartLine{WorkOrderID: id}).Find(&detail.PartLines).Error; err != nil {
		return nil, err
	}

	if detail.RespondedAt.IsZero() && !detail.Status.IsTerminal() {
		detail.CurrentResponseHours = sla.PendingResponseHours(detail.OpenedAt)
	} else {
		detail.CurrentResponseHours = detail.ResponseHours
	}
	return &detail, nil
}

func QueryWorkOrders(query *domain.WorkOrderQuery, sec *session.Context) (*[]domain.WorkOrder, error) {
	if sec == nil {
		return nil, bizerror.ErrForbidden
	}

	var workOrders []domain.WorkOrder
	db := persistence.ActiveDataSourceManager.GormDB()
	q := db.Model(&domain.WorkOrder{})
	if query.AssetID != 0 {
		q = q.Where(&domain.WorkOrder{AssetID: query.AssetID})
	}
	if len(query.Statuses) > 0 {
		q = q.Where("status in (?)", query.Statuses)
	}
	if err := q.Order("create_time DESC").Find(&workOrders).Error; err != nil {
		return nil, err
	}
	return &workOrders, nil
}

// UpdateReport replaces the technical report. The report freezes once the
// order is completed or cancelled.
func UpdateReport(id types.ID, u *domain.WorkOrderReportUpdating, sec *session.Context) (*domain.WorkOrder, error) {
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

		if err := updateWorkOrder(tx, workOrder, map[string]interface{}{
			"technical_report": u.TechnicalReport,
		}); err != nil {
			return err
		}

		ev, err = CreateWorkOrderPropertyUpdatedEvent(workOrder,
			[]event.UpdatedProperty{{
				PropertyName: "TechnicalReport", PropertyDesc: "TechnicalReport",
				OldValue: workOrder.TechnicalReport, OldValueDesc: workOrder.TechnicalReport,
				NewValue: u.TechnicalReport, NewValueDesc: u.TechnicalReport,
			}}, &sec.Identity, sla.NowFunc(), tx)
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

func findWorkOrder(tx *gorm.DB, id types.ID) (*domain.WorkOrder, error) {
	workOrder := domain.WorkOrder{}
	if err := tx.Where(&domain.WorkOrder{ID: id}).First(&workOrder).Error; err != nil {
		return nil, err
	}
	return &workOrder, nil
}

// updateWorkOrder applies changes conditionally on the version the caller
// read, bumping it. A missed condition means a concurrent writer won.
func updateWorkOrder(tx *gorm.DB, workOrder *domain.WorkOrder, changes map[string]interface{}) error {
	changes["version"] = workOrder.Version + 1
	query := tx.Model(&domain.WorkOrder{}).
		Where(&domain.WorkOrder{ID: workOrder.ID, Version: workOrder.Version}).
		Update(changes)
	if query.Error != nil {
		return query.Error
	}
	if query.RowsAffected != 1 {
		return bizerror.ErrConflict
	}
	workOrder.Version = workOrder.Version + 1
	return nil
}
