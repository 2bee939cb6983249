package parts

import (
	"errors"

	"wrench/bizerror"
	"wrench/domain"
	"wrench/domain/costing"
	"wrench/domain/sla"
	"wrench/event"
	"wrench/idgen"
	"wrench/persistence"
	"wrench/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	partLineIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	AddPartLineFunc    = AddPartLine
	RemovePartLineFunc = RemovePartLine
	ListPartLinesFunc  = ListPartLines
)

// AddPartLine records consumption of a catalog item against a work order
// and refreshes the order's cost totals in the same transaction. Catalog
// stock is not decremented here; stock keeping is not this module's
// concern.
func AddPartLine(req domain.PartLineCreation, sec *session.Context) (*domain.PartLine, error) {
	if sec == nil || !sec.Perms.HasAdminRole() {
		return nil, bizerror.ErrForbidden
	}
	if req.Quantity <= 0 {
		return nil, &bizerror.ErrBadParam{Cause: errors.New("quantity must be positive")}
	}

	var record *domain.PartLine
	var ev *event.EventRecord
	db := persistence.ActiveDataSourceManager.GormDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		workOrder, err := findWorkOrderForChange(tx, req.WorkOrderID)
		if err != nil {
			return err
		}

		item := domain.CatalogItem{}
		if err := tx.Where(&domain.CatalogItem{ID: req.ItemID}).First(&item).Error; err != nil {
			return err
		}

		now := sla.NowFunc()
		line := domain.PartLine{
			ID:          idgen.NextID(partLineIdWorker),
			WorkOrderID: workOrder.ID,
			ItemID:      item.ID,
			Quantity:    req.Quantity,
			CreatorID:   sec.Identity.ID,
			CreateTime:  now,
		}
		if err := tx.Create(&line).Error; err != nil {
			return err
		}
		record = &line

		if err := costing.RecomputeCosts(tx, workOrder); err != nil {
			return err
		}

		ev, err = event.CreateEvent("WORK_ORDER", workOrder.ID, workOrder.OrderNumber,
			event.EventCategoryPropertyUpdated,
			[]event.UpdatedProperty{{
				PropertyName: "PartLines", PropertyDesc: "PartLines",
				NewValue: item.Name, NewValueDesc: item.Name,
			}}, nil, &sec.Identity, now, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	return record, nil
}

// RemovePartLine deletes a consumption line and refreshes cost totals.
// Removing an absent line succeeds without side effects.
func RemovePartLine(id types.ID, sec *session.Context) error {
	if sec == nil || !sec.Perms.HasAdminRole() {
		return bizerror.ErrForbidden
	}

	var ev *event.EventRecord
	db := persistence.ActiveDataSourceManager.GormDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		line := domain.PartLine{}
		if err := tx.Where("id = ?", id).First(&line).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		} else if err != nil {
			return err
		}

		workOrder, err := findWorkOrderForChange(tx, line.WorkOrderID)
		if err != nil {
			return err
		}

		if err := tx.Delete(&domain.PartLine{}, "id = ?", id).Error; err != nil {
			return err
		}

		if err := costing.RecomputeCosts(tx, workOrder); err != nil {
			return err
		}

		ev, err = event.CreateEvent("WORK_ORDER", workOrder.ID, workOrder.OrderNumber,
			event.EventCategoryPropertyUpdated,
			[]event.UpdatedProperty{{
				PropertyName: "PartLines", PropertyDesc: "PartLines",
				OldValue: line.ItemID.String(), OldValueDesc: line.ItemID.String(),
			}}, nil, &sec.Identity, sla.NowFunc(), tx)
		return err
	})
	if err != nil {
		return err
	}

	if event.InvokeHandlersFunc != nil && ev != nil {
		event.InvokeHandlersFunc(ev)
	}
	return nil
}

func ListPartLines(workOrderId types.ID, sec *session.Context) ([]domain.PartLine, error) {
	if sec == nil {
		return nil, bizerror.ErrForbidden
	}

	var records []domain.PartLine
	db := persistence.ActiveDataSourceManager.GormDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		workOrder := domain.WorkOrder{}
		if err := tx.Where(&domain.WorkOrder{ID: workOrderId}).Select("id").First(&workOrder).Error; err != nil {
			return err
		}
		return tx.Where(&domain.PartLine{WorkOrderID: workOrderId}).Find(&records).Error
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// part lines are frozen once the order reached a terminal status
func findWorkOrderForChange(tx *gorm.DB, id types.ID) (*domain.WorkOrder, error) {
	workOrder := domain.WorkOrder{}
	if err := tx.Where(&domain.WorkOrder{ID: id}).First(&workOrder).Error; err != nil {
		return nil, err
	}
	if workOrder.Status.IsTerminal() {
		return nil, bizerror.ErrStatusInvalid
	}
	return &workOrder, nil
}
