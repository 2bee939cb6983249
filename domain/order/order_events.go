package order

import (
	"wrench/domain"
	"wrench/event"
	"wrench/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

const EventSourceTypeWorkOrder = "WORK_ORDER"

func CreateWorkOrderCreatedEvent(w *domain.WorkOrder, identity *session.Identity,
	timestamp types.Timestamp, tx *gorm.DB) (*event.EventRecord, error) {
	return event.CreateEvent(EventSourceTypeWorkOrder, w.ID, w.OrderNumber, event.EventCategoryCreated,
		nil, nil, identity, timestamp, tx)
}

func CreateWorkOrderPropertyUpdatedEvent(w *domain.WorkOrder, updatedProperties []event.UpdatedProperty,
	identity *session.Identity, timestamp types.Timestamp, tx *gorm.DB) (*event.EventRecord, error) {
	return event.CreateEvent(EventSourceTypeWorkOrder, w.ID, w.OrderNumber, event.EventCategoryPropertyUpdated,
		updatedProperties, nil, identity, timestamp, tx)
}

func CreateWorkOrderAssignedEvent(w *domain.WorkOrder, oldAssignee, newAssignee, newAssigneeName string,
	identity *session.Identity, timestamp types.Timestamp, tx *gorm.DB) (*event.EventRecord, error) {
	return event.CreateEvent(EventSourceTypeWorkOrder, w.ID, w.OrderNumber, event.EventCategoryRelationUpdated,
		nil,
		[]event.UpdatedRelation{{
			PropertyName: "Assignee", PropertyDesc: "Assignee",
			TargetType: "assignee", TargetTypeDesc: "Assignee",
			OldTargetId: oldAssignee, OldTargetDesc: oldAssignee,
			NewTargetId: newAssignee, NewTargetDesc: newAssigneeName,
		}},
		identity, timestamp, tx)
}

func CreateWorkOrderReopenedEvent(w *domain.WorkOrder, identity *session.Identity,
	timestamp types.Timestamp, tx *gorm.DB) (*event.EventRecord, error) {
	return event.CreateEvent(EventSourceTypeWorkOrder, w.ID, w.OrderNumber, event.EventCategoryReopened,
		nil, nil, identity, timestamp, tx)
}

func CreateWorkOrderCancelledEvent(w *domain.WorkOrder, identity *session.Identity,
	timestamp types.Timestamp, tx *gorm.DB) (*event.EventRecord, error) {
	return event.CreateEvent(EventSourceTypeWorkOrder, w.ID, w.OrderNumber, event.EventCategoryCancelled,
		[]event.UpdatedProperty{{
			PropertyName: "Status", PropertyDesc: "Status",
			OldValue: string(w.Status), OldValueDesc: string(w.Status),
			NewValue: "Cancelled", NewValueDesc: "Cancelled",
		}}, nil, identity, timestamp, tx)
}
