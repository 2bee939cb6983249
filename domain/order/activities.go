package order

import (
	"errors"

	"wrench/bizerror"
	"wrench/domain"
	"wrench/domain/sla"
	"wrench/idgen"
	"wrench/persistence"
	"wrench/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	activityIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	QueryActivitiesFunc = QueryActivities
	AddCommentFunc      = AddComment
)

// QueryActivities returns the audit trail of a work order, newest first.
func QueryActivities(query *domain.ActivityQuery, sec *session.Context) (*[]domain.ActivityRecord, error) {
	if sec == nil {
		return nil, bizerror.ErrForbidden
	}

	db := persistence.ActiveDataSourceManager.GormDB()
	workOrder := domain.WorkOrder{}
	if err := db.Where(&domain.WorkOrder{ID: query.WorkOrderID}).Select("id").First(&workOrder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &[]domain.ActivityRecord{}, nil
		}
		return nil, err
	}

	var records []domain.ActivityRecord
	if err := db.Where(&domain.ActivityRecord{WorkOrderID: query.WorkOrderID}).
		Order("timestamp DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return &records, nil
}

// AddComment appends a free-form note to the trail. Comments are allowed
// on any order that still exists, terminal or not.
func AddComment(workOrderId types.ID, description string, sec *session.Context) (*domain.ActivityRecord, error) {
	if sec == nil {
		return nil, bizerror.ErrForbidden
	}
	if description == "" {
		return nil, &bizerror.ErrBadParam{Cause: errors.New("description must not be empty")}
	}

	var record *domain.ActivityRecord
	db := persistence.ActiveDataSourceManager.GormDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		workOrder, err := findWorkOrder(tx, workOrderId)
		if err != nil {
			return err
		}
		record, err = createActivity(tx, workOrder.ID, domain.ActivityComment, description, sec, sla.NowFunc())
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func appendActivity(tx *gorm.DB, workOrderId types.ID, activityType, description string,
	sec *session.Context, timestamp types.Timestamp) error {
	_, err := createActivity(tx, workOrderId, activityType, description, sec, timestamp)
	return err
}

func createActivity(tx *gorm.DB, workOrderId types.ID, activityType, description string,
	sec *session.Context, timestamp types.Timestamp) (*domain.ActivityRecord, error) {
	record := domain.ActivityRecord{
		ID:          idgen.NextID(activityIdWorker),
		WorkOrderID: workOrderId,
		Type:        activityType,
		Description: description,
		ActorName:   actorName(sec),
		Timestamp:   timestamp,
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func actorName(sec *session.Context) string {
	if sec.Identity.Nickname != "" {
		return sec.Identity.Nickname
	}
	return sec.Identity.Name
}
