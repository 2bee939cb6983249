package rating

import (
	"errors"
	"fmt"

	"wrench/bizerror"
	"wrench/domain"
	"wrench/domain/sla"
	"wrench/domain/status"
	"wrench/idgen"
	"wrench/persistence"
	"wrench/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	ratingIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	SubmitRatingFunc = SubmitRating
	ListRatingsFunc  = ListRatings
)

// SubmitRating records the requester's verdict on a completed work
// order. At most one rating per order is accepted; the rating is
// attributed to whoever was assigned at completion time.
func SubmitRating(req domain.RatingCreation, sec *session.Context) (*domain.Rating, error) {
	if sec == nil {
		return nil, bizerror.ErrForbidden
	}
	if req.Score < 1 || req.Score > 5 {
		return nil, &bizerror.ErrBadParam{Cause: fmt.Errorf("score %d out of range [1, 5]", req.Score)}
	}

	var record *domain.Rating
	db := persistence.ActiveDataSourceManager.GormDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		workOrder := domain.WorkOrder{}
		if err := tx.Where(&domain.WorkOrder{ID: req.WorkOrderID}).First(&workOrder).Error; err != nil {
			return err
		}
		if workOrder.Status != status.Completed {
			return bizerror.ErrStatusInvalid
		}
		if !workOrder.Assigned() {
			return bizerror.ErrAssigneeAbsent
		}

		existed := domain.Rating{}
		err := tx.Where(&domain.Rating{WorkOrderID: workOrder.ID}).First(&existed).Error
		if err == nil {
			return bizerror.ErrRatingExisted
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		assigneeType, assigneeId := domain.AssigneeTypeTechnician, workOrder.TechnicianID
		if workOrder.ThirdPartyAssigned() {
			assigneeType, assigneeId = domain.AssigneeTypeThirdParty, workOrder.ThirdPartyID
		}

		rating := domain.Rating{
			ID:          idgen.NextID(ratingIdWorker),
			WorkOrderID: workOrder.ID,

			AssigneeType: assigneeType,
			AssigneeID:   assigneeId,

			Score:   req.Score,
			Comment: req.Comment,

			CreatorID:  sec.Identity.ID,
			CreateTime: sla.NowFunc(),
		}
		if err := tx.Create(&rating).Error; err != nil {
			return err
		}
		record = &rating
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListRatings returns ratings received by an assignee, newest first.
func ListRatings(assigneeType string, assigneeId types.ID, sec *session.Context) ([]domain.Rating, error) {
	if sec == nil {
		return nil, bizerror.ErrForbidden
	}
	if assigneeType != domain.AssigneeTypeTechnician && assigneeType != domain.AssigneeTypeThirdParty {
		return nil, &bizerror.ErrBadParam{Cause: errors.New("unknown assignee type '" + assigneeType + "'")}
	}

	var records []domain.Rating
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Where(&domain.Rating{AssigneeType: assigneeType, AssigneeID: assigneeId}).
		Order("create_time DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindRating returns the rating of a work order, or nil when the order
// has not been rated yet.
func FindRating(workOrderId types.ID, sec *session.Context) (*domain.Rating, error) {
	if sec == nil {
		return nil, bizerror.ErrForbidden
	}

	rating := domain.Rating{}
	db := persistence.ActiveDataSourceManager.GormDB()
	err := db.Where(&domain.Rating{WorkOrderID: workOrderId}).First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
