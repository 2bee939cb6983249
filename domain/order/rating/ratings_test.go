package rating_test

import (
	"testing"

	"wrench/authority"
	"wrench/bizerror"
	"wrench/domain"
	"wrench/domain/asset"
	"wrench/domain/order"
	"wrench/domain/order/rating"
	"wrench/domain/party"
	"wrench/domain/status"
	"wrench/event"
	"wrench/persistence"
	"wrench/testinfra"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	. "github.com/onsi/gomega"
)

type ratingTestFixture struct {
	asset      *domain.Asset
	technician *domain.Technician
	thirdParty *domain.ThirdParty
}

func ratingsTestSetup(t *testing.T, testDatabase **testinfra.TestDatabase) *ratingTestFixture {
	db := testinfra.StartMysqlTestDatabase("wrench")
	*testDatabase = db
	Expect(db.DS.GormDB().AutoMigrate(&domain.WorkOrder{}, &domain.PartLine{}, &domain.ActivityRecord{},
		&domain.Rating{}, &domain.Asset{}, &domain.AssetCategory{}, &domain.CatalogItem{},
		&domain.Technician{}, &domain.ThirdParty{}, &event.EventRecord{}).Error).To(BeNil())

	persistence.ActiveDataSourceManager = db.DS

	admin := testinfra.BuildSecCtx(1, authority.RoleAdmin)
	category, err := asset.CreateCategory(&domain.AssetCategoryCreation{Name: "Utilities", Prefix: "OUT"}, admin)
	Expect(err).To(BeNil())
	assetRecord, err := asset.CreateAsset(&domain.AssetCreation{
		Code: "CMP-01", Name: "Compressor 01", CategoryID: category.ID}, admin)
	Expect(err).To(BeNil())
	technician, err := party.CreateTechnician(&domain.TechnicianCreation{Name: "Bob"}, admin)
	Expect(err).To(BeNil())
	thirdParty, err := party.CreateThirdParty(&domain.ThirdPartyCreation{Name: "Acme Repairs"}, admin)
	Expect(err).To(BeNil())

	event.EventPersistCreateFunc = func(record *event.EventRecord, db *gorm.DB) error {
		return nil
	}
	event.InvokeHandlersFunc = func(record *event.EventRecord) []event.EventHandleResult {
		return nil
	}

	return &ratingTestFixture{asset: assetRecord, technician: technician, thirdParty: thirdParty}
}

func ratingsTestTeardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	if testDatabase != nil {
		testinfra.StopMysqlTestDatabase(testDatabase)
	}
}

func completedOrder(fixture *ratingTestFixture, assigneeId types.ID, thirdParty bool) *domain.WorkOrder {
	admin := testinfra.BuildSecCtx(1, authority.RoleAdmin)
	created, err := order.CreateWorkOrder(&domain.WorkOrderCreation{
		AssetID: fixture.asset.ID, Issue: "rate me"}, testinfra.BuildSecCtx(10))
	Expect(err).To(BeNil())
	if assigneeId != 0 {
		_, err = order.AssignWorkOrder(created.ID, &domain.WorkOrderAssignment{
			AssigneeID: assigneeId, IsThirdParty: thirdParty, LaborRate: 100}, admin)
		Expect(err).To(BeNil())
	}
	completed, err := order.TransitionStatus(created.ID,
		&domain.WorkOrderStatusUpdating{Status: status.Completed}, admin)
	Expect(err).To(BeNil())
	return completed
}

func TestSubmitRating(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase
	fixture := ratingsTestSetup(t, &testDatabase)
	defer ratingsTestTeardown(t, testDatabase)

	requester := testinfra.BuildSecCtx(10)
	admin := testinfra.BuildSecCtx(1, authority.RoleAdmin)

	t.Run("should validate score range", func(t *testing.T) {
		for _, score := range []int{0, -1, 6, 100} {
			_, err := rating.SubmitRating(domain.RatingCreation{WorkOrderID: 1, Score: score}, requester)
			Expect(err).To(HaveOccurred())
		}
	})

	t.Run("should only rate completed orders", func(t *testing.T) {
		created, err := order.CreateWorkOrder(&domain.WorkOrderCreation{
			AssetID: fixture.asset.ID, Issue: "still open"}, requester)
		Expect(err).To(BeNil())

		_, err = rating.SubmitRating(domain.RatingCreation{WorkOrderID: created.ID, Score: 5}, requester)
		Expect(err).To(Equal(bizerror.ErrStatusInvalid))
	})

	t.Run("should require an assignee", func(t *testing.T) {
		completed := completedOrder(fixture, 0, false)
		_, err := rating.SubmitRating(domain.RatingCreation{WorkOrderID: completed.ID, Score: 4}, requester)
		Expect(err).To(Equal(bizerror.ErrAssigneeAbsent))
	})

	t.Run("should attribute the rating to the assignee and refuse a second one", func(t *testing.T) {
		completed := completedOrder(fixture, fixture.thirdParty.ID, true)

		record, err := rating.SubmitRating(domain.RatingCreation{
			WorkOrderID: completed.ID, Score: 4, Comment: "quick turnaround"}, requester)
		Expect(err).To(BeNil())
		Expect(record.AssigneeType).To(Equal(domain.AssigneeTypeThirdParty))
		Expect(record.AssigneeID).To(Equal(fixture.thirdParty.ID))
		Expect(record.Score).To(Equal(4))

		_, err = rating.SubmitRating(domain.RatingCreation{WorkOrderID: completed.ID, Score: 1}, admin)
		Expect(err).To(Equal(bizerror.ErrRatingExisted))
	})
}

func TestListRatings(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase
	fixture := ratingsTestSetup(t, &testDatabase)
	defer ratingsTestTeardown(t, testDatabase)

	requester := testinfra.BuildSecCtx(10)

	t.Run("should reject unknown assignee types", func(t *testing.T) {
		_, err := rating.ListRatings("vendor", fixture.technician.ID, requester)
		Expect(err).To(HaveOccurred())
	})

	t.Run("should list ratings per assignee", func(t *testing.T) {
		first := completedOrder(fixture, fixture.technician.ID, false)
		second := completedOrder(fixture, fixture.technician.ID, false)

		_, err := rating.SubmitRating(domain.RatingCreation{WorkOrderID: first.ID, Score: 5}, requester)
		Expect(err).To(BeNil())
		_, err = rating.SubmitRating(domain.RatingCreation{WorkOrderID: second.ID, Score: 3}, requester)
		Expect(err).To(BeNil())

		records, err := rating.ListRatings(domain.AssigneeTypeTechnician, fixture.technician.ID, requester)
		Expect(err).To(BeNil())
		Expect(len(records)).To(Equal(2))

		records, err = rating.ListRatings(domain.AssigneeTypeThirdParty, fixture.thirdParty.ID, requester)
		Expect(err).To(BeNil())
		Expect(len(records)).To(Equal(0))
	})
}

func TestFindRating(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase
	fixture := ratingsTestSetup(t, &testDatabase)
	defer ratingsTestTeardown(t, testDatabase)

	requester := testinfra.BuildSecCtx(10)

	t.Run("should return nil when the order has no rating yet", func(t *testing.T) {
		completed := completedOrder(fixture, fixture.technician.ID, false)

		found, err := rating.FindRating(completed.ID, requester)
		Expect(err).To(BeNil())
		Expect(found).To(BeNil())

		_, err = rating.SubmitRating(domain.RatingCreation{WorkOrderID: completed.ID, Score: 2}, requester)
		Expect(err).To(BeNil())

		found, err = rating.FindRating(completed.ID, requester)
		Expect(err).To(BeNil())
		Expect(found.Score).To(Equal(2))
	})
}
