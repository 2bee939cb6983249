package costing_test

import (
	"testing"

	"wrench/authority"
	"wrench/bizerror"
	"wrench/domain"
	"wrench/domain/catalog"
	"wrench/domain/costing"
	"wrench/persistence"
	"wrench/testinfra"

	. "github.com/onsi/gomega"
)

func costingTestSetup(t *testing.T, testDatabase **testinfra.TestDatabase) {
	db := testinfra.StartMysqlTestDatabase("wrench")
	*testDatabase = db
	Expect(db.DS.GormDB().AutoMigrate(&domain.WorkOrder{}, &domain.PartLine{}, &domain.CatalogItem{}).Error).To(BeNil())
	persistence.ActiveDataSourceManager = db.DS
}

func costingTestTeardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	if testDatabase != nil {
		testinfra.StopMysqlTestDatabase(testDatabase)
	}
}

func TestLaborCost(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should bill the lump sum only for third parties", func(t *testing.T) {
		Expect(costing.LaborCost(&domain.WorkOrder{ThirdPartyID: 7, LaborRate: 150})).To(Equal(150.0))
		Expect(costing.LaborCost(&domain.WorkOrder{TechnicianID: 7, LaborRate: 150})).To(Equal(0.0))
		Expect(costing.LaborCost(&domain.WorkOrder{})).To(Equal(0.0))
	})
}

func TestPartsCost(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase
	costingTestSetup(t, &testDatabase)
	defer costingTestTeardown(t, testDatabase)

	admin := testinfra.BuildSecCtx(1, authority.RoleAdmin)
	db := persistence.ActiveDataSourceManager.GormDB()

	t.Run("should resolve the live catalog price on every call", func(t *testing.T) {
		item, err := catalog.CreateItem(&domain.CatalogItemCreation{
			SKU: "BRG-6204", Name: "Bearing 6204", UnitValue: 10}, admin)
		Expect(err).To(BeNil())

		workOrder := domain.WorkOrder{ID: 1000, OrderNumber: "MAQ-001", Version: 1}
		Expect(db.Create(&workOrder).Error).To(BeNil())
		Expect(db.Create(&domain.PartLine{ID: 2000, WorkOrderID: workOrder.ID, ItemID: item.ID, Quantity: 3}).Error).To(BeNil())

		total, err := costing.PartsCost(db, workOrder.ID)
		Expect(err).To(BeNil())
		Expect(total).To(Equal(30.0))

		// the catalog price moved, recorded lines are not snapshotted
		Expect(catalog.UpdateItemPrice(item.ID, 12.5, admin)).To(BeNil())
		total, err = costing.PartsCost(db, workOrder.ID)
		Expect(err).To(BeNil())
		Expect(total).To(Equal(37.5))
	})

	t.Run("should be zero for an order without lines", func(t *testing.T) {
		total, err := costing.PartsCost(db, 404404)
		Expect(err).To(BeNil())
		Expect(total).To(Equal(0.0))
	})
}

func TestRecomputeCosts(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase
	costingTestSetup(t, &testDatabase)
	defer costingTestTeardown(t, testDatabase)

	admin := testinfra.BuildSecCtx(1, authority.RoleAdmin)
	db := persistence.ActiveDataSourceManager.GormDB()

	t.Run("should persist totals and bump the version", func(t *testing.T) {
		item, err := catalog.CreateItem(&domain.CatalogItemCreation{
			SKU: "SEAL-90", Name: "Hydraulic seal", UnitValue: 25.5}, admin)
		Expect(err).To(BeNil())

		workOrder := domain.WorkOrder{ID: 1001, OrderNumber: "MAQ-002", ThirdPartyID: 7, LaborRate: 150, Version: 1}
		Expect(db.Create(&workOrder).Error).To(BeNil())
		Expect(db.Create(&domain.PartLine{ID: 2001, WorkOrderID: workOrder.ID, ItemID: item.ID, Quantity: 2}).Error).To(BeNil())

		Expect(costing.RecomputeCosts(db, &workOrder)).To(BeNil())
		Expect(workOrder.PartsCost).To(Equal(51.0))
		Expect(workOrder.TotalCost).To(Equal(201.0))
		Expect(workOrder.Version).To(Equal(2))

		stored := domain.WorkOrder{}
		Expect(db.Where(&domain.WorkOrder{ID: workOrder.ID}).First(&stored).Error).To(BeNil())
		Expect(stored.TotalCost).To(Equal(201.0))
		Expect(stored.Version).To(Equal(2))
	})

	t.Run("should report a conflict when the known version is stale", func(t *testing.T) {
		workOrder := domain.WorkOrder{ID: 1002, OrderNumber: "MAQ-003", Version: 1}
		Expect(db.Create(&workOrder).Error).To(BeNil())

		stale := workOrder
		stale.Version = 99
		Expect(costing.RecomputeCosts(db, &stale)).To(Equal(bizerror.ErrConflict))
	})
}
