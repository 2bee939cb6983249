package costing

import (
	"math"

	"wrench/bizerror"
	"wrench/domain"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
)

// LaborCost is the flat amount entered for the whole order when a third
// party does the work. Internal technicians carry no billable rate.
func LaborCost(o *domain.WorkOrder) float64 {
	if o.ThirdPartyAssigned() {
		return o.LaborRate
	}
	return 0
}

// PartsCost sums quantity times the current catalog unit value over the
// order's part lines. Prices are resolved live on every call, so totals
// drift when the catalog changes after a part was recorded.
func PartsCost(tx *gorm.DB, workOrderID types.ID) (float64, error) {
	var lines []domain.PartLine
	if err := tx.Where(&domain.PartLine{WorkOrderID: workOrderID}).Find(&lines).Error; err != nil {
		return 0, err
	}

	total := float64(0)
	for _, line := range lines {
		item := domain.CatalogItem{}
		if err := tx.Where(&domain.CatalogItem{ID: line.ItemID}).First(&item).Error; err != nil {
			return 0, err
		}
		total += float64(line.Quantity) * item.UnitValue
	}
	return round2(total), nil
}

// RecomputeCosts refreshes the persisted totals of the given order inside
// the caller's transaction. The update is conditional on the order version
// known to the caller; the in-memory order is refreshed on success.
func RecomputeCosts(tx *gorm.DB, o *domain.WorkOrder) error {
	partsCost, err := PartsCost(tx, o.ID)
	if err != nil {
		return err
	}
	totalCost := round2(LaborCost(o) + partsCost)

	db := tx.Model(&domain.WorkOrder{}).Where(&domain.WorkOrder{ID: o.ID, Version: o.Version}).
		Update(map[string]interface{}{"parts_cost": partsCost, "total_cost": totalCost, "version": o.Version + 1})
	if db.Error != nil {
		return db.Error
	}
	if db.RowsAffected != 1 {
		return bizerror.ErrConflict
	}

	o.PartsCost = partsCost
	o.TotalCost = totalCost
	o.Version = o.Version + 1
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
