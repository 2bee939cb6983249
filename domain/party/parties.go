package party

import (
	"wrench/bizerror"
	"wrench/domain"
	"wrench/idgen"
	"wrench/persistence"
	"wrench/session"

	"github.com/fundwit/go-commons/types"
	"github.com/sony/sonyflake"
)

var (
	partyIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateTechnicianFunc = CreateTechnician
	QueryTechniciansFunc = QueryTechnicians
	CreateThirdPartyFunc = CreateThirdParty
	QueryThirdPartiesFunc = QueryThirdParties
)

func CreateTechnician(c *domain.TechnicianCreation, sec *session.Context) (*domain.Technician, error) {
	if sec == nil || !sec.Perms.HasAdminRole() {
		return nil, bizerror.ErrForbidden
	}

	record := domain.Technician{
		ID:         idgen.NextID(partyIdWorker),
		Name:       c.Name,
		Specialty:  c.Specialty,
		Contact:    c.Contact,
		CreateTime: types.CurrentTimestamp(),
	}
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func QueryTechnicians(sec *session.Context) ([]domain.Technician, error) {
	if sec == nil {
		return nil, bizerror.ErrForbidden
	}
	var records []domain.Technician
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Order("name ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func CreateThirdParty(c *domain.ThirdPartyCreation, sec *session.Context) (*domain.ThirdParty, error) {
	if sec == nil || !sec.Perms.HasAdminRole() {
		return nil, bizerror.ErrForbidden
	}

	record := domain.ThirdParty{
		ID:         idgen.NextID(partyIdWorker),
		Name:       c.Name,
		Contact:    c.Contact,
		CreateTime: types.CurrentTimestamp(),
	}
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func QueryThirdParties(sec *session.Context) ([]domain.ThirdParty, error) {
	if sec == nil {
		return nil, bizerror.ErrForbidden
	}
	var records []domain.ThirdParty
	db := persistence.ActiveDataSourceManager.GormDB()
	if err := db.Order("name ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
