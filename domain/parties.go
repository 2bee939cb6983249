package domain

import "github.com/fundwit/go-commons/types"

// Technician is internal staff. Internal labor is never billed against a
// work order.
type Technician struct {
	ID        types.ID `json:"id" gorm:"primary_key"`
	Name      string   `json:"name"`
	Specialty string   `json:"specialty"`
	Contact   string   `json:"contact"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

// ThirdParty is an outside contractor company, billed as a lump sum per
// work order.
type ThirdParty struct {
	ID      types.ID `json:"id" gorm:"primary_key"`
	Name    string   `json:"name"`
	Contact string   `json:"contact"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

type TechnicianCreation struct {
	Name      string `json:"name" binding:"required"`
	Specialty string `json:"specialty"`
	Contact   string `json:"contact"`
}

type ThirdPartyCreation struct {
	Name    string `json:"name" binding:"required"`
	Contact string `json:"contact"`
}
