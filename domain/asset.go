package domain

import "github.com/fundwit/go-commons/types"

// AssetCategory carries the order number prefix and the sequential counter
// consumed when a work order is created for one of its assets.
type AssetCategory struct {
	ID     types.ID `json:"id" gorm:"primary_key"`
	Name   string   `json:"name"`
	Prefix string   `json:"prefix"`

	NextOrderNumber int `json:"nextOrderNumber"`
}

type Asset struct {
	ID         types.ID `json:"id" gorm:"primary_key"`
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	Sector     string   `json:"sector"`
	Model      string   `json:"model"`
	CategoryID types.ID `json:"categoryId"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

type AssetCreation struct {
	Code       string   `json:"code" binding:"required"`
	Name       string   `json:"name" binding:"required"`
	Sector     string   `json:"sector"`
	Model      string   `json:"model"`
	CategoryID types.ID `json:"categoryId" binding:"required"`
}

type AssetCategoryCreation struct {
	Name   string `json:"name" binding:"required"`
	Prefix string `json:"prefix" binding:"required"`
}
