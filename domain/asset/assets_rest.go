package asset

import (
	"net/http"

	"wrench/bizerror"
	"wrench/domain"
	"wrench/misc"
	"wrench/session"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathAssets          = "/v1/assets"
	PathAssetCategories = "/v1/asset-categories"
)

func RegisterAssetsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathAssets, middleWares...)
	g.GET("", handleQueryAssets)
	g.POST("", handleCreateAsset)

	c := r.Group(PathAssetCategories, middleWares...)
	c.GET("", handleQueryCategories)
	c.POST("", handleCreateCategory)
}

func handleQueryAssets(c *gin.Context) {
	records, err := QueryAssetsFunc(session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &misc.PagedBody{List: records, Total: uint64(len(records))})
}

func handleCreateAsset(c *gin.Context) {
	creation := domain.AssetCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateAssetFunc(&creation, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, record)
}

func handleQueryCategories(c *gin.Context) {
	records, err := QueryCategoriesFunc(session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &misc.PagedBody{List: records, Total: uint64(len(records))})
}

func handleCreateCategory(c *gin.Context) {
	creation := domain.AssetCategoryCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateCategoryFunc(&creation, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, record)
}
