package catalog

import (
	"errors"
	"net/http"

	"wrench/bizerror"
	"wrench/domain"
	"wrench/misc"
	"wrench/session"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathCatalogItems = "/v1/catalog-items"
)

type itemPriceUpdating struct {
	UnitValue float64 `json:"unitValue"`
}

func RegisterCatalogRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathCatalogItems, middleWares...)
	g.GET("", handleQueryItems)
	g.POST("", handleCreateItem)
	g.PUT(":id/price", handleUpdateItemPrice)
}

func handleQueryItems(c *gin.Context) {
	records, err := QueryItemsFunc(session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &misc.PagedBody{List: records, Total: uint64(len(records))})
}

func handleCreateItem(c *gin.Context) {
	creation := domain.CatalogItemCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateItemFunc(&creation, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, record)
}

func handleUpdateItemPrice(c *gin.Context) {
	parsedId, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	updating := itemPriceUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := UpdateItemPrice(parsedId, updating.UnitValue, session.FindSecurityContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}
