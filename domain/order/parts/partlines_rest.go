package parts

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
	PathPartLines = "/v1/part-lines"
)

type partLineQuery struct {
	WorkOrderID types.ID `form:"workOrderId" binding:"required"`
}

func RegisterPartLinesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathPartLines, middleWares...)
	g.GET("", handleListPartLines)
	g.POST("", handleAddPartLine)
	g.DELETE(":id", handleRemovePartLine)
}

func handleListPartLines(c *gin.Context) {
	query := partLineQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	records, err := ListPartLinesFunc(query.WorkOrderID, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &misc.PagedBody{List: records, Total: uint64(len(records))})
}

func handleAddPartLine(c *gin.Context) {
	creation := domain.PartLineCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := AddPartLineFunc(creation, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, record)
}

func handleRemovePartLine(c *gin.Context) {
	parsedId, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	if err := RemovePartLineFunc(parsedId, session.FindSecurityContext(c)); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}
