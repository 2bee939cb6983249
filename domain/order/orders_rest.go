package order

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
	PathWorkOrders = "/v1/work-orders"
)

type commentCreation struct {
	Description string `json:"description" binding:"required"`
}

func RegisterWorkOrdersRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathWorkOrders, middleWares...)
	g.GET("", handleQueryWorkOrders)
	g.POST("", handleCreateWorkOrder)
	g.GET(":id", handleDetailWorkOrder)
	g.PUT(":id/status", handleTransitionStatus)
	g.PUT(":id/assignee", handleAssignWorkOrder)
	g.PUT(":id/report", handleUpdateReport)
	g.POST(":id/reopen", handleReopenWorkOrder)
	g.POST(":id/cancel", handleCancelWorkOrder)
	g.GET(":id/activities", handleQueryActivities)
	g.POST(":id/comments", handleAddComment)
}

func handleQueryWorkOrders(c *gin.Context) {
	query := domain.WorkOrderQuery{}
	if err := c.MustBindWith(&query, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	workOrders, err := QueryWorkOrdersFunc(&query, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &misc.PagedBody{List: workOrders, Total: uint64(len(*workOrders))})
}

func handleCreateWorkOrder(c *gin.Context) {
	creation := domain.WorkOrderCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	workOrder, err := CreateWorkOrderFunc(&creation, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, workOrder)
}

func handleDetailWorkOrder(c *gin.Context) {
	detail, err := DetailWorkOrderFunc(parseWorkOrderId(c), session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, detail)
}

func handleTransitionStatus(c *gin.Context) {
	updating := domain.WorkOrderStatusUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	workOrder, err := TransitionStatusFunc(parseWorkOrderId(c), &updating, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, workOrder)
}

func handleAssignWorkOrder(c *gin.Context) {
	assignment := domain.WorkOrderAssignment{}
	if err := c.ShouldBindBodyWith(&assignment, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	workOrder, err := AssignWorkOrderFunc(parseWorkOrderId(c), &assignment, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, workOrder)
}

func handleUpdateReport(c *gin.Context) {
	updating := domain.WorkOrderReportUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	workOrder, err := UpdateReportFunc(parseWorkOrderId(c), &updating, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, workOrder)
}

func handleReopenWorkOrder(c *gin.Context) {
	workOrder, err := ReopenWorkOrderFunc(parseWorkOrderId(c), session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, workOrder)
}

func handleCancelWorkOrder(c *gin.Context) {
	workOrder, err := CancelWorkOrderFunc(parseWorkOrderId(c), session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, workOrder)
}

func handleQueryActivities(c *gin.Context) {
	records, err := QueryActivitiesFunc(&domain.ActivityQuery{WorkOrderID: parseWorkOrderId(c)},
		session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &misc.PagedBody{List: records, Total: uint64(len(*records))})
}

func handleAddComment(c *gin.Context) {
	creation := commentCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := AddCommentFunc(parseWorkOrderId(c), creation.Description, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, record)
}

func parseWorkOrderId(c *gin.Context) types.ID {
	parsedId, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	return parsedId
}
