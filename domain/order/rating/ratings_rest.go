package rating

import (
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
	PathRatings = "/v1/ratings"
)

type ratingQuery struct {
	AssigneeType string   `form:"assigneeType" binding:"required"`
	AssigneeID   types.ID `form:"assigneeId" binding:"required"`
}

func RegisterRatingsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathRatings, middleWares...)
	g.GET("", handleListRatings)
	g.POST("", handleSubmitRating)
}

func handleListRatings(c *gin.Context) {
	query := ratingQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	records, err := ListRatingsFunc(query.AssigneeType, query.AssigneeID, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &misc.PagedBody{List: records, Total: uint64(len(records))})
}

func handleSubmitRating(c *gin.Context) {
	creation := domain.RatingCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := SubmitRatingFunc(creation, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, record)
}
