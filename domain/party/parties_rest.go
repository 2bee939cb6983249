package party

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
	PathTechnicians  = "/v1/technicians"
	PathThirdParties = "/v1/third-parties"
)

func RegisterPartiesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	technicians := r.Group(PathTechnicians, middleWares...)
	technicians.GET("", handleQueryTechnicians)
	technicians.POST("", handleCreateTechnician)

	thirdParties := r.Group(PathThirdParties, middleWares...)
	thirdParties.GET("", handleQueryThirdParties)
	thirdParties.POST("", handleCreateThirdParty)
}

func handleQueryTechnicians(c *gin.Context) {
	records, err := QueryTechniciansFunc(session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &misc.PagedBody{List: records, Total: uint64(len(records))})
}

func handleCreateTechnician(c *gin.Context) {
	creation := domain.TechnicianCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateTechnicianFunc(&creation, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, record)
}

func handleQueryThirdParties(c *gin.Context) {
	records, err := QueryThirdPartiesFunc(session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &misc.PagedBody{List: records, Total: uint64(len(records))})
}

func handleCreateThirdParty(c *gin.Context) {
	creation := domain.ThirdPartyCreation{}
	if err := c.ShouldBindBodyWith(&creation, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateThirdPartyFunc(&creation, session.FindSecurityContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, record)
}
