package bizerror

import (
	"errors"
	"net/http"

	"wrench/common"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	ErrUnknownStatus = errors.New("unknown status")
	ErrStatusInvalid = errors.New("status invalid")
	ErrConflict      = errors.New("concurrent modification")

	ErrRatingExisted  = errors.New("rating existed")
	ErrAssigneeAbsent = errors.New("assignee absent")
)

type ErrBadParam struct {
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}
func (e *ErrBadParam) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "common.bad_param"
}
func (e *ErrBadParam) Respond() *common.BizErrorDetail {
	message := "common.bad_param"
	if e.Cause != nil {
		message = e.Cause.Error()
	}
	return &common.BizErrorDetail{Status: http.StatusBadRequest, Code: "common.bad_param", Message: message, Data: nil}
}
