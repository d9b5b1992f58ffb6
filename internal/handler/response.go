package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turnomed/scheduling-api/internal/repository"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError maps service errors to HTTP statuses: typed engine errors
// carry their own status, missing rows become 404, everything else 500.
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if sc, ok := statusCoder(err); ok {
		status = sc
	} else if errors.Is(err, repository.ErrNotFound) {
		status = http.StatusNotFound
	}
	_ = c.Error(err)
	c.JSON(status, NewErrorResponse(err.Error()))
}

func statusCoder(err error) (int, bool) {
	var sc interface{ StatusCode() int }
	if errors.As(err, &sc) {
		return sc.StatusCode(), true
	}
	return 0, false
}
