package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "github.com/AnshVerma23f3001159/MAD-1-HMS/pkg/errors"
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

// Error writes err as an error envelope, mapping AppError codes to
// their HTTP status. Anything unrecognized becomes a 500.
func Error(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}
	c.JSON(appErr.StatusCode(), NewErrorResponse(appErr.Message))
}
