package appErrors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError пишет ошибку в ответ gin.
// Неизвестные ошибки маскируются: наружу уходит только INTERNAL_ERROR
// без деталей и стектрейсов.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !As(err, &appErr) {
		appErr = New(CodeInternalError, "Internal server error", http.StatusInternalServerError)
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}
