package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"coachdeck_backend/internal/appErrors"
	"coachdeck_backend/internal/auth"
	"coachdeck_backend/internal/logger"
	"coachdeck_backend/internal/middleware"
	"coachdeck_backend/internal/validator"
	"coachdeck_backend/pkg/contextkeys"
)

// BaseHandler - общая механика всех хендлеров: достать db из контекста,
// разобрать и провалидировать тело, привести ошибку сервиса к HTTP-ответу.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// GetDB достает *gorm.DB, положенный DBMiddleware
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	value, exists := c.Get(string(contextkeys.DBContextKey))
	if !exists {
		logger.CtxError(c.Request.Context(), "db connection missing in request context")
		return nil
	}
	db, ok := value.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "unexpected db type in request context")
		return nil
	}
	return db
}

// GetClaims достает claims аутентифицированного пользователя.
// На маршрутах за AuthMiddleware claims есть всегда.
func (h *BaseHandler) GetClaims(c *gin.Context) (*auth.Claims, error) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return nil, appErrors.ErrUnauthorized
	}
	return claims, nil
}

// BindAndValidateJSON разбирает JSON-тело и прогоняет через валидатор.
// Ответ об ошибке пишется здесь же, вызывающему достаточно return.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		appErrors.HandleError(c, appErrors.NewBadRequestError("Invalid request body"))
		return false
	}
	if err := h.validator.Validate(obj); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			appErrors.HandleError(c, appErrors.ValidationError(vErr.Errors))
		} else {
			appErrors.HandleError(c, appErrors.ErrValidationFailed)
		}
		return false
	}
	return true
}

// BindAndValidateQuery разбирает query-параметры и валидирует их
func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		appErrors.HandleError(c, appErrors.NewBadRequestError("Invalid query parameters"))
		return false
	}
	if err := h.validator.Validate(obj); err != nil {
		var vErr *validator.ValidationError
		if errors.As(err, &vErr) {
			appErrors.HandleError(c, appErrors.ValidationError(vErr.Errors))
		} else {
			appErrors.HandleError(c, appErrors.ErrValidationFailed)
		}
		return false
	}
	return true
}

// HandleServiceError логирует 5xx и отдает ошибку клиенту
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	var appErr *appErrors.AppError
	if appErrors.As(err, &appErr) && appErr.HTTPCode >= http.StatusInternalServerError {
		logger.CtxWithError(c.Request.Context(), "service error", err,
			"path", c.Request.URL.Path)
	}
	appErrors.HandleError(c, err)
}
