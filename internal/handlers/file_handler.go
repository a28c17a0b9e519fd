package handlers

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"coachdeck_backend/internal/appErrors"
	"coachdeck_backend/internal/middleware"
	"coachdeck_backend/internal/storage"
)

// FileHandler отдает загруженные файлы (чеки оплаты) по ключу.
// Ключ с выходом за корень хранилища дает 403, отсутствующий файл - 404.
type FileHandler struct {
	*BaseHandler
	fileStorage storage.Storage
}

func NewFileHandler(base *BaseHandler, fileStorage storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		fileStorage: fileStorage,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	files.Use(middleware.AuthMiddleware())
	{
		files.GET("/*path", h.Serve)
	}
}

func (h *FileHandler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("path"), "/")
	if key == "" {
		appErrors.HandleError(c, appErrors.ErrNotFound)
		return
	}

	reader, err := h.fileStorage.Get(c.Request.Context(), key)
	if err != nil {
		if appErrors.Is(err, storage.ErrPathEscape) {
			appErrors.HandleError(c, appErrors.ErrForbidden)
			return
		}
		if os.IsNotExist(err) {
			appErrors.HandleError(c, appErrors.ErrNotFound)
			return
		}
		h.HandleServiceError(c, appErrors.InternalError(err))
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
