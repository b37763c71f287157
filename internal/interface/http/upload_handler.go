package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/velora-shop/velora-api/pkg/response"
	"github.com/velora-shop/velora-api/pkg/upload"
)

// 8 MiB is plenty for product photography.
const maxUploadBytes = 8 << 20

type UploadHandler struct {
	Uploader upload.Uploader
	Logger   *logrus.Logger
}

func NewUploadHandler(up upload.Uploader, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{Uploader: up, Logger: logger}
}

// Upload POST /api/upload (multipart field "product")
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("product")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing file field 'product'", nil)
		return
	}
	if fh.Size > maxUploadBytes {
		response.Error[any](c, http.StatusBadRequest, "file too large", nil)
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Error[any](c, http.StatusBadRequest, "only image uploads are accepted", nil)
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "upload failed", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Uploader.Upload(c.Request.Context(), f, fh.Filename, contentType)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Error("image upload failed")
		}
		response.Error[any](c, http.StatusBadGateway, "image host error", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"image_url": url}, "image uploaded", nil)
}
