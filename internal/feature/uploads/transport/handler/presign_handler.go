// Package handler exposes the upload presigner over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"trading_journal/internal/feature/uploads/domain"
	"trading_journal/internal/feature/uploads/usecase"
	"trading_journal/internal/platform/logger"
)

// PresignUsecase signs a single image upload.
type PresignUsecase interface {
	Presign(ctx context.Context, fileName, contentType string, sizeBytes int64) (usecase.Upload, error)
}

type presignRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

type presignResponse struct {
	UploadURL        string            `json:"uploadUrl"`
	Method           string            `json:"method"`
	Fields           map[string]string `json:"fields"`
	FileURL          string            `json:"fileUrl"`
	Key              string            `json:"key"`
	ExpiresInSeconds int64             `json:"expiresInSeconds"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// PresignHandler serves POST /api/uploads/presign.
type PresignHandler struct {
	uc  PresignUsecase
	log *logger.Logger
}

// NewPresignHandler creates a PresignHandler. A nil uc means uploads are not configured
// and every request gets 501.
func NewPresignHandler(uc PresignUsecase, log *logger.Logger) *PresignHandler {
	return &PresignHandler{uc: uc, log: log}
}

// Presign returns the form the browser posts the image with, plus the URL to register afterwards.
func (h *PresignHandler) Presign(c *gin.Context) {
	if h.uc == nil {
		c.JSON(http.StatusNotImplemented, errorResponse{Error: "Direct uploads are not configured"})
		return
	}

	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}

	up, err := h.uc.Presign(c.Request.Context(), req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidUpload) {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "Only a single PNG, JPEG, WebP or GIF image up to 4MB is allowed"})
			return
		}
		h.log.ErrorContext(c.Request.Context(), "failed to presign upload",
			logger.StringField("content_type", req.ContentType),
			logger.ErrorField(err),
		)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to generate upload URL"})
		return
	}

	c.JSON(http.StatusOK, presignResponse{
		UploadURL:        up.UploadURL,
		Method:           up.Method,
		Fields:           up.Fields,
		FileURL:          up.FileURL,
		Key:              up.Key,
		ExpiresInSeconds: int64(up.ExpiresIn.Seconds()),
	})
}
