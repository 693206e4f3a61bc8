// Package handler provides the HTTP handlers for chart records.
package handler

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"trading_journal/internal/feature/charts/domain"
	"trading_journal/internal/feature/charts/domain/entity"
	"trading_journal/internal/feature/charts/domain/tradingdate"
	"trading_journal/internal/feature/charts/transport/http/dto"
	"trading_journal/internal/platform/logger"
)

// Client-facing messages.
const (
	msgCreateRequired  = "Image URL and trading date are required"
	msgInvalidDate     = "Invalid trading date"
	msgCreateFailed    = "Failed to save image metadata"
	msgDeleteRequired  = "Image ID and URL are required"
	msgNotFound        = "Image not found"
	msgDeleteFailed    = "Failed to delete image"
	msgDeleted         = "Image deleted successfully"
	msgInvalidFilter   = "Invalid date filter"
	msgListFailed      = "Failed to fetch images"
	displayDateLayout  = "1/2/2006"
	deleteEndpointPath = "/api/images/delete"
)

//go:embed templates/gallery.html
var templateFS embed.FS

var galleryTemplate = template.Must(template.ParseFS(templateFS, "templates/gallery.html"))

// ChartUsecase defines the chart operations the handlers need.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type ChartUsecase interface {
	Create(ctx context.Context, imageURL, tradingDate string) (entity.ChartRecord, error)
	List(ctx context.Context, startDate, endDate string) ([]entity.ChartRecord, error)
	Delete(ctx context.Context, id, imageURL string) error
}

// ChartHandler handles HTTP requests for chart records.
type ChartHandler struct {
	uc  ChartUsecase
	log *logger.Logger
}

// NewChartHandler creates a ChartHandler.
func NewChartHandler(uc ChartUsecase, log *logger.Logger) *ChartHandler {
	return &ChartHandler{uc: uc, log: log}
}

// Create stores the metadata of an image that finished uploading.
//
// POST /api/images/create {"imageUrl": "...", "tradingDate": "2024-03-15"}
func (h *ChartHandler) Create(c *gin.Context) {
	var req dto.CreateChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgCreateRequired})
		return
	}

	rec, err := h.uc.Create(c.Request.Context(), req.ImageURL, req.TradingDate)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidDate})
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgCreateRequired})
		default:
			h.log.ErrorContext(c.Request.Context(), "failed to save image metadata", logger.ErrorField(err))
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msgCreateFailed})
		}
		return
	}

	c.JSON(http.StatusOK, dto.CreateChartResponse{
		Success:     true,
		ID:          rec.ID,
		TradingDate: tradingdate.Format(rec.TradingDate),
	})
}

// Delete removes a record and its stored image.
//
// DELETE /api/images/delete?id=...&url=...
func (h *ChartHandler) Delete(c *gin.Context) {
	err := h.uc.Delete(c.Request.Context(), c.Query("id"), c.Query("url"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgDeleteRequired})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: msgNotFound})
		default:
			h.log.ErrorContext(c.Request.Context(), "failed to delete image", logger.ErrorField(err))
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msgDeleteFailed})
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: msgDeleted})
}

// List returns the filtered records as JSON.
//
// GET /api/images?startDate=2024-03-01&endDate=2024-03-31
func (h *ChartHandler) List(c *gin.Context) {
	recs, err := h.uc.List(c.Request.Context(), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msgInvalidFilter})
			return
		}
		h.log.ErrorContext(c.Request.Context(), "failed to fetch images", logger.ErrorField(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: msgListFailed})
		return
	}

	out := make([]dto.ChartResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, dto.ChartResponse{
			ID:          r.ID,
			ImageURL:    r.ImageURL,
			TradingDate: tradingdate.Format(r.TradingDate),
			UploadedAt:  tradingdate.Format(r.UploadedAt),
			CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	c.JSON(http.StatusOK, out)
}

type galleryCard struct {
	ImageURL    string
	TradingDate string
	UploadedAt  string
	DeleteURL   string
}

type galleryPage struct {
	StartDate string
	EndDate   string
	Error     string
	Cards     []galleryCard
}

// Gallery renders the filtered records as an HTML page.
// A storage failure renders an empty gallery; the error is only logged.
//
// GET /gallery?startDate=2024-03-01&endDate=2024-03-31
func (h *ChartHandler) Gallery(c *gin.Context) {
	page := galleryPage{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}

	recs, err := h.uc.List(c.Request.Context(), page.StartDate, page.EndDate)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			page.Error = msgInvalidFilter
			h.renderGallery(c, http.StatusBadRequest, page)
			return
		}
		h.log.ErrorContext(c.Request.Context(), "failed to fetch images", logger.ErrorField(err))
		recs = nil
	}

	page.Cards = make([]galleryCard, 0, len(recs))
	for _, r := range recs {
		page.Cards = append(page.Cards, galleryCard{
			ImageURL:    r.ImageURL,
			TradingDate: displayDate(r.TradingDate),
			UploadedAt:  displayDate(r.UploadedAt),
			DeleteURL:   deleteURL(r),
		})
	}
	h.renderGallery(c, http.StatusOK, page)
}

func (h *ChartHandler) renderGallery(c *gin.Context, status int, page galleryPage) {
	c.Render(status, render.HTML{Template: galleryTemplate, Name: "gallery.html", Data: page})
}

// displayDate shows the Kolkata calendar day, e.g. 3/15/2024.
func displayDate(t time.Time) string {
	return t.In(tradingdate.Location()).Format(displayDateLayout)
}

func deleteURL(r entity.ChartRecord) string {
	q := url.Values{}
	q.Set("id", r.ID)
	q.Set("url", r.ImageURL)
	return deleteEndpointPath + "?" + q.Encode()
}
