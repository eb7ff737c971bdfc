package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// HeroHandler serves the admin hero carousel endpoints.
type HeroHandler struct {
	repo *repository.CatalogRepository
	log  *logrus.Logger
}

func NewHeroHandler(repo *repository.CatalogRepository, log *logrus.Logger) *HeroHandler {
	return &HeroHandler{repo: repo, log: log}
}

// ListHeroSlides GET /api/v1/hero-slides
func (h *HeroHandler) ListHeroSlides(c *gin.Context) {
	slides, err := h.repo.ListHeroSlides(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: slides})
}

// GetHeroSlide GET /api/v1/hero-slides/:id
func (h *HeroHandler) GetHeroSlide(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	slide, err := h.repo.GetHeroSlideByID(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Hero slide not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: slide})
}

// CreateHeroSlide POST /api/v1/hero-slides
func (h *HeroHandler) CreateHeroSlide(c *gin.Context) {
	var req models.CreateHeroSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error(), "")
		return
	}

	slide := &models.HeroSlide{
		Href:       req.Href,
		Alt:        req.Alt,
		Position:   req.Position,
		Active:     true,
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
		MobileURL:  req.Image.MobileURL,
		DesktopURL: req.Image.DesktopURL,
	}
	if req.Active != nil {
		slide.Active = *req.Active
	}
	applyHeroCaption(slide, req.Caption)

	if err := h.repo.CreateHeroSlide(c.Request.Context(), slide); err != nil {
		internalError(c, err)
		return
	}

	h.log.WithField("id", slide.ID).Info("Hero slide created")
	c.JSON(http.StatusCreated, models.SuccessResponse{Success: true, Data: slide})
}

// UpdateHeroSlide PUT /api/v1/hero-slides/:id
func (h *HeroHandler) UpdateHeroSlide(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req models.UpdateHeroSlideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err.Error(), "")
		return
	}

	ctx := c.Request.Context()
	slide, err := h.repo.GetHeroSlideByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Hero slide not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	if req.Href != nil {
		slide.Href = *req.Href
	}
	if req.Alt != nil {
		slide.Alt = *req.Alt
	}
	if req.Position != nil {
		slide.Position = *req.Position
	}
	if req.Active != nil {
		slide.Active = *req.Active
	}
	if req.StartAt != nil {
		slide.StartAt = req.StartAt
	}
	if req.EndAt != nil {
		slide.EndAt = req.EndAt
	}
	if req.Image != nil {
		slide.MobileURL = req.Image.MobileURL
		slide.DesktopURL = req.Image.DesktopURL
	}
	applyHeroCaption(slide, req.Caption)

	if err := h.repo.UpdateHeroSlide(ctx, slide); err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Data: slide})
}

// DeleteHeroSlide DELETE /api/v1/hero-slides/:id
func (h *HeroHandler) DeleteHeroSlide(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	err := h.repo.DeleteHeroSlide(c.Request.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		notFound(c, "Hero slide not found")
		return
	}
	if err != nil {
		internalError(c, err)
		return
	}

	h.log.WithField("id", id).Info("Hero slide deleted")
	msg := "Hero slide deleted"
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true, Message: &msg})
}

func applyHeroCaption(slide *models.HeroSlide, caption *models.HeroCaptionInput) {
	if caption == nil {
		return
	}
	slide.CaptionTitle = caption.Title
	slide.CaptionSubtitle = caption.Subtitle
	slide.CaptionCtaHref = caption.CtaHref
	slide.CaptionCtaLabel = caption.CtaLabel
}
