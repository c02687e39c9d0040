package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeshua-high/school-site-api/internal/service"
	appErrors "github.com/yeshua-high/school-site-api/pkg/errors"
	"github.com/yeshua-high/school-site-api/pkg/response"
)

// GalleryHandler wires gallery workflows to HTTP routes.
type GalleryHandler struct {
	gallery *service.GalleryService
}

// NewGalleryHandler constructs a new GalleryHandler.
func NewGalleryHandler(gallery *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{gallery: gallery}
}

// List godoc
// @Summary List gallery images
// @Tags Gallery
// @Produce json
// @Param all query bool false "Include deactivated images"
// @Param limit query int false "Cap the result"
// @Success 200 {object} response.Envelope
// @Router /gallery [get]
func (h *GalleryHandler) List(c *gin.Context) {
	images, err := h.gallery.List(c.Request.Context(), listFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, images)
}

// Create godoc
// @Summary Add a gallery image
// @Tags Gallery
// @Accept json
// @Produce json
// @Param payload body service.CreateGalleryImageRequest true "Image payload"
// @Success 201 {object} response.Envelope
// @Router /gallery [post]
func (h *GalleryHandler) Create(c *gin.Context) {
	var req service.CreateGalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid image payload"))
		return
	}
	image, err := h.gallery.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, image)
}

// Update godoc
// @Summary Update a gallery image
// @Tags Gallery
// @Accept json
// @Produce json
// @Param payload body service.UpdateGalleryImageRequest true "Partial update with id"
// @Success 200 {object} response.Envelope
// @Router /gallery [put]
func (h *GalleryHandler) Update(c *gin.Context) {
	var req service.UpdateGalleryImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid image payload"))
		return
	}
	image, err := h.gallery.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, image)
}

// Delete godoc
// @Summary Delete a gallery image
// @Tags Gallery
// @Produce json
// @Param id query int true "Image ID"
// @Success 204
// @Router /gallery [delete]
func (h *GalleryHandler) Delete(c *gin.Context) {
	id, err := idFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.gallery.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
