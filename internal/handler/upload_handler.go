package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeshua-high/school-site-api/internal/service"
	appErrors "github.com/yeshua-high/school-site-api/pkg/errors"
	"github.com/yeshua-high/school-site-api/pkg/response"
)

// UploadHandler wires media storage to HTTP routes.
type UploadHandler struct {
	media *service.MediaService
}

// NewUploadHandler constructs a new UploadHandler.
func NewUploadHandler(media *service.MediaService) *UploadHandler {
	return &UploadHandler{media: media}
}

// Upload godoc
// @Summary Upload an image
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} response.Envelope
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file form field is required"))
		return
	}
	result, err := h.media.Upload(c.Request.Context(), header)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Delete godoc
// @Summary Delete a stored image
// @Tags Media
// @Produce json
// @Param key query string true "Object key"
// @Success 204
// @Router /upload [delete]
func (h *UploadHandler) Delete(c *gin.Context) {
	if err := h.media.Remove(c.Request.Context(), c.Query("key")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
