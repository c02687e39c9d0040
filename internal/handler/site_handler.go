package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeshua-high/school-site-api/internal/service"
	"github.com/yeshua-high/school-site-api/pkg/response"
)

// SiteHandler serves aggregate payloads for the public pages.
type SiteHandler struct {
	site *service.SiteService
}

// NewSiteHandler constructs a new SiteHandler.
func NewSiteHandler(site *service.SiteService) *SiteHandler {
	return &SiteHandler{site: site}
}

// Home godoc
// @Summary Get the landing page payload
// @Tags Site
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /home [get]
func (h *SiteHandler) Home(c *gin.Context) {
	payload, err := h.site.Home(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payload)
}
