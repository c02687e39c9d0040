package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeshua-high/school-site-api/internal/service"
	appErrors "github.com/yeshua-high/school-site-api/pkg/errors"
	"github.com/yeshua-high/school-site-api/pkg/response"
)

// AwardHandler wires achievement workflows to HTTP routes.
type AwardHandler struct {
	awards *service.AwardService
}

// NewAwardHandler constructs a new AwardHandler.
func NewAwardHandler(awards *service.AwardService) *AwardHandler {
	return &AwardHandler{awards: awards}
}

// List godoc
// @Summary List awards
// @Tags Awards
// @Produce json
// @Param all query bool false "Include deactivated awards"
// @Param limit query int false "Cap the result"
// @Success 200 {object} response.Envelope
// @Router /awards [get]
func (h *AwardHandler) List(c *gin.Context) {
	awards, err := h.awards.List(c.Request.Context(), listFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, awards)
}

// Create godoc
// @Summary Create an award
// @Tags Awards
// @Accept json
// @Produce json
// @Param payload body service.CreateAwardRequest true "Award payload"
// @Success 201 {object} response.Envelope
// @Router /awards [post]
func (h *AwardHandler) Create(c *gin.Context) {
	var req service.CreateAwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid award payload"))
		return
	}
	award, err := h.awards.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, award)
}

// Update godoc
// @Summary Update an award
// @Tags Awards
// @Accept json
// @Produce json
// @Param payload body service.UpdateAwardRequest true "Partial update with id"
// @Success 200 {object} response.Envelope
// @Router /awards [put]
func (h *AwardHandler) Update(c *gin.Context) {
	var req service.UpdateAwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid award payload"))
		return
	}
	award, err := h.awards.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, award)
}

// Delete godoc
// @Summary Delete an award
// @Tags Awards
// @Produce json
// @Param id query int true "Award ID"
// @Success 204
// @Router /awards [delete]
func (h *AwardHandler) Delete(c *gin.Context) {
	id, err := idFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.awards.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
