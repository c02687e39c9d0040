package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeshua-high/school-site-api/internal/service"
	appErrors "github.com/yeshua-high/school-site-api/pkg/errors"
	"github.com/yeshua-high/school-site-api/pkg/response"
)

// NewsHandler wires ticker message workflows to HTTP routes.
type NewsHandler struct {
	news *service.NewsService
}

// NewNewsHandler constructs a new NewsHandler.
func NewNewsHandler(news *service.NewsService) *NewsHandler {
	return &NewsHandler{news: news}
}

// List godoc
// @Summary List ticker messages
// @Tags News
// @Produce json
// @Param all query bool false "Include deactivated messages"
// @Param limit query int false "Cap the result"
// @Success 200 {object} response.Envelope
// @Router /news [get]
func (h *NewsHandler) List(c *gin.Context) {
	messages, err := h.news.List(c.Request.Context(), listFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, messages)
}

// Create godoc
// @Summary Create a ticker message
// @Tags News
// @Accept json
// @Produce json
// @Param payload body service.CreateNewsRequest true "Message payload"
// @Success 201 {object} response.Envelope
// @Router /news [post]
func (h *NewsHandler) Create(c *gin.Context) {
	var req service.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid message payload"))
		return
	}
	message, err := h.news.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, message)
}

// Update godoc
// @Summary Update a ticker message
// @Tags News
// @Accept json
// @Produce json
// @Param payload body service.UpdateNewsRequest true "Partial update with id"
// @Success 200 {object} response.Envelope
// @Router /news [put]
func (h *NewsHandler) Update(c *gin.Context) {
	var req service.UpdateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid message payload"))
		return
	}
	message, err := h.news.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, message)
}

// Delete godoc
// @Summary Delete a ticker message
// @Tags News
// @Produce json
// @Param id query int true "Message ID"
// @Success 204
// @Router /news [delete]
func (h *NewsHandler) Delete(c *gin.Context) {
	id, err := idFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.news.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
