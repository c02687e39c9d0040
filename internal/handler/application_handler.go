package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeshua-high/school-site-api/internal/models"
	"github.com/yeshua-high/school-site-api/internal/service"
	appErrors "github.com/yeshua-high/school-site-api/pkg/errors"
	"github.com/yeshua-high/school-site-api/pkg/response"
)

// ApplicationHandler wires the admission workflow to HTTP routes.
type ApplicationHandler struct {
	applications *service.ApplicationService
}

// NewApplicationHandler constructs a new ApplicationHandler.
func NewApplicationHandler(applications *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

// Submit godoc
// @Summary Submit an admission application
// @Tags Admissions
// @Accept json
// @Produce json
// @Param payload body service.SubmitApplicationRequest true "Application form"
// @Success 201 {object} response.Envelope
// @Router /admissions [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req service.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid application payload"))
		return
	}
	app, err := h.applications.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, app)
}

// List godoc
// @Summary List admission applications
// @Tags Admissions
// @Produce json
// @Param status query string false "PENDING or REVIEWED"
// @Param grade query string false "Grade applying for"
// @Success 200 {object} response.Envelope
// @Router /admissions [get]
func (h *ApplicationHandler) List(c *gin.Context) {
	filter := models.ApplicationFilter{
		Status: models.ApplicationStatus(c.Query("status")),
		Grade:  c.Query("grade"),
	}
	apps, err := h.applications.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, apps)
}

// Get godoc
// @Summary Get one admission application
// @Tags Admissions
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} response.Envelope
// @Router /admissions/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id must be a positive integer"))
		return
	}
	app, err := h.applications.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, app)
}

// MarkReviewed godoc
// @Summary Mark an application as reviewed
// @Tags Admissions
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} response.Envelope
// @Router /admissions/{id}/review [patch]
func (h *ApplicationHandler) MarkReviewed(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id must be a positive integer"))
		return
	}
	if err := h.applications.MarkReviewed(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"id": id, "status": models.ApplicationStatusReviewed})
}

// Export godoc
// @Summary Export applications as csv or pdf
// @Tags Admissions
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Param status query string false "PENDING or REVIEWED"
// @Param grade query string false "Grade applying for"
// @Success 200 {file} binary
// @Router /admissions/export [get]
func (h *ApplicationHandler) Export(c *gin.Context) {
	filter := models.ApplicationFilter{
		Status: models.ApplicationStatus(c.Query("status")),
		Grade:  c.Query("grade"),
	}
	format := c.DefaultQuery("format", "csv")
	payload, contentType, err := h.applications.Export(c.Request.Context(), filter, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	ext := "csv"
	if contentType == "application/pdf" {
		ext = "pdf"
	}
	filename := fmt.Sprintf("applications-%s.%s", time.Now().Format("20060102"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
