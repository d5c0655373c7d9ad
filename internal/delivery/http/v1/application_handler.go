package v1

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"recruit-portal-api/internal/delivery/http/middleware"
	"recruit-portal-api/internal/delivery/http/response"
	"recruit-portal-api/internal/domain"
	"recruit-portal-api/pkg/apperror"
	"recruit-portal-api/pkg/validation"
)

const dateLayout = "2006-01-02"

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes on the protected group.
// Recruiter-only routes get an extra role guard that runs before any
// handler or data access.
func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := protected.Group("/application")
	{
		applications.POST("/apply", handler.Apply)
		applications.GET("/competences", handler.ListCompetences)
		applications.GET("/my-application", handler.MyApplication)
	}

	recruiters := applications.Group("", middleware.RequireRecruiter())
	{
		recruiters.GET("/all", handler.ListAll)
		recruiters.GET("/:id", handler.GetByID)
		recruiters.PATCH("/:id/status", handler.UpdateStatus)
	}
}

// CompetencePayload is one competence claim in a submission
type CompetencePayload struct {
	CompetenceID      int64   `json:"competence_id" binding:"required"`
	YearsOfExperience float64 `json:"years_of_experience" binding:"gte=0,lte=50"`
}

// AvailabilityPayload is one availability window in a submission
type AvailabilityPayload struct {
	FromDate string `json:"from_date" binding:"required,datetime=2006-01-02"`
	ToDate   string `json:"to_date" binding:"required,datetime=2006-01-02"`
}

// ApplyRequest is the submission payload
type ApplyRequest struct {
	Competences    []CompetencePayload   `json:"competences" binding:"required,min=1,dive"`
	Availabilities []AvailabilityPayload `json:"availabilities" binding:"required,min=1,dive"`
}

// Apply godoc
// @Summary      Submit an application
// @Description  Atomically creates the application with its competence profiles and availability windows
// @Tags         application
// @Accept       json
// @Produce      json
// @Param        body  body      ApplyRequest  true  "Submission data"
// @Success      201   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Router       /application/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	personID := c.GetInt64(string(domain.KeyPersonID))

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; ")))
		return
	}

	competences := make([]domain.CompetenceEntry, 0, len(req.Competences))
	for _, comp := range req.Competences {
		competences = append(competences, domain.CompetenceEntry{
			CompetenceID:      comp.CompetenceID,
			YearsOfExperience: comp.YearsOfExperience,
		})
	}

	availabilities := make([]domain.AvailabilityEntry, 0, len(req.Availabilities))
	for _, avail := range req.Availabilities {
		from, err := time.Parse(dateLayout, avail.FromDate)
		if err != nil {
			c.Error(apperror.BadRequest("From date must be a date in the form " + dateLayout))
			return
		}
		to, err := time.Parse(dateLayout, avail.ToDate)
		if err != nil {
			c.Error(apperror.BadRequest("To date must be a date in the form " + dateLayout))
			return
		}
		if !to.After(from) {
			c.Error(apperror.BadRequest("To date must be after from date"))
			return
		}
		availabilities = append(availabilities, domain.AvailabilityEntry{FromDate: from, ToDate: to})
	}

	app, err := h.applicationUC.Submit(c.Request.Context(), personID, competences, availabilities)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListCompetences godoc
// @Summary      List the competence catalog
// @Tags         application
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Competence}
// @Failure      401  {object}  response.Response
// @Router       /application/competences [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListCompetences(c *gin.Context) {
	competences, err := h.applicationUC.ListCompetences(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Competences retrieved", competences)
}

// MyApplication godoc
// @Summary      Own application
// @Tags         application
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Application}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /application/my-application [get]
// @Security     BearerAuth
func (h *ApplicationHandler) MyApplication(c *gin.Context) {
	personID := c.GetInt64(string(domain.KeyPersonID))

	app, err := h.applicationUC.GetMyApplication(c.Request.Context(), personID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application retrieved", app)
}

// ListAll godoc
// @Summary      List all applications
// @Description  Recruiter only
// @Tags         application
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /application/all [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListAll(c *gin.Context) {
	applications, err := h.applicationUC.ListAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", applications)
}

// GetByID godoc
// @Summary      Fetch one application
// @Description  Recruiter only
// @Tags         application
// @Produce      json
// @Param        id  path      int  true  "Application ID"
// @Success      200 {object}  response.Response{data=domain.Application}
// @Failure      401 {object}  response.Response
// @Failure      403 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /application/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	app, err := h.applicationUC.GetByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application retrieved", app)
}

// UpdateStatusRequest is the status transition payload
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

// UpdateStatus godoc
// @Summary      Transition application status
// @Description  Recruiter only; accepts or rejects an application
// @Tags         application
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Application ID"
// @Param        body  body      UpdateStatusRequest  true  "New status"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /application/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(strings.Join(validation.FormatValidationErrors(err), "; ")))
		return
	}

	app, err := h.applicationUC.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", app)
}
