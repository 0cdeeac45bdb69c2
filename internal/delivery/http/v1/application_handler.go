package v1

import (
	"net/http"

	"placewell-backend/internal/delivery/http/response"
	"placewell-backend/internal/domain"
	"placewell-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	jobs := protected.Group("/jobs")
	{
		jobs.POST("/:id/apply", handler.Apply)
		jobs.GET("/:id/applications", handler.ListByJob)
	}

	applications := protected.Group("/applications")
	{
		applications.GET("", handler.ListMine)
		applications.POST("/:id/withdraw", handler.Withdraw)
		applications.PATCH("/:id/status", handler.UpdateStatus)
	}
}

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter"`
	ResumeURL   string `json:"resume_url"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=screening shortlisted interviewed selected rejected withdrawn"`
}

// Apply godoc
// @Summary      Apply To Job
// @Description  Submit an application to a published job. One application per student per job.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id           path      string        true  "Job ID"
// @Param        application  body      ApplyRequest  true  "Application details"
// @Success      201          {object}  response.Response
// @Failure      400          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Failure      409          {object}  response.Response
// @Router       /jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	app, err := h.applicationUC.ApplyToJob(c.Request.Context(), userID, c.Param("id"), req.CoverLetter, req.ResumeURL)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListMine godoc
// @Summary      List My Applications
// @Description  List applications submitted by the authenticated student
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	apps, err := h.applicationUC.GetMyApplications(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application list", apps)
}

// Withdraw godoc
// @Summary      Withdraw Application
// @Description  Withdraw an application. Terminal applications cannot be withdrawn.
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id}/withdraw [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if err := h.applicationUC.WithdrawApplication(c.Request.Context(), userID, c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application withdrawn", nil)
}

// ListByJob godoc
// @Summary      List Job Applications
// @Description  List applications for a job owned by the authenticated company
// @Tags         applications
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	apps, err := h.applicationUC.ListByJobID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application list", apps)
}

// UpdateStatus godoc
// @Summary      Update Application Status
// @Description  Move an application through its review pipeline (company only)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path      string                          true  "Application ID"
// @Param        status  body      UpdateApplicationStatusRequest  true  "New status"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /applications/{id}/status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	if err := h.applicationUC.UpdateApplicationStatus(c.Request.Context(), userID, c.Param("id"), req.Status); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", nil)
}
