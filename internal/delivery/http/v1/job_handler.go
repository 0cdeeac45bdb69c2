package v1

import (
	"net/http"
	"strconv"
	"time"

	"placewell-backend/internal/delivery/http/response"
	"placewell-backend/internal/domain"
	"placewell-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes - browse published jobs without authentication
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.ListPublished)
		publicJobs.GET("/:id", handler.GetDetails)
	}

	// PROTECTED routes - company job management
	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", handler.Create)
		protectedJobs.PUT("/:id", handler.Update)
		protectedJobs.PATCH("/:id/status", handler.UpdateStatus)
	}

	companies := protected.Group("/companies")
	{
		companies.GET("/me/jobs", handler.ListMine)
	}
}

type JobRequest struct {
	Title          string     `json:"title" binding:"required"`
	Description    string     `json:"description" binding:"required"`
	Location       *string    `json:"location"`
	JobType        *string    `json:"job_type"`
	SalaryMin      float64    `json:"salary_min" binding:"min=0"`
	SalaryMax      float64    `json:"salary_max" binding:"min=0,gtefield=SalaryMin"`
	RequiredSkills []string   `json:"required_skills"`
	TotalPositions int        `json:"total_positions"`
	Deadline       *time.Time `json:"deadline"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft published closed paused"`
}

func (r *JobRequest) toPosting() *domain.JobPosting {
	return &domain.JobPosting{
		Title:          r.Title,
		Description:    r.Description,
		Location:       r.Location,
		JobType:        r.JobType,
		SalaryMin:      r.SalaryMin,
		SalaryMax:      r.SalaryMax,
		RequiredSkills: r.RequiredSkills,
		TotalPositions: r.TotalPositions,
		Deadline:       r.Deadline,
	}
}

// pageParams extracts pagination query parameters with defaults.
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return page, pageSize
}

// ListPublished godoc
// @Summary      List Published Jobs
// @Description  List published job postings, newest first
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /jobs [get]
func (h *JobHandler) ListPublished(c *gin.Context) {
	page, pageSize := pageParams(c)

	jobs, total, err := h.jobUC.ListPublishedJobs(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", gin.H{
		"jobs":  jobs,
		"total": total,
		"page":  page,
	})
}

// GetDetails godoc
// @Summary      Get Job Details
// @Description  Fetch a job posting. Each fetch counts as a view.
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	job, err := h.jobUC.GetJobDetails(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job details", job)
}

// Create godoc
// @Summary      Create Job
// @Description  Create a job posting in draft status (company only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        job  body      JobRequest  true  "Job posting"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleCompany && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Only companies can create jobs"))
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	job := req.toPosting()

	if err := h.jobUC.CreateJob(c.Request.Context(), userID, job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// Update godoc
// @Summary      Update Job
// @Description  Update a job posting owned by the authenticated company
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id   path      string      true  "Job ID"
// @Param        job  body      JobRequest  true  "Job posting"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	job := req.toPosting()
	job.ID = c.Param("id")

	if err := h.jobUC.UpdateJob(c.Request.Context(), userID, job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", job)
}

// UpdateStatus godoc
// @Summary      Update Job Status
// @Description  Move a job posting through its lifecycle (draft, published, paused, closed)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id      path      string                  true  "Job ID"
// @Param        status  body      UpdateJobStatusRequest  true  "New status"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /jobs/{id}/status [patch]
// @Security     BearerAuth
func (h *JobHandler) UpdateStatus(c *gin.Context) {
	var req UpdateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	if err := h.jobUC.UpdateJobStatus(c.Request.Context(), userID, c.Param("id"), req.Status); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job status updated", nil)
}

// ListMine godoc
// @Summary      List My Jobs
// @Description  List all job postings owned by the authenticated company
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /companies/me/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	page, pageSize := pageParams(c)

	jobs, total, err := h.jobUC.ListCompanyJobs(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job list", gin.H{
		"jobs":  jobs,
		"total": total,
		"page":  page,
	})
}
