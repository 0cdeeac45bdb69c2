package v1

import (
	"net/http"

	"placewell-backend/internal/delivery/http/response"
	"placewell-backend/internal/domain"
	"placewell-backend/internal/usecase"
	"placewell-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	advisor   usecase.MatchAdvisor
	studentUC domain.StudentProfileUsecase
	jobUC     domain.JobUsecase
}

func NewMatchHandler(protected *gin.RouterGroup, advisor usecase.MatchAdvisor, studentUC domain.StudentProfileUsecase, jobUC domain.JobUsecase) {
	handler := &MatchHandler{
		advisor:   advisor,
		studentUC: studentUC,
		jobUC:     jobUC,
	}

	match := protected.Group("/match")
	{
		match.POST("/analyze", handler.Analyze)
	}
}

type AnalyzeMatchRequest struct {
	JobID string `json:"job_id" binding:"required"`
}

// Analyze godoc
// @Summary      Analyze Job Match
// @Description  Score how well the authenticated student fits a job. Falls back to a neutral score when the advisor is unavailable.
// @Tags         match
// @Accept       json
// @Produce      json
// @Param        request  body      AnalyzeMatchRequest  true  "Job to analyze"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /match/analyze [post]
// @Security     BearerAuth
func (h *MatchHandler) Analyze(c *gin.Context) {
	var req AnalyzeMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	student, err := h.studentUC.GetStudentProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	job, err := h.jobUC.GetJobDetails(c.Request.Context(), req.JobID, false)
	if err != nil {
		c.Error(err)
		return
	}

	result := h.advisor.AnalyzeMatch(c.Request.Context(), student, job)

	response.Success(c, http.StatusOK, "Match analysis", result)
}
