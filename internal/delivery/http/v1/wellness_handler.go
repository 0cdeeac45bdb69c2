package v1

import (
	"net/http"
	"strconv"

	"placewell-backend/internal/delivery/http/response"
	"placewell-backend/internal/domain"
	"placewell-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type WellnessHandler struct {
	wellnessUC domain.WellnessUsecase
}

func NewWellnessHandler(protected *gin.RouterGroup, wellnessUC domain.WellnessUsecase) {
	handler := &WellnessHandler{wellnessUC: wellnessUC}

	wellness := protected.Group("/wellness")
	{
		wellness.POST("/mood-logs", handler.LogMood)
		wellness.GET("/mood-logs", handler.ListMoodLogs)
		wellness.GET("/resilience-score", handler.GetResilienceScore)
		wellness.GET("/recommendations", handler.GetRecommendations)
		wellness.GET("/alerts", handler.ListAlerts)
		wellness.POST("/alerts/:id/resolve", handler.ResolveAlert)
	}
}

type LogMoodRequest struct {
	MoodScore   int      `json:"mood_score" binding:"required,min=1,max=10"`
	StressLevel int      `json:"stress_level" binding:"required,min=1,max=10"`
	EnergyLevel int      `json:"energy_level" binding:"required,min=1,max=10"`
	FocusLevel  int      `json:"focus_level" binding:"omitempty,min=1,max=10"`
	Notes       *string  `json:"notes"`
	Factors     []string `json:"factors"`
}

type ResolveAlertRequest struct {
	Notes string `json:"notes"`
}

// LogMood godoc
// @Summary      Log Mood
// @Description  Record a mood check-in for the authenticated student. Logs are append-only.
// @Tags         wellness
// @Accept       json
// @Produce      json
// @Param        log  body      LogMoodRequest  true  "Mood check-in"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /wellness/mood-logs [post]
// @Security     BearerAuth
func (h *WellnessHandler) LogMood(c *gin.Context) {
	var req LogMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	log, err := h.wellnessUC.LogMood(c.Request.Context(), userID, &domain.MoodLog{
		MoodScore:   req.MoodScore,
		StressLevel: req.StressLevel,
		EnergyLevel: req.EnergyLevel,
		FocusLevel:  req.FocusLevel,
		Notes:       req.Notes,
		Factors:     req.Factors,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Mood logged", log)
}

// ListMoodLogs godoc
// @Summary      List Mood Logs
// @Description  List recent mood check-ins for the authenticated student, oldest first
// @Tags         wellness
// @Produce      json
// @Param        limit  query     int  false  "Number of logs (default 30, max 90)"
// @Success      200    {object}  response.Response
// @Router       /wellness/mood-logs [get]
// @Security     BearerAuth
func (h *WellnessHandler) ListMoodLogs(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	logs, err := h.wellnessUC.ListMoodLogs(c.Request.Context(), userID, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Mood log list", logs)
}

// GetResilienceScore godoc
// @Summary      Get Resilience Score
// @Description  Compute the 0-100 resilience score over the recent check-in window
// @Tags         wellness
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /wellness/resilience-score [get]
// @Security     BearerAuth
func (h *WellnessHandler) GetResilienceScore(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	score, err := h.wellnessUC.GetResilienceScore(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resilience score", gin.H{"score": score})
}

// GetRecommendations godoc
// @Summary      Get Wellness Recommendations
// @Description  Return guidance derived from the latest mood check-in
// @Tags         wellness
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /wellness/recommendations [get]
// @Security     BearerAuth
func (h *WellnessHandler) GetRecommendations(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	recs, err := h.wellnessUC.GetRecommendations(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Wellness recommendations", recs)
}

// ListAlerts godoc
// @Summary      List Wellness Alerts
// @Description  List wellness alerts for the authenticated student
// @Tags         wellness
// @Produce      json
// @Param        include_resolved  query     bool  false  "Include resolved alerts"
// @Success      200               {object}  response.Response
// @Router       /wellness/alerts [get]
// @Security     BearerAuth
func (h *WellnessHandler) ListAlerts(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	includeResolved := c.Query("include_resolved") == "true"

	alerts, err := h.wellnessUC.ListAlerts(c.Request.Context(), userID, includeResolved)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Alert list", alerts)
}

// ResolveAlert godoc
// @Summary      Resolve Wellness Alert
// @Description  Mark an alert resolved with optional notes. Resolving twice is a conflict.
// @Tags         wellness
// @Accept       json
// @Produce      json
// @Param        id     path      string               true   "Alert ID"
// @Param        notes  body      ResolveAlertRequest  false  "Resolution notes"
// @Success      200    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /wellness/alerts/{id}/resolve [post]
// @Security     BearerAuth
func (h *WellnessHandler) ResolveAlert(c *gin.Context) {
	var req ResolveAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	if err := h.wellnessUC.ResolveAlert(c.Request.Context(), userID, c.Param("id"), req.Notes); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Alert resolved", nil)
}
