package v1

import (
	"net/http"

	"placewell-backend/internal/delivery/http/response"
	"placewell-backend/internal/domain"
	"placewell-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type StudentProfileHandler struct {
	studentUC domain.StudentProfileUsecase
}

func NewStudentProfileHandler(protected *gin.RouterGroup, studentUC domain.StudentProfileUsecase) {
	handler := &StudentProfileHandler{studentUC: studentUC}

	students := protected.Group("/students")
	{
		students.GET("/me", handler.GetMine)
		students.PUT("/me", handler.UpdateMine)
	}
}

type UpdateStudentProfileRequest struct {
	CollegeName       string         `json:"college_name" binding:"required"`
	Degree            string         `json:"degree"`
	GraduationYear    int            `json:"graduation_year"`
	GPA               float64        `json:"gpa"`
	Skills            []string       `json:"skills"`
	Certifications    []string       `json:"certifications"`
	Languages         []string       `json:"languages"`
	ExpectedSalaryMin float64        `json:"expected_salary_min"`
	ExpectedSalaryMax float64        `json:"expected_salary_max"`
	ExperienceLevel   string         `json:"experience_level"`
	PlacementStatus   string         `json:"placement_status"`
	Preferences       map[string]any `json:"preferences"`
}

// GetMine godoc
// @Summary      Get Student Profile
// @Description  Fetch the authenticated student's extended profile
// @Tags         students
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /students/me [get]
// @Security     BearerAuth
func (h *StudentProfileHandler) GetMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.studentUC.GetStudentProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Student profile details", profile)
}

// UpdateMine godoc
// @Summary      Update Student Profile
// @Description  Replace the authenticated student's extended profile
// @Tags         students
// @Accept       json
// @Produce      json
// @Param        profile  body      UpdateStudentProfileRequest  true  "Student profile"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /students/me [put]
// @Security     BearerAuth
func (h *StudentProfileHandler) UpdateMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req UpdateStudentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile := &domain.StudentProfile{
		ProfileID:         userID,
		CollegeName:       req.CollegeName,
		Degree:            req.Degree,
		GraduationYear:    req.GraduationYear,
		GPA:               req.GPA,
		Skills:            req.Skills,
		Certifications:    req.Certifications,
		Languages:         req.Languages,
		ExpectedSalaryMin: req.ExpectedSalaryMin,
		ExpectedSalaryMax: req.ExpectedSalaryMax,
		ExperienceLevel:   req.ExperienceLevel,
		PlacementStatus:   req.PlacementStatus,
		Preferences:       req.Preferences,
	}

	if err := h.studentUC.UpdateStudentProfile(c.Request.Context(), userID, profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Student profile updated", profile)
}
