package v1

import (
	"net/http"

	"placewell-backend/internal/delivery/http/response"
	"placewell-backend/internal/domain"
	"placewell-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CompanyProfileHandler struct {
	companyUC domain.CompanyProfileUsecase
}

func NewCompanyProfileHandler(protected *gin.RouterGroup, companyUC domain.CompanyProfileUsecase) {
	handler := &CompanyProfileHandler{companyUC: companyUC}

	companies := protected.Group("/companies")
	{
		companies.GET("/me", handler.GetMine)
		companies.PUT("/me", handler.UpdateMine)
	}

	// Admin only, enforced in the usecase
	admin := protected.Group("/admin")
	{
		admin.PATCH("/companies/:id/verification", handler.SetVerification)
	}
}

type UpdateCompanyProfileRequest struct {
	CompanyName  string  `json:"company_name" binding:"required"`
	Industry     *string `json:"industry"`
	Website      *string `json:"website"`
	Description  *string `json:"description"`
	CompanySize  *string `json:"company_size"`
	Headquarters *string `json:"headquarters"`
}

type SetVerificationRequest struct {
	Status string `json:"status" binding:"required,oneof=pending verified rejected"`
}

// GetMine godoc
// @Summary      Get Company Profile
// @Description  Fetch the authenticated company's extended profile
// @Tags         companies
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /companies/me [get]
// @Security     BearerAuth
func (h *CompanyProfileHandler) GetMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.companyUC.GetCompanyProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company profile details", profile)
}

// UpdateMine godoc
// @Summary      Update Company Profile
// @Description  Replace the authenticated company's extended profile. The verification status is not writable here.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        profile  body      UpdateCompanyProfileRequest  true  "Company profile"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /companies/me [put]
// @Security     BearerAuth
func (h *CompanyProfileHandler) UpdateMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req UpdateCompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile := &domain.CompanyProfile{
		ProfileID:    userID,
		CompanyName:  req.CompanyName,
		Industry:     req.Industry,
		Website:      req.Website,
		Description:  req.Description,
		CompanySize:  req.CompanySize,
		Headquarters: req.Headquarters,
	}

	if err := h.companyUC.UpdateCompanyProfile(c.Request.Context(), userID, profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Company profile updated", profile)
}

// SetVerification godoc
// @Summary      Set Company Verification Status
// @Description  Advance a company's verification lifecycle (admin only)
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id      path      string                  true  "Company ID"
// @Param        status  body      SetVerificationRequest  true  "New status"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /admin/companies/{id}/verification [patch]
// @Security     BearerAuth
func (h *CompanyProfileHandler) SetVerification(c *gin.Context) {
	var req SetVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.companyUC.SetVerificationStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Verification status updated", nil)
}
