package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"constellation/internal/models/request_models"
	"constellation/internal/services"
	"constellation/pkg/utils"
)

type SignupController struct {
	signupService services.SignupService
}

func NewSignupController(signupService services.SignupService) *SignupController {
	return &SignupController{
		signupService: signupService,
	}
}

// Start godoc
// @Summary Start the signup wizard
// @Description Validates account data and opens a server-side signup flow
// @Tags Signup
// @Accept json
// @Produce json
// @Param request body request_models.AccountStepRequest true "Account step payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /signup/start [post]
func (s *SignupController) Start(c *gin.Context) {
	var req request_models.AccountStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := s.signupService.StartSignup(c.Request.Context(), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Signup started")
}

// Professional godoc
// @Summary Submit the professional step
// @Description Runs the enrollment and returns the payment client secret
// @Tags Signup
// @Accept json
// @Produce json
// @Param request body request_models.ProfessionalStepRequest true "Professional step payload"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /signup/professional [post]
func (s *SignupController) Professional(c *gin.Context) {
	var req request_models.ProfessionalStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := s.signupService.SubmitProfessional(c.Request.Context(), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Enrollment created")
}

// Complete godoc
// @Summary Complete the signup
// @Description Re-authenticates after payment and issues a session token
// @Tags Signup
// @Accept json
// @Produce json
// @Param request body request_models.CompleteSignupRequest true "Completion payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /signup/complete [post]
func (s *SignupController) Complete(c *gin.Context) {
	var req request_models.CompleteSignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := s.signupService.CompleteSignup(c.Request.Context(), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Signup completed")
}
