package controllers

import (
	"github.com/gin-gonic/gin"

	"constellation/internal/services"
	"constellation/pkg/utils"
)

type MemberController struct {
	memberService services.MemberService
}

func NewMemberController(memberService services.MemberService) *MemberController {
	return &MemberController{
		memberService: memberService,
	}
}

// PaymentStatus godoc
// @Summary Payment status of the authenticated member
// @Tags Members
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /members/payment-status [get]
func (m *MemberController) PaymentStatus(c *gin.Context) {
	userID := c.GetString("user_id")

	resp, err := m.memberService.GetPaymentStatus(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Payment status fetched")
}

// WaitForPayment godoc
// @Summary Long-poll until the enrollment reaches a terminal payment state
// @Description Blocks until paid/failed/canceled or the client disconnects
// @Tags Members
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /members/payment-status/wait [get]
func (m *MemberController) WaitForPayment(c *gin.Context) {
	userID := c.GetString("user_id")

	status, err := m.memberService.WaitForPayment(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"payment_status": string(status)}, "Payment settled")
}
