package controllers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"constellation/internal/models/request_models"
	"constellation/internal/services"
	"constellation/pkg/utils"
)

const maxWebhookBody = 64 * 1024

type PaymentController struct {
	paymentService services.PaymentService
	webhookSecret  string
}

func NewPaymentController(paymentService services.PaymentService, webhookSecret string) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		webhookSecret:  webhookSecret,
	}
}

// CreateTestPayment godoc
// @Summary Create a R$ 3,00 test payment intent
// @Description Validates the enrollment data and creates a fixed-amount test intent
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreatePaymentIntentRequest true "Checkout payload"
// @Success 200 {object} response_models.CreatePaymentIntentResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/stripe/create-test-payment [post]
func (p *PaymentController) CreateTestPayment(c *gin.Context) {
	var req request_models.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := p.paymentService.CreateTestPayment(c.Request.Context(), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	// Raw body: the checkout pages read clientSecret/paymentIntentId
	// directly, without the envelope.
	c.JSON(http.StatusOK, resp)
}

// CreatePaymentIntent godoc
// @Summary Create the founding enrollment payment intent
// @Description Creates the intent and the pending enrollment row it is keyed to
// @Tags Payments
// @Accept json
// @Produce json
// @Param request body request_models.CreatePaymentIntentRequest true "Checkout payload"
// @Success 200 {object} response_models.CreatePaymentIntentResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/stripe/create-payment-intent [post]
func (p *PaymentController) CreatePaymentIntent(c *gin.Context) {
	var req request_models.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp, err := p.paymentService.CreatePaymentIntent(c.Request.Context(), &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Webhook godoc
// @Summary Stripe webhook endpoint
// @Description Verifies the event signature and reconciles payment state
// @Tags Payments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 400 {object} utils.APIResponse
// @Router /api/stripe/webhook [post]
func (p *PaymentController) Webhook(c *gin.Context) {
	sigHeader := c.GetHeader("Stripe-Signature")
	if sigHeader == "" {
		utils.Logger.Error("Missing Stripe-Signature header")
		utils.RespondError(c, http.StatusBadRequest, "Missing signature")
		return
	}

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		utils.Logger.WithError(err).Error("Failed to read webhook body")
		utils.RespondError(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	event, err := webhook.ConstructEvent(payload, sigHeader, p.webhookSecret)
	if err != nil {
		utils.Logger.WithError(err).Error("Stripe webhook signature verification failed")
		utils.RespondError(c, http.StatusBadRequest, "Invalid signature")
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			utils.Logger.WithError(err).Error("Could not parse payment intent in payment_intent.succeeded")
			utils.RespondError(c, http.StatusBadRequest, "Invalid payload")
			return
		}
		if err := p.paymentService.HandlePaymentSucceeded(c.Request.Context(), pi.ID); err != nil {
			utils.HandleServiceError(c, err)
			return
		}

	case "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			utils.Logger.WithError(err).Error("Could not parse payment intent in payment_intent.payment_failed")
			utils.RespondError(c, http.StatusBadRequest, "Invalid payload")
			return
		}
		reason := ""
		if pi.LastPaymentError != nil {
			reason = pi.LastPaymentError.Msg
		}
		if err := p.paymentService.HandlePaymentFailed(c.Request.Context(), pi.ID, reason); err != nil {
			utils.HandleServiceError(c, err)
			return
		}

	default:
		utils.Logger.Infof("Unhandled Stripe event type: %s", event.Type)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
