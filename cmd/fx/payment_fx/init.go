package payment_fx

import (
	"os"

	"go.uber.org/fx"

	"constellation/internal/api/controllers"
	"constellation/internal/services"
)

var Module = fx.Provide(
	services.NewPaymentService, providePaymentController)

func providePaymentController(paymentService services.PaymentService) *controllers.PaymentController {
	return controllers.NewPaymentController(paymentService, os.Getenv("STRIPE_WEBHOOK_SECRET"))
}
