package stripe_fx

import (
	"os"

	"go.uber.org/fx"

	"constellation/internal/services"
)

var Module = fx.Provide(provideGateway)

func provideGateway() services.PaymentGateway {
	return services.NewStripeGateway(os.Getenv("STRIPE_SECRET_KEY"))
}
