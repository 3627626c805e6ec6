package listing_fx

import (
	"go.uber.org/fx"

	"constellation/internal/api/controllers"
	"constellation/internal/services"
)

var Module = fx.Provide(
	services.NewListingService,
	controllers.NewListingController,
)
