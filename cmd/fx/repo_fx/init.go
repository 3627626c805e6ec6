package repo_fx

import (
	"go.uber.org/fx"

	"constellation/internal/repositories"
)

// Repositories are shared across feature modules, so they are provided once
// here instead of per feature.
var Module = fx.Provide(
	repositories.NewAccountRepository,
	repositories.NewUserProfileRepository,
	repositories.NewFoundingMemberRepository,
	repositories.NewSubscriptionRepository,
	repositories.NewListingRepository,
	repositories.NewSocialPostRepository,
)
