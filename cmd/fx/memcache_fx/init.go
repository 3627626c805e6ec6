package memcache_fx

import (
	"go.uber.org/fx"

	mem "constellation/pkg/memcache"
)

var Module = fx.Provide(
	provideResetTokenStore, provideSignupFlowStore)

func provideResetTokenStore() mem.ResetTokenStore {
	return mem.NewResetTokens()
}

func provideSignupFlowStore() mem.SignupFlowStore {
	return mem.NewSignupFlows()
}
