package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/restaurant/internal/config"
)

// Module provides the password hasher and the bearer token strategy.
var Module = fx.Provide(newPasswordHasher, newTokenStrategy)

type authParams struct {
	fx.In

	Config *config.Config
}

func newPasswordHasher(p authParams) PasswordHasher {
	return NewBcryptHasher(p.Config.PasswordCost)
}

func newTokenStrategy(p authParams) Strategy {
	return NewHMACStrategy(p.Config.JWTSecret, Options{TTL: p.Config.TokenTTL})
}
