package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/polkiloo/restaurant/internal/config"
	"github.com/polkiloo/restaurant/internal/domain/model"
)

func TestNewPasswordHasherCost(t *testing.T) {
	cases := map[string]struct {
		configured int
		want       int
	}{
		"unset":     {0, bcrypt.DefaultCost},
		"minimum":   {bcrypt.MinCost, bcrypt.MinCost},
		"too large": {bcrypt.MaxCost + 1, bcrypt.DefaultCost},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			hasher := newPasswordHasher(authParams{Config: &config.Config{PasswordCost: tc.configured}})
			bcryptHasher, ok := hasher.(*BcryptHasher)
			require.True(t, ok, "got %T", hasher)
			assert.Equal(t, tc.want, bcryptHasher.cost)
		})
	}
}

func TestNewTokenStrategyRoundTrip(t *testing.T) {
	strategy := newTokenStrategy(authParams{Config: &config.Config{JWTSecret: "kitchen-secret", TokenTTL: 3 * time.Hour}})
	hmacStrategy, ok := strategy.(*HMACStrategy)
	require.True(t, ok, "got %T", strategy)
	assert.Equal(t, 3*time.Hour, hmacStrategy.ttl)
	assert.Equal(t, "kitchen-secret", string(hmacStrategy.secret))

	token, err := strategy.IssueToken(7, model.RoleCook)
	require.NoError(t, err)
	claims, err := strategy.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, model.RoleCook, claims.Role)
}
