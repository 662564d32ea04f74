package auth

import (
	"time"

	"github.com/polkiloo/restaurant/internal/domain/model"
)

// Claims is the identity carried by an issued token.
type Claims struct {
	UserID    int64
	Role      model.Role
	ExpiresAt time.Time
}

type Strategy interface {
	IssueToken(userID int64, role model.Role) (string, error)
	ParseToken(token string) (Claims, error)
	Name() string
}

type Options struct {
	TTL time.Duration
	Now func() time.Time
}
