package test

import (
	"context"
	"fmt"
	"sync"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	pkgAuth "github.com/polkiloo/restaurant/internal/pkg/auth"
)

// HasherStub provides deterministic hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied password.
func (h HasherStub) Hash(password string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(password)
	}
	return "hash:" + password, nil
}

// Compare validates password against stored hash.
func (h HasherStub) Compare(hash string, password string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, password)
	}
	if hash != "hash:"+password {
		return domainErrors.ErrInvalidCredentials
	}
	return nil
}

// StrategyStub issues "token-<id>-<role>" tokens unless overridden.
type StrategyStub struct {
	IssueFn func(int64, model.Role) (string, error)
	ParseFn func(string) (pkgAuth.Claims, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(userID int64, role model.Role) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(userID, role)
	}
	return fmt.Sprintf("token-%d-%s", userID, role), nil
}

// ParseToken parses tokens produced by IssueToken.
func (s StrategyStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	var (
		id   int64
		role string
	)
	if _, err := fmt.Sscanf(token, "token-%d-%s", &id, &role); err != nil {
		return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
	}
	return pkgAuth.Claims{UserID: id, Role: model.Role(role)}, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// VerificationCall records one verification request.
type VerificationCall struct {
	User  model.User
	Token string
}

// NotifierStub records notifications instead of delivering them.
type NotifierStub struct {
	mu            sync.Mutex
	Verifications []VerificationCall
	StatusChanges []model.Order
}

func (n *NotifierStub) VerificationRequested(_ context.Context, user model.User, token string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Verifications = append(n.Verifications, VerificationCall{User: user, Token: token})
}

func (n *NotifierStub) OrderStatusChanged(_ context.Context, order model.Order) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.StatusChanges = append(n.StatusChanges, order)
}

// Statuses returns the recorded order statuses in notification order.
func (n *NotifierStub) Statuses() []model.OrderStatus {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]model.OrderStatus, 0, len(n.StatusChanges))
	for _, o := range n.StatusChanges {
		out = append(out, o.Status)
	}
	return out
}

var _ pkgAuth.PasswordHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
