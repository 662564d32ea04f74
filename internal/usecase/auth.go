package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
	pkgAuth "github.com/polkiloo/restaurant/internal/pkg/auth"
)

// VerificationTTL bounds how long an email verification link stays valid.
const VerificationTTL = 24 * time.Hour

// AuthUseCase handles account lifecycle and token management.
type AuthUseCase struct {
	users    repository.UserRepository
	hasher   pkgAuth.PasswordHasher
	tokens   pkgAuth.Strategy
	notifier Notifier
	now      func() time.Time
	newToken func() string
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy, notifier Notifier) *AuthUseCase {
	return &AuthUseCase{
		users:    users,
		hasher:   hasher,
		tokens:   strategy,
		notifier: notifier,
		now:      time.Now,
		newToken: uuid.NewString,
	}
}

// RegisterClient opens an unverified client account and requests email verification.
func (u *AuthUseCase) RegisterClient(ctx context.Context, reg model.Registration) (*model.User, error) {
	return u.register(ctx, reg, model.RoleClient)
}

// RegisterStaff opens an unverified staff account with the given role.
func (u *AuthUseCase) RegisterStaff(ctx context.Context, reg model.Registration, role model.Role) (*model.User, error) {
	if !role.Staff() {
		return nil, domainErrors.RuleViolation(fmt.Sprintf("role %q is not a staff role", role))
	}
	return u.register(ctx, reg, role)
}

func (u *AuthUseCase) register(ctx context.Context, reg model.Registration, role model.Role) (*model.User, error) {
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	reg.Phone = strings.TrimSpace(reg.Phone)
	reg.LastName = strings.TrimSpace(reg.LastName)
	reg.FirstName = strings.TrimSpace(reg.FirstName)

	if reg.LastName == "" || reg.FirstName == "" {
		return nil, domainErrors.RuleViolation("first and last name are required")
	}
	addr, err := mail.ParseAddress(reg.Email)
	if err != nil {
		return nil, domainErrors.RuleViolation("a valid email address is required")
	}
	reg.Email = strings.ToLower(addr.Address)

	existing, err := u.existingAccount(ctx, reg.Email, reg.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Verified {
		return nil, domainErrors.ErrAlreadyExists
	}

	hash, err := u.hasher.Hash(reg.Password)
	if err != nil {
		return nil, err
	}

	token := u.newToken()
	expires := u.now().Add(VerificationTTL)

	usr := model.User{Active: true}
	if existing != nil {
		usr = *existing
	}
	usr.LastName = reg.LastName
	usr.FirstName = reg.FirstName
	usr.Email = reg.Email
	usr.Phone = reg.Phone
	usr.Role = role
	usr.PasswordHash = hash
	usr.Verified = false
	usr.VerificationToken = token
	usr.VerificationExpires = &expires

	var saved *model.User
	if existing != nil {
		if err := u.users.Update(ctx, &usr); err != nil {
			return nil, err
		}
		saved = &usr
	} else if saved, err = u.users.Create(ctx, &usr); err != nil {
		return nil, err
	}

	u.notifier.VerificationRequested(ctx, *saved, token)
	return saved, nil
}

func (u *AuthUseCase) existingAccount(ctx context.Context, email, phone string) (*model.User, error) {
	usr, err := u.users.GetByEmail(ctx, email)
	if err == nil {
		return usr, nil
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}
	if phone == "" {
		return nil, nil
	}
	usr, err = u.users.GetByPhone(ctx, phone)
	if errors.Is(err, domainErrors.ErrNotFound) {
		return nil, nil
	}
	return usr, err
}

// Login validates credentials and returns an auth token.
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	if !usr.Active {
		return nil, "", domainErrors.RuleViolation("account is deactivated")
	}

	token, err := u.tokens.IssueToken(usr.ID, usr.Role)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// VerifyEmail marks the account owning token as verified.
func (u *AuthUseCase) VerifyEmail(ctx context.Context, token string) (*model.User, error) {
	usr, err := u.users.GetByVerificationToken(ctx, strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.RuleViolation("invalid verification token")
		}
		return nil, err
	}

	if usr.VerificationExpires != nil && usr.VerificationExpires.Before(u.now()) {
		return nil, domainErrors.RuleViolation("verification token expired")
	}

	usr.Verified = true
	usr.VerificationToken = ""
	usr.VerificationExpires = nil
	if err := u.users.Update(ctx, usr); err != nil {
		return nil, err
	}
	return usr, nil
}

// Authenticate resolves a bearer token to an active, verified account.
func (u *AuthUseCase) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, pkgAuth.ErrInvalidToken
	}

	claims, err := u.tokens.ParseToken(token)
	if err != nil {
		return nil, err
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, pkgAuth.ErrInvalidToken
		}
		return nil, err
	}

	if !usr.Active {
		return nil, fmt.Errorf("account is deactivated: %w", domainErrors.ErrForbidden)
	}
	if !usr.Verified {
		return nil, fmt.Errorf("email is not verified: %w", domainErrors.ErrForbidden)
	}

	return usr, nil
}

// GetByID fetches an account by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// ListUsers pages through every account.
func (u *AuthUseCase) ListUsers(ctx context.Context, limit, offset int) ([]model.User, error) {
	return u.users.List(ctx, limit, offset)
}

// SetUserActive enables or disables an account.
func (u *AuthUseCase) SetUserActive(ctx context.Context, id int64, active bool) (*model.User, error) {
	return u.users.SetActive(ctx, id, active)
}

// DeleteUser removes an account.
func (u *AuthUseCase) DeleteUser(ctx context.Context, id int64) error {
	return u.users.Delete(ctx, id)
}
