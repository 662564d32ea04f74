package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
	pkgAuth "github.com/polkiloo/restaurant/internal/pkg/auth"
	testhelpers "github.com/polkiloo/restaurant/internal/test"
)

type authFixture struct {
	uc       *AuthUseCase
	store    *testhelpers.MemoryStore
	notifier *testhelpers.NotifierStub
	now      time.Time
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		store:    testhelpers.NewMemoryStore(),
		notifier: &testhelpers.NotifierStub{},
		now:      time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC),
	}
	f.uc = NewAuthUseCase(f.store.Users(), testhelpers.HasherStub{}, testhelpers.StrategyStub{}, f.notifier)
	f.uc.now = func() time.Time { return f.now }
	tokens := 0
	f.uc.newToken = func() string {
		tokens++
		return "verify-" + string(rune('0'+tokens))
	}
	return f
}

func alice() model.Registration {
	return model.Registration{
		LastName:  "Mbarga",
		FirstName: "Alice",
		Email:     "  Alice@Example.com ",
		Phone:     "+237600000001",
		Password:  "secret123",
	}
}

func TestRegisterClientCreatesUnverifiedAccount(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	user, err := f.uc.RegisterClient(ctx, alice())
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, model.RoleClient, user.Role)
	assert.True(t, user.Active)
	assert.False(t, user.Verified)
	assert.Equal(t, "hash:secret123", user.PasswordHash)
	assert.Equal(t, "verify-1", user.VerificationToken)
	require.NotNil(t, user.VerificationExpires)
	assert.Equal(t, f.now.Add(VerificationTTL), *user.VerificationExpires)

	require.Len(t, f.notifier.Verifications, 1)
	assert.Equal(t, "verify-1", f.notifier.Verifications[0].Token)
	assert.Equal(t, user.Email, f.notifier.Verifications[0].User.Email)
}

func TestRegisterStoresBareAddress(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	reg := alice()
	reg.Email = "Alice Mbarga <Alice@Example.com>"
	user, err := f.uc.RegisterClient(ctx, reg)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	_, _, err = f.uc.Login(ctx, "alice@example.com", reg.Password)
	assert.NoError(t, err)
}

func TestRegisterOverwritesUnverifiedAccount(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	first, err := f.uc.RegisterClient(ctx, alice())
	require.NoError(t, err)

	again := alice()
	again.Email = "other@example.com"
	again.FirstName = "Alicia"
	second, err := f.uc.RegisterClient(ctx, again)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "matched by phone")
	assert.Equal(t, "Alicia", second.FirstName)
	assert.Equal(t, "verify-2", second.VerificationToken)

	users, err := f.uc.ListUsers(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Len(t, f.notifier.Verifications, 2)
}

func TestRegisterRejectsVerifiedDuplicate(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.uc.RegisterClient(ctx, alice())
	require.NoError(t, err)
	_, err = f.uc.VerifyEmail(ctx, "verify-1")
	require.NoError(t, err)

	_, err = f.uc.RegisterClient(ctx, alice())
	assert.ErrorIs(t, err, domainErrors.ErrAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	noName := alice()
	noName.LastName = " "
	_, err := f.uc.RegisterClient(ctx, noName)
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)

	badEmail := alice()
	badEmail.Email = "not-an-email"
	_, err = f.uc.RegisterClient(ctx, badEmail)
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)

	_, err = f.uc.RegisterStaff(ctx, alice(), model.RoleClient)
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)

	f.uc.hasher = testhelpers.HasherStub{HashFn: func(string) (string, error) { return "", errors.New("hash failed") }}
	_, err = f.uc.RegisterClient(ctx, alice())
	assert.EqualError(t, err, "hash failed")
	assert.Empty(t, f.notifier.Verifications)
}

func TestRegisterStaffKeepsRole(t *testing.T) {
	f := newAuthFixture()
	user, err := f.uc.RegisterStaff(context.Background(), alice(), model.RoleCook)
	require.NoError(t, err)
	assert.Equal(t, model.RoleCook, user.Role)
}

func TestVerifyEmail(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.uc.RegisterClient(ctx, alice())
	require.NoError(t, err)

	_, err = f.uc.VerifyEmail(ctx, "unknown")
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)

	f.now = f.now.Add(VerificationTTL + time.Minute)
	_, err = f.uc.VerifyEmail(ctx, "verify-1")
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)
	assert.Contains(t, err.Error(), "expired")

	f.now = f.now.Add(-2*time.Minute - VerificationTTL)
	user, err := f.uc.VerifyEmail(ctx, "verify-1")
	require.NoError(t, err)
	assert.True(t, user.Verified)
	assert.Empty(t, user.VerificationToken)
	assert.Nil(t, user.VerificationExpires)

	_, err = f.uc.VerifyEmail(ctx, "verify-1")
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule, "token is single use")
}

func TestLoginAndAuthenticate(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	registered, err := f.uc.RegisterClient(ctx, alice())
	require.NoError(t, err)

	_, _, err = f.uc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
	_, _, err = f.uc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)
	_, _, err = f.uc.Login(ctx, "", "")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidCredentials)

	_, token, err := f.uc.Login(ctx, "ALICE@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "token-1-client", token)

	_, err = f.uc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, domainErrors.ErrForbidden, "unverified accounts are rejected")

	_, err = f.uc.VerifyEmail(ctx, "verify-1")
	require.NoError(t, err)

	user, err := f.uc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = f.uc.SetUserActive(ctx, user.ID, false)
	require.NoError(t, err)
	_, err = f.uc.Authenticate(ctx, token)
	assert.ErrorIs(t, err, domainErrors.ErrForbidden)

	_, _, err = f.uc.Login(ctx, "alice@example.com", "secret123")
	assert.ErrorIs(t, err, domainErrors.ErrBusinessRule)
	assert.Contains(t, err.Error(), "deactivated")
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	_, err := f.uc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, pkgAuth.ErrInvalidToken)

	_, err = f.uc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, pkgAuth.ErrInvalidToken)

	_, err = f.uc.Authenticate(ctx, "token-99-client")
	assert.ErrorIs(t, err, pkgAuth.ErrInvalidToken, "unknown user")
}

func TestUserAdministration(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()

	user, err := f.uc.RegisterClient(ctx, alice())
	require.NoError(t, err)

	got, err := f.uc.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	disabled, err := f.uc.SetUserActive(ctx, user.ID, false)
	require.NoError(t, err)
	assert.False(t, disabled.Active)

	require.NoError(t, f.uc.DeleteUser(ctx, user.ID))
	assert.ErrorIs(t, f.uc.DeleteUser(ctx, user.ID), domainErrors.ErrNotFound)
}
