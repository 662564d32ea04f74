package test

import (
	"context"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/model"
)

// AuthenticatorStub resolves tokens through a configurable function.
type AuthenticatorStub struct {
	AuthenticateFn func(context.Context, string) (*model.User, error)
}

// Authenticate delegates to AuthenticateFn or accepts "valid" as a client token.
func (s AuthenticatorStub) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, token)
	}
	if token == "valid" {
		return &model.User{ID: 42, Role: model.RoleClient, Active: true, Verified: true}, nil
	}
	return nil, domainErrors.ErrInvalidToken
}

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	RegisterClientFn func(context.Context, model.Registration) (*model.User, error)
	RegisterStaffFn  func(context.Context, model.Registration, model.Role) (*model.User, error)
	LoginFn          func(context.Context, string, string) (*model.User, string, error)
	VerifyEmailFn    func(context.Context, string) (*model.User, error)
}

// RegisterClient delegates to RegisterClientFn or echoes the registration.
func (s AuthFacadeStub) RegisterClient(ctx context.Context, reg model.Registration) (*model.User, error) {
	if s.RegisterClientFn != nil {
		return s.RegisterClientFn(ctx, reg)
	}
	return userFrom(reg, model.RoleClient), nil
}

// RegisterStaff delegates to RegisterStaffFn or echoes the registration.
func (s AuthFacadeStub) RegisterStaff(ctx context.Context, reg model.Registration, role model.Role) (*model.User, error) {
	if s.RegisterStaffFn != nil {
		return s.RegisterStaffFn(ctx, reg, role)
	}
	return userFrom(reg, role), nil
}

// Login delegates to LoginFn or returns a fixed token.
func (s AuthFacadeStub) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleClient, Active: true}, "token", nil
}

// VerifyEmail delegates to VerifyEmailFn or marks a placeholder user verified.
func (s AuthFacadeStub) VerifyEmail(ctx context.Context, token string) (*model.User, error) {
	if s.VerifyEmailFn != nil {
		return s.VerifyEmailFn(ctx, token)
	}
	return &model.User{ID: 1, Email: "user@example.com", Verified: true}, nil
}

func userFrom(reg model.Registration, role model.Role) *model.User {
	return &model.User{
		ID:        1,
		LastName:  reg.LastName,
		FirstName: reg.FirstName,
		Email:     reg.Email,
		Phone:     reg.Phone,
		Role:      role,
		Active:    true,
	}
}

// StatsFacadeStub returns fixed statistics unless overridden.
type StatsFacadeStub struct {
	Err error
}

func (s StatsFacadeStub) Global(context.Context) (*model.GlobalStats, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return &model.GlobalStats{Revenue: 4000, PaidOrders: 1, AverageRating: 5}, nil
}

func (s StatsFacadeStub) TopDishes(_ context.Context, limit int) ([]model.DishPopularity, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return []model.DishPopularity{{DishID: 1, Name: "Ndole", Quantity: int64(limit)}}, nil
}

func (s StatsFacadeStub) RevenueByDay(context.Context) ([]model.DailyRevenue, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return []model.DailyRevenue{{Day: "2025-06-01", Revenue: 4000}}, nil
}

func (s StatsFacadeStub) Dashboard(ctx context.Context) (*model.Dashboard, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	global, _ := s.Global(ctx)
	top, _ := s.TopDishes(ctx, 5)
	days, _ := s.RevenueByDay(ctx)
	return &model.Dashboard{Global: *global, TopDishes: top, Revenue: days}, nil
}
