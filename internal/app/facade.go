package app

import (
	"go.uber.org/fx"

	"github.com/polkiloo/restaurant/internal/usecase"
)

// RestaurantFacade gathers every use case behind a single entry point for the
// HTTP layer.
type RestaurantFacade struct {
	*usecase.AuthUseCase
	*usecase.TableUseCase
	*usecase.CatalogUseCase
	*usecase.OrderUseCase
	*usecase.BillingUseCase
	*usecase.ReservationUseCase
	*usecase.ReviewUseCase
	*usecase.StatsUseCase
}

// FacadeParams lists the use cases composed by the facade.
type FacadeParams struct {
	fx.In

	Auth         *usecase.AuthUseCase
	Tables       *usecase.TableUseCase
	Catalog      *usecase.CatalogUseCase
	Orders       *usecase.OrderUseCase
	Billing      *usecase.BillingUseCase
	Reservations *usecase.ReservationUseCase
	Reviews      *usecase.ReviewUseCase
	Stats        *usecase.StatsUseCase
}

// NewRestaurantFacade composes the use cases.
func NewRestaurantFacade(p FacadeParams) *RestaurantFacade {
	return &RestaurantFacade{
		AuthUseCase:        p.Auth,
		TableUseCase:       p.Tables,
		CatalogUseCase:     p.Catalog,
		OrderUseCase:       p.Orders,
		BillingUseCase:     p.Billing,
		ReservationUseCase: p.Reservations,
		ReviewUseCase:      p.Reviews,
		StatsUseCase:       p.Stats,
	}
}
