package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Tables() TableRepository
	Catalog() CatalogRepository
	Orders() OrderRepository
	Payments() PaymentRepository
	Reservations() ReservationRepository
	Reviews() ReviewRepository
	Stats() StatsRepository

	// WithinTransaction runs fn with repositories bound to a single transaction.
	WithinTransaction(ctx context.Context, fn func(Factory) error) error
}
