package handlers

import (
	"context"
	"time"

	"github.com/polkiloo/restaurant/internal/domain/model"
	"github.com/polkiloo/restaurant/internal/domain/repository"
	"github.com/polkiloo/restaurant/internal/server/http/middleware"
)

// AuthFacade describes account creation and login.
type AuthFacade interface {
	RegisterClient(ctx context.Context, reg model.Registration) (*model.User, error)
	RegisterStaff(ctx context.Context, reg model.Registration, role model.Role) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	VerifyEmail(ctx context.Context, token string) (*model.User, error)
}

// UserFacade covers account administration.
type UserFacade interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]model.User, error)
	SetUserActive(ctx context.Context, id int64, active bool) (*model.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// TableFacade covers the dining room floor plan.
type TableFacade interface {
	CreateTable(ctx context.Context, number, capacity int) (*model.Table, error)
	UpdateTable(ctx context.Context, id int64, number, capacity int, status model.TableStatus) (*model.Table, error)
	Occupy(ctx context.Context, id int64) (*model.Table, error)
	Free(ctx context.Context, id int64) (*model.Table, error)
	GetTable(ctx context.Context, id int64) (*model.Table, error)
	GetByNumber(ctx context.Context, number int) (*model.Table, error)
	GetByQRCode(ctx context.Context, code string) (*model.Table, error)
	ListTables(ctx context.Context) ([]model.Table, error)
	DeleteTable(ctx context.Context, id int64) error
}

// CatalogFacade covers categories, dishes and menus.
type CatalogFacade interface {
	CreateCategory(ctx context.Context, c model.Category) (*model.Category, error)
	GetCategory(ctx context.Context, id int64) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, c model.Category) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateDish(ctx context.Context, d model.Dish) (*model.Dish, error)
	GetDish(ctx context.Context, id int64) (*model.Dish, error)
	ListDishes(ctx context.Context, filter repository.DishFilter) ([]model.Dish, error)
	UpdateDish(ctx context.Context, d model.Dish) (*model.Dish, error)
	DeleteDish(ctx context.Context, id int64) error

	CreateMenu(ctx context.Context, m model.Menu) (*model.Menu, error)
	GetMenu(ctx context.Context, id int64) (*model.Menu, error)
	ListMenus(ctx context.Context) ([]model.Menu, error)
	UpdateMenu(ctx context.Context, m model.Menu) (*model.Menu, error)
	DeleteMenu(ctx context.Context, id int64) error
	AddMenuDish(ctx context.Context, menuID, dishID int64) error
	RemoveMenuDish(ctx context.Context, menuID, dishID int64) error
}

// OrderFacade covers the order lifecycle.
type OrderFacade interface {
	CreateOrder(ctx context.Context, in model.OrderDraft) (*model.Order, error)
	AddLine(ctx context.Context, orderID int64, in model.LineDraft) (*model.OrderLine, error)
	Approve(ctx context.Context, orderID, serverID int64) (*model.Order, error)
	SendToKitchen(ctx context.Context, orderID int64) (*model.Order, error)
	MarkReady(ctx context.Context, orderID, cookID int64) (*model.Order, error)
	MarkServed(ctx context.Context, orderID int64) (*model.Order, error)
	ConfirmReceipt(ctx context.Context, orderID int64) (*model.Order, error)
	Cancel(ctx context.Context, orderID int64) (*model.Order, error)
	Settle(ctx context.Context, orderID int64, method model.PaymentMethod) (*model.Order, error)
	UpdateOrder(ctx context.Context, orderID int64, patch model.OrderPatch) (*model.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) error
	GetOrder(ctx context.Context, orderID int64) (*model.Order, error)
	ListOrders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error)
}

// PaymentFacade covers bills and payments.
type PaymentFacade interface {
	GetOrder(ctx context.Context, orderID int64) (*model.Order, error)
	ProcessPayment(ctx context.Context, req model.PaymentRequest) (*model.Payment, error)
	GetAddition(ctx context.Context, orderID int64) (int64, error)
	GetPaymentByOrder(ctx context.Context, orderID int64) (*model.Payment, error)
}

// ReservationFacade covers table bookings.
type ReservationFacade interface {
	IsTableAvailable(ctx context.Context, tableID int64, at time.Time, excludeID *int64) (bool, error)
	CreateReservation(ctx context.Context, res model.Reservation) (*model.Reservation, error)
	UpdateReservation(ctx context.Context, id int64, patch model.ReservationPatch) (*model.Reservation, error)
	ConfirmReservation(ctx context.Context, id int64) (*model.Reservation, error)
	CancelReservation(ctx context.Context, id int64) (*model.Reservation, error)
	GetReservation(ctx context.Context, id int64) (*model.Reservation, error)
	ListReservations(ctx context.Context, filter repository.ReservationFilter) ([]model.Reservation, error)
	DeleteReservation(ctx context.Context, id int64) error
}

// ReviewFacade covers order reviews.
type ReviewFacade interface {
	GetOrder(ctx context.Context, orderID int64) (*model.Order, error)
	CreateReview(ctx context.Context, clientID, orderID int64, rating int, comment string) (*model.Review, error)
	UpdateReview(ctx context.Context, id int64, rating int, comment string) (*model.Review, error)
	GetReview(ctx context.Context, id int64) (*model.Review, error)
	ListReviews(ctx context.Context, orderID *int64, limit, offset int) ([]model.Review, error)
	DeleteReview(ctx context.Context, id int64) error
}

// StatsFacade covers manager statistics.
type StatsFacade interface {
	Global(ctx context.Context) (*model.GlobalStats, error)
	TopDishes(ctx context.Context, limit int) ([]model.DishPopularity, error)
	RevenueByDay(ctx context.Context) ([]model.DailyRevenue, error)
	Dashboard(ctx context.Context) (*model.Dashboard, error)
}

// RestaurantFacade aggregates the full set of operations used across handlers.
type RestaurantFacade interface {
	middleware.Authenticator
	AuthFacade
	UserFacade
	TableFacade
	CatalogFacade
	OrderFacade
	PaymentFacade
	ReservationFacade
	ReviewFacade
	StatsFacade
}
