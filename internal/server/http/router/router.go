package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/polkiloo/restaurant/internal/pkg/rbac"
	"github.com/polkiloo/restaurant/internal/server/http/handlers"
	"github.com/polkiloo/restaurant/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.RestaurantFacade, logger *slog.Logger, tp trace.TracerProvider) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.Tracing(tp))
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(middleware.DefaultBodyLimit))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	userHandler := handlers.NewUserHandler(facade)
	tableHandler := handlers.NewTableHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	reservationHandler := handlers.NewReservationHandler(facade)
	reviewHandler := handlers.NewReviewHandler(facade)
	statsHandler := handlers.NewStatsHandler(facade)

	api := engine.Group("/api")
	api.GET("/health", handlers.Health)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/verify", authHandler.Verify)

	catalog := api.Group("/catalog")
	catalog.GET("/categories", catalogHandler.ListCategories)
	catalog.GET("/categories/:id", catalogHandler.GetCategory)
	catalog.GET("/dishes", catalogHandler.ListDishes)
	catalog.GET("/dishes/:id", catalogHandler.GetDish)
	catalog.GET("/menus", catalogHandler.ListMenus)
	catalog.GET("/menus/:id", catalogHandler.GetMenu)
	api.GET("/tables/qr/:code", tableHandler.GetByQRCode)

	secured := api.Group("")
	secured.Use(middleware.AuthRequired(facade))
	can := middleware.RequireCapability

	secured.GET("/users/me", userHandler.Me)
	secured.POST("/staff", can(rbac.ManageStaff), authHandler.RegisterStaff)
	secured.GET("/users", can(rbac.ManageStaff), userHandler.List)
	secured.PATCH("/users/:id/status", can(rbac.ManageStaff), userHandler.SetStatus)
	secured.DELETE("/users/:id", can(rbac.ManageStaff), userHandler.Delete)

	tables := secured.Group("/tables")
	tables.POST("", can(rbac.ManageTables), tableHandler.Create)
	tables.PUT("/:id", can(rbac.ManageTables), tableHandler.Update)
	tables.DELETE("/:id", can(rbac.ManageTables), tableHandler.Delete)
	tables.GET("", can(rbac.ViewTables), tableHandler.List)
	tables.GET("/:id", can(rbac.ViewTables), tableHandler.Get)
	tables.GET("/number/:number", can(rbac.ViewTables), tableHandler.GetByNumber)
	tables.POST("/:id/occupy", can(rbac.ViewTables), tableHandler.Occupy)
	tables.POST("/:id/free", can(rbac.ViewTables), tableHandler.Free)

	catalogAdmin := secured.Group("/catalog", can(rbac.ManageCatalog))
	catalogAdmin.POST("/categories", catalogHandler.CreateCategory)
	catalogAdmin.PUT("/categories/:id", catalogHandler.UpdateCategory)
	catalogAdmin.DELETE("/categories/:id", catalogHandler.DeleteCategory)
	catalogAdmin.POST("/dishes", catalogHandler.CreateDish)
	catalogAdmin.PUT("/dishes/:id", catalogHandler.UpdateDish)
	catalogAdmin.DELETE("/dishes/:id", catalogHandler.DeleteDish)
	catalogAdmin.POST("/menus", catalogHandler.CreateMenu)
	catalogAdmin.PUT("/menus/:id", catalogHandler.UpdateMenu)
	catalogAdmin.DELETE("/menus/:id", catalogHandler.DeleteMenu)
	catalogAdmin.POST("/menus/:id/dishes/:dish_id", catalogHandler.AddMenuDish)
	catalogAdmin.DELETE("/menus/:id/dishes/:dish_id", catalogHandler.RemoveMenuDish)

	orders := secured.Group("/orders")
	orders.POST("", can(rbac.PlaceOrders), orderHandler.Create)
	orders.GET("", can(rbac.PlaceOrders), orderHandler.List)
	orders.GET("/:id", can(rbac.PlaceOrders), orderHandler.Get)
	orders.PUT("/:id", can(rbac.HandleOrders), orderHandler.Update)
	orders.DELETE("/:id", can(rbac.AdministerOrders), orderHandler.Delete)
	orders.POST("/:id/lines", can(rbac.PlaceOrders), orderHandler.AddLine)
	orders.POST("/:id/approve", can(rbac.HandleOrders), orderHandler.Approve)
	orders.POST("/:id/send-to-kitchen", can(rbac.HandleOrders), orderHandler.SendToKitchen)
	orders.POST("/:id/ready", can(rbac.CookOrders), orderHandler.MarkReady)
	orders.POST("/:id/serve", can(rbac.HandleOrders), orderHandler.MarkServed)
	orders.POST("/:id/receive", can(rbac.PlaceOrders), orderHandler.ConfirmReceipt)
	orders.POST("/:id/pay", can(rbac.HandleOrders), orderHandler.Settle)
	orders.POST("/:id/cancel", can(rbac.AdministerOrders), orderHandler.Cancel)

	payments := secured.Group("/payments", can(rbac.Pay))
	payments.POST("", paymentHandler.Pay)
	payments.GET("/bill/:order_id", paymentHandler.Bill)
	payments.GET("/order/:order_id", paymentHandler.ByOrder)

	reservations := secured.Group("/reservations")
	reservations.POST("", can(rbac.Reserve), reservationHandler.Create)
	reservations.GET("", can(rbac.Reserve), reservationHandler.List)
	reservations.GET("/availability", can(rbac.Reserve), reservationHandler.Availability)
	reservations.GET("/:id", can(rbac.Reserve), reservationHandler.Get)
	reservations.PUT("/:id", can(rbac.Reserve), reservationHandler.Update)
	reservations.DELETE("/:id", can(rbac.Reserve), reservationHandler.Delete)
	reservations.POST("/:id/confirm", can(rbac.ManageReservations), reservationHandler.Confirm)
	reservations.POST("/:id/cancel", can(rbac.Reserve), reservationHandler.Cancel)

	reviews := secured.Group("/reviews")
	reviews.GET("", reviewHandler.List)
	reviews.POST("", can(rbac.Review), reviewHandler.Create)
	reviews.GET("/:id", can(rbac.Review), reviewHandler.Get)
	reviews.PUT("/:id", can(rbac.Review), reviewHandler.Update)
	reviews.DELETE("/:id", can(rbac.Review), reviewHandler.Delete)

	stats := secured.Group("/stats", can(rbac.ViewStats))
	stats.GET("/global", statsHandler.Global)
	stats.GET("/top-dishes", statsHandler.TopDishes)
	stats.GET("/revenue", statsHandler.Revenue)
	stats.GET("/dashboard", statsHandler.Dashboard)

	return engine
}
