// routes/routes.go
package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/MuhammadZain243/commission-subscription-backend/config"
	"github.com/MuhammadZain243/commission-subscription-backend/controllers"
	"github.com/MuhammadZain243/commission-subscription-backend/middleware"
	"github.com/MuhammadZain243/commission-subscription-backend/repositories"
)

// SetupRoutes wires every resource group onto the Echo instance
func SetupRoutes(e *echo.Echo, db *mongo.Database, env *config.Env) {
	healthController := controllers.NewHealthController(env.Environment)
	authController := controllers.NewAuthController(db, env.BcryptCost)
	userController := controllers.NewUserController(db)
	customerController := controllers.NewCustomerController(db)
	planController := controllers.NewPlanController(db)
	addOnController := controllers.NewAddOnController(db)
	subscriptionController := controllers.NewSubscriptionController(db)
	orderController := controllers.NewOrderController(db, env.CommissionRate)
	commissionController := controllers.NewCommissionController(db)
	dashboardController := controllers.NewDashboardController(repositories.NewReportRepository(db))

	e.GET("/health", healthController.Health)

	// Auth routes (public)
	auth := e.Group("/api/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.GET("/", authController.PlannedEndpoints)

	authed := e.Group("/api/auth")
	authed.Use(middleware.JWTMiddleware())
	authed.POST("/logout", authController.Logout)

	const (
		admin       = "ADMIN"
		manager     = "MANAGER"
		salesperson = "SALESPERSON"
	)

	// User management (admin only, except reps listing)
	users := e.Group("/api/users")
	users.Use(middleware.JWTMiddleware())
	users.GET("", userController.GetUsers, middleware.RequireRole(admin))
	users.GET("/:id", userController.GetUser, middleware.RequireRole(admin, manager))
	users.PUT("/:id", userController.UpdateUser, middleware.RequireRole(admin))
	users.DELETE("/:id", userController.DeleteUser, middleware.RequireRole(admin))
	users.GET("/:id/reps", userController.GetReps, middleware.RequireRole(admin, manager))

	// Customers (scoped by role inside the controller)
	customers := e.Group("/api/customers")
	customers.Use(middleware.JWTMiddleware())
	customers.Use(middleware.RequireRole(admin, manager, salesperson))
	customers.POST("", customerController.CreateCustomer)
	customers.GET("", customerController.GetCustomers)
	customers.GET("/:id", customerController.GetCustomer)
	customers.PUT("/:id", customerController.UpdateCustomer)
	customers.DELETE("/:id", customerController.DeleteCustomer)

	// Catalog: plans and add-ons (admin writes, any authenticated reads)
	plans := e.Group("/api/plans")
	plans.Use(middleware.JWTMiddleware())
	plans.POST("", planController.CreatePlan, middleware.RequireRole(admin))
	plans.GET("", planController.GetPlans)
	plans.GET("/:id", planController.GetPlan)
	plans.PUT("/:id", planController.UpdatePlan, middleware.RequireRole(admin))
	plans.DELETE("/:id", planController.DeletePlan, middleware.RequireRole(admin))

	addons := e.Group("/api/addons")
	addons.Use(middleware.JWTMiddleware())
	addons.POST("", addOnController.CreateAddOn, middleware.RequireRole(admin))
	addons.GET("", addOnController.GetAddOns)
	addons.GET("/:id", addOnController.GetAddOn)
	addons.PUT("/:id", addOnController.UpdateAddOn, middleware.RequireRole(admin))
	addons.DELETE("/:id", addOnController.DeleteAddOn, middleware.RequireRole(admin))

	// Subscriptions
	subscriptions := e.Group("/api/subscriptions")
	subscriptions.Use(middleware.JWTMiddleware())
	subscriptions.Use(middleware.RequireRole(admin, manager, salesperson))
	subscriptions.POST("", subscriptionController.CreateSubscription)
	subscriptions.GET("", subscriptionController.GetSubscriptions)
	subscriptions.GET("/:id", subscriptionController.GetSubscription)
	subscriptions.POST("/:id/cancel", subscriptionController.CancelSubscription)

	// Orders
	orders := e.Group("/api/orders")
	orders.Use(middleware.JWTMiddleware())
	orders.Use(middleware.RequireRole(admin, manager, salesperson))
	orders.POST("", orderController.CreateOrder)
	orders.GET("", orderController.GetOrders)
	orders.GET("/:id", orderController.GetOrder)
	orders.POST("/:id/pay", orderController.PayOrder, middleware.RequireRole(admin, manager))

	// Commissions: reads are scoped, transitions are admin-driven
	commissions := e.Group("/api/commissions")
	commissions.Use(middleware.JWTMiddleware())
	commissions.GET("", commissionController.GetCommissions, middleware.RequireRole(admin, manager, salesperson))
	commissions.GET("/:id", commissionController.GetCommission, middleware.RequireRole(admin, manager, salesperson))
	commissions.POST("/:id/approve", commissionController.ApproveCommission, middleware.RequireRole(admin))
	commissions.POST("/:id/pay", commissionController.PayCommission, middleware.RequireRole(admin))

	// Dashboards
	dashboard := e.Group("/api/dashboard")
	dashboard.Use(middleware.JWTMiddleware())
	dashboard.GET("/admin", dashboardController.AdminDashboard, middleware.RequireRole(admin))
	dashboard.GET("/manager", dashboardController.ManagerDashboard, middleware.RequireRole(manager))
	dashboard.GET("/manager/:id", dashboardController.ManagerDashboard, middleware.RequireRole(admin, manager))
	dashboard.GET("/salesperson", dashboardController.SalespersonDashboard, middleware.RequireRole(salesperson))
	dashboard.GET("/salesperson/:id", dashboardController.SalespersonDashboard, middleware.RequireRole(admin, salesperson))
}
