// Package routes defines the API routing configuration.
// It wires repositories into services, services into handlers, and
// groups routes by role with the appropriate middleware.
package routes

import (
	"salarysync/internal/config"
	"salarysync/internal/handlers"
	"salarysync/internal/middleware"
	"salarysync/internal/models"
	"salarysync/internal/repositories"
	"salarysync/internal/services/advisor"
	"salarysync/internal/services/auth"
	"salarysync/internal/services/dashboard"
	"salarysync/internal/services/demorequest"
	"salarysync/internal/services/disbursement"
	"salarysync/internal/services/employee"
	"salarysync/internal/services/employer"
	"salarysync/internal/services/withdrawal"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	withdrawalRepo := repositories.NewWithdrawalRepository(db)
	employerRepo := repositories.NewEmployerRepository(db)
	demoRepo := repositories.NewDemoRequestRepository(db)

	// Services
	authService := auth.NewService(userRepo)
	employeeService := employee.NewService(userRepo, employerRepo, withdrawalRepo)
	employerService := employer.NewService(employerRepo, userRepo, withdrawalRepo, repositories.CacheService)
	demoService := demorequest.NewService(demoRepo, employerRepo, userRepo)
	dashboardService := dashboard.NewService(demoRepo, employerRepo, userRepo, withdrawalRepo)

	disburser := disbursement.NewService(config.GetEnv("PAYOUT_CURRENCY", "inr"))
	withdrawalService := withdrawal.NewService(
		withdrawalRepo,
		userRepo,
		employerRepo,
		disburser,
		repositories.CacheService,
		&withdrawal.NoopMetricsCollector{},
	)

	llmClient := advisor.NewClient(
		config.GetEnv("ADVISOR_API_KEY", ""),
		config.GetEnv("ADVISOR_MODEL", ""),
		config.GetEnv("ADVISOR_BASE_URL", ""),
	)
	advisorService := advisor.NewService(userRepo, withdrawalRepo, llmClient)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, employeeService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService)
	employerHandler := handlers.NewEmployerHandler(employerService)
	advisorHandler := handlers.NewAdvisorHandler(advisorService)
	demoHandler := handlers.NewDemoRequestHandler(demoService)
	adminHandler := handlers.NewAdminHandler(dashboardService, demoService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Public routes
	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Post("/demo-requests", demoHandler.Submit)

	// Authenticated routes
	authenticated := api.Group("/", authMiddleware.Handler)
	authenticated.Post("/logout", authHandler.Logout)
	authenticated.Post("/change-password",
		middleware.HasPermission(models.PermissionChangePassword), authHandler.ChangePassword)

	// Employee routes
	authenticated.Get("/employee/dashboard", employeeHandler.GetDashboard)
	authenticated.Post("/onboarding", employeeHandler.Onboard)
	authenticated.Get("/withdrawals",
		middleware.HasPermission(models.PermissionWithdrawalRead), withdrawalHandler.GetWithdrawals)
	authenticated.Post("/withdrawals",
		middleware.HasPermission(models.PermissionWithdrawalWrite), withdrawalHandler.RequestWithdrawal)
	authenticated.Post("/advisor/chat",
		middleware.HasPermission(models.PermissionAdvisorChat), advisorHandler.Chat)

	// Employer routes
	emp := authenticated.Group("/employer", middleware.RequireRole(models.RoleEmployer))
	emp.Get("/dashboard", employerHandler.GetDashboard)
	emp.Get("/employees", middleware.HasPermission(models.PermissionEmployerRead), employerHandler.ListEmployees)
	emp.Post("/attendance", middleware.HasPermission(models.PermissionAttendanceWrite), employerHandler.MarkAttendance)
	emp.Get("/verifications", middleware.HasPermission(models.PermissionEmployerRead), employerHandler.ListVerifications)
	emp.Post("/verifications/:id", middleware.HasPermission(models.PermissionVerificationWrite), employerHandler.ReviewVerification)

	// Admin routes
	admin := authenticated.Group("/admin", middleware.AdminAuthMiddleware)
	admin.Get("/overview", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.GetOverview)
	admin.Get("/demo-requests", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.ListDemoRequests)
	admin.Post("/demo-requests/:id", middleware.HasPermission(models.PermissionWriteAdmin), adminHandler.ReviewDemoRequest)
	admin.Get("/employers", middleware.HasPermission(models.PermissionReadAdmin), adminHandler.ListEmployers)
}
