package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskdeck/employee-task-api/docs"
	"github.com/taskdeck/employee-task-api/internal/api/handler"
	"github.com/taskdeck/employee-task-api/internal/api/middleware"
	"github.com/taskdeck/employee-task-api/internal/core/ports"
	"github.com/taskdeck/employee-task-api/internal/core/service"
	"github.com/taskdeck/employee-task-api/internal/infrastructure/config"
	mongodb "github.com/taskdeck/employee-task-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskdeck/employee-task-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger, sink ports.AuditSink) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("employee_tasks"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	employeeRepo := mongodb.NewEmployeeRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)

	limiter := redisdb.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginAttemptWindow)

	authService := service.NewAuthService(userRepo, limiter, sink, cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.TokenTTL(), log)
	identityService := service.NewIdentityService(userRepo, cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.Auth.APIKeys, log)
	employeeService := service.NewEmployeeService(employeeRepo, taskRepo, sink, log)
	taskService := service.NewTaskService(taskRepo, employeeRepo, sink, log)

	authHandler := handler.NewAuthHandler(authService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	taskHandler := handler.NewTaskHandler(taskService)

	// Every request carries its resolved identity (or none); route groups
	// below decide whether one is required.
	e.Use(middleware.Identity(identityService))

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, middleware.RequireAuth())
	auth.GET("/verify-token", authHandler.VerifyToken, middleware.RequireAuth())
	auth.POST("/create-admin", authHandler.CreateAdmin, middleware.RequireAdmin())
	auth.GET("/users", authHandler.ListUsers, middleware.RequireAdmin())

	// --- Employee routes ---
	employees := e.Group("/employees")
	employees.POST("", employeeHandler.Create, middleware.RequireAuth())
	employees.GET("", employeeHandler.List)
	employees.GET("/:id", employeeHandler.Get)
	employees.PUT("/:id", employeeHandler.Update, middleware.RequireAuth())
	employees.DELETE("/:id", employeeHandler.Delete, middleware.RequireAdmin())

	// --- Task routes ---
	tasks := e.Group("/tasks")
	tasks.POST("", taskHandler.Create, middleware.RequireAuth())
	tasks.GET("", taskHandler.List)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update, middleware.RequireAuth())
	tasks.DELETE("/:id", taskHandler.Delete, middleware.RequireAdmin())
	tasks.POST("/:id/assign/:employee_id", taskHandler.Assign, middleware.RequireAuth())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
