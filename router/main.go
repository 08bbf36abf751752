package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/todo-manager/database"
	"github.com/sahilchouksey/todo-manager/handlers"
	auth_handlers "github.com/sahilchouksey/todo-manager/handlers/auth"
	todo_handlers "github.com/sahilchouksey/todo-manager/handlers/todo"
	"github.com/sahilchouksey/todo-manager/services"
	"github.com/sahilchouksey/todo-manager/utils/auth"
	"github.com/sahilchouksey/todo-manager/utils/cache"
	"github.com/sahilchouksey/todo-manager/utils/middleware"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	// Get session secret from environment
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("SESSION_SECRET environment variable is not set")
	}

	sessionIssuer := os.Getenv("SESSION_ISSUER")
	if sessionIssuer == "" {
		sessionIssuer = "todo-manager"
	}

	// Initialize session manager with config
	sessions := auth.NewSessionManager(auth.SessionConfig{
		Secret: sessionSecret,
		Expiry: 24 * time.Hour, // Sessions expire in 24 hours
		Issuer: sessionIssuer,
	})

	db := store.GetDB()

	// Initialize Redis cache for brute force protection
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	// Initialize brute force protection
	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// Initialize auth middleware with DB for session revocation checks
	authMiddleware := middleware.NewAuthMiddleware(sessions, db)

	// Initialize handlers
	authHandler := auth_handlers.NewAuthHandler(db, sessions, bruteForceProtection)
	todoService := services.NewTodoService(db)
	todoHandler := todo_handlers.NewTodoHandler(todoService)

	// Apply security middleware (headers, rate limit, CSRF)
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandleCheckHealth(store))

	// Auth routes (public)
	app.Get("/register", authHandler.RegisterPage)
	app.Post("/register", authHandler.Register)
	app.Get("/login", authHandler.LoginPage)

	// Login with brute force protection
	if bruteForceProtection != nil {
		app.Post("/login", bruteForceProtection.CheckAttempt(), authHandler.Login)
	} else {
		app.Post("/login", authHandler.Login)
	}

	app.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	app.Get("/logout", authMiddleware.Required(), authHandler.Logout)

	// Todo routes (session required)
	todos := app.Group("/todos", authMiddleware.Required())
	todos.Get("/", todoHandler.List)
	todos.Get("/add", todoHandler.AddPage)
	todos.Post("/add", todoHandler.Create)
	todos.Get("/:id/edit", todoHandler.EditPage)
	todos.Post("/:id/edit", todoHandler.Edit)
	todos.Post("/:id/toggle", todoHandler.Toggle)
	todos.Get("/:id/delete", todoHandler.ConfirmDeletePage)
	todos.Post("/:id/delete/confirm", todoHandler.Delete)
}
