package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"facturation/internal/handlers"
	"facturation/internal/models"
	"facturation/internal/repositories"
	"facturation/internal/services"
	"facturation/pkg/cloudstore"
)

var startTime = time.Now()

// NewApp wires configuration, the document store, the cloud storage client
// and every route into a runnable Fiber app. The returned AuthService is
// exposed for tests.
func NewApp() (*fiber.App, *services.AuthService, error) {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":3000")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "facturation.db")
	viper.SetDefault("JWT_SECRET", "secret_key_change_in_production")
	viper.SetDefault("JWT_TTL_HOURS", 24)
	viper.SetDefault("DEFAULT_ADMIN_USERNAME", "admin")
	viper.SetDefault("DEFAULT_ADMIN_PASSWORD", "1234")
	viper.SetDefault("CLOUDINARY_FOLDER", "factures")
	viper.AutomaticEnv()

	env := viper.GetString("APP_ENV")

	// --- Document store and repositories ---
	// The memory driver keeps everything in process; anything else goes
	// through GORM.
	var (
		productRepo repositories.ProductRepository
		clientRepo  repositories.ClientRepository
		invoiceRepo repositories.InvoiceRepository
		userRepo    repositories.UserRepository
	)
	switch driver := viper.GetString("DATABASE_DRIVER"); driver {
	case "memory":
		productRepo = repositories.NewMockProductRepository()
		clientRepo = repositories.NewMockClientRepository()
		invoiceRepo = repositories.NewMockInvoiceRepository()
		userRepo = repositories.NewMockUserRepository()
	default:
		var dialector gorm.Dialector
		if driver == "postgres" {
			dialector = postgres.Open(viper.GetString("DATABASE_DSN"))
		} else {
			dialector = sqlite.Open(viper.GetString("DATABASE_DSN"))
		}
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.AutoMigrate(&models.Product{}, &models.Client{}, &models.Invoice{}, &models.User{}); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		productRepo = repositories.NewGORMProductRepository(db)
		clientRepo = repositories.NewGORMClientRepository(db)
		invoiceRepo = repositories.NewGORMInvoiceRepository(db)
		userRepo = repositories.NewGORMUserRepository(db)
	}

	// --- Services ---
	productService := services.NewProductService(productRepo)
	clientService := services.NewClientService(clientRepo)
	invoiceService := services.NewInvoiceService(invoiceRepo)
	authService := services.NewAuthService(
		userRepo,
		viper.GetString("JWT_SECRET"),
		time.Duration(viper.GetInt("JWT_TTL_HOURS"))*time.Hour,
	)

	// Seed a first user on an empty store so the back office is reachable.
	if err := authService.EnsureDefaultAdmin(
		viper.GetString("DEFAULT_ADMIN_USERNAME"),
		viper.GetString("DEFAULT_ADMIN_PASSWORD"),
	); err != nil {
		return nil, nil, err
	}

	// --- Cloud storage client (injected into the upload route) ---
	storage, err := cloudstore.NewCloudinaryStorage(cloudstore.Config{
		CloudName: viper.GetString("CLOUDINARY_CLOUD_NAME"),
		APIKey:    viper.GetString("CLOUDINARY_API_KEY"),
		APISecret: viper.GetString("CLOUDINARY_API_SECRET"),
		Folder:    viper.GetString("CLOUDINARY_FOLDER"),
	})
	if err != nil {
		return nil, nil, err
	}

	// --- Handlers ---
	productHandler := handlers.NewProductHandler(productService)
	clientHandler := handlers.NewClientHandler(clientService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	authHandler := handlers.NewAuthHandler(authService)
	uploadHandler := handlers.NewUploadHandler(storage)

	// --- Fiber app ---
	app := fiber.New(fiber.Config{
		BodyLimit:    20 * 1024 * 1024, // room for base64-encoded PDFs
		ErrorHandler: newErrorHandler(env),
	})

	// --- Middleware ---
	app.Use(fiberrecover.New())
	app.Use(helmet.New())
	app.Use(cors.New())
	app.Use(compress.New())
	if env == "development" {
		app.Use(logger.New())
	}

	// --- Routes ---
	app.Get("/", handleRoot)

	api := app.Group("/api")
	api.Get("/health", handleHealth)
	productHandler.RegisterRoutes(api)
	clientHandler.RegisterRoutes(api)
	invoiceHandler.RegisterRoutes(api)
	authHandler.RegisterRoutes(api)
	api.Post("/upload-to-cloud", uploadHandler.HandleUpload)

	// Unmatched routes get the standard error envelope.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(handlers.Response{
			Success: false,
			Error:   "route not found",
		})
	})

	return app, authService, nil
}

// newErrorHandler converts unexpected faults into a 500 envelope. The stack
// is included only outside production.
func newErrorHandler(env string) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		}
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)

		body := handlers.Response{Success: false, Error: err.Error()}
		if env == "development" {
			body.Stack = string(debug.Stack())
		}
		return c.Status(code).JSON(body)
	}
}

// handleRoot is the static service descriptor.
func handleRoot(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Invoice management API",
		"version": "1.0.0",
		"endpoints": fiber.Map{
			"health":   "/api/health",
			"products": "/api/products",
			"clients":  "/api/clients",
			"invoices": "/api/invoices",
			"auth":     "/api/auth",
			"upload":   "POST /api/upload-to-cloud",
		},
	})
}

// handleHealth is the liveness probe.
func handleHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    "OK",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).Seconds(),
	})
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}

	app, _, err := NewApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	appPort := viper.GetString("APP_PORT")
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
