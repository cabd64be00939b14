package main

import (
	"context"
	"log"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lexapi/internal/clock"
	"lexapi/internal/config"
	"lexapi/internal/database"
	"lexapi/internal/database/migration"
	handlers "lexapi/internal/http/handler"
	"lexapi/internal/http/middleware"
	"lexapi/internal/otel"
	"lexapi/internal/repository/postgres"
	"lexapi/internal/service"
	"lexapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	clk, err := clock.New(cfg.Timezone)
	if err != nil {
		log.Fatalf("failed to load timezone: %v", err)
	}
	loc := clk.Location()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	fileStore := storage.NewFileStore(
		storage.NewLocal(cfg.Storage.LocalRoot),
		storage.NewSamba(cfg.SMB),
	)

	clientRepo := postgres.NewClientPostgres(db)
	consultationRepo := postgres.NewConsultationPostgres(db)
	documentRepo := postgres.NewDocumentPostgres(db)
	filingRepo := postgres.NewFilingPostgres(db)
	userRepo := postgres.NewUserPostgres(db)

	svcs := handlers.Services{
		Consultations: service.NewConsultationService(consultationRepo, clientRepo, clk),
		Clients:       service.NewClientService(clientRepo, consultationRepo, clk),
		Documents:     service.NewDocumentService(documentRepo, clientRepo, fileStore),
		Filings:       service.NewFilingService(filingRepo, fileStore),
		Users:         service.NewUserService(userRepo, cfg.Auth, clk),
		Images:        service.NewImageService(objStore),
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(loc))
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, db, svcs)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
