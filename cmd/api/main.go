package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PavaniTiago/cck-survey-api/internal/application/usecases"
	"github.com/PavaniTiago/cck-survey-api/internal/domain/repositories"
	"github.com/PavaniTiago/cck-survey-api/internal/infrastructure/cache"
	"github.com/PavaniTiago/cck-survey-api/internal/infrastructure/config"
	"github.com/PavaniTiago/cck-survey-api/internal/infrastructure/database"
	"github.com/PavaniTiago/cck-survey-api/internal/infrastructure/logger"
	"github.com/PavaniTiago/cck-survey-api/internal/infrastructure/sheets"
	"github.com/PavaniTiago/cck-survey-api/internal/interfaces/http/middleware"
	"github.com/PavaniTiago/cck-survey-api/internal/interfaces/http/routes"
	"github.com/PavaniTiago/cck-survey-api/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("❌ Error creating logger: %v", err)
	}
	defer zlog.Sync() //nolint:errcheck

	location := utils.GetLocation(cfg.Survey.Timezone)

	// Arquivo de respostas opcional
	var archive repositories.ResponseArchive
	if cfg.DatabaseURL != "" {
		db, err := database.SetupDatabase(cfg.DatabaseURL, cfg.Survey.Timezone)
		if err != nil {
			log.Fatalf("❌ Error setting up database: %v", err)
		}
		archive = repositories.NewResponseRepository(db, location)
		log.Println("🗄️ Response archive enabled")
	}

	secrets, err := config.LoadSecretFile(cfg.SecretsFile)
	if err != nil {
		log.Fatalf("❌ Error reading secrets file: %v", err)
	}

	resolver := sheets.NewResolver(secrets, zlog.Named("credentials"))
	if cfg.Sheets.HaltOnCredentialFailure {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, err := resolver.Resolve(ctx)
		cancel()
		if err != nil {
			log.Fatalf("❌ No se encontraron credenciales válidas: %v", err)
		}
	}

	connector := sheets.NewConnector(resolver, sheets.ConnectorConfig{
		SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		SpreadsheetName: cfg.Sheets.SpreadsheetName,
		WorksheetTitle:  cfg.Sheets.WorksheetTitle,
	}, zlog.Named("sheets"))

	persist := usecases.NewPersistUseCase(connector, archive, location, zlog.Named("persist"))
	flow := usecases.NewFlowUseCase(usecases.FlowConfig{
		TotalEvents:   cfg.Survey.TotalEvents,
		StrictAnswers: cfg.Survey.StrictAnswers,
	}, connector, persist, zlog.Named("flow"))

	sessions := cache.NewSessionStore(cfg.Survey.SessionTTL)

	// Configure Fiber for better performance
	app := fiber.New(fiber.Config{
		Concurrency: 256 * 1024,
		// Desabilitado modo Prefork pois as sessões ficam em memória
		Prefork: false,
		// Set reasonable body limit
		BodyLimit: 1 * 1024 * 1024, // 1MB
		// O salvamento faz várias chamadas à API do Google
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	// Setup middleware
	middleware.SetupMiddlewares(app, cfg.CORSOrigins)

	// Setup routes
	routes.SetupRoutes(app, routes.Dependencies{
		Flow:       flow,
		Sessions:   sessions,
		SessionTTL: cfg.Survey.SessionTTL,
		Sheets:     connector,
		Archive:    archive,
		Logger:     zlog,
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zlog.Error("erro ao encerrar o servidor", zap.Error(err))
		}
	}()

	// Start server
	log.Printf("🚀 Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
