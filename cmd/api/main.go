package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/ats-scorer/internal/config"
	"alfredoptarigan/ats-scorer/internal/handlers"
	"alfredoptarigan/ats-scorer/internal/repositories"
	"alfredoptarigan/ats-scorer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	config.SetupLogger(cfg.Server.Env, cfg.Server.LogLevel)
	log.Info().Str("env", cfg.Server.Env).Msg("✅ Config loaded successfully")

	criteria, err := cfg.Scoring.Criteria()
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to load scoring criteria")
	}
	log.Info().
		Int("keywords", len(criteria.Keywords)).
		Int("sections", len(criteria.Sections)).
		Bool("file_type_from_format", cfg.Scoring.FileTypeFromFormat).
		Bool("clamp_total", cfg.Scoring.ClampTotal).
		Msg("✅ Scoring criteria loaded")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to initialize database")
	}

	docRepo := repositories.NewDocumentRepository(db)
	scoreRepo := repositories.NewScoreRepository(db)

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to create upload directory")
	}

	calculator := services.NewScoreCalculator(criteria, services.ScoreOptions{
		FileTypeFromFormat: cfg.Scoring.FileTypeFromFormat,
		ClampTotal:         cfg.Scoring.ClampTotal,
	})

	atsService := services.NewATSService(
		scoreRepo,
		docRepo,
		storageService,
		services.NewTextExtractor(),
		calculator,
	)
	log.Info().Msg("✅ Services initialized successfully")

	worker := services.NewWorker(scoreRepo, atsService, services.WorkerOptions{
		Concurrency:  cfg.Worker.Concurrency,
		QueueSize:    cfg.Worker.QueueSize,
		PollInterval: cfg.Worker.PollInterval,
		PollBatch:    cfg.Worker.PollBatch,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "ATS Resume Scorer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	handlers.RegisterRoutes(app, handlers.Handlers{
		Upload:   handlers.NewUploadHandler(docRepo, storageService, cfg.Storage.MaxFileSize),
		Score:    handlers.NewScoreHandler(atsService, cfg.Storage.MaxFileSize),
		Evaluate: handlers.NewEvaluationHandler(scoreRepo, docRepo, worker),
		Result:   handlers.NewResultHandler(scoreRepo),
		Criteria: handlers.NewCriteriaHandler(calculator),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("🛑 Shutting down server...")
		worker.Stop()
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("❌ Server forced to shutdown")
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("🚀 Server starting")

	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("❌ Failed to start server")
	}
}
