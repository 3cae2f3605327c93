package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/tesuto-go-api/internal/config"
	"github.com/noah-isme/tesuto-go-api/internal/database"
	"github.com/noah-isme/tesuto-go-api/internal/handler"
	"github.com/noah-isme/tesuto-go-api/internal/middleware"
	"github.com/noah-isme/tesuto-go-api/internal/models"
	"github.com/noah-isme/tesuto-go-api/internal/repository"
	"github.com/noah-isme/tesuto-go-api/internal/router"
	"github.com/noah-isme/tesuto-go-api/internal/service"
	"github.com/noah-isme/tesuto-go-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Subject{}, &models.Topic{}, &models.Assignment{}, &models.Problem{}, &models.ActivityLog{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	}

	generator, err := buildGenerator(cfg, logger)
	if err != nil {
		log.Fatalf("failed to create generator: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	activityService := service.NewActivityService(activityRepo, logger)
	userService := service.NewUserService(userRepo, validate, activityService, logger)
	subjectService := service.NewSubjectService(subjectRepo, validate, activityService, logger)
	assignmentService := service.NewAssignmentService(assignmentRepo, validate, activityService, logger)
	generatorService := service.NewGeneratorService(generator, validate, cfg.GeneratorTimeout, logger)
	overviewService := service.NewOverviewService(userRepo, subjectRepo, assignmentRepo, redisClient, cfg.OverviewCacheTTL, logger)
	seedService := service.NewSeedService(userRepo, subjectRepo, cfg.SeedEnabled, cfg.SeedToken, logger)

	userHandler := handler.NewUserHandler(userService, overviewService, activityService, logger)
	subjectHandler := handler.NewSubjectHandler(subjectService, logger)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, logger)
	generatorHandler := handler.NewGeneratorHandler(generatorService, logger)
	seedHandler := handler.NewSeedHandler(seedService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger, CorsOrigins: cfg.CorsOrigins})
	router.Register(app, cfg, router.Dependencies{
		UserHandler:       userHandler,
		SubjectHandler:    subjectHandler,
		AssignmentHandler: assignmentHandler,
		GeneratorHandler:  generatorHandler,
		SeedHandler:       seedHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func buildGenerator(cfg config.Config, logger zerolog.Logger) (ai.Generator, error) {
	if cfg.GeneratorProvider == "openai" {
		return ai.NewOpenAIGenerator(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		})
	}

	return ai.NewStaticGenerator(ai.StaticConfig{
		Delay:  cfg.GeneratorDelay,
		Logger: logger,
	}), nil
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
