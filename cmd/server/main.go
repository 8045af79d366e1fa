package main

import (
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/design-evaluator/internal/config"
	"github.com/fadilmartias/design-evaluator/internal/domain/fiber/handler"
	"github.com/fadilmartias/design-evaluator/internal/middleware"
	"github.com/fadilmartias/design-evaluator/internal/model"
	"github.com/fadilmartias/design-evaluator/internal/repository"
	"github.com/fadilmartias/design-evaluator/internal/service"
	"github.com/fadilmartias/design-evaluator/internal/session"
	"github.com/fadilmartias/design-evaluator/internal/usecase"
	"github.com/fadilmartias/design-evaluator/internal/workflow"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	evaluatorConfig := config.LoadEvaluatorConfig()

	evaluationRepo := newEvaluationRepository()

	// The JSON API always scores in-process; the browser workflow uses the
	// configured evaluator, which may point back at another instance's API.
	uc := usecase.NewEvaluationUsecase(evaluationRepo, service.NewMockEvaluator(0))

	evaluator, err := service.NewEvaluator(evaluatorConfig)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Workflow evaluator: %s", evaluatorConfig.Mode)

	sessions := session.NewManager(func(n workflow.Notifier) (*workflow.Controller, error) {
		return workflow.NewController(evaluator, n)
	}, appConfig.SessionIdleTTL)
	sessions.Start(time.Minute)

	workflowHandler := handler.NewWorkflowHandler(sessions, appConfig.Name, appConfig.UploadMaxBytes)

	app := fiber.New(fiber.Config{
		AppName:      appConfig.Name,
		BodyLimit:    handler.BodyLimit(appConfig.UploadMaxBytes),
		ErrorHandler: handler.NewErrorHandler(workflowHandler, appConfig.UploadMaxBytes),
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(120, 1*time.Minute))

	handler.NewEvaluateHandler(uc, appConfig.UploadMaxBytes).RegisterRoutes(app)
	workflowHandler.RegisterRoutes(app)

	// Monitor goroutine count
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			log.Printf("Active goroutines: %d, sessions: %d", runtime.NumGoroutine(), sessions.Len())
		}
	}()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down")
		sessions.Stop()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func newEvaluationRepository() repository.EvaluationRepositoryInterface {
	if !config.LoadDBConfig().Enabled() {
		log.Println("DB_HOST not set, keeping evaluations in memory")
		return repository.NewMemoryEvaluationRepository()
	}
	return repository.NewEvaluationRepository(ConnectDB())
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if !appConfig.IsProduction() {
		pgDB.SetMaxIdleConns(2)
		pgDB.SetMaxOpenConns(5)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(10)
		pgDB.SetMaxOpenConns(50)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.EvaluationRecord{}); err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
