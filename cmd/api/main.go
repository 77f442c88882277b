// @title Stat Practice API
// @version 1.0
// @description LLM-backed statistics practice service.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"stat-practice/internal/adapter"
	"stat-practice/internal/adapter/genai"
	"stat-practice/internal/cache"
	"stat-practice/internal/config"
	"stat-practice/internal/database"
	"stat-practice/internal/domain"
	"stat-practice/internal/handler"
	"stat-practice/internal/logger"
	"stat-practice/internal/middleware"
	"stat-practice/internal/repository"
	"stat-practice/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.DB.URL)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize the Gemini client and the adapters built on it
	gemini, err := genai.NewGeminiClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		appLogger.Fatal("Failed to create Gemini client", zap.Error(err))
	}
	generator := genai.NewQuestionGenerator(gemini)
	evaluator := genai.NewAnswerEvaluator(gemini)
	suggester := genai.NewPatternSuggester(gemini)

	// Redis is optional: without it catalog listings hit the database
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("RedisCacheAdapter initialized", zap.String("address", cfg.Redis.Address))
	} else {
		appLogger.Warn("Redis address not configured, catalog caching disabled")
	}

	// Initialize repositories
	topicRepository := repository.NewSQLXTopicRepository(db)
	patternRepository := repository.NewSQLXPatternRepository(db)
	questionRepository := repository.NewSQLXQuestionRepository(db)
	attemptRepository := repository.NewSQLXAttemptRepository(db)

	// Initialize services
	catalogService := service.NewCatalogService(topicRepository, patternRepository, suggester, cacheAdapter, cfg.Cache.CatalogTTL)
	questionService := service.NewQuestionService(questionRepository, topicRepository, patternRepository, generator)
	practiceService := service.NewPracticeService(questionRepository, attemptRepository, evaluator)

	// Initialize handlers
	studentHandler := handler.NewStudentHandler(catalogService, questionService, practiceService)
	instructorHandler := handler.NewInstructorHandler(catalogService, questionService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	apiGroup := app.Group("/api")

	// Student routes
	studentGroup := apiGroup.Group("/student")
	studentGroup.Get("/topics", studentHandler.GetTopics)
	studentGroup.Get("/topics/:topicID/patterns", studentHandler.GetPatterns)
	studentGroup.Get("/patterns/:patternID/questions", studentHandler.GetQuestionSummaries)
	studentGroup.Get("/questions/:id", studentHandler.GetQuestion)
	studentGroup.Post("/questions/next", studentHandler.GetNextQuestion)
	studentGroup.Post("/attempts", studentHandler.SubmitAnswer)
	studentGroup.Post("/attempts/remark", studentHandler.UpdateRemark)

	// Instructor routes
	instructorGroup := apiGroup.Group("/instructor")
	instructorGroup.Post("/patterns/suggest", instructorHandler.SuggestPatterns)
	instructorGroup.Post("/patterns", instructorHandler.SavePatterns)
	instructorGroup.Post("/questions/generate", instructorHandler.GenerateQuestions)
	instructorGroup.Post("/questions", instructorHandler.SaveQuestions)
	instructorGroup.Put("/topics/:id/approach", instructorHandler.UpdateTopicApproach)
	instructorGroup.Put("/patterns/:id/approach", instructorHandler.UpdatePatternApproach)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
