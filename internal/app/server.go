// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"tryout-admin-service/internal/config"
	"tryout-admin-service/internal/db"
	adminHandler "tryout-admin-service/internal/handlers/admin"
	authHandler "tryout-admin-service/internal/handlers/auth"
	catalogHandler "tryout-admin-service/internal/handlers/catalog"
	questionHandler "tryout-admin-service/internal/handlers/question"
	subscriptionHandler "tryout-admin-service/internal/handlers/subscription"
	transactionHandler "tryout-admin-service/internal/handlers/transaction"
	tryoutHandler "tryout-admin-service/internal/handlers/tryout"
	"tryout-admin-service/internal/middleware"
	"tryout-admin-service/internal/pkg/session"
	"tryout-admin-service/internal/pkg/token"
	"tryout-admin-service/internal/repository/postgres"
	"tryout-admin-service/internal/service/activity"
	authUsecase "tryout-admin-service/internal/service/auth"
	catalogUsecase "tryout-admin-service/internal/service/catalog"
	questionUsecase "tryout-admin-service/internal/service/question"
	subscriptionUsecase "tryout-admin-service/internal/service/subscription"
	transactionUsecase "tryout-admin-service/internal/service/transaction"
	tryoutUsecase "tryout-admin-service/internal/service/tryout"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB()
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("[REDIS] connected")

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- Session token manager -----
	tokenManager, err := token.NewManager(s.cfg.Session)
	if err != nil {
		return fmt.Errorf("failed to build token manager: %w", err)
	}

	sessionManager := session.NewManager(redisClient)
	rateLimiter := session.NewRateLimiter(redisClient)

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(pool)
	adminRepo := postgres.NewAdminRepository(pool)
	activityRepo := postgres.NewActivityLogRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	packageRepo := postgres.NewPackageRepository(pool)
	tryoutRepo := postgres.NewTryoutRepository(pool)
	tryoutSessionRepo := postgres.NewTryoutSessionRepository(pool)
	questionRepo := postgres.NewQuestionRepository(pool)
	subChapterRepo := postgres.NewSubChapterRepository(pool)
	subscriptionTypeRepo := postgres.NewSubscriptionTypeRepository(pool)
	userSubscriptionRepo := postgres.NewUserSubscriptionRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)

	// ----- Services -----
	authService := authUsecase.NewAuthService(adminRepo, sessionManager, rateLimiter, tokenManager, logger)
	activityService := activity.NewService(activityRepo, logger)
	catalogService := catalogUsecase.NewService(categoryRepo, packageRepo, logger)
	tryoutService := tryoutUsecase.NewService(tryoutRepo, tryoutSessionRepo, categoryRepo, packageRepo, logger)
	questionService := questionUsecase.NewService(questionRepo, subChapterRepo, dbWrapper, logger)

	reconciler := subscriptionUsecase.NewReconciler(subscriptionTypeRepo, userSubscriptionRepo, transactionRepo, logger)
	subscriptionService := subscriptionUsecase.NewService(subscriptionTypeRepo, userSubscriptionRepo, reconciler, dbWrapper, logger)
	transactionService := transactionUsecase.NewService(transactionRepo, subscriptionTypeRepo, reconciler, dbWrapper, logger)

	// ----- Super admin bootstrap -----
	bootCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := authService.EnsureSuperAdminExists(bootCtx, s.cfg.SuperAdminEmail, s.cfg.SuperAdminPassword, s.cfg.SuperAdminName); err != nil {
		logger.Error("failed to seed super admin", zap.Error(err))
	}

	// ----- Handlers -----
	cookieCfg := authHandler.CookieConfig{
		Name:   s.cfg.CookieName,
		Domain: s.cfg.CookieDomain,
		Secure: s.cfg.CookieSecure,
	}
	authHandlerInst := authHandler.NewAuthHandler(authService, cookieCfg)
	adminHandlerInst := adminHandler.NewAdminHandler(authService, activityService)
	catalogHandlerInst := catalogHandler.NewCatalogHandler(catalogService, activityService)
	tryoutHandlerInst := tryoutHandler.NewTryoutHandler(tryoutService, activityService)
	questionHandlerInst := questionHandler.NewQuestionHandler(questionService, activityService)
	subscriptionHandlerInst := subscriptionHandler.NewSubscriptionHandler(subscriptionService, activityService)
	transactionHandlerInst := transactionHandler.NewTransactionHandler(transactionService, activityService)

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(s.cfg.CORSOrigin),
	)

	authMW := middleware.AuthMiddleware(s.cfg.CookieName, tokenManager, sessionManager, logger)

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:         authHandlerInst,
		AdminHandler:        adminHandlerInst,
		CatalogHandler:      catalogHandlerInst,
		TryoutHandler:       tryoutHandlerInst,
		QuestionHandler:     questionHandlerInst,
		SubscriptionHandler: subscriptionHandlerInst,
		TransactionHandler:  transactionHandlerInst,
		AuthMiddleware:      authMW,
	}
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
