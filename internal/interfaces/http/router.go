package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"parley/internal/application/support/usecases"
	"parley/internal/application/translation"
	"parley/internal/infrastructure/auth"
	"parley/internal/infrastructure/config"
	"parley/internal/infrastructure/nonce"
	"parley/internal/infrastructure/repository"
	"parley/internal/infrastructure/translate"
	supporthandlers "parley/internal/interfaces/http/handlers/support"
	"parley/internal/interfaces/http/middleware"
	"parley/internal/interfaces/http/routes"
	"parley/internal/shared/db"
	"parley/internal/shared/id"
	"parley/internal/shared/keymutex"
	"parley/internal/shared/logger"
	"parley/internal/shared/services/sanitize"
)

// Router wires the support desk HTTP surface together.
type Router struct {
	engine *gin.Engine
	server *http.Server
	log    logger.Interface
}

func NewRouter(cfg *config.Config, gdb *gorm.DB, redisClient *redis.Client, log logger.Interface) *Router {
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.Recovery())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ticketRepo := repository.NewTicketRepository(gdb)
	msgRepo := repository.NewMessageRepository(gdb)
	notifRepo := repository.NewNotificationRepository(gdb)
	directoryRepo := repository.NewDirectoryRepository(gdb)

	txManager := db.NewTransactionManager(gdb)
	locker := keymutex.New()
	sanitizer := sanitize.NewService()
	idGenerator := id.NewUUIDGenerator()

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	nonceStore := nonce.NewRedisStore(redisClient)

	detector := translation.NewHeuristicDetector()
	throttle := translation.NewThrottle(time.Duration(cfg.Translate.MinIntervalMS) * time.Millisecond)
	translateClient := translate.NewMyMemoryClient(&cfg.Translate, log)
	translator := translation.NewService(detector, translateClient, throttle, log)

	userHandler := supporthandlers.NewUserHandler(
		usecases.NewGetTicketUseCase(ticketRepo, msgRepo, notifRepo, log),
		usecases.NewPostMessageUseCase(ticketRepo, msgRepo, notifRepo, txManager, locker, sanitizer, log),
		usecases.NewMarkReadUseCase(ticketRepo, msgRepo, notifRepo, log),
		usecases.NewUnreadCountUseCase(ticketRepo, msgRepo, notifRepo, log),
		translator,
		nonceStore,
	)

	adminHandler := supporthandlers.NewAdminHandler(
		usecases.NewListTicketsUseCase(ticketRepo, msgRepo, notifRepo, directoryRepo, log),
		usecases.NewGetAdminTicketUseCase(ticketRepo, msgRepo, directoryRepo, log),
		usecases.NewAdminReplyUseCase(ticketRepo, msgRepo, notifRepo, txManager, sanitizer, log),
		usecases.NewCloseTicketUseCase(ticketRepo, log),
		usecases.NewDeleteTicketUseCase(ticketRepo, msgRepo, notifRepo, txManager, log),
		usecases.NewChangeStatusUseCase(ticketRepo, log),
		usecases.NewBroadcastUseCase(
			ticketRepo, msgRepo, notifRepo, directoryRepo,
			txManager, locker, sanitizer, idGenerator,
			cfg.Support.BroadcastBatchSize, log,
		),
	)

	routes.SetupSupportRoutes(engine, &routes.SupportRouteConfig{
		UserHandler:     userHandler,
		AdminHandler:    adminHandler,
		AuthMiddleware:  middleware.NewAuthMiddleware(jwtService, log),
		NonceMiddleware: middleware.NewNonceMiddleware(nonceStore, log),
	})

	return &Router{engine: engine, log: log}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server and blocks until it stops.
func (r *Router) Run(addr string) error {
	r.server = &http.Server{
		Addr:              addr,
		Handler:           r.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	r.log.Infow("starting http server", "addr", addr)
	if err := r.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests before stopping.
func (r *Router) Shutdown(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	return r.server.Shutdown(ctx)
}
