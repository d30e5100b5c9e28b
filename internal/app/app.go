package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roadmap_learner_backend/internal/config"
	"roadmap_learner_backend/internal/controller"
	"roadmap_learner_backend/internal/repository"
	"roadmap_learner_backend/internal/service"
	"roadmap_learner_backend/pkg/database"
	"roadmap_learner_backend/pkg/logger"
	"roadmap_learner_backend/pkg/monitoring"
	"roadmap_learner_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	// repositories
	userRepo    *repository.UserRepository
	roadmapRepo *repository.RoadmapRepository
	blockRepo   *repository.BlockRepository
	cardRepo    *repository.CardRepository
	sessionRepo *repository.SessionRepository

	// services
	accessService  *service.AccessService
	authService    *service.AuthService
	userService    *service.UserService
	roadmapService *service.RoadmapService
	blockService   *service.BlockService
	cardService    *service.CardService
	sessionService *service.SessionService

	// controllers
	authController    *controller.AuthController
	userController    *controller.UserController
	roadmapController *controller.RoadmapController
	blockController   *controller.BlockController
	cardController    *controller.CardController
	sessionController *controller.SessionController
	adminController   *controller.AdminController
	healthController  *controller.HealthController
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	// release 模式默认不迁移，--migrate 强制
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			// 缓存不可用时降级为直连数据库
			logger.Log.Warn("redis unavailable, caching disabled", zap.Error(err))
			rdb = nil
		}
	}

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("roadmap-learner", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Warn("tracing init failed", zap.Error(err))
		}
	}

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	app.initRepositories()
	app.initServices()
	app.initControllers()
	app.Router = app.setupRouter()

	return app, nil
}

func (a *App) initRepositories() {
	a.userRepo = repository.NewUserRepository(a.DB)
	a.roadmapRepo = repository.NewRoadmapRepository(a.DB, a.Redis, a.Config.Cache.TTL())
	a.blockRepo = repository.NewBlockRepository(a.DB)
	a.cardRepo = repository.NewCardRepository(a.DB)
	a.sessionRepo = repository.NewSessionRepository(a.DB)
}

func (a *App) initServices() {
	a.accessService = service.NewAccessService(a.roadmapRepo, a.blockRepo, a.cardRepo)
	a.authService = service.NewAuthService(a.userRepo, a.Config)
	a.userService = service.NewUserService(a.userRepo, a.accessService)
	a.roadmapService = service.NewRoadmapService(a.roadmapRepo, a.accessService)
	a.blockService = service.NewBlockService(a.blockRepo, a.accessService)
	a.cardService = service.NewCardService(a.cardRepo, a.accessService)
	a.sessionService = service.NewSessionService(a.sessionRepo, a.accessService, a.Config)
}

func (a *App) initControllers() {
	a.authController = controller.NewAuthController(a.authService)
	a.userController = controller.NewUserController(a.userService, a.authService)
	a.roadmapController = controller.NewRoadmapController(a.roadmapService, a.authService)
	a.blockController = controller.NewBlockController(a.blockService, a.authService)
	a.cardController = controller.NewCardController(a.cardService, a.authService)
	a.sessionController = controller.NewSessionController(a.sessionService, a.cardService, a.authService)
	a.adminController = controller.NewAdminController(a.userService, a.roadmapService, a.blockService, a.cardService, a.sessionService)
	a.healthController = controller.NewHealthController(a.DB)
}

// Reload 应用可热更新的配置项
func (a *App) Reload(cfg *config.Config) {
	a.Config.Session = cfg.Session
	a.Config.RateLimit = cfg.RateLimit
	logger.Log.Info("config reloaded")
}

// Run 启动 HTTP 服务并在收到信号后优雅退出
func (a *App) Run() error {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("server starting", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if a.Redis != nil {
		_ = a.Redis.Close()
	}

	logger.Log.Info("server exited")
	return nil
}
