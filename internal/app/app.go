package app

import (
	"atomic_sensei_backend/internal/config"
	"atomic_sensei_backend/internal/controller"
	"atomic_sensei_backend/internal/llm"
	"atomic_sensei_backend/internal/repository"
	"atomic_sensei_backend/internal/service"
	"atomic_sensei_backend/pkg/configwatcher"
	"atomic_sensei_backend/pkg/database"
	"atomic_sensei_backend/pkg/logger"
	"atomic_sensei_backend/pkg/monitoring"
	"atomic_sensei_backend/pkg/security"
	"atomic_sensei_backend/pkg/tracing"
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// reminderInterval is how often due timers are turned into notifications.
const reminderInterval = time.Minute

type App struct {
	Config *config.Config
	// ConfigDir is watched for changes while the server runs. Empty
	// disables hot reload.
	ConfigDir string

	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	roadmap    *repository.RoadmapRepository
	content    *repository.ContentRepository
	quiz       *repository.QuizRepository
	quizResult *repository.QuizResultRepository
	timer      *repository.TimerRepository
}

type services struct {
	scheduler     *service.IntervalScheduler
	ai            *service.AIService
	storage       *service.StorageService
	cache         *service.ContentCache
	notifications *service.NotificationService
	auth          *service.AuthService
	user          *service.UserService
	roadmap       *service.RoadmapService
	content       *service.ContentService
	timer         *service.TimerService
	quiz          *service.QuizService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	roadmap      *controller.RoadmapController
	content      *controller.ContentController
	quiz         *controller.QuizController
	timer        *controller.TimerController
	notification *controller.NotificationController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		roadmap:    repository.NewRoadmapRepository(db),
		content:    repository.NewContentRepository(db),
		quiz:       repository.NewQuizRepository(db),
		quizResult: repository.NewQuizResultRepository(db),
		timer:      repository.NewTimerRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client, provider llm.Provider) *services {
	s := &services{}

	s.scheduler = service.NewIntervalScheduler(cfg.Schedule)
	s.ai = service.NewAIService(provider, s.scheduler, cfg.AI)
	s.storage = service.NewStorageService(&cfg.Storage)
	s.cache = service.NewContentCache(rdb, time.Duration(cfg.ContentCache.TTLMinutes)*time.Minute)
	s.notifications = service.NewNotificationService(rdb, cfg.Notifications.MaxItems)

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.roadmap = service.NewRoadmapService(repos.roadmap, repos.user, repos.content, s.ai, s.storage, s.cache)
	s.content = service.NewContentService(repos.content, repos.roadmap, repos.user, s.ai, s.cache, cfg.Media.ProbeVideo)
	s.timer = service.NewTimerService(
		repos.timer,
		repos.roadmap,
		repos.content,
		repos.quiz,
		repos.quizResult,
		repos.user,
		s.ai,
		s.notifications,
		s.scheduler,
	)
	s.quiz = service.NewQuizService(
		repos.quiz,
		repos.quizResult,
		repos.content,
		repos.roadmap,
		repos.user,
		s.ai,
		s.timer,
		s.notifications,
	)

	a.RegisterConfigCallback(func(c *config.Config) {
		s.scheduler.Update(c.Schedule)
		logger.Log.Info("Schedule settings applied",
			zap.Int("lowScoreMinutes", c.Schedule.LowScoreMinutes),
			zap.Int("basePassMinutes", c.Schedule.BasePassMinutes))
	})

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		roadmap:      controller.NewRoadmapController(s.roadmap),
		content:      controller.NewContentController(s.content),
		quiz:         controller.NewQuizController(s.quiz),
		timer:        controller.NewTimerController(s.timer),
		notification: controller.NewNotificationController(s.notifications),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// dispatchReminders runs until ctx is cancelled.
func (a *App) dispatchReminders(ctx context.Context, s *services) {
	ticker := time.NewTicker(reminderInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sent, err := s.timer.DispatchDueNotifications(ctx)
			if err != nil {
				logger.Log.Error("Reminder dispatch failed", zap.Error(err))
				continue
			}
			if sent > 0 {
				logger.Log.Info("Reminders dispatched", zap.Int("count", sent))
			}
		}
	}
}

// Migrate opens the configured database and brings its schema up to date.
func Migrate(cfg *config.Config) error {
	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		return err
	}
	return database.Migrate(db)
}

// NewApp connects to the database, Redis and the configured model backend
// and builds the HTTP router.
func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	provider, err := llm.NewProvider(context.Background(), cfg.AI)
	if err != nil {
		// Every AI feature has a placeholder path, so the API stays usable.
		logger.Log.Warn("AI provider unavailable, serving placeholder content",
			zap.String("provider", cfg.AI.Provider), zap.Error(err))
		provider = llm.WithInstrumentation(llm.NewMockProvider())
	}

	app := newApp(cfg, db, rdb, provider)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	if cfg.Storage.Type == "local" {
		app.Router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

// newApp wires repositories, services and routes over already open
// connections.
func newApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client, provider llm.Provider) *App {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, rdb, provider)
	controllers := app.initControllers(app.services, db, rdb)

	monitoring.Init()

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, repos, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.dispatchReminders(ctx, a.services)

	if a.ConfigDir != "" {
		watcher := configwatcher.New(a.ConfigDir, a.applyConfig)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Log.Warn("Config hot reload disabled", zap.Error(err))
			}
		}()
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if err := a.Redis.Close(); err != nil {
		logger.Log.Warn("Failed to close redis", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
	_ = logger.Log.Sync()
}
