package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"seangkatan_backend/internal/config"
	"seangkatan_backend/internal/controller"
	"seangkatan_backend/internal/repository"
	"seangkatan_backend/internal/service"
	"seangkatan_backend/pkg/configwatcher"
	"seangkatan_backend/pkg/database"
	"seangkatan_backend/pkg/logger"
	"seangkatan_backend/pkg/monitoring"
	"seangkatan_backend/pkg/security"
	"seangkatan_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user    *repository.UserRepository
	class   *repository.ClassRepository
	event   *repository.EventRepository
	quiz    *repository.QuizRepository
	attempt *repository.AttemptRepository
	badge   *repository.BadgeRepository
	post    *repository.PostRepository
	album   *repository.AlbumRepository
	chat    *repository.ChatRepository
}

type services struct {
	auth    *service.AuthService
	storage *service.StorageService
	class   *service.ClassService
	event   *service.EventService
	quiz    *service.QuizService
	badge   *service.BadgeService
	attempt *service.AttemptService
	post    *service.PostService
	album   *service.AlbumService
	chat    *service.ChatService
	chatHub *service.ChatHub
}

type controllers struct {
	auth    *controller.AuthController
	class   *controller.ClassController
	event   *controller.EventController
	quiz    *controller.QuizController
	attempt *controller.AttemptController
	badge   *controller.BadgeController
	post    *controller.PostController
	album   *controller.AlbumController
	chat    *controller.ChatController
	health  *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		class:   repository.NewClassRepository(db),
		event:   repository.NewEventRepository(db),
		quiz:    repository.NewQuizRepository(db),
		attempt: repository.NewAttemptRepository(db),
		badge:   repository.NewBadgeRepository(db),
		post:    repository.NewPostRepository(db),
		album:   repository.NewAlbumRepository(db),
		chat:    repository.NewChatRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.class = service.NewClassService(repos.class, repos.user)
	s.event = service.NewEventService(repos.event)
	s.quiz = service.NewQuizService(repos.quiz)
	s.badge = service.NewBadgeService(repos.badge, repos.attempt)
	s.attempt = service.NewAttemptService(repos.attempt, repos.quiz, s.badge)
	s.post = service.NewPostService(repos.post)
	s.album = service.NewAlbumService(repos.album, s.storage)

	s.chatHub = service.NewChatHub(rdb, repos.chat)
	go s.chatHub.Run()

	s.chat = service.NewChatService(repos.chat, s.chatHub)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client, cfg *config.Config) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth),
		class:   controller.NewClassController(s.class),
		event:   controller.NewEventController(s.event),
		quiz:    controller.NewQuizController(s.quiz),
		attempt: controller.NewAttemptController(s.attempt),
		badge:   controller.NewBadgeController(s.badge),
		post:    controller.NewPostController(s.post, s.storage, cfg.Upload.MaxFileSizeMB),
		album:   controller.NewAlbumController(s.album, cfg.Upload.MaxFileSizeMB),
		chat:    controller.NewChatController(s.chat, s.chatHub),
		health:  controller.NewHealthController(db, rdb),
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

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized")

	gin.SetMode(func() string {
		if cfg.Server.Mode == "release" {
			return gin.ReleaseMode
		}
		return gin.DebugMode
	}())

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	svcs := app.initServices(repos, cfg, rdb)
	app.services = svcs
	ctrls := app.initControllers(svcs, db, rdb, cfg)

	monitoring.Init()

	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("seangkatan", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Configuration reloaded",
			zap.Strings("cors_origins", newCfg.CORS.AllowedOrigins))
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if a.services != nil && a.services.chatHub != nil {
		a.services.chatHub.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
