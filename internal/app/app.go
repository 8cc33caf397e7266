package app

import (
	"context"
	"log"
	"net/http"
	"numiviz_backend/internal/config"
	"numiviz_backend/internal/controller"
	"numiviz_backend/internal/repository"
	"numiviz_backend/internal/service"
	"numiviz_backend/internal/util"
	"numiviz_backend/pkg/database"
	"numiviz_backend/pkg/logger"
	"numiviz_backend/pkg/monitoring"
	"numiviz_backend/pkg/security"
	"numiviz_backend/pkg/tracing"
	"os"
	"os/signal"
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
	user     *repository.UserRepository
	module   *repository.ModuleRepository
	lesson   *repository.LessonRepository
	exercise *repository.ExerciseRepository
	quiz     *repository.QuizRepository
	progress *repository.ProgressRepository
	event    *repository.EventRepository
	history  *repository.HistoryRepository
}

type services struct {
	auth      *service.AuthService
	user      *service.UserService
	storage   *service.StorageService
	module    *service.ModuleService
	lesson    *service.LessonService
	exercise  *service.ExerciseService
	exam      *service.ExamService
	quiz      *service.QuizService
	progress  *service.ProgressService
	matrix    *service.MatrixService
	nonlinear *service.NonlinearService
	linear2x2 *service.Linear2x2Service
	media     *service.MediaService
	dashboard *service.DashboardService
	event     *service.EventService
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	module    *controller.ModuleController
	lesson    *controller.LessonController
	exercise  *controller.ExerciseController
	quiz      *controller.QuizController
	progress  *controller.ProgressController
	solver    *controller.SolverController
	media     *controller.MediaController
	event     *controller.EventController
	dashboard *controller.DashboardController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		module:   repository.NewModuleRepository(db),
		lesson:   repository.NewLessonRepository(db),
		exercise: repository.NewExerciseRepository(db),
		quiz:     repository.NewQuizRepository(db),
		progress: repository.NewProgressRepository(db),
		event:    repository.NewEventRepository(db),
		history:  repository.NewHistoryRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.module = service.NewModuleService(repos.module, repos.lesson, repos.exercise)
	s.lesson = service.NewLessonService(repos.lesson, repos.exercise)
	s.exercise = service.NewExerciseService(repos.exercise)
	s.exam = service.NewExamService(repos.exercise)
	s.quiz = service.NewQuizService(repos.quiz)
	s.progress = service.NewProgressService(repos.progress, repos.lesson, repos.quiz, rdb)
	s.matrix = service.NewMatrixService()
	s.nonlinear = service.NewNonlinearService()
	s.linear2x2 = service.NewLinear2x2Service(repos.history)
	s.media = service.NewMediaService(cfg, s.storage, rdb)
	s.dashboard = service.NewDashboardService(repos.user, repos.module, repos.quiz)
	s.event = service.NewEventService(repos.event)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		user:      controller.NewUserController(s.user),
		module:    controller.NewModuleController(s.module, s.quiz),
		lesson:    controller.NewLessonController(s.lesson, s.progress),
		exercise:  controller.NewExerciseController(s.exercise, s.exam),
		quiz:      controller.NewQuizController(s.quiz),
		progress:  controller.NewProgressController(s.progress),
		solver:    controller.NewSolverController(s.matrix, s.nonlinear, s.linear2x2),
		media:     controller.NewMediaController(s.media),
		event:     controller.NewEventController(s.event),
		dashboard: controller.NewDashboardController(s.dashboard),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	// Publication des leçons planifiées arrivées à échéance
	go func() {
		ticker := time.NewTicker(time.Minute)
		for range ticker.C {
			if err := s.lesson.ProcessScheduledPublishes(); err != nil {
				logger.Log.Error("scheduled publish error", zap.Error(err))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Le cache est optionnel, le serveur démarre sans lui
		logger.Log.Warn("Redis unavailable, cache disabled", zap.Error(err))
		rdb = nil
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
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("numiviz-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// Vidéos Manim pré-rendues, servies telles quelles
	if cfg.Media.ManimRoot != "" {
		router.Static("/media/videos", cfg.Media.ManimRoot)
	}

	app.startBackgroundTasks(services)

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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
