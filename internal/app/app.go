package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/config"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/controller"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/middleware"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/repository"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/service"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/configwatcher"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/database"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/logger"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/monitoring"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/security"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const scoringReloadDebounce = 500 * time.Millisecond

type App struct {
	Config  *config.Config
	Router  *gin.Engine
	DB      *gorm.DB
	Redis   *redis.Client
	Mongo   *mongo.Client
	Scoring *service.ScoringProvider

	tracer     *sdktrace.TracerProvider
	stopWatch  context.CancelFunc
	watchDone  chan struct{}
	shutdownFn []func(context.Context)
}

type repositories struct {
	user      *repository.UserRepository
	child     *repository.ChildRepository
	course    *repository.CourseRepository
	question  *repository.QuestionRepository
	education *repository.EducationRepository
	nutrition *repository.NutritionRepository
	history   repository.ChildHistoryStore
	cache     *repository.AnalyticsCache
}

type services struct {
	auth       *service.AuthService
	child      *service.ChildService
	course     *service.CourseService
	question   *service.QuestionService
	assessment *service.AssessmentService
	education  *service.EducationService
	nutrition  *service.NutritionService
}

type controllers struct {
	auth       *controller.AuthController
	child      *controller.ChildController
	course     *controller.CourseController
	question   *controller.QuestionController
	assessment *controller.AssessmentController
	education  *controller.EducationController
	nutrition  *controller.NutritionController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, mongoDB *mongo.Database) *repositories {
	repos := &repositories{
		user:      repository.NewUserRepository(db),
		child:     repository.NewChildRepository(db),
		course:    repository.NewCourseRepository(db),
		question:  repository.NewQuestionRepository(db),
		education: repository.NewEducationRepository(db),
		nutrition: repository.NewNutritionRepository(db),
		cache:     repository.NewAnalyticsCache(a.Redis, time.Duration(a.Config.Cache.TTLMinutes)*time.Minute),
	}

	if a.Config.History.Backend == config.HistoryBackendMongo {
		repos.history = repository.NewMongoHistoryStore(mongoDB)
	} else {
		repos.history = repository.NewGormHistoryStore(db)
	}
	return repos
}

func (a *App) initServices(repos *repositories) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, a.Config)
	s.child = service.NewChildService(repos.child)
	s.course = service.NewCourseService(repos.course, repos.history, s.child)
	s.question = service.NewQuestionService(repos.question)
	s.assessment = service.NewAssessmentService(repos.question, repos.history, s.child, a.Scoring)
	s.education = service.NewEducationService(repos.education, s.child, a.Scoring, repos.cache)
	s.nutrition = service.NewNutritionService(repos.nutrition, s.child, repos.cache)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		child:      controller.NewChildController(s.child),
		course:     controller.NewCourseController(s.course),
		question:   controller.NewQuestionController(s.question),
		assessment: controller.NewAssessmentController(s.assessment),
		education:  controller.NewEducationController(s.education),
		nutrition:  controller.NewNutritionController(s.nutrition),
		health:     controller.NewHealthController(a.DB, a.Redis, a.Mongo),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// connectRedis only dials Redis when the analysis cache is switched on. An
// unreachable server disables the cache rather than the service.
func (a *App) connectRedis() {
	if !a.Config.Cache.Enabled {
		logger.Log.Info("Analysis cache disabled")
		return
	}
	rdb, err := database.InitRedis(&a.Config.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, analysis cache disabled", zap.Error(err))
		return
	}
	a.Redis = rdb
	a.shutdownFn = append(a.shutdownFn, func(context.Context) {
		if err := rdb.Close(); err != nil {
			logger.Log.Error("Failed to close redis", zap.Error(err))
		}
	})
}

func (a *App) connectMongo() *mongo.Database {
	if a.Config.History.Backend != config.HistoryBackendMongo {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, db, err := database.InitMongo(ctx, &a.Config.Mongo)
	if err != nil {
		logger.Log.Fatal("Failed to initialize mongo", zap.Error(err))
	}
	a.Mongo = client
	a.shutdownFn = append(a.shutdownFn, func(ctx context.Context) {
		if err := client.Disconnect(ctx); err != nil {
			logger.Log.Error("Failed to disconnect mongo", zap.Error(err))
		}
	})
	return db
}

func (a *App) loadScoring() {
	provider, err := service.LoadScoringProvider(a.Config.Scoring.Path)
	if err != nil {
		logger.Log.Warn("Scoring config unusable, using built-in defaults",
			zap.String("path", a.Config.Scoring.Path), zap.Error(err))
		provider = service.NewScoringProvider(nil)
	}
	a.Scoring = provider
}

// startScoringWatcher reloads the scoring tables whenever the file changes.
// A bad edit keeps the previous tables live.
func (a *App) startScoringWatcher() {
	if !a.Config.Scoring.Watch {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.stopWatch = cancel
	a.watchDone = make(chan struct{})

	go func() {
		defer close(a.watchDone)
		err := configwatcher.WatchFile(ctx, a.Config.Scoring.Path, scoringReloadDebounce, func(path string) error {
			if err := a.Scoring.Reload(path); err != nil {
				logger.Log.Error("Scoring config reload failed", zap.String("path", path), zap.Error(err))
				return err
			}
			return nil
		})
		if err != nil {
			logger.Log.Error("Scoring config watcher stopped", zap.Error(err))
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	app.connectRedis()
	mongoDB := app.connectMongo()
	app.loadScoring()

	repos := app.initRepositories(db, mongoDB)
	services := app.initServices(repos)
	controllers := app.initControllers(services)

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("ashravi-analytics", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	app.startScoringWatcher()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(ctx)
	logger.Log.Info("Server exiting")
}

// Close stops the scoring watcher and releases every backend connection.
func (a *App) Close(ctx context.Context) {
	if a.stopWatch != nil {
		a.stopWatch()
		<-a.watchDone
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	for _, fn := range a.shutdownFn {
		fn(ctx)
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
