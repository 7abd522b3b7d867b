package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/hassaammgl2/employee-management-system/config"
	"github.com/hassaammgl2/employee-management-system/internal/controller"
	"github.com/hassaammgl2/employee-management-system/internal/domain"
	rediscache "github.com/hassaammgl2/employee-management-system/internal/infrastructure/cache/redis"
	circuitbreaker "github.com/hassaammgl2/employee-management-system/internal/infrastructure/circuit-breaker"
	"github.com/hassaammgl2/employee-management-system/internal/infrastructure/mail"
	"github.com/hassaammgl2/employee-management-system/internal/infrastructure/message-queue/kafka"
	"github.com/hassaammgl2/employee-management-system/internal/infrastructure/tracing"
	localmiddleware "github.com/hassaammgl2/employee-management-system/internal/middleware"
	"github.com/hassaammgl2/employee-management-system/internal/repository"
	"github.com/hassaammgl2/employee-management-system/internal/repository/inmemory"
	"github.com/hassaammgl2/employee-management-system/internal/service"
	"github.com/hassaammgl2/employee-management-system/pkg/response"
	"github.com/hassaammgl2/employee-management-system/pkg/utils"
	"github.com/hassaammgl2/employee-management-system/pkg/validation"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	publishRetries = 3
	publishBackoff = 200 * time.Millisecond
	reconcileLimit = time.Minute
)

type App struct {
	Config *config.Config
	// DB is required when Config.DBDriver is mongodb.
	DB     *mongo.Database
	Redis  *redis.Client
	Server *echo.Echo
	// Now defaults to time.Now.
	Now service.Clock

	tracker       service.RosterTracker
	notifications service.NotificationService
	traceProvider *sdktrace.TracerProvider
	scheduler     gocron.Scheduler
	kafkaReader   interface{ Close() error }
	kafkaWriter   interface{ Close() error }
	cancel        context.CancelFunc
}

type repositories struct {
	transactor    repository.Transactor
	users         repository.UserRepository
	departments   repository.DepartmentRepository
	employees     repository.EmployeeRepository
	tasks         repository.TaskRepository
	announcements repository.AnnouncementRepository
	notifications repository.NotificationRepository
	activities    repository.ActivityRepository
}

func (app *App) createRepositories(ctx context.Context) (repos repositories, err error) {
	switch app.Config.DBDriver {
	case config.DriverMemory:
		store := inmemory.CreateNewStore()
		return repositories{
			transactor:    store,
			users:         inmemory.CreateNewUserRepository(store),
			departments:   inmemory.CreateNewDepartmentRepository(store),
			employees:     inmemory.CreateNewEmployeeRepository(store),
			tasks:         inmemory.CreateNewTaskRepository(store),
			announcements: inmemory.CreateNewAnnouncementRepository(store),
			notifications: inmemory.CreateNewNotificationRepository(store),
			activities:    inmemory.CreateNewActivityRepository(store),
		}, nil
	case config.DriverMongoDB:
		if app.DB == nil {
			return repos, errors.New("mongodb driver selected without a database")
		}
		if err = repository.EnsureIndexes(ctx, app.DB); err != nil {
			return repos, err
		}
		return repositories{
			transactor:    repository.CreateNewMongoDBTransactor(app.DB, app.Config.MongoDBConfig.Transactions),
			users:         repository.CreateNewMongoDBUserRepository(app.DB),
			departments:   repository.CreateNewMongoDBDepartmentRepository(app.DB),
			employees:     repository.CreateNewMongoDBEmployeeRepository(app.DB),
			tasks:         repository.CreateNewMongoDBTaskRepository(app.DB),
			announcements: repository.CreateNewMongoDBAnnouncementRepository(app.DB),
			notifications: repository.CreateNewMongoDBNotificationRepository(app.DB),
			activities:    repository.CreateNewMongoDBActivityRepository(app.DB),
		}, nil
	default:
		return repos, fmt.Errorf("unknown database driver %q", app.Config.DBDriver)
	}
}

// Build wires every component and registers the routes without listening.
func (app *App) Build(ctx context.Context) error {
	if app.Now == nil {
		app.Now = time.Now
	}

	repos, err := app.createRepositories(ctx)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.CreateValidator()

	if app.traceProvider == nil {
		app.traceProvider, err = tracing.InitTracing(app.Config.TracingConfig.CollectorHost)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize tracing")
		}
	}
	if app.traceProvider != nil {
		tracer := app.traceProvider.Tracer(tracing.ServiceName)
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
				defer span.End()

				c.SetRequest(c.Request().WithContext(ctx))
				return next(c)
			}
		})
	}

	// Empty subsystem keeps metric names unprefixed.
	e.Use(echoprometheus.NewMiddleware(""))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{app.Config.ClientOrigin},
		AllowCredentials: true,
	}))
	e.Use(localmiddleware.Logger)

	issuer := utils.CreateTokenIssuer(
		app.Config.JWTConfig.AccessSecret, app.Config.JWTConfig.AccessTTL,
		app.Config.JWTConfig.RefreshSecret, app.Config.JWTConfig.RefreshTTL,
		app.Now,
	)
	hasher := utils.CreatePasswordHasher(utils.Argon2Params{
		Memory:      app.Config.Argon2Config.MemoryKiB,
		Iterations:  app.Config.Argon2Config.Iterations,
		Parallelism: app.Config.Argon2Config.Parallelism,
	})

	var publisher service.EventPublisher
	var reader service.EventReader
	if app.Config.KafkaConfig.BrokerAddress != "" {
		writer := kafka.CreateKafkaWriter(app.Config)
		kafkaReader := kafka.CreateKafkaReader(app.Config)
		cb := circuitbreaker.CreateCircuitBreaker("notification-publisher")

		publisher = kafka.CreatePublisher(writer, cb, publishRetries, publishBackoff)
		reader = kafkaReader
		app.kafkaWriter = writer
		app.kafkaReader = kafkaReader
	} else {
		log.Warn().Msg("BROKER_ADDRESS not set, notifications are stored directly")
	}

	var mailer service.Mailer
	if app.Config.SMTPConfig.Host != "" {
		mailer = mail.CreateSMTPMailer(app.Config.SMTPConfig.Host, app.Config.SMTPConfig.Port,
			app.Config.SMTPConfig.Username, app.Config.SMTPConfig.Password, app.Config.SMTPConfig.Sender)
	}

	if app.Redis == nil && app.Config.RedisConfig.Addr != "" {
		app.Redis, err = rediscache.CreateRedisClient(ctx, app.Config.RedisConfig.Addr)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to connect to redis")
			app.Redis = nil
		}
	}
	throttle := localmiddleware.CreateLoginThrottle(app.Redis, app.Config.LoginThrottle.MaxAttempts, app.Config.LoginThrottle.Window)

	authSvc := service.CreateNewAuthService(repos.users, issuer, hasher, app.Now)
	userSvc := service.CreateNewUserService(repos.users)
	activitySvc := service.CreateNewActivityService(repos.activities, app.Now)
	notificationSvc := service.CreateNewNotificationService(repos.notifications, repos.users, publisher, reader, app.Now)
	tracker := service.CreateNewRosterTracker(repos.departments, repos.employees, app.Now)
	departmentSvc := service.CreateNewDepartmentService(repos.departments, tracker, activitySvc, app.Now)
	employeeSvc := service.CreateNewEmployeeService(service.EmployeeServiceDeps{
		Transactor:     repos.transactor,
		UserRepo:       repos.users,
		EmployeeRepo:   repos.employees,
		DepartmentRepo: repos.departments,
		Tracker:        tracker,
		Hasher:         hasher,
		Activities:     activitySvc,
		Notifier:       notificationSvc,
		Mailer:         mailer,
		Now:            app.Now,
	})
	taskSvc := service.CreateNewTaskService(repos.tasks, repos.users, notificationSvc, app.Now)
	announcementSvc := service.CreateNewAnnouncementService(repos.announcements, app.Now)

	authenticate := localmiddleware.Authenticate(authSvc)
	adminOnly := localmiddleware.RequireRole(domain.RoleAdmin)

	g := e.Group("/api/v1")
	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "pong", nil)
	})

	controller.CreateAuthController(g, authSvc, throttle, controller.CookieConfig{
		Secure:     app.Config.CookieSecure,
		AccessTTL:  issuer.AccessTTL(),
		RefreshTTL: issuer.RefreshTTL(),
	}, authenticate)
	controller.CreateUserController(g, userSvc, authenticate, adminOnly)
	controller.CreateEmployeeController(g, employeeSvc, authenticate, adminOnly)
	controller.CreateDepartmentController(g, departmentSvc, authenticate, adminOnly)
	controller.CreateTaskController(g, taskSvc, authenticate, adminOnly)
	controller.CreateAnnouncementController(g, announcementSvc, authenticate, adminOnly)
	controller.CreateNotificationController(g, notificationSvc, authenticate)
	controller.CreateActivityController(g, activitySvc, authenticate, adminOnly)

	app.tracker = tracker
	app.notifications = notificationSvc
	app.Server = e
	return nil
}

func (app *App) reconcileRoster(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, reconcileLimit)
	defer cancel()

	resp, err := app.tracker.Reconcile(ctx)
	if err != nil {
		log.Error().Err(err).Str("component", "reconcileRoster").Msg("")
		return
	}

	if len(resp.Corrections) > 0 {
		log.Warn().Str("component", "reconcileRoster").Int("corrections", len(resp.Corrections)).Msg("department counts corrected")
	}
}

// Start builds the server, launches the background workers and blocks until
// the HTTP server stops.
func (app *App) Start() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	level, err := zerolog.ParseLevel(app.Config.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = logger

	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel

	if err = app.Build(ctx); err != nil {
		return err
	}

	go func() {
		metrics := echo.New()
		metrics.HideBanner = true
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start metrics server")
		}
	}()

	go app.notifications.ConsumeEvent(logger.WithContext(ctx))

	app.scheduler, err = gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = app.scheduler.NewJob(
		gocron.DurationJob(app.Config.ReconcileInterval),
		gocron.NewTask(app.reconcileRoster, ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	app.scheduler.Start()

	err = app.Server.Start(fmt.Sprintf(":%s", app.Config.ServicePort))
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if app.cancel != nil {
		app.cancel()
	}

	var failed []error
	if app.Server != nil {
		failed = append(failed, app.Server.Shutdown(ctx))
	}
	if app.scheduler != nil {
		failed = append(failed, app.scheduler.Shutdown())
	}
	if app.kafkaReader != nil {
		failed = append(failed, app.kafkaReader.Close())
	}
	if app.kafkaWriter != nil {
		failed = append(failed, app.kafkaWriter.Close())
	}
	if app.Redis != nil {
		failed = append(failed, app.Redis.Close())
	}
	if app.traceProvider != nil {
		failed = append(failed, app.traceProvider.Shutdown(ctx))
	}

	return errors.Join(failed...)
}
