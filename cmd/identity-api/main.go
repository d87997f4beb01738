package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/identikit/db"
	"github.com/dmitrymomot/identikit/modules/identity"
	"github.com/dmitrymomot/identikit/pkg/amqp"
	"github.com/dmitrymomot/identikit/pkg/config"
	"github.com/dmitrymomot/identikit/pkg/email"
	"github.com/dmitrymomot/identikit/pkg/httpmw"
	"github.com/dmitrymomot/identikit/pkg/httpserver"
	"github.com/dmitrymomot/identikit/pkg/logger"
	"github.com/dmitrymomot/identikit/pkg/pg"
	"github.com/dmitrymomot/identikit/pkg/redis"
	"github.com/dmitrymomot/identikit/store/pgstore"
	"github.com/dmitrymomot/identikit/store/redisstore"
	"github.com/dmitrymomot/identikit/svc/auth"
	"github.com/dmitrymomot/identikit/svc/events"
	"github.com/dmitrymomot/identikit/svc/tenancy"
)

type appConfig struct {
	Env              string        `env:"APP_ENV" envDefault:"development"`
	ServiceName      string        `env:"SERVICE_NAME" envDefault:"identity-api"`
	LogLevel         string        `env:"LOG_LEVEL"`
	EnvFiles         []string      `env:"ENV_FILES" envSeparator:","`
	EventBufferSize  int           `env:"EVENT_BUFFER_SIZE" envDefault:"256"`
	ReadinessTimeout time.Duration `env:"READINESS_TIMEOUT" envDefault:"3s"`
}

var allEvents = []events.Type{
	events.UserCreated,
	events.UserUpdated,
	events.UserLoggedIn,
	events.TenantCreated,
	events.TenantUpdated,
	events.TenantDeleted,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("identity-api stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var app appConfig
	if err := config.Load(&app); err != nil {
		return err
	}
	if len(app.EnvFiles) > 0 {
		if err := config.LoadEnv(app.EnvFiles...); err != nil {
			return err
		}
		if err := config.Load(&app); err != nil {
			return err
		}
	}

	opts := []logger.Option{
		logger.WithEnvironment(app.Env, app.ServiceName),
		logger.WithContextExtractors(
			httpmw.RequestIDExtractor,
			tenancy.LoggerExtractor(),
			tenancy.SchemaExtractor(),
		),
	}
	if app.LogLevel != "" {
		opts = append(opts, logger.WithLevel(logger.ParseLevel(app.LogLevel)))
	}
	log := logger.New(opts...)
	logger.SetAsDefault(log)

	var (
		pgCfg    pg.Config
		redisCfg redis.Config
		amqpCfg  amqp.Config
		emailCfg email.Config
		httpCfg  httpserver.Config
		authCfg  auth.Config
	)
	if err := errors.Join(
		config.Load(&pgCfg),
		config.Load(&redisCfg),
		config.Load(&amqpCfg),
		config.Load(&emailCfg),
		config.Load(&httpCfg),
		config.Load(&authCfg),
	); err != nil {
		return err
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, db.Migrations, db.MigrationsDir, pgCfg, log); err != nil {
		return err
	}

	rdb, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer rdb.Close()

	checks := map[string]httpserver.Check{
		"postgres": pg.Healthcheck(pool),
		"redis":    redis.Healthcheck(rdb),
	}

	sender, err := newEmailSender(emailCfg, log)
	if err != nil {
		return err
	}

	bus := events.NewBus(app.EventBufferSize)
	dispatcher := events.NewDispatcher(bus, log)
	dispatcher.Handle("welcome_email", events.WelcomeEmail(sender, emailCfg.AppName), events.UserCreated)
	dispatcher.Handle("profile_updated_email", events.ProfileUpdatedEmail(sender, emailCfg.AppName), events.UserUpdated)

	if amqpCfg.Enabled() {
		broker, err := amqp.Connect(ctx, amqpCfg)
		if err != nil {
			return err
		}
		defer broker.Close()

		dispatcher.Handle("amqp_forward", events.Forward(broker), allEvents...)
		checks["amqp"] = broker.Healthcheck()
	}

	// Queued events are drained after the server stops.
	dispatcher.Start(context.WithoutCancel(ctx))
	defer func() {
		if err := bus.Close(); err != nil {
			log.Warn("failed to close event bus", logger.Error(err))
		}
		dispatcher.Wait()
	}()

	tokens, err := auth.NewTokenService(authCfg)
	if err != nil {
		return err
	}

	refresh := redisstore.New(rdb, redisCfg.KeyPrefix)
	api := identity.New(identity.Deps{
		Opener: pgstore.NewOpener(pg.NewSessions(pool, pgCfg, log), refresh.ForSchema),
		Tokens: tokens,
		Hasher: auth.NewBcryptHasher(authCfg.BcryptCost),
		Events: bus,
		Logger: log,
	})

	r := chi.NewRouter()
	r.Use(
		httpmw.RequestID,
		middleware.RealIP,
		httpmw.Logger(log),
		middleware.Recoverer,
	)
	r.Get("/health", httpserver.LivenessHandler())
	r.Get("/ready", httpserver.ReadinessHandler(log, app.ReadinessTimeout, checks))
	r.Mount("/", api.Router())

	return httpserver.New(httpCfg, log).Run(ctx, r)
}

func newEmailSender(cfg email.Config, log *slog.Logger) (email.EmailSender, error) {
	if !cfg.Enabled() {
		log.Info("postmark is not configured, emails will be logged")
		return email.NewLogSender(log), nil
	}
	return email.NewPostmarkClient(cfg)
}
