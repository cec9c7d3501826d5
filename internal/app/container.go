// Package app wires configuration, storage, the event bus and every
// application service into one container shared by the CLI, the HTTP API
// and the MCP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	analyticsApp "github.com/felixgeelhaar/pytron/internal/analytics/application"
	backupApp "github.com/felixgeelhaar/pytron/internal/backup/application"
	badgesApp "github.com/felixgeelhaar/pytron/internal/badges/application"
	badgesPersistence "github.com/felixgeelhaar/pytron/internal/badges/infrastructure/persistence"
	goalsApp "github.com/felixgeelhaar/pytron/internal/goals/application"
	goalsPersistence "github.com/felixgeelhaar/pytron/internal/goals/infrastructure/persistence"
	notificationsApp "github.com/felixgeelhaar/pytron/internal/notifications/application"
	notificationsDomain "github.com/felixgeelhaar/pytron/internal/notifications/domain"
	"github.com/felixgeelhaar/pytron/internal/notifications/infrastructure/notifier"
	notificationsPersistence "github.com/felixgeelhaar/pytron/internal/notifications/infrastructure/persistence"
	pomodoroApp "github.com/felixgeelhaar/pytron/internal/pomodoro/application"
	pomodoroPersistence "github.com/felixgeelhaar/pytron/internal/pomodoro/infrastructure/persistence"
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore"
	_ "github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore/postgres" // Register PostgreSQL backend
	_ "github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore/redis"    // Register Redis backend
	_ "github.com/felixgeelhaar/pytron/internal/shared/infrastructure/docstore/sqlite"   // Register SQLite backend
	"github.com/felixgeelhaar/pytron/internal/shared/infrastructure/eventbus"
	trackingApp "github.com/felixgeelhaar/pytron/internal/tracking/application"
	trackingPersistence "github.com/felixgeelhaar/pytron/internal/tracking/infrastructure/persistence"
	"github.com/felixgeelhaar/pytron/pkg/config"
	"github.com/felixgeelhaar/pytron/pkg/observability"
)

// Container holds all application dependencies.
type Container struct {
	Config   *config.Config
	Logger   *slog.Logger
	Location *time.Location

	// Storage
	Store docstore.Store

	// Observability
	Metrics *observability.PrometheusMetrics

	// Events
	Bus    *eventbus.InProcessEventBus
	Broker eventbus.Publisher

	// Services
	Tracking      *trackingApp.Service
	Analytics     *analyticsApp.Service
	Badges        *badgesApp.Service
	Goals         *goalsApp.Service
	Pomodoro      *pomodoroApp.Timer
	Notifications *notificationsApp.Service
	Backup        *backupApp.Service
}

// Option adjusts container construction.
type Option func(*options)

type options struct {
	clock func() time.Time
}

// WithClock replaces the wall clock. The container converts its readings
// to the configured time zone.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// NewContainer creates a fully wired container.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	clock := func() time.Time { return o.clock().In(loc) }

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Location: loc,
		Metrics:  observability.NewPrometheusMetrics(),
	}

	c.Store, err = docstore.Open(ctx, docstore.Config{
		URL:        cfg.StoreURL,
		SQLitePath: cfg.SQLitePath,
		Namespace:  cfg.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}
	logger.Debug("document store opened", "driver", c.Store.Driver())

	// RabbitMQ is optional; without it events stay in process.
	busOpts := []eventbus.BusOption{eventbus.WithMetrics(c.Metrics)}
	if cfg.RabbitMQURL != "" {
		broker, err := eventbus.NewRabbitMQPublisher(ctx, eventbus.RabbitMQConfig{
			URL:        cfg.RabbitMQURL,
			Exchange:   cfg.RabbitMQExchange,
			MaxRetries: 3,
		}, logger)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, events stay in process", "error", err)
		} else {
			c.Broker = broker
			busOpts = append(busOpts, eventbus.WithForwarder(broker))
		}
	}
	c.Bus = eventbus.NewInProcessEventBus(logger, busOpts...)

	c.Tracking, err = trackingApp.NewService(ctx,
		trackingPersistence.NewDocumentRepository(c.Store, logger),
		trackingApp.WithClock(clock),
		trackingApp.WithPublisher(c.Bus),
		trackingApp.WithMetrics(c.Metrics),
		trackingApp.WithLogger(logger),
	)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize tracking: %w", err)
	}

	c.Analytics = analyticsApp.NewService(c.Tracking)
	c.Badges = badgesApp.NewService(badgesPersistence.NewDocumentRepository(c.Store, logger), c.Tracking, c.Bus, c.Metrics, logger)
	c.Goals = goalsApp.NewService(goalsPersistence.NewDocumentRepository(c.Store, logger), c.Tracking, c.Bus, c.Metrics, logger)
	c.Tracking.Subscribe(c.Badges.OnStateChanged)
	c.Tracking.Subscribe(c.Goals.OnStateChanged)

	c.Pomodoro, err = pomodoroApp.NewTimer(ctx,
		pomodoroPersistence.NewDocumentRepository(c.Store, logger),
		c.Tracking,
		pomodoroApp.WithClock(clock),
		pomodoroApp.WithPublisher(c.Bus),
		pomodoroApp.WithMetrics(c.Metrics),
		pomodoroApp.WithLogger(logger),
	)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize pomodoro: %w", err)
	}

	c.Notifications, err = notificationsApp.NewService(ctx,
		notificationsPersistence.NewDocumentRepository(c.Store, logger),
		c.Tracking,
		c.newNotifier(),
		notificationsApp.WithLogger(logger),
	)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize notifications: %w", err)
	}
	c.Bus.RegisterConsumer(notificationsApp.NewEventConsumer(c.Notifications))

	c.Backup = backupApp.NewService(c.Tracking, logger)

	c.reconcile(ctx)
	return c, nil
}

// newNotifier logs every notification and, with a broker configured, also
// publishes it through a circuit breaker.
func (c *Container) newNotifier() notificationsDomain.Notifier {
	logNotifier := notifier.NewLogNotifier(c.Logger)
	if c.Broker == nil {
		return logNotifier
	}
	breaker := notifier.NewBreakerNotifier("notifications-broker",
		notifier.NewBrokerNotifier(c.Broker),
		notifier.BreakerConfig{
			MaxRetries:       uint64(max(c.Config.NotifyRetryMax, 0)),
			InitialInterval:  200 * time.Millisecond,
			FailureThreshold: c.Config.NotifyBreakerFailures,
			OpenTimeout:      c.Config.NotifyBreakerTimeout,
			HalfOpenRequests: 1,
		},
		c.Metrics,
		c.Logger,
	)
	return notifier.Fanout{logNotifier, breaker}
}

// reconcile re-evaluates badges and goals against the loaded state. Each
// step is independent; failures are logged.
func (c *Container) reconcile(ctx context.Context) {
	if _, err := c.Badges.Check(ctx); err != nil {
		c.Logger.Warn("startup badge check failed", "error", err)
	}
	if _, err := c.Goals.Evaluate(ctx); err != nil {
		c.Logger.Warn("startup goal evaluation failed", "error", err)
	}
}

// Start begins background work for long-running processes: the
// notification schedule.
func (c *Container) Start(ctx context.Context) {
	c.Notifications.Start(ctx)
}

// Close releases all resources.
func (c *Container) Close() {
	var errs []error
	if c.Pomodoro != nil {
		errs = append(errs, c.Pomodoro.Close())
	}
	if c.Notifications != nil {
		c.Notifications.Stop()
	}
	if c.Bus != nil {
		errs = append(errs, c.Bus.Close())
	}
	if c.Store != nil {
		errs = append(errs, c.Store.Close())
	}
	if err := errors.Join(errs...); err != nil {
		c.Logger.Warn("error during shutdown", "error", err)
	}
}
