package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/labelworks-backend/internal/cron"
	"github.com/angelmondragon/labelworks-backend/internal/notifications"
	"github.com/angelmondragon/labelworks-backend/internal/orders"
	"github.com/angelmondragon/labelworks-backend/internal/recurring"
	"github.com/angelmondragon/labelworks-backend/pkg/config"
	"github.com/angelmondragon/labelworks-backend/pkg/db"
	"github.com/angelmondragon/labelworks-backend/pkg/logger"
	"github.com/angelmondragon/labelworks-backend/pkg/metrics"
	"github.com/angelmondragon/labelworks-backend/pkg/migrate"
	"github.com/angelmondragon/labelworks-backend/pkg/redis"
)

const lockKeyFormat = "lw:cron-worker:lock:%s"

func main() {
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry, err := buildRegistry(cfg, logg, dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to build cron jobs", err)
		os.Exit(1)
	}

	metricsCollector := metrics.NewCronJobMetrics(prometheus.DefaultRegisterer)
	lock, err := cron.NewRedisLock(redisClient, lockKey(cfg.App.Env), cfg.Cron.LockTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cron lock", err)
		os.Exit(1)
	}

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metricsCollector,
		Interval: cfg.Cron.Interval,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cron service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
	})
	logg.Info(ctx, "starting cron worker")

	if err := service.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(ctx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}

	logg.Info(ctx, "cron worker shutting down gracefully")
}

func buildRegistry(cfg *config.Config, logg *logger.Logger, dbClient *db.Client) (*cron.Registry, error) {
	notificationsRepo := notifications.NewRepository(dbClient.DB())
	mailer := notifications.NewLogMailer(logg, cfg.Mailer.FromAddress)
	dispatcher, err := notifications.NewService(notificationsRepo, mailer)
	if err != nil {
		return nil, fmt.Errorf("notifications service: %w", err)
	}

	reminderJob, err := cron.NewReminderJob(cron.ReminderJobParams{
		Logger:     logg,
		Orders:     orders.NewRepository(dbClient.DB()),
		Dispatcher: dispatcher,
	})
	if err != nil {
		return nil, fmt.Errorf("reminder job: %w", err)
	}

	recurringService, err := recurring.NewService(
		recurring.NewRepository(dbClient.DB()),
		dbClient,
		cfg.Orders.RecurringDeliveryLeadDays,
	)
	if err != nil {
		return nil, fmt.Errorf("recurring service: %w", err)
	}
	recurringJob, err := cron.NewRecurringJob(cron.RecurringJobParams{
		Logger:    logg,
		Recurring: recurringService,
	})
	if err != nil {
		return nil, fmt.Errorf("recurring job: %w", err)
	}

	return cron.NewRegistry(reminderJob, recurringJob), nil
}

func lockKey(env string) string {
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf(lockKeyFormat, env)
}
