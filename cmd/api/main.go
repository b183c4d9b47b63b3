package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rassdread/homecheff-backend/api/routes"
	"github.com/rassdread/homecheff-backend/internal/chat"
	"github.com/rassdread/homecheff-backend/internal/notifications"
	"github.com/rassdread/homecheff-backend/internal/orders"
	"github.com/rassdread/homecheff-backend/internal/payouts"
	"github.com/rassdread/homecheff-backend/internal/reviews"
	"github.com/rassdread/homecheff-backend/internal/users"
	"github.com/rassdread/homecheff-backend/pkg/auth/session"
	"github.com/rassdread/homecheff-backend/pkg/config"
	"github.com/rassdread/homecheff-backend/pkg/db"
	"github.com/rassdread/homecheff-backend/pkg/email"
	"github.com/rassdread/homecheff-backend/pkg/logger"
	"github.com/rassdread/homecheff-backend/pkg/metrics"
	"github.com/rassdread/homecheff-backend/pkg/migrate"
	"github.com/rassdread/homecheff-backend/pkg/redis"
	"github.com/rassdread/homecheff-backend/pkg/stripe"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	stripeClient, err := stripe.NewClient(context.Background(), cfg.Stripe, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create stripe client", err)
		os.Exit(1)
	}

	mailer, err := email.NewClient(cfg.Sendgrid)
	if err != nil {
		logg.Error(context.Background(), "failed to create email client", err)
		os.Exit(1)
	}

	orderMetrics := metrics.NewOrderMetrics(prometheus.DefaultRegisterer)

	notificationsService, err := notifications.NewService(notifications.NewRepository(dbClient.DB()), redisClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	chatService, err := chat.NewService(chat.NewRepository(dbClient.DB()), redisClient, cfg.Encryption.SystemKey, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create chat service", err)
		os.Exit(1)
	}

	reviewsService, err := reviews.NewService(
		reviews.NewRepository(dbClient.DB()),
		mailer,
		notificationsService,
		cfg.JWT,
		cfg.App.BaseURL,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create reviews service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(
		orders.NewRepository(dbClient.DB()),
		dbClient,
		chatService,
		notificationsService,
		reviewsService,
		stripeClient,
		orderMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	payoutsService, err := payouts.NewService(
		payouts.NewRepository(dbClient.DB()),
		logg,
		stripeClient.Mode(),
		cfg.Fees.DefaultPlatformFeeBps,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create payouts service", err)
		os.Exit(1)
	}

	usersService, err := users.NewService(
		users.NewRepository(dbClient.DB()),
		dbClient,
		cfg.Admin.CascadeDeleteTimeout,
		orderMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			sessionManager,
			ordersService,
			payoutsService,
			chatService,
			reviewsService,
			notificationsService,
			usersService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
