package main

import (
	"database/sql"
	"net/http"
	"time"

	"eway-hosted/internal/address"
	"eway-hosted/internal/api"
	"eway-hosted/internal/config"
	"eway-hosted/internal/db"
	"eway-hosted/internal/directory"
	"eway-hosted/internal/locale"
	"eway-hosted/internal/logger"
	"eway-hosted/internal/metrics"
	"eway-hosted/internal/middleware"
	"eway-hosted/internal/order"
	"eway-hosted/internal/payment"
	"eway-hosted/internal/payment/webhook"
	"eway-hosted/internal/settings"

	"go.uber.org/zap"
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)
	stop := make(chan struct{})
	defer close(stop)
	go limiter.RunCleanup(time.Minute, stop)

	handler := newServer(cfg, database, limiter)

	logger.L().Info("eWAY hosted payment service starting",
		zap.String("port", cfg.AppPort),
		zap.String("store_url", cfg.StoreURL),
	)
	return startServerFunc(":"+cfg.AppPort, handler)
}

func newServer(cfg *config.Config, database *sql.DB, limiter *middleware.RateLimiter) http.Handler {
	settingsSvc := settings.NewService(settings.NewRepository(database))
	orderSvc := order.NewService(order.NewRepository(database))
	results := payment.NewRepository(database)
	stats := &metrics.Gateway{}

	processor := payment.NewProcessor(
		payment.NewEwayGateway(cfg.GatewayTimeout, stats),
		address.NewRepository(database),
		directory.NewRepository(database),
		locale.NewRepository(database),
		settingsSvc,
		results,
		payment.ProcessorConfig{
			StoreURL:          cfg.StoreURL,
			PrimaryCurrencyID: cfg.PrimaryCurrencyID,
		},
	)

	return api.NewRouter(api.RouterConfig{
		JWTSecret: []byte(cfg.JWTSecret),
		Limiter:   limiter,
		Public: []api.RouteAppender{
			webhook.NewHandler(processor, orderSvc, settingsSvc, cfg.StoreURL),
		},
		Admin: []api.RouteAppender{
			api.NewAdmin(settingsSvc, results, stats),
		},
	})
}

func startServer(addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return srv.ListenAndServe()
}
