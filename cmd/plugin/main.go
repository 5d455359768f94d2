package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"eway-hosted/internal/address"
	"eway-hosted/internal/auth"
	"eway-hosted/internal/config"
	"eway-hosted/internal/db"
	"eway-hosted/internal/directory"
	"eway-hosted/internal/locale"
	"eway-hosted/internal/logger"
	"eway-hosted/internal/metrics"
	"eway-hosted/internal/payment"
	"eway-hosted/internal/settings"
	"eway-hosted/internal/utils"

	"go.uber.org/zap"
)

const adminTokenTTL = 24 * time.Hour

// installer is the part of the payment method this tool drives.
type installer interface {
	Install(ctx context.Context) error
	Uninstall(ctx context.Context) error
}

var initDBFunc = db.InitDB

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		logger.L().Fatal("plugin command failed", zap.Error(err))
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("plugin", flag.ContinueOnError)
	mode := fs.String("mode", "install", "install, uninstall or admin-token")
	userID := fs.Uint("user", 1, "admin user id for admin-token")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if *mode == "admin-token" {
		tok, err := auth.GenerateToken([]byte(cfg.JWTSecret), *userID, utils.RoleAdmin, adminTokenTTL)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, tok)
		return err
	}

	database := initDBFunc(cfg)
	defer database.Close()

	return execute(context.Background(), *mode, newProcessor(cfg, database))
}

func newProcessor(cfg *config.Config, database *sql.DB) *payment.Processor {
	return payment.NewProcessor(
		payment.NewEwayGateway(cfg.GatewayTimeout, &metrics.Gateway{}),
		address.NewRepository(database),
		directory.NewRepository(database),
		locale.NewRepository(database),
		settings.NewService(settings.NewRepository(database)),
		payment.NewRepository(database),
		payment.ProcessorConfig{
			StoreURL:          cfg.StoreURL,
			PrimaryCurrencyID: cfg.PrimaryCurrencyID,
		},
	)
}

func execute(ctx context.Context, mode string, p installer) error {
	switch mode {
	case "install":
		return p.Install(ctx)
	case "uninstall":
		return p.Uninstall(ctx)
	default:
		return fmt.Errorf("unknown mode: %s (use 'install', 'uninstall' or 'admin-token')", mode)
	}
}
