package main

import (
	"fmt"
	"log/slog"

	log "github.com/charmbracelet/log"
	"github.com/nokolie/kudiwallet/config"
	"github.com/nokolie/kudiwallet/infra"
	"github.com/nokolie/kudiwallet/infra/gateway/flutterwave"
	infrarepo "github.com/nokolie/kudiwallet/infra/repository"
	"github.com/nokolie/kudiwallet/pkg/service/account"
	"github.com/nokolie/kudiwallet/pkg/service/auth"
	"github.com/nokolie/kudiwallet/pkg/service/beneficiary"
	"github.com/nokolie/kudiwallet/pkg/service/transaction"
	"github.com/nokolie/kudiwallet/pkg/service/user"
	"github.com/nokolie/kudiwallet/pkg/service/webhook"
	"github.com/nokolie/kudiwallet/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.Default()

	cfg, err := config.Load(logger)
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access database pool: %w", err)
	}

	uow := infrarepo.NewUoW(db)
	gw := flutterwave.New(cfg.Gateway, logger)

	deps := &webapi.Deps{
		Cfg:         cfg,
		Auth:        auth.New(uow, cfg.Jwt, logger),
		User:        user.New(uow, logger),
		Account:     account.New(uow, gw, cfg.Currency, logger),
		Beneficiary: beneficiary.New(uow, gw, logger),
		Transaction: transaction.New(uow, logger),
		Webhook:     webhook.New(uow, gw, cfg.Gateway.SecretHash, logger),
		DBPing:      sqlDB.PingContext,
		Logger:      logger,
	}

	app := webapi.NewApp(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return app.Listen(addr)
}
