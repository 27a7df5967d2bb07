// @title           Leads API
// @version         1.0
// @description     Contact-form lead capture with a single-administrator back office.
// @BasePath        /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/leaddesk/leads-api/internal/app"
	"github.com/leaddesk/leads-api/internal/infrastructure/config"
	"github.com/leaddesk/leads-api/pkg/logger"
)

const serviceName = "leads-api"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Service: serviceName})
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}

	if err := application.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
