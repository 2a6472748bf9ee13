package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ivanoskov/atm_bot/internal/bot"
	"github.com/ivanoskov/atm_bot/internal/config"
	"github.com/ivanoskov/atm_bot/internal/logging"
	"github.com/ivanoskov/atm_bot/internal/repository"
	"github.com/ivanoskov/atm_bot/internal/service"
)

const evictionInterval = time.Minute

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("bot stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	repo, err := repository.Open(cfg.SupabaseURL, cfg.SupabaseKey, logger)
	if err != nil {
		return err
	}

	teller := service.NewTeller(repo, cfg.ATM, logger)
	defer teller.Close()

	b, err := bot.NewBot(cfg.TelegramToken, teller, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// бот остановился сам - останавливаем и выгрузку сессий
		defer stop()
		return b.Start(ctx)
	})
	g.Go(func() error {
		return teller.RunEviction(ctx, evictionInterval, service.DefaultIdleTTL)
	})

	err = g.Wait()
	logger.Info("shutting down", zap.Int("sessions", teller.Sessions()))
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
