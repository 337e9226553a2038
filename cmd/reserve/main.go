package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/iliyamo/event-ticket-reservation/internal/audit"
	"github.com/iliyamo/event-ticket-reservation/internal/config"
	"github.com/iliyamo/event-ticket-reservation/internal/handler"
	"github.com/iliyamo/event-ticket-reservation/internal/logger"
	"github.com/iliyamo/event-ticket-reservation/internal/repository"
	"github.com/iliyamo/event-ticket-reservation/internal/router"
	"github.com/iliyamo/event-ticket-reservation/internal/service"
)

func main() {
	flags := pflag.NewFlagSet("reserve", pflag.ContinueOnError)
	config.Flags(flags)
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, closer, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, log); err != nil {
		log.Error("reserve stopped", zap.Error(err))
		_ = log.Sync()
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	if err := cfg.EnsureDataDir(); err != nil {
		return err
	}
	codec, err := repository.CodecFor(cfg.StoreFormat)
	if err != nil {
		return err
	}
	events := repository.NewEventRepo(cfg.EventsPath(), codec)
	tickets := repository.NewTicketRepo(cfg.TicketsPath(), codec)
	journal := repository.NewJournal(cfg.JournalPath(), events, tickets)

	recovered, err := journal.Recover()
	if err != nil {
		return fmt.Errorf("recover journal: %w", err)
	}
	if recovered {
		log.Info("rolled forward interrupted commit", zap.String("journal", journal.Path()))
	}

	admin, err := service.NewCredentials(cfg.AdminUsername, cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		return err
	}
	opts := []service.Option{service.WithLogger(log)}
	if cfg.BookingLog != "" {
		opts = append(opts, service.WithRecorder(audit.NewBookingLog(cfg.BookingLog)))
	}
	svc, err := service.NewReservationService(service.Config{Admin: admin}, events, tickets, journal, opts...)
	if err != nil {
		return err
	}

	log.Info("starting",
		zap.String("env", cfg.Env),
		zap.String("events", cfg.EventsPath()),
		zap.String("tickets", cfg.TicketsPath()),
		zap.String("format", codec.Name()))

	app := router.New(handler.NewAdminHandler(svc), handler.NewCustomerHandler(svc), log)
	return app.Run(handler.NewSession(os.Stdin, os.Stdout))
}
