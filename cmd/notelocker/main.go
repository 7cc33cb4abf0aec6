package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/avoskresensky/go-note-locker/internal/config"
	"github.com/avoskresensky/go-note-locker/internal/logger"
	"github.com/avoskresensky/go-note-locker/internal/service"
	"github.com/avoskresensky/go-note-locker/internal/session"
	"github.com/avoskresensky/go-note-locker/internal/store"
	"github.com/avoskresensky/go-note-locker/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewFileLogger("note-locker")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	defer storages.Close()

	services := service.NewServices(storages, cfg, session.NopCredentialCache{}, log)

	background := []workers.Worker{
		workers.WorkerFunc(func() { services.RetentionJob.Start(ctx) }),
	}
	defer services.RetentionJob.Stop()

	if services.SyncJob != nil {
		background = append(background, workers.WorkerFunc(func() { services.SyncJob.Start(ctx) }))
		defer services.SyncJob.Stop()
	}
	workers.NewWorkers(background...).Run()

	log.Info().
		Str("version", buildVersion).
		Bool("sync", cfg.SyncEnabled()).
		Msg("note locker core running")

	<-ctx.Done()
	services.Autosave.Flush()
	services.Security.LockSession()
	log.Info().Msg("shutting down")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
