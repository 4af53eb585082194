package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonpos/internal/config"
	"salonpos/internal/infra"
	"salonpos/internal/repository"
	"salonpos/internal/router"
	"salonpos/internal/service"
	"salonpos/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: dev pretty, prod JSON
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && lvl != zerolog.NoLevel {
		zerolog.SetGlobalLevel(lvl)
	}

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	if err := infra.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Worker handlers are wired here so the pool gets the same services the
	// HTTP layer uses.
	mailer := infra.NewMailer(cfg)
	if !mailer.Configurado() {
		log.Warn().Msg("SMTP_HOST not set: monthly report emails will fail and land in the DLQ")
	}
	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig("smtp"))
	dispatcher := worker.NewDispatcher(rdb)

	ingresoRepo := repository.NewIngresoRepository(db)
	egresoRepo := repository.NewEgresoRepository(db)
	resumenSvc := service.NewResumenService(
		service.NewConciliacionService(ingresoRepo, egresoRepo),
		repository.NewCajaRepository(db),
		repository.NewGastoFijoRepository(db),
		repository.NewComisionRepository(db),
		dispatcher,
		cfg.ReporteEmailDestino,
	)

	worker.StartWorkerPool(ctx, rdb, &worker.WorkerHandlers{
		Reporte: worker.NewReporteWorker(resumenSvc, dispatcher, cfg.NombreSalon, cfg.PDFStoragePath),
		Email:   worker.NewEmailWorker(mailer, smtpCB),
	}, cfg.WorkerPoolSize)

	if cfg.ResumenCronEnabled {
		worker.StartResumenCron(ctx, worker.ResumenCronConfig{
			RDB:        rdb,
			Dispatcher: dispatcher,
			Destino:    cfg.ReporteEmailDestino,
		})
	}

	r := router.New(cfg, db, rdb, smtpCB)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("salonpos listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
