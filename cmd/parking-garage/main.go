package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parking-garage/internal/config"
	"parking-garage/internal/logging"
	"parking-garage/internal/parking"
	"parking-garage/internal/server"
)

var (
	mode = flag.String("mode", "cli", "Mode to run: cli, server, both, or demo")
	port = flag.String("port", "", "Port for HTTP server (overrides PORT)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Init(true)
		logging.Logger().Fatal().Err(err).Msg("failed to load config")
	}
	if *port != "" {
		cfg.Port = *port
	}

	logging.Init(cfg.IsDevelopment())
	log := logging.Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetry, err := parking.NewTelemetryProvider(cfg.OTelServiceName, cfg.OTelEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}

	lot, err := parking.NewInstrumentedLot(telemetry)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create garage")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	switch *mode {
	case "cli":
		runCLI(ctx, cancel, lot, telemetry, sigChan)
	case "server":
		runServer(ctx, cancel, cfg.Port, lot, telemetry, sigChan)
	case "both":
		runBoth(ctx, cancel, cfg.Port, lot, telemetry, sigChan)
	case "demo":
		runDemo(ctx, lot, telemetry)
	default:
		log.Fatal().Str("mode", *mode).Msg("invalid mode: must be cli, server, both, or demo")
	}
}

func runCLI(ctx context.Context, cancel context.CancelFunc, lot *parking.InstrumentedLot, telemetry *parking.TelemetryProvider, sigChan chan os.Signal) {
	go func() {
		<-sigChan
		logging.Logger().Info().Msg("shutting down")
		cancel()
	}()

	shell := parking.NewShell(lot, telemetry)
	shell.Run(ctx)

	shutdownTelemetry(telemetry)
}

func runServer(ctx context.Context, cancel context.CancelFunc, port string, lot *parking.InstrumentedLot, telemetry *parking.TelemetryProvider, sigChan chan os.Signal) {
	srv := server.NewServer(port, lot)

	go func() {
		<-sigChan
		logging.Logger().Info().Msg("received shutdown signal")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Logger().Error().Err(err).Msg("server shutdown error")
		}

		cancel()
	}()

	if err := srv.Start(); err != nil && err != http.ErrServerClosed {
		logging.Logger().Error().Err(err).Msg("server error")
	}

	shutdownTelemetry(telemetry)
}

func runBoth(ctx context.Context, cancel context.CancelFunc, port string, lot *parking.InstrumentedLot, telemetry *parking.TelemetryProvider, sigChan chan os.Signal) {
	srv := server.NewServer(port, lot)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start()
	}()

	cliDone := make(chan struct{}, 1)
	go func() {
		shell := parking.NewShell(lot, telemetry)
		shell.Run(ctx)
		cliDone <- struct{}{}
	}()

	go func() {
		<-sigChan
		logging.Logger().Info().Msg("received shutdown signal")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Logger().Error().Err(err).Msg("server shutdown error")
		}

		cancel()
	}()

	select {
	case err := <-serverDone:
		if err != nil && err != http.ErrServerClosed {
			logging.Logger().Error().Err(err).Msg("server error")
		}
	case <-cliDone:
		logging.Logger().Info().Msg("CLI exited")
	case <-ctx.Done():
		logging.Logger().Info().Msg("context cancelled")
	}

	shutdownTelemetry(telemetry)
}

func runDemo(ctx context.Context, lot *parking.InstrumentedLot, telemetry *parking.TelemetryProvider) {
	if err := parking.RunDemo(ctx, lot); err != nil {
		logging.Logger().Error().Err(err).Msg("demo failed")
	}
	shutdownTelemetry(telemetry)
}

func shutdownTelemetry(telemetry *parking.TelemetryProvider) {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logging.Logger().Error().Err(err).Msg("error shutting down telemetry")
	}
}
