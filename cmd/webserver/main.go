// Command webserver is a small example application for the tinyweb
// library: a couple of routes showing plain handlers, path-parameter and
// body extraction, and graceful shutdown.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/tinyweb-go/tinyweb/extract"
	"github.com/tinyweb-go/tinyweb/handler"
	"github.com/tinyweb-go/tinyweb/response"
	"github.com/tinyweb-go/tinyweb/router"
	"github.com/tinyweb-go/tinyweb/server"
)

type appConfig struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	Workers         int           `env:"WORKERS" envDefault:"0"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	LogLevel        slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
}

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	var cfg appConfig
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	r := router.New()
	must(r.Route("/", router.Get(handler.New0(hello))))
	must(r.Route("/post/:id", router.Post(handler.New2(showPost))))
	must(r.Route("/cpu", router.Get(handler.New0(cpuBound))))

	api := router.New()
	must(api.Route("/health", router.Get(handler.New0(health))))
	must(r.Merge("/api", api))

	serverCfg := server.DefaultConfig()
	serverCfg.Addr = cfg.Addr
	serverCfg.Workers = cfg.Workers
	serverCfg.ReadTimeout = cfg.ReadTimeout
	serverCfg.WriteTimeout = cfg.WriteTimeout

	srv, err := server.ListenAndServe(serverCfg, r, server.WithLogger(logger))
	if err != nil {
		logger.Error("startup failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("listening", slog.String("addr", srv.Addr().String()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown incomplete", slog.Any("error", err))
		os.Exit(1)
	}

	stats := srv.Metrics().Snapshot()
	logger.Info("stopped",
		slog.Int64("requests_total", stats.RequestsTotal),
		slog.Int64("errors_4xx", stats.Errors4xx),
		slog.Int64("errors_5xx", stats.Errors5xx),
	)
}

func hello() string {
	return "Hello, World!"
}

func showPost(id extract.Path[int], body extract.Body) string {
	return fmt.Sprintf("ID: %d, Body: %s", id.Value, body)
}

func cpuBound() string {
	total := 0
	for i := 0; i < 1_000_000; i++ {
		total++
	}
	return fmt.Sprintf("Total: %d", total)
}

func health() response.Response {
	return response.JSON(response.StatusOK, map[string]string{"status": "healthy"})
}

func must(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "route registration: %v\n", err)
		os.Exit(1)
	}
}
