package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"differenzler"
	"differenzler/config"
)

var (
	pid    = strconv.Itoa(os.Getpid())
	cpuNum = runtime.NumCPU()

	configPath = flag.String("config", "config.json", "JSON configuration file, optional")
	addr       = flag.String("addr", "", "listen address, overrides the configuration")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load configuration", tint.Err(err))
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	level, err := differenzler.ParseLevel(cfg.LogLevel)
	if err != nil {
		slog.Warn("log level", tint.Err(err))
	}
	log := differenzler.NewLogger(os.Stderr, level)
	slog.SetDefault(log)
	log.Info("cpu cores", slog.Int("core", cpuNum))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := differenzler.InitProject(ctx, cfg, log)
	if err != nil {
		log.Error("init project", tint.Err(err))
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/", app.Server)
	mux.HandleFunc("GET /status", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(app.Counter.GetSnapshot()); err != nil {
			log.Warn("status", tint.Err(err))
		}
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("differenzler server", slog.String("pid", pid), slog.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server start failed", tint.Err(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down", slog.String("pid", pid))

	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	app.Close()
	if err := srv.Shutdown(shutdown); err != nil {
		log.Error("shutdown", tint.Err(err))
	}
}
