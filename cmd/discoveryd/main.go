// cmd/discoveryd is the long-running server binary: it wires
// configuration, structured logging, the seed catalog, the novelty
// store, and the HTTP/WebSocket control plane together and serves them
// until an interrupt or termination signal arrives. Environment-variable
// loading follows the teacher's requireEnv/getEnvOrDefault pattern in
// cmd/engine/main.go, generalized through internal/config's typed
// Viper loader; graceful shutdown follows
// turtacn-KeyIP-Intelligence's cmd/apiserver/main.go (signal.Notify +
// http.Server.Shutdown with a bounded timeout).
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/latticeforge/discovery/internal/api"
	"github.com/latticeforge/discovery/internal/config"
	"github.com/latticeforge/discovery/internal/novelty"
	"github.com/latticeforge/discovery/internal/pipeline"
	"github.com/latticeforge/discovery/internal/telemetry"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config overlay")
	flag.Parse()

	runCfg, err := config.LoadRunConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "discoveryd: failed to load run config: %v\n", err)
		os.Exit(1)
	}
	serverCfg, err := config.LoadServerConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "discoveryd: failed to load server config: %v\n", err)
		os.Exit(1)
	}

	log, err := telemetry.New(serverCfg.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "discoveryd: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting discoveryd")

	var store novelty.Store
	if serverCfg.DatabaseURL != "" {
		pgStore, err := novelty.Connect(context.Background(), serverCfg.DatabaseURL)
		if err != nil {
			log.Warn("failed to connect to postgres novelty store, continuing with an in-memory one")
			store = novelty.NewMemStore()
		} else {
			defer pgStore.Close()
			store = pgStore
			log.Info("connected to postgres novelty store")
		}
	} else {
		store = novelty.NewMemStore()
		log.Info("using in-memory novelty store (no database_url configured)")
	}

	baseConfig := pipeline.Config{
		Depth:            runCfg.Depth,
		AllowedMoves:     nil,
		MinModelSize:     runCfg.MinModelSize,
		MaxModelSize:     runCfg.MaxModelSize,
		MaxModelsPerSize: runCfg.MaxModelsPerSize,
		SolverTimeout:    time.Duration(runCfg.SolverTimeoutMs) * time.Millisecond,
		ScoreThreshold:   runCfg.ScoreThreshold,
		TopN:             runCfg.TopN,
		Workers:          runCfg.Workers,
		Weights:          pipeline.DefaultConfig().Weights,
	}

	wsHub := api.NewHub(log)
	go wsHub.Run()

	handler := api.NewHandler(baseConfig, store, wsHub, log)
	router := api.SetupRouter(handler, api.RouterConfig{
		AuthToken:         serverCfg.AuthToken,
		AllowedOrigins:    serverCfg.AllowedOrigins,
		ExploreRatePerMin: serverCfg.RateLimitPerMin,
		ExploreRateBurst:  serverCfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:    ":" + serverCfg.Port,
		Handler: router,
	}

	go func() {
		log.Info("listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error")
	}
	log.Info("stopped")
}
