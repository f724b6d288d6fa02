// Package main API Server 入口
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pokedex-admin/internal/apiserver/server"
	"pokedex-admin/internal/config"
	"pokedex-admin/internal/pokeapi"
	"pokedex-admin/internal/shared/infra"
	"pokedex-admin/pkg/logging"
)

func main() {
	configDir := flag.String("config", "", "配置文件目录")
	flag.Parse()
	if *configDir != "" {
		config.SetConfigDir(*configDir)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Default("api-server").WithError(err).Error("Failed to load config")
		os.Exit(1)
	}

	log := logging.New(logging.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Component: "api-server",
	})
	log.Info("Starting API Server", "env", cfg.Env)
	log.Info("Config loaded", "config", cfg.String(), "file", config.LoadedFrom())

	// 存储、缓存、归档
	inf, err := infra.New(cfg)
	if err != nil {
		log.WithError(err).Error("Failed to initialize infrastructure")
		os.Exit(1)
	}
	defer inf.Close()

	fetcher := pokeapi.NewClient(cfg.PokeAPI,
		pokeapi.WithCache(inf.Cache, cfg.PokeAPI.CacheTTL),
		pokeapi.WithLogger(log.Named("pokeapi")),
	)

	opts := server.Options{
		DefaultLimit: cfg.Pagination.DefaultLimit,
		SeedLimit:    cfg.PokeAPI.SeedLimit,
		Logger:       log,
	}
	if inf.Archive != nil {
		opts.Archiver = inf.Archive
	}
	h := server.NewHandler(inf.Store, fetcher, opts)

	srv := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      h.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // seed 需要拉取远端并批量写入
		IdleTimeout:  60 * time.Second,
		ErrorLog:     newServerErrorLog(log),
	}

	// 优雅关闭
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.WithError(err).Error("Server shutdown error")
		}
	}()

	log.Info("API Server listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("Server error")
		inf.Close()
		os.Exit(1)
	}

	log.Info("Server stopped")
}
