// Package main 一次性 seed 命令
//
// 清空图鉴集合并从远端图鉴 API 重新导入，与 POST /api/v2/seed 行为一致。
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pokedex-admin/internal/apiserver/seed"
	"pokedex-admin/internal/config"
	"pokedex-admin/internal/pokeapi"
	"pokedex-admin/internal/shared/infra"
	"pokedex-admin/pkg/logging"
)

func main() {
	configDir := flag.String("config", "", "配置文件目录")
	timeout := flag.Duration("timeout", 2*time.Minute, "整体超时")
	flag.Parse()
	if *configDir != "" {
		config.SetConfigDir(*configDir)
	}

	if err := run(*timeout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(timeout time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logging.New(logging.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Component: "seed",
	})

	inf, err := infra.New(cfg)
	if err != nil {
		return fmt.Errorf("init infrastructure: %w", err)
	}
	defer inf.Close()

	fetcher := pokeapi.NewClient(cfg.PokeAPI,
		pokeapi.WithCache(inf.Cache, cfg.PokeAPI.CacheTTL),
		pokeapi.WithLogger(log.Named("pokeapi")),
	)

	opts := []seed.Option{seed.WithLogger(log)}
	if inf.Archive != nil {
		opts = append(opts, seed.WithArchiver(inf.Archive))
	}
	svc := seed.NewService(inf.Store, fetcher, cfg.PokeAPI.SeedLimit, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	msg, err := svc.ExecuteSeed(ctx)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}
