// Package server 提供 HTTP API 入口
//
// 本包组装各领域处理器并挂载公共中间件：
//   - handler.go: 路由
//   - common.go: Handler 定义和通用工具函数
//   - middleware.go: 请求 ID、访问日志、CORS
//   - metrics.go: Prometheus 指标
package server

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"pokedex-admin/internal/apiserver/pokemon"
	"pokedex-admin/internal/apiserver/seed"
	"pokedex-admin/internal/shared/storage"
	"pokedex-admin/pkg/logging"
)

// Options Handler 可选配置
type Options struct {
	// DefaultLimit 列表默认分页大小
	DefaultLimit int

	// SeedLimit seed 时拉取的条目数
	SeedLimit int

	// Archiver seed 快照归档，nil 表示不归档
	Archiver seed.Archiver

	Logger *logging.Logger
}

// Handler API 处理器
//
// Handler 是所有 HTTP API 的入口，持有各领域服务。
// 存储连接由调用方创建和关闭。
type Handler struct {
	pokemon *pokemon.Handler
	seed    *seed.Handler
	metrics *Metrics
	log     *logging.Logger
}

// NewHandler 创建 Handler 实例
func NewHandler(store storage.PokemonStore, fetcher seed.Fetcher, opts Options) *Handler {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	metrics := NewMetrics("pokedex")

	seedOpts := []seed.Option{
		seed.WithObserver(metrics),
		seed.WithLogger(log.Named("seed")),
	}
	if opts.Archiver != nil {
		seedOpts = append(seedOpts, seed.WithArchiver(opts.Archiver))
	}

	pokemonSvc := pokemon.NewService(store, opts.DefaultLimit, log.Named("pokemon"))
	seedSvc := seed.NewService(store, fetcher, opts.SeedLimit, seedOpts...)

	return &Handler{
		pokemon: pokemon.NewHandler(pokemonSvc, log.Named("pokemon")),
		seed:    seed.NewHandler(seedSvc),
		metrics: metrics,
		log:     log,
	}
}

// GetMetrics 返回指标实例
func (h *Handler) GetMetrics() *Metrics {
	return h.metrics
}

// writeJSON 将数据以 JSON 格式写入 HTTP 响应
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// generateID 生成带前缀的唯一标识符
//
// 格式为：prefix-xxxxxxxxxxxx（6 字节随机数的十六进制）
func generateID(prefix string) string {
	b := make([]byte, 6)
	rand.Read(b)
	return prefix + "-" + hex.EncodeToString(b)
}

// Health 健康检查接口
//
// 路由: GET /health
//
// 用于负载均衡器和监控系统检查服务状态。
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
