package server

import (
	"net/http"
)

// Router 返回配置好的 HTTP 路由
//
// 路由规则：
//
// 健康检查与指标:
//   - GET /health  - 服务健康检查
//   - GET /metrics - Prometheus 指标
//
// 图鉴 (Pokemon):
//   - POST   /api/v2/pokemon        - 创建条目
//   - GET    /api/v2/pokemon        - 分页列出（limit / offset）
//   - GET    /api/v2/pokemon/{term} - 按编号、ID 或名称查询
//   - PATCH  /api/v2/pokemon/{term} - 部分更新
//   - DELETE /api/v2/pokemon/{id}   - 按 ID 删除
//
// Seed:
//   - POST   /api/v2/seed           - 清空并从远端重新导入
func (h *Handler) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /metrics", h.metrics.Handler())

	h.pokemon.RegisterRoutes(mux)
	h.seed.RegisterRoutes(mux)

	var handler http.Handler = mux
	handler = h.metrics.MetricsMiddleware(handler)
	handler = accessLogMiddleware(h.log.Named("http"))(handler)
	handler = requestIDMiddleware(handler)
	handler = corsMiddleware(handler)
	return handler
}
