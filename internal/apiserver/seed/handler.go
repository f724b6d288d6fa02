package seed

import (
	"io"
	"net/http"

	"pokedex-admin/internal/apiserver/apierr"
)

// Handler seed HTTP 处理器
type Handler struct {
	svc *Service
}

// NewHandler 创建 seed 处理器
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册 seed 路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v2/seed", h.Execute)
}

// Execute 执行 seed
// POST /api/v2/seed
func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	msg, err := h.svc.ExecuteSeed(r.Context())
	if err != nil {
		apierr.Write(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, msg)
}
