// Package pokemon 图鉴领域 - HTTP 处理
package pokemon

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"pokedex-admin/internal/apiserver/apierr"
	"pokedex-admin/internal/shared/model"
	"pokedex-admin/pkg/logging"
)

// maxBodyBytes 请求体上限
const maxBodyBytes = 1 << 20

// Handler 图鉴领域 HTTP 处理器
type Handler struct {
	svc *Service
	log *logging.Logger
}

// NewHandler 创建图鉴处理器
func NewHandler(svc *Service, log *logging.Logger) *Handler {
	if log == nil {
		log = logging.Discard()
	}
	return &Handler{svc: svc, log: log}
}

// RegisterRoutes 注册图鉴相关路由
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v2/pokemon", h.Create)
	mux.HandleFunc("GET /api/v2/pokemon", h.List)
	mux.HandleFunc("GET /api/v2/pokemon/{term}", h.Get)
	mux.HandleFunc("PATCH /api/v2/pokemon/{term}", h.Update)
	mux.HandleFunc("DELETE /api/v2/pokemon/{id}", h.Delete)
}

// ============================================================================
// 请求体
// ============================================================================

// CreateRequest 创建条目的请求体，字段均必填
type CreateRequest struct {
	No   *int    `json:"no"`
	Name *string `json:"name"`
}

func (r CreateRequest) validate() error {
	if r.No == nil {
		return apierr.BadRequest("no is required")
	}
	if r.Name == nil {
		return apierr.BadRequest("name is required")
	}
	return validateFields(r.No, r.Name)
}

// UpdateRequest 更新条目的请求体，字段均可选
type UpdateRequest struct {
	No   *int    `json:"no"`
	Name *string `json:"name"`
}

func (r UpdateRequest) validate() error {
	return validateFields(r.No, r.Name)
}

func validateFields(no *int, name *string) error {
	if no != nil && *no < 1 {
		return apierr.BadRequest("no must be a positive integer")
	}
	if name != nil && *name == "" {
		return apierr.BadRequest("name must not be empty")
	}
	return nil
}

// decodeBody 严格解码：拒绝未知字段和多余内容
func decodeBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return apierr.BadRequest("failed to read request body")
	}
	if len(body) > maxBodyBytes {
		return apierr.BadRequest("request body too large")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apierr.BadRequest("invalid request body: %v", err)
	}
	if dec.More() {
		return apierr.BadRequest("invalid request body: unexpected trailing data")
	}
	return nil
}

// parsePagination 解析 limit / offset，缺省时为 0 交由服务层填充默认值
func parsePagination(r *http.Request) (model.Pagination, error) {
	var page model.Pagination
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return page, apierr.BadRequest("limit must be an integer not less than 1")
		}
		page.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return page, apierr.BadRequest("offset must be an integer not less than 0")
		}
		page.Offset = n
	}
	return page, nil
}

// ============================================================================
// HTTP 处理函数
// ============================================================================

// Create 创建条目
// POST /api/v2/pokemon
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		h.writeError(w, r, err)
		return
	}

	p, err := h.svc.Create(r.Context(), *req.No, *req.Name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// List 分页列出条目
// GET /api/v2/pokemon?limit=&offset=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePagination(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	list, err := h.svc.FindAll(r.Context(), page)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get 按编号、ID 或名称查询
// GET /api/v2/pokemon/{term}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.FindOne(r.Context(), r.PathValue("term"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Update 部分更新
// PATCH /api/v2/pokemon/{term}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := req.validate(); err != nil {
		h.writeError(w, r, err)
		return
	}

	p, err := h.svc.Update(r.Context(), r.PathValue("term"), model.PokemonPatch{No: req.No, Name: req.Name})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Delete 按 ID 删除
// DELETE /api/v2/pokemon/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Remove(r.Context(), r.PathValue("id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeError 记录内部错误并写入错误响应
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if apierr.KindOf(err) == apierr.KindInternal {
		h.log.WithContext(r.Context()).WithError(err).Error("Request failed", "method", r.Method, "path", r.URL.Path)
	}
	apierr.Write(w, err)
}

// writeJSON 写入 JSON 响应
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
