// Package apierr API 层错误分类
//
// 服务层把存储层错误在边界处归类为 Kind，处理器据此选择 HTTP 状态码。
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"pokedex-admin/internal/shared/storage"
)

// Kind 错误类别
type Kind int

const (
	KindInternal Kind = iota
	KindBadRequest
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "BadRequest"
	case KindNotFound:
		return "NotFound"
	case KindConflict:
		return "Conflict"
	default:
		return "Internal"
	}
}

// HTTPStatus 返回类别对应的 HTTP 状态码
func (k Kind) HTTPStatus() int {
	switch k {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error 带类别的 API 错误
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// BadRequest 请求参数错误
func BadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NotFound 资源不存在
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict 唯一键冲突
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Internal 内部错误，message 对外暴露，err 只用于日志
func Internal(err error, message string) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf 返回错误的类别，非 *Error 一律视为 Internal
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// FromWrite 归类写操作错误：唯一键冲突 → Conflict，其余 → Internal
//
// Conflict 消息中包含冲突字段和值，如 Pokemon exists in db {"name":"pikachu"}。
func FromWrite(err error, what string) error {
	if err == nil {
		return nil
	}
	var dup *storage.DuplicateKeyError
	if errors.As(err, &dup) {
		kv, _ := json.Marshal(dup.KeyValue())
		return &Error{
			Kind:    KindConflict,
			Message: fmt.Sprintf("%s exists in db %s", what, kv),
			Err:     err,
		}
	}
	if errors.Is(err, storage.ErrDuplicate) {
		return &Error{Kind: KindConflict, Message: what + " already exists", Err: err}
	}
	return Internal(err, fmt.Sprintf("can't write %s - check server logs", what))
}

// Response 错误响应体
type Response struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Write 将错误写入 HTTP 响应，Internal 错误不暴露底层原因
func Write(w http.ResponseWriter, err error) {
	kind := KindOf(err)
	msg := "internal server error"
	var e *Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	status := kind.HTTPStatus()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{Error: msg, Status: status})
}
