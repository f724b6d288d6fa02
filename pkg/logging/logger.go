// Package logging 结构化日志
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// ContextKey 上下文键类型
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
)

// Logger 结构化日志器
type Logger struct {
	*slog.Logger
	component string
}

// Config 日志配置
type Config struct {
	Level     string `json:"level"`
	Format    string `json:"format"` // json or text
	Output    string `json:"output"` // stdout, stderr, or file path
	Component string `json:"component"`
}

// ParseLevel 解析日志级别，未知值按 info 处理
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New 创建新的日志器
func New(cfg Config) *Logger {
	var output io.Writer
	switch cfg.Output {
	case "stdout", "":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			output = os.Stdout
		} else {
			output = f
		}
	}
	return NewWithWriter(cfg, output)
}

// NewWithWriter 创建写入指定 Writer 的日志器（测试用）
func NewWithWriter(cfg Config, output io.Writer) *Logger {
	level := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	logger := slog.New(handler)
	if cfg.Component != "" {
		logger = logger.With(slog.String("component", cfg.Component))
	}
	return &Logger{
		Logger:    logger,
		component: cfg.Component,
	}
}

// Default 创建默认日志器
func Default(component string) *Logger {
	return New(Config{
		Level:     os.Getenv("LOG_LEVEL"),
		Format:    os.Getenv("LOG_FORMAT"),
		Output:    "stdout",
		Component: component,
	})
}

// Discard 丢弃所有输出的日志器
func Discard() *Logger {
	return NewWithWriter(Config{}, io.Discard)
}

// Named 派生出另一个组件名的日志器，共享同一 Handler
func (l *Logger) Named(component string) *Logger {
	return &Logger{
		Logger:    l.Logger.With(slog.String("component", component)),
		component: component,
	}
}

// WithContext 从上下文提取请求信息
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok && reqID != "" {
		return &Logger{
			Logger:    l.Logger.With(slog.String("request_id", reqID)),
			component: l.component,
		}
	}
	return l
}

// WithError 添加错误信息
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return &Logger{
		Logger:    l.Logger.With(slog.String("error", err.Error())),
		component: l.component,
	}
}

// WithDuration 添加持续时间
func (l *Logger) WithDuration(d time.Duration) *Logger {
	return &Logger{
		Logger:    l.Logger.With(slog.Float64("duration_ms", float64(d.Milliseconds()))),
		component: l.component,
	}
}

// HTTPRequestLog HTTP 请求日志
func (l *Logger) HTTPRequestLog(method, path string, status int, duration time.Duration, clientIP string) {
	l.Logger.Info("HTTP request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
		slog.String("client_ip", clientIP),
	)
}

// DBQueryLog 数据库操作日志
func (l *Logger) DBQueryLog(operation, collection string, duration time.Duration, err error) {
	attrs := []any{
		slog.String("operation", operation),
		slog.String("collection", collection),
		slog.Float64("duration_ms", float64(duration.Milliseconds())),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		l.Logger.Error("DB operation failed", attrs...)
	} else {
		l.Logger.Debug("DB operation", attrs...)
	}
}

// SeedLog seed 过程日志
func (l *Logger) SeedLog(step string, extra ...any) {
	attrs := []any{slog.String("step", step)}
	attrs = append(attrs, extra...)
	l.Logger.Info("Seed event", attrs...)
}
