package main

import (
	"log"
	"log/slog"

	"pokedex-admin/pkg/logging"
)

// newServerErrorLog 将 http.Server 内部错误（连接读写失败、panic 恢复等）
// 以 warn 级别写入结构化日志
func newServerErrorLog(l *logging.Logger) *log.Logger {
	return slog.NewLogLogger(l.Handler(), slog.LevelWarn)
}
