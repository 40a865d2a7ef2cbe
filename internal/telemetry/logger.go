// Package telemetry 提供日志与 OpenTelemetry 分布式追踪的统一初始化。
// 本文件实现日志构造与日志/追踪关联：通过 Logrus Hook 把追踪上下文
// （Trace ID、Span ID）自动注入日志条目，便于在日志系统中关联追踪数据。
package telemetry

import (
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"
)

// NewLogger 按给定级别与格式构造 logrus 日志器，并挂载追踪上下文注入钩子。
// level 无法解析时回落到 info；format 为 "json" 时输出结构化 JSON。
func NewLogger(level, format string) *logrus.Logger {
	logger := logrus.New()

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	logger.AddHook(&TraceHook{})
	return logger
}

// TraceHook 把当前 Span 的追踪上下文注入日志条目。
// 仅当日志条目通过 WithContext 携带了有效 Span 时生效。
type TraceHook struct{}

// Levels 在所有日志级别触发。
func (h *TraceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire 向日志条目添加 trace_id 与 span_id 字段。
func (h *TraceHook) Fire(entry *logrus.Entry) error {
	if entry.Context == nil {
		return nil
	}

	span := trace.SpanFromContext(entry.Context)
	sc := span.SpanContext()
	if !sc.IsValid() {
		return nil
	}

	entry.Data["trace_id"] = sc.TraceID().String()
	entry.Data["span_id"] = sc.SpanID().String()
	return nil
}
