// Package telemetry 提供日志与 OpenTelemetry 分布式追踪的统一初始化。
// 本文件实现 HTTP 中间件：为传入请求创建 Span 并传播追踪上下文，
// 使调用方（如 CI 流水线）的追踪链路能够关联到部署阶段的 Span。
package telemetry

import (
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

// HTTPMiddleware 返回一个为传入请求创建追踪 Span 的 HTTP 中间件。
// 追踪上下文从请求头提取（如果存在），并随请求上下文传递给下游处理器，
// 因此部署流水线内的 Span 会挂在调用方的链路之下。
func HTTPMiddleware(serviceName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, serviceName,
			otelhttp.WithTracerProvider(otel.GetTracerProvider()),
			otelhttp.WithPropagators(otel.GetTextMapPropagator()),
			// Span 命名为“方法 路径”，如 "POST /v1/deploy"
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	}
}
