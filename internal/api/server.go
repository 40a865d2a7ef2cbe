// Package api 提供 serve 模式的 HTTP 部署端点。
// 该包把部署编排器暴露为一个 multipart 接口，供 CI 系统在不安装 CLI 的情况下推送产物。
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/oriys/stratus/internal/deploy"
	"github.com/oriys/stratus/internal/domain"
	"github.com/oriys/stratus/internal/telemetry"
)

// 单次上传产物大小上限（与平台的直传代码包上限一致）。
const maxArtifactSize = 50 * 1024 * 1024

// Deployer 声明服务端点需要的最小编排能力。
type Deployer interface {
	Run(ctx context.Context, spec *domain.DeploymentSpec, artifact *domain.Artifact) (*deploy.Result, error)
}

// Server 是部署服务的 HTTP 处理器集合。
type Server struct {
	deployer  Deployer
	logger    *logrus.Logger
	authToken string
	defaults  domain.SpecDefaults
}

// NewServer 创建部署服务。authToken 非空时所有部署请求必须携带 Bearer 令牌；
// defaults 中的非空字段会填入请求声明中未提供的字段。
func NewServer(deployer Deployer, logger *logrus.Logger, authToken string, defaults domain.SpecDefaults) *Server {
	return &Server{deployer: deployer, logger: logger, authToken: authToken, defaults: defaults}
}

// Router 构建路由。
//
// 路由结构：
//
//	/healthz      - 健康检查
//	/metrics      - Prometheus 指标端点
//	/v1/deploy    - 部署端点（multipart：spec + artifact）
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(telemetry.HTTPMiddleware("stratus"))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	// 部署包含多个串行远程调用，超时放宽到 5 分钟
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Post("/v1/deploy", s.handleDeploy)
	})

	return r
}

// authMiddleware 校验 Bearer 令牌；未配置令牌时直接放行。
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.authToken != "" && r.Header.Get("Authorization") != "Bearer "+s.authToken {
			writeError(w, http.StatusUnauthorized, "invalid or missing bearer token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleDeploy 接收 multipart 请求并执行一次部署：
// 表单字段 "spec" 为 DeploymentSpec 的 JSON；文件字段 "artifact" 为打包产物。
func (s *Server) handleDeploy(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxArtifactSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart request: "+err.Error())
		return
	}

	var spec domain.DeploymentSpec
	if err := json.Unmarshal([]byte(r.FormValue("spec")), &spec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid spec: "+err.Error())
		return
	}
	s.defaults.Apply(&spec)

	file, header, err := r.FormFile("artifact")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing artifact file: "+err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxArtifactSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read artifact: "+err.Error())
		return
	}
	if len(data) > maxArtifactSize {
		writeError(w, http.StatusRequestEntityTooLarge, "artifact exceeds size limit")
		return
	}

	artifact := &domain.Artifact{Path: header.Filename, Data: data}

	result, err := s.deployer.Run(r.Context(), &spec, artifact)
	if err != nil {
		s.logger.WithError(err).WithField("function", spec.FunctionName).Error("Deploy request failed")
		writeError(w, deployStatus(err), err.Error())
		return
	}

	// 响应不回传产物内容
	result.Artifact = nil
	writeJSON(w, http.StatusOK, result)
}

// deployStatus 把部署错误映射为 HTTP 状态码：
// 本地校验错误是调用方问题（400），远程调用失败是上游问题（502）。
func deployStatus(err error) int {
	validation := []error{
		domain.ErrFunctionNameRequired,
		domain.ErrRoleRequired,
		domain.ErrAliasRequiresPublish,
		domain.ErrIncompleteStaging,
		domain.ErrEmptyArtifact,
		domain.ErrNotArchive,
	}
	for _, v := range validation {
		if errors.Is(err, v) {
			return http.StatusBadRequest
		}
	}
	return http.StatusBadGateway
}

// writeJSON 输出 JSON 响应。
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError 输出统一格式的 JSON 错误体。
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
