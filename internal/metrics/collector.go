// Package metrics 提供 Prometheus 指标采集与上报的统一封装。
// 该包集中定义部署流水线的关键指标，便于在 CLI 与 serve 模式间复用并保持标签一致。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 封装部署工具的运行指标集合。
//
// 指标分类:
//   - 部署指标: 统计部署次数与结果
//   - 阶段指标: 各流水线阶段的耗时分布
//   - 产物指标: 最近一次部署产物的大小
type Metrics struct {
	// DeploymentsTotal 部署总次数计数器
	// 标签: function, path (create/update/unknown), status (success/failure)。
	// 在定位阶段完成前失败的运行记为 path=unknown
	DeploymentsTotal *prometheus.CounterVec

	// DeploymentErrors 部署失败计数器，按失败阶段分类
	// 标签: function, stage
	DeploymentErrors *prometheus.CounterVec

	// StageDuration 流水线阶段耗时直方图（单位：毫秒）
	// 标签: stage
	StageDuration *prometheus.HistogramVec

	// ArtifactSizeBytes 最近部署的产物大小
	// 标签: function
	ArtifactSizeBytes *prometheus.GaugeVec
}

// New 创建并向给定 Registerer 注册全部指标。
// reg 为 nil 时使用默认注册表。
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		DeploymentsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stratus",
			Name:      "deployments_total",
			Help:      "Total number of deployment runs by outcome",
		}, []string{"function", "path", "status"}),

		DeploymentErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stratus",
			Name:      "deployment_errors_total",
			Help:      "Total number of failed deployment runs by pipeline stage",
		}, []string{"function", "stage"}),

		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stratus",
			Name:      "stage_duration_milliseconds",
			Help:      "Duration of deployment pipeline stages in milliseconds",
			Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		}, []string{"stage"}),

		ArtifactSizeBytes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "stratus",
			Name:      "artifact_size_bytes",
			Help:      "Size of the most recently deployed artifact in bytes",
		}, []string{"function"}),
	}
}

// RecordDeployment 记录一次部署结果。
// path 为 create、update 或 unknown（定位阶段前失败）。
func (m *Metrics) RecordDeployment(function, path, status string) {
	m.DeploymentsTotal.WithLabelValues(function, path, status).Inc()
}

// RecordFailure 记录一次部署失败及其失败阶段。
func (m *Metrics) RecordFailure(function, stage string) {
	m.DeploymentErrors.WithLabelValues(function, stage).Inc()
}

// ObserveStage 记录一个阶段的耗时。
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	m.StageDuration.WithLabelValues(stage).Observe(float64(d.Milliseconds()))
}

// ObserveArtifactSize 记录产物大小。
func (m *Metrics) ObserveArtifactSize(function string, size int) {
	m.ArtifactSizeBytes.WithLabelValues(function).Set(float64(size))
}
