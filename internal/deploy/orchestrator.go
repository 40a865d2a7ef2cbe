// Package deploy 实现部署调和的核心流程。
// 本文件实现编排器：按固定顺序串联各阶段，第一个失败的阶段终止整个运行。
package deploy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/oriys/stratus/internal/domain"
	"github.com/oriys/stratus/internal/metrics"
)

// Stage 标识编排流水线中的一个阶段。
type Stage string

// 流水线阶段常量，按执行顺序排列。
const (
	StageValidate          Stage = "validate"
	StageStageArtifact     Stage = "stage_artifact"
	StageLocate            Stage = "locate"
	StageReconcileFunction Stage = "reconcile_function"
	StageReconcileAlias    Stage = "reconcile_alias"
)

// Result 是一次成功部署的产出。
// Artifact 原样透传给下游消费方。
type Result struct {
	RunID        string           `json:"run_id"`
	FunctionName string           `json:"function_name"`
	Version      string           `json:"version,omitempty"`
	Created      bool             `json:"created"`
	Staged       bool             `json:"staged"`
	Duration     time.Duration    `json:"duration_ns"`
	Artifact     *domain.Artifact `json:"artifact,omitempty"`
}

// EventSink 声明编排器需要的最小事件发布能力。
// 发布失败由实现方自行记录，不得影响部署结果。
type EventSink interface {
	DeploymentStarted(ctx context.Context, runID, functionName string)
	DeploymentSucceeded(ctx context.Context, runID, functionName, version string)
	DeploymentFailed(ctx context.Context, runID, functionName string, stage string, cause error)
}

// Orchestrator 串联部署流水线：
// Validate → [StageArtifact] → Locate → ReconcileFunction → [ReconcileAlias]。
// 每个阶段仅在前序阶段成功后开始；首个失败终止运行，已完成阶段不回滚。
type Orchestrator struct {
	locator   *Locator
	stager    *Stager
	functions *FunctionReconciler
	aliases   *AliasReconciler
	logger    *logrus.Logger
	metrics   *metrics.Metrics
	events    EventSink
	tracer    trace.Tracer
}

// Option 配置 Orchestrator 的可选依赖。
type Option func(*Orchestrator)

// WithMetrics 启用 Prometheus 指标记录。
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithEvents 启用部署生命周期事件发布。
func WithEvents(sink EventSink) Option {
	return func(o *Orchestrator) { o.events = sink }
}

// NewOrchestrator 创建部署编排器。
// store 仅在声明了暂存位置时被使用，未配置暂存的调用方可以传入 nil。
func NewOrchestrator(api FunctionAPI, store ObjectStore, logger *logrus.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		locator:   NewLocator(api),
		stager:    NewStager(store),
		functions: NewFunctionReconciler(api),
		aliases:   NewAliasReconciler(api),
		logger:    logger,
		tracer:    otel.Tracer("github.com/oriys/stratus/internal/deploy"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run 执行一次完整的部署调和。
// 声明与产物先在本地校验，之后的每个远程阶段严格串行，
// 任何失败立即终止并携带阶段与资源上下文向上传播。
func (o *Orchestrator) Run(ctx context.Context, spec *domain.DeploymentSpec, artifact *domain.Artifact) (*Result, error) {
	runID := uuid.NewString()
	start := time.Now()

	ctx, span := o.tracer.Start(ctx, "deploy.run", trace.WithAttributes(
		attribute.String("deploy.run_id", runID),
		attribute.String("deploy.function", spec.FunctionName),
	))
	defer span.End()

	log := o.logger.WithFields(logrus.Fields{
		"run_id":   runID,
		"function": spec.FunctionName,
	})

	// 每次运行先宣告开始，保证失败事件总有配对的开始事件
	if o.events != nil {
		o.events.DeploymentStarted(ctx, runID, spec.FunctionName)
	}
	log.WithField("artifact", artifact.Path).Info("Deployment started")

	// path 在定位阶段完成后才能确定
	path := "unknown"

	// Validate：本地校验，不发起远程调用
	spec.Normalize()
	if err := o.runStage(ctx, StageValidate, func(context.Context) error {
		if err := spec.Validate(); err != nil {
			return err
		}
		return artifact.Validate()
	}); err != nil {
		return nil, o.fail(ctx, span, log, runID, spec.FunctionName, StageValidate, path, err)
	}

	if o.metrics != nil {
		o.metrics.ObserveArtifactSize(spec.FunctionName, len(artifact.Data))
	}

	// StageArtifact：可选，仅在声明了暂存位置时执行
	staged := false
	if err := o.runStage(ctx, StageStageArtifact, func(ctx context.Context) error {
		var err error
		staged, err = o.stager.Stage(ctx, spec, artifact)
		return err
	}); err != nil {
		return nil, o.fail(ctx, span, log, runID, spec.FunctionName, StageStageArtifact, path, err)
	}
	if staged {
		log.WithFields(logrus.Fields{
			"bucket": spec.Staging.Bucket,
			"key":    spec.Staging.Key,
		}).Info("Artifact staged")
	}

	// Locate：判断走创建还是更新分支
	exists := false
	if err := o.runStage(ctx, StageLocate, func(ctx context.Context) error {
		var err error
		exists, err = o.locator.Exists(ctx, spec.FunctionName)
		return err
	}); err != nil {
		return nil, o.fail(ctx, span, log, runID, spec.FunctionName, StageLocate, path, err)
	}
	if exists {
		path = "update"
	} else {
		path = "create"
	}

	// ReconcileFunction：创建或“先配置后代码”的更新
	version := ""
	if err := o.runStage(ctx, StageReconcileFunction, func(ctx context.Context) error {
		var err error
		version, err = o.functions.Reconcile(ctx, exists, spec, artifact)
		return err
	}); err != nil {
		return nil, o.fail(ctx, span, log, runID, spec.FunctionName, StageReconcileFunction, path, err)
	}
	log.WithFields(logrus.Fields{
		"created": !exists,
		"version": version,
	}).Info("Function reconciled")

	// ReconcileAlias：可选，仅在声明了别名时执行
	if spec.Alias != "" {
		if err := o.runStage(ctx, StageReconcileAlias, func(ctx context.Context) error {
			return o.aliases.Reconcile(ctx, spec.FunctionName, spec.Alias, version)
		}); err != nil {
			return nil, o.fail(ctx, span, log, runID, spec.FunctionName, StageReconcileAlias, path, err)
		}
		log.WithFields(logrus.Fields{
			"alias":   spec.Alias,
			"version": version,
		}).Info("Alias reconciled")
	}

	elapsed := time.Since(start)
	if o.metrics != nil {
		o.metrics.RecordDeployment(spec.FunctionName, path, "success")
	}
	if o.events != nil {
		o.events.DeploymentSucceeded(ctx, runID, spec.FunctionName, version)
	}
	log.WithField("duration", elapsed).Info("Deployment succeeded")

	return &Result{
		RunID:        runID,
		FunctionName: spec.FunctionName,
		Version:      version,
		Created:      !exists,
		Staged:       staged,
		Duration:     elapsed,
		Artifact:     artifact,
	}, nil
}

// runStage 在独立 span 中执行一个阶段并记录耗时指标。
func (o *Orchestrator) runStage(ctx context.Context, stage Stage, fn func(context.Context) error) error {
	ctx, span := o.tracer.Start(ctx, "deploy."+string(stage))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	if o.metrics != nil {
		o.metrics.ObserveStage(string(stage), time.Since(start))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// fail 统一处理阶段失败：记录日志、发布事件、包裹阶段上下文。
// 已完成阶段的副作用（如已上传的暂存对象）保持原样，不做补偿清理。
func (o *Orchestrator) fail(ctx context.Context, span trace.Span, log *logrus.Entry, runID, functionName string, stage Stage, path string, err error) error {
	wrapped := fmt.Errorf("deploy %q: stage %s: %w", functionName, stage, err)
	span.SetStatus(codes.Error, wrapped.Error())
	if o.metrics != nil {
		o.metrics.RecordDeployment(functionName, path, "failure")
		o.metrics.RecordFailure(functionName, string(stage))
	}
	if o.events != nil {
		o.events.DeploymentFailed(ctx, runID, functionName, string(stage), err)
	}
	log.WithError(err).WithField("stage", string(stage)).Error("Deployment failed")
	return wrapped
}
