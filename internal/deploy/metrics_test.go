package deploy

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/oriys/stratus/internal/domain"
	"github.com/oriys/stratus/internal/metrics"
)

// TestMetricsRecordSuccess 成功部署以 create/update 路径计入部署总数。
func TestMetricsRecordSuccess(t *testing.T) {
	fake := &fakePlatform{functions: []string{"f"}}
	m := metrics.New(prometheus.NewRegistry())
	o := NewOrchestrator(fake, fake, testLogger(), WithMetrics(m))

	spec := &domain.DeploymentSpec{FunctionName: "f", Role: "r"}
	if _, err := o.Run(context.Background(), spec, testArtifact()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	got := testutil.ToFloat64(m.DeploymentsTotal.WithLabelValues("f", "update", "success"))
	if got != 1 {
		t.Errorf("deployments_total{update,success} = %v, want 1", got)
	}
}

// TestMetricsRecordFailure 失败部署同时计入部署总数与失败阶段计数。
func TestMetricsRecordFailure(t *testing.T) {
	fake := &fakePlatform{functions: []string{"f"}, updateCfgErr: errors.New("throttled")}
	m := metrics.New(prometheus.NewRegistry())
	o := NewOrchestrator(fake, fake, testLogger(), WithMetrics(m))

	spec := &domain.DeploymentSpec{FunctionName: "f", Role: "r"}
	if _, err := o.Run(context.Background(), spec, testArtifact()); err == nil {
		t.Fatal("Run() succeeded, want configuration error")
	}

	if got := testutil.ToFloat64(m.DeploymentsTotal.WithLabelValues("f", "update", "failure")); got != 1 {
		t.Errorf("deployments_total{update,failure} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.DeploymentErrors.WithLabelValues("f", string(StageReconcileFunction))); got != 1 {
		t.Errorf("deployment_errors_total{reconcile_function} = %v, want 1", got)
	}
}

// TestMetricsRecordFailureBeforeLocate 定位阶段前的失败记为 path=unknown。
func TestMetricsRecordFailureBeforeLocate(t *testing.T) {
	fake := &fakePlatform{}
	m := metrics.New(prometheus.NewRegistry())
	o := NewOrchestrator(fake, fake, testLogger(), WithMetrics(m))

	spec := &domain.DeploymentSpec{FunctionName: "f", Alias: "live"}
	if _, err := o.Run(context.Background(), spec, testArtifact()); err == nil {
		t.Fatal("Run() succeeded, want validation error")
	}

	if got := testutil.ToFloat64(m.DeploymentsTotal.WithLabelValues("f", "unknown", "failure")); got != 1 {
		t.Errorf("deployments_total{unknown,failure} = %v, want 1", got)
	}
}
