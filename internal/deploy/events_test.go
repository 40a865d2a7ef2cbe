package deploy

import (
	"context"
	"testing"

	"github.com/oriys/stratus/internal/domain"
)

// recordingSink 按顺序记录收到的生命周期事件。
type recordingSink struct {
	events []string
	stage  string
	cause  error
}

func (r *recordingSink) DeploymentStarted(_ context.Context, _, _ string) {
	r.events = append(r.events, "started")
}

func (r *recordingSink) DeploymentSucceeded(_ context.Context, _, _, _ string) {
	r.events = append(r.events, "succeeded")
}

func (r *recordingSink) DeploymentFailed(_ context.Context, _, _ string, stage string, cause error) {
	r.events = append(r.events, "failed")
	r.stage = stage
	r.cause = cause
}

// TestEventOrderOnSuccess 成功运行依次发布 started 与 succeeded。
func TestEventOrderOnSuccess(t *testing.T) {
	fake := &fakePlatform{}
	sink := &recordingSink{}
	o := NewOrchestrator(fake, fake, testLogger(), WithEvents(sink))

	spec := &domain.DeploymentSpec{FunctionName: "f", Role: "r"}
	if _, err := o.Run(context.Background(), spec, testArtifact()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	want := []string{"started", "succeeded"}
	if len(sink.events) != len(want) {
		t.Fatalf("events = %v, want %v", sink.events, want)
	}
	for i := range want {
		if sink.events[i] != want[i] {
			t.Fatalf("events = %v, want %v", sink.events, want)
		}
	}
}

// TestEventOrderOnValidationFailure 校验失败也必须先发布 started 再发布 failed。
func TestEventOrderOnValidationFailure(t *testing.T) {
	fake := &fakePlatform{}
	sink := &recordingSink{}
	o := NewOrchestrator(fake, fake, testLogger(), WithEvents(sink))

	// 缺少 publish 的别名声明在本地校验阶段失败
	spec := &domain.DeploymentSpec{FunctionName: "f", Role: "r", Alias: "live"}
	if _, err := o.Run(context.Background(), spec, testArtifact()); err == nil {
		t.Fatal("Run() succeeded, want validation error")
	}

	want := []string{"started", "failed"}
	if len(sink.events) != len(want) {
		t.Fatalf("events = %v, want %v", sink.events, want)
	}
	for i := range want {
		if sink.events[i] != want[i] {
			t.Fatalf("events = %v, want %v", sink.events, want)
		}
	}
	if sink.stage != string(StageValidate) {
		t.Errorf("failed event stage = %q, want %q", sink.stage, StageValidate)
	}
}

// TestEventOrderOnRemoteFailure 远程阶段失败同样保持 started 在 failed 之前。
func TestEventOrderOnRemoteFailure(t *testing.T) {
	fake := &fakePlatform{listErr: context.DeadlineExceeded}
	sink := &recordingSink{}
	o := NewOrchestrator(fake, fake, testLogger(), WithEvents(sink))

	spec := &domain.DeploymentSpec{FunctionName: "f", Role: "r"}
	if _, err := o.Run(context.Background(), spec, testArtifact()); err == nil {
		t.Fatal("Run() succeeded, want locate error")
	}

	want := []string{"started", "failed"}
	if len(sink.events) != len(want) {
		t.Fatalf("events = %v, want %v", sink.events, want)
	}
	for i := range want {
		if sink.events[i] != want[i] {
			t.Fatalf("events = %v, want %v", sink.events, want)
		}
	}
	if sink.stage != string(StageLocate) {
		t.Errorf("failed event stage = %q, want %q", sink.stage, StageLocate)
	}
}
