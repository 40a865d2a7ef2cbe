// Package events 提供部署生命周期事件的发布。
// 当前实现基于 NATS JetStream，供 CI 流水线或审计系统订阅部署结果。
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// 事件主题常量。
const (
	SubjectStarted   = "deployment.started"
	SubjectSucceeded = "deployment.succeeded"
	SubjectFailed    = "deployment.failed"
)

// Event 表示一条部署生命周期事件（JSON 格式）。
type Event struct {
	RunID        string    `json:"run_id"`
	Type         string    `json:"type"`
	FunctionName string    `json:"function_name"`
	Version      string    `json:"version,omitempty"`
	Stage        string    `json:"stage,omitempty"`
	Error        string    `json:"error,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Bus 封装 NATS/JetStream 连接与部署事件发布。
// 事件发布失败只记录日志，绝不影响部署本身的结果。
type Bus struct {
	conn   *nats.Conn
	js     nats.JetStreamContext
	logger *logrus.Logger
}

// NewBus 连接 NATS 并初始化部署事件 Stream。
func NewBus(natsURL string, logger *logrus.Logger) (*Bus, error) {
	nc, err := nats.Connect(natsURL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	cfg := &nats.StreamConfig{
		Name:     "DEPLOYMENTS",
		Subjects: []string{"deployment.>"},
		Storage:  nats.FileStorage,
		MaxAge:   24 * time.Hour * 30,
	}
	if _, err := js.AddStream(cfg); err != nil && err != nats.ErrStreamNameAlreadyInUse {
		js.UpdateStream(cfg)
	}

	return &Bus{conn: nc, js: js, logger: logger}, nil
}

// Close 关闭底层 NATS 连接。
func (b *Bus) Close() error {
	b.conn.Close()
	return nil
}

// publish 序列化并发布事件，失败时只记录日志。
func (b *Bus) publish(subject string, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.WithError(err).Error("Failed to marshal deployment event")
		return
	}
	if _, err := b.js.Publish(subject, data); err != nil {
		b.logger.WithError(err).WithField("subject", subject).Warn("Failed to publish deployment event")
		return
	}
	b.logger.WithFields(logrus.Fields{
		"subject": subject,
		"run_id":  event.RunID,
	}).Debug("Deployment event published")
}

// DeploymentStarted 发布“部署开始”事件。
func (b *Bus) DeploymentStarted(_ context.Context, runID, functionName string) {
	b.publish(SubjectStarted, &Event{
		RunID:        runID,
		Type:         SubjectStarted,
		FunctionName: functionName,
		Timestamp:    time.Now(),
	})
}

// DeploymentSucceeded 发布“部署成功”事件。
func (b *Bus) DeploymentSucceeded(_ context.Context, runID, functionName, version string) {
	b.publish(SubjectSucceeded, &Event{
		RunID:        runID,
		Type:         SubjectSucceeded,
		FunctionName: functionName,
		Version:      version,
		Timestamp:    time.Now(),
	})
}

// DeploymentFailed 发布“部署失败”事件，携带失败阶段与原因。
func (b *Bus) DeploymentFailed(_ context.Context, runID, functionName, stage string, cause error) {
	b.publish(SubjectFailed, &Event{
		RunID:        runID,
		Type:         SubjectFailed,
		FunctionName: functionName,
		Stage:        stage,
		Error:        cause.Error(),
		Timestamp:    time.Now(),
	})
}
