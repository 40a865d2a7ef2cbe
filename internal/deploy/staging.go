// Package deploy 实现部署调和的核心流程。
// 本文件实现产物暂存：在任何函数级调用之前把产物上传到对象存储。
package deploy

import (
	"context"
	"fmt"

	"github.com/oriys/stratus/internal/domain"
)

// Stager 负责按需把产物上传到暂存位置。
type Stager struct {
	store ObjectStore
}

// NewStager 创建产物暂存器。
func NewStager(store ObjectStore) *Stager {
	return &Stager{store: store}
}

// Stage 在声明了暂存位置时上传产物字节，返回是否实际执行了上传。
// 已存在的对象被直接覆盖，不做版本检查。
// 上传失败是致命的，此时远端函数尚未被触碰，保持原状。
func (s *Stager) Stage(ctx context.Context, spec *domain.DeploymentSpec, artifact *domain.Artifact) (bool, error) {
	if spec.Staging == nil {
		return false, nil
	}
	if err := s.store.PutObject(ctx, spec.Staging.Bucket, spec.Staging.Key, artifact.Data); err != nil {
		return false, fmt.Errorf("stage artifact to s3://%s/%s: %w", spec.Staging.Bucket, spec.Staging.Key, err)
	}
	return true, nil
}
