// Package deploy 实现部署调和的核心流程。
// 本文件实现函数调和：根据存在性选择创建或更新分支，产出新的版本标识。
package deploy

import (
	"context"
	"fmt"

	"github.com/oriys/stratus/internal/domain"
)

// FunctionReconciler 把部署声明调和到远端函数上。
type FunctionReconciler struct {
	api FunctionAPI
}

// NewFunctionReconciler 创建函数调和器。
func NewFunctionReconciler(api FunctionAPI) *FunctionReconciler {
	return &FunctionReconciler{api: api}
}

// codeSource 根据声明构造唯一的代码来源：
// 配置了暂存位置时引用暂存对象，否则内联产物字节。两者互斥。
func codeSource(spec *domain.DeploymentSpec, artifact *domain.Artifact) CodeSource {
	if spec.Staging != nil {
		return CodeSource{S3Bucket: spec.Staging.Bucket, S3Key: spec.Staging.Key}
	}
	return CodeSource{ZipBytes: artifact.Data}
}

// Reconcile 调和函数状态并返回产生的版本标识。
//
// 更新分支先更新配置、后更新代码，顺序不可交换：
// 发布由代码更新调用执行，配置必须先行就位，
// 否则新发布的版本会捕获到更新前的陈旧配置。
// 创建分支单次调用同时携带代码与全部配置。
func (r *FunctionReconciler) Reconcile(ctx context.Context, exists bool, spec *domain.DeploymentSpec, artifact *domain.Artifact) (string, error) {
	code := codeSource(spec, artifact)

	if exists {
		cfg := ConfigUpdate{
			Name:        spec.FunctionName,
			Role:        spec.Role,
			Handler:     spec.Handler,
			Runtime:     spec.Runtime,
			MemorySize:  spec.MemorySize,
			Timeout:     spec.Timeout,
			Description: spec.Description,
			VPC:         spec.VPC,
		}
		if err := r.api.UpdateFunctionConfiguration(ctx, cfg); err != nil {
			return "", fmt.Errorf("update configuration of function %q: %w", spec.FunctionName, err)
		}

		version, err := r.api.UpdateFunctionCode(ctx, spec.FunctionName, code, spec.Publish)
		if err != nil {
			return "", fmt.Errorf("update code of function %q: %w", spec.FunctionName, err)
		}
		return version, nil
	}

	version, err := r.api.CreateFunction(ctx, CreateInput{
		Name:        spec.FunctionName,
		Role:        spec.Role,
		Handler:     spec.Handler,
		Runtime:     spec.Runtime,
		Code:        code,
		Publish:     spec.Publish,
		MemorySize:  spec.MemorySize,
		Timeout:     spec.Timeout,
		Description: spec.Description,
		VPC:         spec.VPC,
	})
	if err != nil {
		return "", fmt.Errorf("create function %q: %w", spec.FunctionName, err)
	}
	return version, nil
}
