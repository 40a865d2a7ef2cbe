// Package deploy 实现部署调和的核心流程。
// 本文件实现别名调和：将命名别名以 upsert 语义指向新产生的版本。
package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/oriys/stratus/internal/domain"
)

// AliasReconciler 把别名调和到指定版本上。
type AliasReconciler struct {
	api FunctionAPI
}

// NewAliasReconciler 创建别名调和器。
func NewAliasReconciler(api FunctionAPI) *AliasReconciler {
	return &AliasReconciler{api: api}
}

// Reconcile 查询别名并按结果分支：
// 不存在则创建，存在则无条件改指到 version。
// 查询失败且原因不是“别名不存在”时原样致命传播。
func (r *AliasReconciler) Reconcile(ctx context.Context, functionName, aliasName, version string) error {
	err := r.api.GetAlias(ctx, functionName, aliasName)
	switch {
	case errors.Is(err, domain.ErrAliasNotFound):
		if err := r.api.CreateAlias(ctx, functionName, aliasName, version); err != nil {
			return fmt.Errorf("create alias %q on function %q: %w", aliasName, functionName, err)
		}
	case err != nil:
		return fmt.Errorf("get alias %q on function %q: %w", aliasName, functionName, err)
	default:
		if err := r.api.UpdateAlias(ctx, functionName, aliasName, version); err != nil {
			return fmt.Errorf("update alias %q on function %q: %w", aliasName, functionName, err)
		}
	}
	return nil
}
