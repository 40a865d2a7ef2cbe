// Package deploy 实现部署调和的核心流程。
// 本文件实现函数定位：判断目标名称的函数在远端是否已存在。
package deploy

import (
	"context"
	"fmt"
)

// Locator 通过枚举远端函数列表判断目标函数是否存在。
type Locator struct {
	api FunctionAPI
}

// NewLocator 创建函数定位器。
func NewLocator(api FunctionAPI) *Locator {
	return &Locator{api: api}
}

// Exists 返回名称精确匹配（区分大小写）的函数是否存在。
// 列表分页会被完整跟随：账号内函数数量超过单页上限时，
// 漏读后续页会让已存在的函数被误判为不存在并走进创建分支。
// 任何枚举失败都是致命的，不做重试。
func (l *Locator) Exists(ctx context.Context, name string) (bool, error) {
	marker := ""
	for {
		names, next, err := l.api.ListFunctions(ctx, marker)
		if err != nil {
			return false, fmt.Errorf("list functions: %w", err)
		}
		for _, n := range names {
			if n == name {
				return true, nil
			}
		}
		if next == "" {
			return false, nil
		}
		marker = next
	}
}
