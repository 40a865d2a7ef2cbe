// Package domain 定义了部署工具的核心领域模型。
package domain

import "errors"

// 领域错误定义
// 这些错误用于在校验层、编排层与平台适配层之间传递业务语义。

var (
	// ========== 部署声明校验错误 ==========

	// ErrFunctionNameRequired 表示部署声明缺少函数名称
	ErrFunctionNameRequired = errors.New("function name is required")
	// ErrRoleRequired 表示部署声明缺少执行角色
	ErrRoleRequired = errors.New("execution role is required")
	// ErrAliasRequiresPublish 表示声明了别名但未开启发布
	ErrAliasRequiresPublish = errors.New("alias requires publish to be enabled")
	// ErrIncompleteStaging 表示暂存位置配置不完整（bucket 与 key 必须同时提供）
	ErrIncompleteStaging = errors.New("staging location requires both bucket and key")

	// ========== 产物校验错误 ==========

	// ErrEmptyArtifact 表示部署产物内容为空
	ErrEmptyArtifact = errors.New("artifact is empty")
	// ErrNotArchive 表示产物文件不是平台支持的归档格式
	ErrNotArchive = errors.New("artifact must be a .zip archive")

	// ========== 远端状态信号 ==========

	// ErrAliasNotFound 表示目标函数上不存在指定别名。
	// 这是一个分支选择信号而非致命错误：别名调和据此决定创建还是更新。
	ErrAliasNotFound = errors.New("alias not found")
)
