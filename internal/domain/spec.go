// Package domain 定义了部署工具的核心领域模型。
// 该包包含部署声明（DeploymentSpec）、部署产物（Artifact）等核心实体的定义，
// 以及在发起任何远程调用之前执行的本地校验逻辑。
package domain

import "strings"

// 默认配置常量
const (
	// DefaultHandler 是未显式指定入口点时使用的默认 handler
	DefaultHandler = "index.handler"
	// DefaultRuntime 是未显式指定运行时时使用的默认运行时
	DefaultRuntime = "nodejs20.x"
	// ArchiveExtension 是平台打包格式对应的归档扩展名
	ArchiveExtension = ".zip"
)

// StagingLocation 表示对象存储中的暂存位置（bucket + key）。
// 配置了暂存位置时，产物会先上传到该位置，函数平台再从该位置拉取代码。
type StagingLocation struct {
	Bucket string `json:"bucket" yaml:"bucket"`
	Key    string `json:"key" yaml:"key"`
}

// VPCConfig 表示函数的 VPC 网络配置。
type VPCConfig struct {
	Subnets        []string `json:"subnets" yaml:"subnets"`
	SecurityGroups []string `json:"security_groups" yaml:"security_groups"`
}

// DeploymentSpec 描述一次部署的期望状态。单次调用内不可变。
//
// 可选字段使用指针类型，以便区分“未提供”与“提供了零值”：
// 更新已存在的函数时，未提供的字段不会覆盖远端的现有值。
type DeploymentSpec struct {
	// FunctionName 目标函数名称（必填，在目标账号/区域内唯一）
	FunctionName string `json:"function_name" yaml:"function_name"`
	// Role 函数执行角色引用（必填）
	Role string `json:"role" yaml:"role"`
	// Handler 函数入口点，为空时使用 DefaultHandler
	Handler string `json:"handler,omitempty" yaml:"handler,omitempty"`
	// Runtime 运行时标识，为空时使用 DefaultRuntime
	Runtime string `json:"runtime,omitempty" yaml:"runtime,omitempty"`
	// MemorySize 内存大小（MB），可选
	MemorySize *int32 `json:"memory_size,omitempty" yaml:"memory_size,omitempty"`
	// Timeout 超时时间（秒），可选
	Timeout *int32 `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	// Description 函数描述，可选
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	// VPC VPC 网络配置，可选
	VPC *VPCConfig `json:"vpc,omitempty" yaml:"vpc,omitempty"`
	// Staging 暂存位置，可选；设置后 bucket 与 key 均为必填
	Staging *StagingLocation `json:"staging,omitempty" yaml:"staging,omitempty"`
	// Publish 是否将本次部署发布为不可变版本
	Publish bool `json:"publish" yaml:"publish"`
	// Alias 指向发布版本的别名名称，可选；设置时 Publish 必须为 true
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`
}

// Normalize 填充未指定的默认值（handler、runtime）。
// 必须在 Validate 之前调用一次。
func (s *DeploymentSpec) Normalize() {
	if s.Handler == "" {
		s.Handler = DefaultHandler
	}
	if s.Runtime == "" {
		s.Runtime = DefaultRuntime
	}
}

// Validate 校验部署声明的完整性和一致性。
// 校验在任何远程调用之前执行，失败时整个部署不会产生任何副作用。
func (s *DeploymentSpec) Validate() error {
	if s.FunctionName == "" {
		return ErrFunctionNameRequired
	}
	if s.Role == "" {
		return ErrRoleRequired
	}
	if s.Staging != nil && (s.Staging.Bucket == "" || s.Staging.Key == "") {
		return ErrIncompleteStaging
	}
	// 别名只能指向已发布的版本
	if s.Alias != "" && !s.Publish {
		return ErrAliasRequiresPublish
	}
	return nil
}

// Artifact 表示待部署的打包产物：二进制内容加来源路径。
type Artifact struct {
	// Path 产物的来源路径，必须以平台归档扩展名结尾
	Path string `json:"path"`
	// Data 产物的原始字节内容
	Data []byte `json:"-"`
}

// Validate 校验产物内容非空且扩展名符合平台打包格式。
func (a *Artifact) Validate() error {
	if len(a.Data) == 0 {
		return ErrEmptyArtifact
	}
	if !strings.HasSuffix(a.Path, ArchiveExtension) {
		return ErrNotArchive
	}
	return nil
}
