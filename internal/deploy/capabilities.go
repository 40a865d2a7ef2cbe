// Package deploy 实现部署调和的核心流程：
// 暂存产物、定位函数、创建或更新函数、将别名指向产生的版本。
// 远程平台能力以接口形式声明在本包中，由具体的云适配层实现。
package deploy

import (
	"context"

	"github.com/oriys/stratus/internal/domain"
)

// CodeSource 表示发送给函数平台的代码来源。
// 两种表示互斥：配置了暂存位置时使用对象存储引用，否则直接内联产物字节。
type CodeSource struct {
	// S3Bucket / S3Key 暂存对象引用（与 ZipBytes 互斥）
	S3Bucket string
	S3Key    string
	// ZipBytes 产物原始字节（与对象引用互斥）
	ZipBytes []byte
}

// FromStaging 返回该代码来源是否引用暂存对象。
func (c CodeSource) FromStaging() bool {
	return c.S3Bucket != ""
}

// ConfigUpdate 携带函数配置更新所需的字段。
// 指针字段为 nil 表示“本次不修改该配置项”，远端现有值保持不变。
type ConfigUpdate struct {
	Name        string
	Role        string
	Handler     string
	Runtime     string
	MemorySize  *int32
	Timeout     *int32
	Description *string
	VPC         *domain.VPCConfig
}

// CreateInput 携带函数创建所需的全部字段。
// 创建是单次远程调用，代码与配置一并提交。
type CreateInput struct {
	Name        string
	Role        string
	Handler     string
	Runtime     string
	Code        CodeSource
	Publish     bool
	MemorySize  *int32
	Timeout     *int32
	Description *string
	VPC         *domain.VPCConfig
}

// FunctionAPI 声明部署流程消费的函数平台能力。
type FunctionAPI interface {
	// ListFunctions 返回一页函数名称及下一页游标。
	// 游标为空字符串表示首页请求或没有更多页。
	ListFunctions(ctx context.Context, marker string) (names []string, next string, err error)

	// CreateFunction 创建函数并返回平台分配的版本标识。
	CreateFunction(ctx context.Context, in CreateInput) (version string, err error)

	// UpdateFunctionConfiguration 更新函数配置；返回值不被消费。
	UpdateFunctionConfiguration(ctx context.Context, in ConfigUpdate) error

	// UpdateFunctionCode 更新函数代码并按 publish 标志发布，返回版本标识。
	UpdateFunctionCode(ctx context.Context, name string, code CodeSource, publish bool) (version string, err error)

	// GetAlias 查询函数上的别名。别名不存在时返回 domain.ErrAliasNotFound，
	// 其他失败原样返回。
	GetAlias(ctx context.Context, functionName, aliasName string) error

	// CreateAlias 创建指向指定版本的别名。
	CreateAlias(ctx context.Context, functionName, aliasName, version string) error

	// UpdateAlias 将已存在的别名改指到指定版本。
	UpdateAlias(ctx context.Context, functionName, aliasName, version string) error
}

// ObjectStore 声明产物暂存所需的对象存储能力。
type ObjectStore interface {
	// PutObject 将字节内容写入 bucket/key，覆盖已有对象。
	PutObject(ctx context.Context, bucket, key string, data []byte) error
}
