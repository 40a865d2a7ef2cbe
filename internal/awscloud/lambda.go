// Package awscloud 用 AWS SDK 实现部署流程声明的平台能力接口。
// 本文件实现 Lambda 服务适配：函数的枚举、创建、更新与别名操作。
package awscloud

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/oriys/stratus/internal/deploy"
	"github.com/oriys/stratus/internal/domain"
)

// FunctionClient 基于 Lambda 客户端实现 deploy.FunctionAPI。
type FunctionClient struct {
	client *lambda.Client
}

// NewFunctionClient 从共享配置创建 Lambda 适配客户端。
func NewFunctionClient(cfg aws.Config) *FunctionClient {
	return &FunctionClient{client: lambda.NewFromConfig(cfg)}
}

// ListFunctions 返回一页函数名称与下一页游标。
func (c *FunctionClient) ListFunctions(ctx context.Context, marker string) ([]string, string, error) {
	in := &lambda.ListFunctionsInput{}
	if marker != "" {
		in.Marker = aws.String(marker)
	}

	out, err := c.client.ListFunctions(ctx, in)
	if err != nil {
		return nil, "", err
	}

	names := make([]string, 0, len(out.Functions))
	for _, fn := range out.Functions {
		names = append(names, aws.ToString(fn.FunctionName))
	}
	return names, aws.ToString(out.NextMarker), nil
}

// functionCode 把互斥的代码来源映射为 Lambda 的代码载荷。
func functionCode(code deploy.CodeSource) *types.FunctionCode {
	if code.FromStaging() {
		return &types.FunctionCode{
			S3Bucket: aws.String(code.S3Bucket),
			S3Key:    aws.String(code.S3Key),
		}
	}
	return &types.FunctionCode{ZipFile: code.ZipBytes}
}

// vpcConfig 映射可选的 VPC 配置；未提供时返回 nil，远端设置保持不变。
func vpcConfig(vpc *domain.VPCConfig) *types.VpcConfig {
	if vpc == nil {
		return nil
	}
	return &types.VpcConfig{
		SubnetIds:        vpc.Subnets,
		SecurityGroupIds: vpc.SecurityGroups,
	}
}

// CreateFunction 单次调用创建函数，返回平台分配的版本。
func (c *FunctionClient) CreateFunction(ctx context.Context, in deploy.CreateInput) (string, error) {
	out, err := c.client.CreateFunction(ctx, &lambda.CreateFunctionInput{
		FunctionName: aws.String(in.Name),
		Role:         aws.String(in.Role),
		Handler:      aws.String(in.Handler),
		Runtime:      types.Runtime(in.Runtime),
		Code:         functionCode(in.Code),
		Publish:      in.Publish,
		MemorySize:   in.MemorySize,
		Timeout:      in.Timeout,
		Description:  in.Description,
		VpcConfig:    vpcConfig(in.VPC),
	})
	if err != nil {
		return "", err
	}
	return aws.ToString(out.Version), nil
}

// UpdateFunctionConfiguration 更新函数配置。
// nil 指针字段不下发，远端现有值不被覆盖。
func (c *FunctionClient) UpdateFunctionConfiguration(ctx context.Context, in deploy.ConfigUpdate) error {
	_, err := c.client.UpdateFunctionConfiguration(ctx, &lambda.UpdateFunctionConfigurationInput{
		FunctionName: aws.String(in.Name),
		Role:         aws.String(in.Role),
		Handler:      aws.String(in.Handler),
		Runtime:      types.Runtime(in.Runtime),
		MemorySize:   in.MemorySize,
		Timeout:      in.Timeout,
		Description:  in.Description,
		VpcConfig:    vpcConfig(in.VPC),
	})
	return err
}

// UpdateFunctionCode 更新函数代码并按 publish 标志发布。
func (c *FunctionClient) UpdateFunctionCode(ctx context.Context, name string, code deploy.CodeSource, publish bool) (string, error) {
	in := &lambda.UpdateFunctionCodeInput{
		FunctionName: aws.String(name),
		Publish:      publish,
	}
	if code.FromStaging() {
		in.S3Bucket = aws.String(code.S3Bucket)
		in.S3Key = aws.String(code.S3Key)
	} else {
		in.ZipFile = code.ZipBytes
	}

	out, err := c.client.UpdateFunctionCode(ctx, in)
	if err != nil {
		return "", err
	}
	return aws.ToString(out.Version), nil
}

// GetAlias 查询别名，把平台的资源不存在错误翻译为 domain.ErrAliasNotFound。
func (c *FunctionClient) GetAlias(ctx context.Context, functionName, aliasName string) error {
	_, err := c.client.GetAlias(ctx, &lambda.GetAliasInput{
		FunctionName: aws.String(functionName),
		Name:         aws.String(aliasName),
	})
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return domain.ErrAliasNotFound
	}
	return err
}

// CreateAlias 创建指向指定版本的别名。
func (c *FunctionClient) CreateAlias(ctx context.Context, functionName, aliasName, version string) error {
	_, err := c.client.CreateAlias(ctx, &lambda.CreateAliasInput{
		FunctionName:    aws.String(functionName),
		Name:            aws.String(aliasName),
		FunctionVersion: aws.String(version),
	})
	return err
}

// UpdateAlias 把已存在的别名改指到指定版本。
func (c *FunctionClient) UpdateAlias(ctx context.Context, functionName, aliasName, version string) error {
	_, err := c.client.UpdateAlias(ctx, &lambda.UpdateAliasInput{
		FunctionName:    aws.String(functionName),
		Name:            aws.String(aliasName),
		FunctionVersion: aws.String(version),
	})
	return err
}
