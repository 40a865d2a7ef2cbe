// Package awscloud 用 AWS SDK 实现部署流程声明的平台能力接口。
// 客户端配置在进程启动时构造一次，显式传递给各服务客户端，
// 不依赖任何进程级可变全局状态。
package awscloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

// NewConfig 解析一次凭证链并返回可共享的客户端配置。
// region、profile 为空时沿用环境与共享配置文件中的设置。
func NewConfig(ctx context.Context, region, profile string) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load aws config: %w", err)
	}
	return cfg, nil
}
