// Package cmd 提供 stratus 命令行工具的所有子命令实现。
// 本文件实现部署声明的标志注册与构造，供 deploy 与 validate 命令复用。
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oriys/stratus/internal/domain"
)

// specFlags 收集构造 DeploymentSpec 所需的全部命令行标志。
type specFlags struct {
	file           string
	role           string
	handler        string
	runtime        string
	memory         int32
	timeout        int32
	description    string
	subnets        []string
	securityGroups []string
	s3Bucket       string
	s3Key          string
	publish        bool
	alias          string
}

// register 在命令上注册标志。
func (f *specFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "打包产物路径（.zip，必填）")
	cmd.Flags().StringVar(&f.role, "role", "", "函数执行角色")
	cmd.Flags().StringVarP(&f.handler, "handler", "H", "", "函数入口点（默认 "+domain.DefaultHandler+"）")
	cmd.Flags().StringVarP(&f.runtime, "runtime", "r", "", "运行时标识（默认 "+domain.DefaultRuntime+"）")
	cmd.Flags().Int32Var(&f.memory, "memory", 0, "内存大小（MB，不指定则保留远端现值）")
	cmd.Flags().Int32Var(&f.timeout, "timeout", 0, "超时时间（秒，不指定则保留远端现值）")
	cmd.Flags().StringVar(&f.description, "description", "", "函数描述")
	cmd.Flags().StringArrayVar(&f.subnets, "subnet", nil, "VPC 子网（可重复）")
	cmd.Flags().StringArrayVar(&f.securityGroups, "security-group", nil, "VPC 安全组（可重复）")
	cmd.Flags().StringVar(&f.s3Bucket, "s3-bucket", "", "暂存 bucket（与 --s3-key 成对出现）")
	cmd.Flags().StringVar(&f.s3Key, "s3-key", "", "暂存 key（与 --s3-bucket 成对出现）")
	cmd.Flags().BoolVarP(&f.publish, "publish", "p", false, "发布为不可变版本")
	cmd.Flags().StringVarP(&f.alias, "alias", "a", "", "指向发布版本的别名（需要 --publish）")
}

// buildSpec 把标志转换为部署声明。
// 可选字段只在显式提供时才进入声明，避免更新时用默认值覆盖远端配置。
func (f *specFlags) buildSpec(cmd *cobra.Command, name string) *domain.DeploymentSpec {
	spec := &domain.DeploymentSpec{
		FunctionName: name,
		Role:         f.role,
		Handler:      f.handler,
		Runtime:      f.runtime,
		Publish:      f.publish,
		Alias:        f.alias,
	}

	if cmd.Flags().Changed("memory") {
		spec.MemorySize = &f.memory
	}
	if cmd.Flags().Changed("timeout") {
		spec.Timeout = &f.timeout
	}
	if cmd.Flags().Changed("description") {
		spec.Description = &f.description
	}
	if len(f.subnets) > 0 || len(f.securityGroups) > 0 {
		spec.VPC = &domain.VPCConfig{
			Subnets:        f.subnets,
			SecurityGroups: f.securityGroups,
		}
	}
	if f.s3Bucket != "" || f.s3Key != "" {
		spec.Staging = &domain.StagingLocation{
			Bucket: f.s3Bucket,
			Key:    f.s3Key,
		}
	}
	return spec
}

// readArtifact 读取产物文件。
func (f *specFlags) readArtifact() (*domain.Artifact, error) {
	if f.file == "" {
		return nil, fmt.Errorf("--file is required")
	}
	data, err := os.ReadFile(f.file)
	if err != nil {
		return nil, fmt.Errorf("read artifact file: %w", err)
	}
	return &domain.Artifact{Path: f.file, Data: data}, nil
}
