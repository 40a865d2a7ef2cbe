package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/oriys/stratus/internal/domain"
)

// buildSpecFromArgs 用独立命令实例解析标志并构造声明，避免包级标志状态串扰。
func buildSpecFromArgs(t *testing.T, args ...string) *domain.DeploymentSpec {
	t.Helper()

	var f specFlags
	var spec *domain.DeploymentSpec
	c := &cobra.Command{
		Use: "x",
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec = f.buildSpec(cmd, "fn")
			return nil
		},
	}
	f.register(c)
	c.SetArgs(args)
	if err := c.Execute(); err != nil {
		t.Fatal(err)
	}
	return spec
}

// TestBuildSpecOptionalFields 可选字段只在显式提供时进入声明。
func TestBuildSpecOptionalFields(t *testing.T) {
	spec := buildSpecFromArgs(t, "--role", "r")
	if spec.MemorySize != nil || spec.Timeout != nil || spec.Description != nil || spec.VPC != nil || spec.Staging != nil {
		t.Errorf("optional fields set without flags: %+v", spec)
	}

	spec = buildSpecFromArgs(t,
		"--role", "r",
		"--memory", "512",
		"--timeout", "30",
		"--description", "",
		"--subnet", "subnet-1",
		"--security-group", "sg-1",
		"--s3-bucket", "b", "--s3-key", "k",
	)
	if spec.MemorySize == nil || *spec.MemorySize != 512 {
		t.Errorf("MemorySize = %v, want 512", spec.MemorySize)
	}
	if spec.Timeout == nil || *spec.Timeout != 30 {
		t.Errorf("Timeout = %v, want 30", spec.Timeout)
	}
	// 显式提供的空描述也应进入声明（与“未提供”区分）
	if spec.Description == nil || *spec.Description != "" {
		t.Errorf("Description = %v, want empty string", spec.Description)
	}
	if spec.VPC == nil || len(spec.VPC.Subnets) != 1 || len(spec.VPC.SecurityGroups) != 1 {
		t.Errorf("VPC = %+v", spec.VPC)
	}
	if spec.Staging == nil || spec.Staging.Bucket != "b" || spec.Staging.Key != "k" {
		t.Errorf("Staging = %+v", spec.Staging)
	}
}

// TestBuildSpecIncompleteStaging 只给出 bucket 时仍构造暂存块，交由校验拒绝。
func TestBuildSpecIncompleteStaging(t *testing.T) {
	spec := buildSpecFromArgs(t, "--role", "r", "--s3-bucket", "b")
	if spec.Staging == nil {
		t.Fatal("expected staging block for validation to reject")
	}
	spec.Normalize()
	if err := spec.Validate(); err != domain.ErrIncompleteStaging {
		t.Errorf("Validate() = %v, want ErrIncompleteStaging", err)
	}
}
