package awscloud

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/oriys/stratus/internal/deploy"
	"github.com/oriys/stratus/internal/domain"
)

// TestFunctionCode 验证代码来源到 Lambda 代码载荷的互斥映射。
func TestFunctionCode(t *testing.T) {
	staged := functionCode(deploy.CodeSource{S3Bucket: "b", S3Key: "k"})
	if aws.ToString(staged.S3Bucket) != "b" || aws.ToString(staged.S3Key) != "k" {
		t.Errorf("staging reference not mapped: %+v", staged)
	}
	if staged.ZipFile != nil {
		t.Error("ZipFile must be nil for a staged code source")
	}

	raw := functionCode(deploy.CodeSource{ZipBytes: []byte("zip")})
	if string(raw.ZipFile) != "zip" {
		t.Errorf("raw bytes not mapped: %+v", raw)
	}
	if raw.S3Bucket != nil || raw.S3Key != nil {
		t.Error("object reference must be nil for a raw code source")
	}
}

// TestVpcConfig 验证可选 VPC 配置的映射：未提供时必须保持 nil。
func TestVpcConfig(t *testing.T) {
	if vpcConfig(nil) != nil {
		t.Error("nil VPC must map to nil, not an empty config")
	}

	mapped := vpcConfig(&domain.VPCConfig{
		Subnets:        []string{"subnet-1", "subnet-2"},
		SecurityGroups: []string{"sg-1"},
	})
	if len(mapped.SubnetIds) != 2 || len(mapped.SecurityGroupIds) != 1 {
		t.Errorf("VPC config not mapped: %+v", mapped)
	}
}
