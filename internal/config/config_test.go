package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestLoad 测试从 YAML 文件加载配置与默认值填充。
func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stratus.yaml")
	content := []byte(`
aws:
  region: eu-west-1
defaults:
  runtime: python3.12
  memory_size: 256
  timeout: 15
server:
  auth_token: secret
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.AWS.Region != "eu-west-1" {
		t.Errorf("AWS.Region = %q", cfg.AWS.Region)
	}
	if cfg.Defaults.Runtime != "python3.12" {
		t.Errorf("Defaults.Runtime = %q", cfg.Defaults.Runtime)
	}
	if cfg.Defaults.MemorySize == nil || *cfg.Defaults.MemorySize != 256 {
		t.Errorf("Defaults.MemorySize = %v, want 256", cfg.Defaults.MemorySize)
	}
	if cfg.Defaults.Timeout == nil || *cfg.Defaults.Timeout != 15 {
		t.Errorf("Defaults.Timeout = %v, want 15", cfg.Defaults.Timeout)
	}
	sd := cfg.Defaults.SpecDefaults()
	if sd.Runtime != "python3.12" || sd.MemorySize == nil || *sd.MemorySize != 256 {
		t.Errorf("SpecDefaults() = %+v", sd)
	}
	if cfg.Server.AuthToken != "secret" {
		t.Errorf("Server.AuthToken = %q", cfg.Server.AuthToken)
	}
	// 未设置的项填充默认值
	if cfg.Server.Listen != ":8080" {
		t.Errorf("Server.Listen = %q, want :8080", cfg.Server.Listen)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

// TestEnvOverrides 测试环境变量覆盖，包括 *_FILE 密钥文件方式。
func TestEnvOverrides(t *testing.T) {
	t.Setenv("STRATUS_AWS_REGION", "ap-southeast-2")

	tokenFile := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(tokenFile, []byte("from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STRATUS_AUTH_TOKEN", "from-env")
	t.Setenv("STRATUS_AUTH_TOKEN_FILE", tokenFile)

	cfg := Default()
	if cfg.AWS.Region != "ap-southeast-2" {
		t.Errorf("AWS.Region = %q", cfg.AWS.Region)
	}
	// 文件方式优先于直接环境变量
	if cfg.Server.AuthToken != "from-file" {
		t.Errorf("Server.AuthToken = %q, want from-file", cfg.Server.AuthToken)
	}
}
