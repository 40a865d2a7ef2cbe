// Package config 提供部署工具的配置管理功能。
// 该包负责从 YAML 配置文件加载配置，并支持通过环境变量覆盖敏感配置项（如认证令牌）。
// 配置涵盖云端凭证绑定、部署默认值、serve 模式服务器、事件总线、日志与遥测等方面。
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oriys/stratus/internal/domain"
)

// Config 是部署工具的主配置结构体。
// 通过 YAML 标签与配置文件映射。
type Config struct {
	// AWS 云端凭证与区域绑定
	AWS AWSConfig `yaml:"aws"`
	// Defaults 部署声明中未显式给出时使用的默认值
	Defaults DefaultsConfig `yaml:"defaults"`
	// Server serve 模式的 HTTP 服务器配置
	Server ServerConfig `yaml:"server"`
	// Events 部署生命周期事件总线配置
	Events EventsConfig `yaml:"events"`
	// Log 日志级别与格式
	Log LogConfig `yaml:"log"`
	// Telemetry 分布式追踪配置
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// AWSConfig 指定凭证解析所用的区域与 profile。
// 留空时沿用环境变量与共享配置文件中的设置。
type AWSConfig struct {
	Region  string `yaml:"region"`
	Profile string `yaml:"profile"`
}

// DefaultsConfig 为部署声明提供工具级默认值。
// serve 模式在执行前把这些值填入请求声明中未提供的字段。
type DefaultsConfig struct {
	// Handler 默认函数入口点
	Handler string `yaml:"handler"`
	// Runtime 默认运行时标识
	Runtime string `yaml:"runtime"`
	// Role 默认执行角色，便于同一账号下的多次部署复用
	Role string `yaml:"role"`
	// MemorySize 默认内存大小（MB），缺省时远端现值不受影响
	MemorySize *int32 `yaml:"memory_size"`
	// Timeout 默认超时时间（秒），缺省时远端现值不受影响
	Timeout *int32 `yaml:"timeout"`
}

// SpecDefaults 把配置的默认值转换为领域层表示。
func (d DefaultsConfig) SpecDefaults() domain.SpecDefaults {
	return domain.SpecDefaults{
		Handler:    d.Handler,
		Runtime:    d.Runtime,
		Role:       d.Role,
		MemorySize: d.MemorySize,
		Timeout:    d.Timeout,
	}
}

// ServerConfig 是 serve 模式的 HTTP 服务器配置。
type ServerConfig struct {
	// Listen 监听地址，如 ":8080"
	Listen string `yaml:"listen"`
	// AuthToken 非空时启用 Bearer 令牌认证
	AuthToken string `yaml:"auth_token"`
}

// EventsConfig 配置 NATS 事件总线；URL 为空时不发布事件。
type EventsConfig struct {
	NATSURL string `yaml:"nats_url"`
}

// LogConfig 配置日志输出。
type LogConfig struct {
	// Level 日志级别（debug/info/warn/error）
	Level string `yaml:"level"`
	// Format 输出格式（text/json）
	Format string `yaml:"format"`
}

// TelemetryConfig 配置 OpenTelemetry 追踪导出。
type TelemetryConfig struct {
	// Enabled 是否启用追踪导出
	Enabled bool `yaml:"enabled"`
	// Endpoint OTLP gRPC 采集端点，如 "localhost:4317"
	Endpoint string `yaml:"endpoint"`
}

// Default 返回一份填充了默认值的配置，供未提供配置文件时使用。
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	return cfg
}

// Load 从 YAML 文件加载配置，填充默认值并应用环境变量覆盖。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyDefaults 为未设置的配置项填充默认值。
func (c *Config) applyDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = "localhost:4317"
	}
}

// applyEnvOverrides 应用环境变量覆盖。
// 敏感配置项（认证令牌）额外支持 *_FILE 后缀指定密钥文件路径，
// 适用于 Docker Secrets 等场景，文件方式优先。
func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("STRATUS_AWS_REGION")); v != "" {
		c.AWS.Region = v
	}
	if v := strings.TrimSpace(os.Getenv("STRATUS_AWS_PROFILE")); v != "" {
		c.AWS.Profile = v
	}
	if v := strings.TrimSpace(os.Getenv("STRATUS_NATS_URL")); v != "" {
		c.Events.NATSURL = v
	}
	if v := readEnvOrFile("STRATUS_AUTH_TOKEN", "STRATUS_AUTH_TOKEN_FILE"); v != "" {
		c.Server.AuthToken = v
	}
}

// readEnvOrFile 从环境变量或其 *_FILE 变体指定的文件读取配置值，文件优先。
func readEnvOrFile(envKey, fileKey string) string {
	if filePath := strings.TrimSpace(os.Getenv(fileKey)); filePath != "" {
		if b, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(b))
		}
	}
	return strings.TrimSpace(os.Getenv(envKey))
}
