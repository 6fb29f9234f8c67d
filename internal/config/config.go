package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"resume-analyzer-go/internal/constants"
)

// ServerConfig HTTP服务器配置
type ServerConfig struct {
	Address string `yaml:"address"` // 监听地址，例如 :8080
	// TemplateGlob HTML模板文件匹配模式
	TemplateGlob string `yaml:"template_glob"`
}

// AnalyzerConfig 外部分析服务配置
// BaseURL是整个应用唯一的外部配置点，/analyze路径固定追加在其后
type AnalyzerConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"` // 出站请求超时（秒）
}

// SessionConfig 会话存储配置
type SessionConfig struct {
	TTLMinutes           int `yaml:"ttl_minutes"`            // 会话空闲过期时间（分钟）
	SweepIntervalMinutes int `yaml:"sweep_interval_minutes"` // 过期会话清理间隔（分钟）
}

// TracingConfig 链路追踪配置
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`     // OTLP gRPC endpoint
	ServiceName string  `yaml:"service_name"` // 上报的服务名
	SampleRatio float64 `yaml:"sample_ratio"` // 采样比例 (0-1]
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json, pretty
	TimeFormat   string `yaml:"time_format"`   // 时间格式
	ReportCaller bool   `yaml:"report_caller"` // 是否报告调用位置
}

// Config 应用程序配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Session  SessionConfig  `yaml:"session"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Logger   LoggerConfig   `yaml:"logger"`
}

// LoadConfig 从文件加载配置
// 路径为空时依次尝试常见位置；找不到文件则返回默认配置
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		searchPaths := []string{
			"config.yaml",
			"./config.yaml",
			"../config.yaml",
			"../../config.yaml",
			"../../../config.yaml",
		}
		for _, path := range searchPaths {
			if _, err := os.Stat(path); err == nil {
				configPath = path
				break
			}
		}
		if configPath == "" {
			// 无配置文件时以默认值启动
			cfg := createDefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	applyEnvOverrides(&config)
	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// applyEnvOverrides 从环境变量覆盖配置（如果存在）
func applyEnvOverrides(config *Config) {
	if envURL := os.Getenv("ANALYZER_BASE_URL"); envURL != "" {
		config.Analyzer.BaseURL = envURL
	}
	if envAddr := os.Getenv("SERVER_ADDRESS"); envAddr != "" {
		config.Server.Address = envAddr
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		config.Logger.Level = envLevel
	}
}

// applyDefaults 填充缺失项的默认值
func applyDefaults(config *Config) {
	if config.Server.Address == "" {
		config.Server.Address = ":8080"
	}
	if config.Server.TemplateGlob == "" {
		config.Server.TemplateGlob = "templates/*.tmpl"
	}
	if config.Analyzer.TimeoutSeconds <= 0 {
		// 原系统未规定超时，这里选择60秒作为出站请求的防御性上限
		config.Analyzer.TimeoutSeconds = 60
	}
	if config.Session.TTLMinutes <= 0 {
		config.Session.TTLMinutes = int(constants.DefaultSessionTTL.Minutes())
	}
	if config.Session.SweepIntervalMinutes <= 0 {
		config.Session.SweepIntervalMinutes = int(constants.DefaultSweepInterval.Minutes())
	}
	if config.Tracing.ServiceName == "" {
		config.Tracing.ServiceName = "resume-analyzer"
	}
	if config.Tracing.SampleRatio <= 0 || config.Tracing.SampleRatio > 1 {
		config.Tracing.SampleRatio = 1.0
	}
	if config.Logger.Level == "" {
		config.Logger.Level = "info"
	}
	if config.Logger.Format == "" {
		config.Logger.Format = "json"
	}
}

// createDefaultConfig 创建一份可直接运行的默认配置
func createDefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Validate 校验配置的关键项
func (c *Config) Validate() error {
	if c.Analyzer.BaseURL == "" {
		return fmt.Errorf("配置无效: analyzer.base_url 不能为空")
	}
	if !strings.HasPrefix(c.Analyzer.BaseURL, "http://") && !strings.HasPrefix(c.Analyzer.BaseURL, "https://") {
		return fmt.Errorf("配置无效: analyzer.base_url 必须是http(s)地址: %s", c.Analyzer.BaseURL)
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		return fmt.Errorf("配置无效: tracing.enabled 时 tracing.endpoint 不能为空")
	}
	return nil
}
