package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "MATTING"

type Config struct {
	RemoveBG RemoveBGConfig `mapstructure:"removebg"`
	Picker   PickerConfig   `mapstructure:"picker"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

type RemoveBGConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Size    string `mapstructure:"size"`
	SaveDir string `mapstructure:"save_dir"`
	// Timeout 0 表示不限制（大图上传可能很慢）
	Timeout time.Duration `mapstructure:"timeout"`
}

type PickerConfig struct {
	StartDir string `mapstructure:"start_dir"`
}

type ServerConfig struct {
	Addr          string `mapstructure:"addr"`
	ThumbnailSize int    `mapstructure:"thumbnail_size"`
	// CreditCheck cron 表达式，为空则不定时查询额度
	CreditCheck string `mapstructure:"credit_check"`
	// AllowedOrigins 允许跨域调用的页面 Origin，默认为空即拒绝所有带 Origin 的请求
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("removebg.base_url", "https://api.remove.bg/v1.0/")
	v.SetDefault("removebg.api_key", "")
	v.SetDefault("removebg.size", "auto")
	v.SetDefault("removebg.save_dir", "")
	v.SetDefault("removebg.timeout", 0)
	v.SetDefault("picker.start_dir", "")
	v.SetDefault("server.addr", "127.0.0.1:8765")
	v.SetDefault("server.thumbnail_size", 512)
	v.SetDefault("server.credit_check", "")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load 读取配置：默认值 < 配置文件 < 环境变量 MATTING_* < 命令行参数（由调用方 BindPFlag）
// file 为空时在当前目录和 $HOME/.config/matting 下查找 matting.yaml，找不到不报错
func Load(v *viper.Viper, file string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("matting")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/matting")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
