package config

import (
	"os"

	"github.com/spf13/viper"
)

// Config 定义格式化工具的配置
type Config struct {
	BodyFontName    string  `mapstructure:"body_font_name"`    // 正文字体
	BodyFontSize    float64 `mapstructure:"body_font_size"`    // 正文字号（磅）
	HeadingFontName string  `mapstructure:"heading_font_name"` // 标题字体
	WatermarkText   string  `mapstructure:"watermark_text"`    // 预览水印文字

	ChangeDetailLimit    int `mapstructure:"change_detail_limit"`    // 报告中变更明细的上限
	WatermarkTargetCount int `mapstructure:"watermark_target_count"` // 正文水印的目标数量

	OutputDir string `mapstructure:"output_dir"` // 产物输出目录
	Debug     bool   `mapstructure:"debug"`      // 调试日志
}

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// 设置默认值
	setDefaults(v)

	// 如果配置路径已指定，则直接使用
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// 查找家目录中的配置文件
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigName(".thesisfmt")
		v.SetConfigType("yaml")
	}

	// 读取环境变量
	v.AutomaticEnv()
	v.SetEnvPrefix("THESISFMT")

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// 如果找不到配置文件，则使用默认值
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		panic("默认配置无效: " + err.Error())
	}
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("body_font_name", "宋体")
	v.SetDefault("body_font_size", 12)
	v.SetDefault("heading_font_name", "黑体")
	v.SetDefault("watermark_text", "预览版 仅供查看")
	v.SetDefault("change_detail_limit", 50)
	v.SetDefault("watermark_target_count", 20)
	v.SetDefault("output_dir", "output")
	v.SetDefault("debug", false)
}
