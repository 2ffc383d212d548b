// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - .bake.yaml 等默认路径，或 --config 指定
//  3. 环境变量 - 前缀 BAKE_
//  4. CLI flags - 仅显式设置的 flag 生效
package config

import "github.com/lwmacct/251207-go-pkg-bake/pkg/bake"

// AppName 应用名称，用于默认配置路径与环境变量前缀。
const AppName = "bake"

// EnvPrefix 环境变量前缀。
const EnvPrefix = "BAKE_"

// Config 应用配置。
type Config struct {
	Bake BakeConfig `json:"bake" desc:"bake 配置"`
	Log  LogConfig  `json:"log" desc:"日志配置"`
}

// BakeConfig bake 配置。
type BakeConfig struct {
	Content          string      `json:"content" desc:"内容文件路径 (JSON/YAML/TOML)"`
	Section          string      `json:"section" desc:"内容文件中作为根数据的顶层 key"`
	BasePath         string      `json:"base-path" desc:"以 / 开头的 include 路径的基准目录"`
	Process          string      `json:"process" desc:"预处理器: placeholders, shell, both, none"`
	MaxDepth         int         `json:"max-depth" desc:"include 嵌套层数上限"`
	ContentExpansion bool        `json:"content-expansion" desc:"解析内容文件前展开 ${VAR}"`
	Files            []bake.Task `json:"files" desc:"任务列表 (src/dest)"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level  string `json:"level" desc:"日志级别: debug, info, warn, error"`
	Format string `json:"format" desc:"日志格式: text, json"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Bake: BakeConfig{
			Process:  "placeholders",
			MaxDepth: bake.DefaultMaxDepth,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
