// Package bake 提供 bake 命令：将模板片段拼装为静态文件。
package bake

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-bake/internal/command"
	"github.com/lwmacct/251207-go-pkg-bake/internal/version"
)

// Command bake 命令
var Command = &cli.Command{
	Name:      "bake",
	Usage:     "递归展开 include 指令与占位符并写入目标文件",
	ArgsUsage: "[SRC:DEST ...]",
	Action:    action,
	Commands:  []*cli.Command{version.Command},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "配置文件路径 (默认搜索 .bake.yaml 等)",
		},
		&cli.StringFlag{
			Name:  "bake-content",
			Value: command.Defaults.Bake.Content,
			Usage: "内容文件路径 (JSON/YAML/TOML)",
		},
		&cli.StringFlag{
			Name:  "bake-section",
			Value: command.Defaults.Bake.Section,
			Usage: "内容文件中作为根数据的顶层 key",
		},
		&cli.StringFlag{
			Name:    "bake-base-path",
			Aliases: []string{"b"},
			Value:   command.Defaults.Bake.BasePath,
			Usage:   "以 / 开头的 include 路径的基准目录",
		},
		&cli.StringFlag{
			Name:  "bake-process",
			Value: command.Defaults.Bake.Process,
			Usage: "预处理器: placeholders, shell, both, none",
		},
		&cli.IntFlag{
			Name:  "bake-max-depth",
			Value: command.Defaults.Bake.MaxDepth,
			Usage: "include 嵌套层数上限",
		},
		&cli.BoolFlag{
			Name:  "bake-content-expansion",
			Value: command.Defaults.Bake.ContentExpansion,
			Usage: "解析内容文件前展开 ${VAR}",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Value: command.Defaults.Log.Level,
			Usage: "日志级别: debug, info, warn, error",
		},
		&cli.StringFlag{
			Name:  "log-format",
			Value: command.Defaults.Log.Format,
			Usage: "日志格式: text, json",
		},
	},
}
