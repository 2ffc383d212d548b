// Package command 提供 bake 命令行功能的公共部分。
package command

import "github.com/lwmacct/251207-go-pkg-bake/internal/config"

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()
