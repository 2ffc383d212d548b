package cfgm

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-bake/pkg/templexp"
)

// DefaultPaths 返回默认配置文件的搜索顺序。
//
// appName 可选，提供后会追加应用专属路径。
// 返回顺序即查找顺序，先命中的文件生效。
//
// 优先级 (从高到低)：
//  1. ./.appname.yaml - 当前目录应用配置
//  2. $XDG_CONFIG_HOME/appname/config.yaml - XDG 用户配置
//  3. ~/.appname.yaml - 用户主目录配置
//  4. /etc/appname/config.yaml - 系统级配置
//  5. config.yaml - 当前目录通用配置
//  6. config/config.yaml - 子目录通用配置
func DefaultPaths(appName ...string) []string {
	var paths []string

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		paths = append(paths, "."+name+".yaml")
		if xdg.ConfigHome != "" {
			paths = append(paths, filepath.Join(xdg.ConfigHome, name, "config.yaml"))
		}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+name+".yaml"))
		}
		paths = append(paths, "/etc/"+name+"/config.yaml")
	}

	paths = append(paths, "config.yaml", "config/config.yaml")

	return paths
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高)：
//  1. 默认值 - defaultConfig
//  2. 配置文件 - [WithConfigPaths] / [WithAppName]
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]
//
// 配置 key 由 json tag 定义，YAML 与 JSON 共享同一套 key。
// 配置文件按顺序查找，命中首个文件即停止。
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	options := &options{}
	for _, opt := range opts {
		opt(options)
	}

	if len(options.configPaths) == 0 {
		options.configPaths = DefaultPaths(options.appName)
	}

	configMap := structToMap(defaultConfig)

	// 2️⃣ 配置文件 (按顺序搜索，找到第一个即停止)
	loaded, err := mergeConfigFile(configMap, options)
	if err != nil {
		return nil, err
	}
	if !loaded {
		slog.Debug("No config file found, using defaults")
	}

	// 3️⃣ 环境变量 (基于配置结构体的 key 自动生成绑定)
	if options.envPrefix != "" {
		bindings := generateEnvBindings(options.envPrefix, collectConfigKeys(defaultConfig))
		slog.Debug("Generated auto env bindings", "prefix", options.envPrefix, "count", len(bindings))
		for envKey, configPath := range bindings {
			if val := os.Getenv(envKey); val != "" {
				setByPath(configMap, configPath, val)
				slog.Debug("Loaded env binding", "env", envKey, "path", configPath)
			}
		}
	}

	// 4️⃣ CLI flags (最高优先级，仅当用户明确指定时)
	if options.cmd != nil {
		applyCLIFlags(options.cmd, configMap, reflect.TypeOf(defaultConfig), "")
	}

	var cfg T
	if err := decodeConfigMap(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// mergeConfigFile 读取首个存在的配置文件并合并进 configMap。
func mergeConfigFile(configMap map[string]any, o *options) (bool, error) {
	for _, path := range o.configPaths {
		if o.baseDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(o.baseDir, path)
		}

		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			continue
		}

		if !o.noTemplateExpansion {
			expanded, expandErr := templexp.ExpandTemplate(string(content))
			if expandErr != nil {
				return false, fmt.Errorf("expand template in %s: %w", path, expandErr)
			}
			content = []byte(expanded)
		}

		fileMap, err := parseConfigBytes(path, content)
		if err != nil {
			return false, fmt.Errorf("parse config file %s: %w", path, err)
		}
		mergeMaps(configMap, fileMap)

		slog.Debug("Loaded config from file", "path", path, "templateExpansion", !o.noTemplateExpansion)

		return true, nil
	}

	return false, nil
}

// LoadCmd 是 [Load] 的便捷版本，适用于 CLI 场景。
//
// 它会注入 [WithCommand]，appName 非空时额外注入 [WithAppName]。
//
// 示例：
//
//	cfg, err := cfgm.LoadCmd(cmd, DefaultConfig(), "bake",
//	    cfgm.WithEnvPrefix("BAKE_"),
//	)
func LoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) (*T, error) {
	baseOpts := []Option{WithCommand(cmd)}
	if appName != "" {
		baseOpts = append(baseOpts, WithAppName(appName))
	}

	return Load(defaultConfig, append(baseOpts, opts...)...)
}

// MustLoadCmd 调用 [LoadCmd] 并在失败时 panic，适合启动阶段。
func MustLoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) *T {
	cfg, err := LoadCmd(cmd, defaultConfig, appName, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgm: failed to load config: %v", err))
	}

	return cfg
}

// collectConfigKeys 递归收集配置结构体的叶子 key（如 bake.base-path）。
//
// 结构体切片 (如任务列表) 只能来自配置文件，不生成绑定。
func collectConfigKeys[T any](defaultConfig T) []string {
	var keys []string
	collectConfigKeysRecursive(reflect.TypeOf(defaultConfig), "", &keys)

	return keys
}

func collectConfigKeysRecursive(typ reflect.Type, prefix string, keys *[]string) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)

		key := configTagName(field)
		if key == "" {
			continue
		}

		fullKey := joinKey(prefix, key)
		switch {
		case isStructType(field.Type):
			collectConfigKeysRecursive(field.Type, fullKey, keys)
		case isStructSlice(field.Type):
			// 只能来自配置文件
		default:
			*keys = append(*keys, fullKey)
		}
	}
}

// generateEnvBindings 根据配置 key 生成环境变量映射。
//
// 示例 (前缀 "BAKE_")：
//   - bake.base-path → BAKE_BAKE_BASE_PATH
//   - log.level → BAKE_LOG_LEVEL
func generateEnvBindings(prefix string, keys []string) map[string]string {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	bindings := make(map[string]string, len(keys))
	for _, key := range keys {
		bindings[prefix+strings.ToUpper(replacer.Replace(key))] = key
	}

	return bindings
}

// applyCLIFlags 将用户显式设置的 CLI flags 写入配置 map。
//
// flag 名称由 json tag 路径生成，仅替换 "." 为 "-"：
//   - bake.base-path → --bake-base-path
//   - log.level → --log-level
func applyCLIFlags(cmd *cli.Command, config map[string]any, typ reflect.Type, prefix string) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)

		key := configTagName(field)
		if key == "" {
			continue
		}

		fullKey := joinKey(prefix, key)
		if isStructType(field.Type) {
			applyCLIFlags(cmd, config, field.Type, fullKey)
			continue
		}

		cliFlag := strings.ReplaceAll(fullKey, ".", "-")
		if !cmd.IsSet(cliFlag) {
			continue
		}

		if value, ok := cliFlagValue(cmd, cliFlag, field.Type); ok {
			setByPath(config, fullKey, value)
		}
	}
}

// cliFlagValue 按字段类型读取 CLI 值。不支持的类型返回 false。
func cliFlagValue(cmd *cli.Command, name string, fieldType reflect.Type) (any, bool) {
	if fieldType == reflect.TypeFor[time.Duration]() {
		return cmd.Duration(name), true
	}

	switch fieldType.Kind() {
	case reflect.String:
		return cmd.String(name), true
	case reflect.Bool:
		return cmd.Bool(name), true
	case reflect.Int:
		return cmd.Int(name), true
	case reflect.Int64:
		return cmd.Int64(name), true
	case reflect.Uint:
		return cmd.Uint(name), true
	case reflect.Uint64:
		return cmd.Uint64(name), true
	case reflect.Float64:
		return cmd.Float64(name), true
	case reflect.Slice:
		if fieldType.Elem().Kind() == reflect.String {
			return cmd.StringSlice(name), true
		}
	case reflect.Map:
		if fieldType.Key().Kind() == reflect.String && fieldType.Elem().Kind() == reflect.String {
			return cmd.StringMap(name), true
		}
	default:
	}

	return nil, false
}
