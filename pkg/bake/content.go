package bake

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251207-go-pkg-bake/pkg/templexp"
)

// errContentRoot 表示内容文件顶层不是对象。
var errContentRoot = errors.New("content root must be object")

// LoadContent 读取内容文件并返回根 Scope。
//
// 按扩展名选择解析器：
//   - .yaml, .yml → YAML
//   - .toml → TOML
//   - 其他 → JSON
//
// expand 为 true 时，解析前先对原始文本执行 ${VAR} 环境变量展开。
func LoadContent(fs afero.Fs, path string, expand bool) (Scope, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}

	if expand {
		expanded, err := templexp.ExpandTemplate(string(data))
		if err != nil {
			return nil, fmt.Errorf("expand content %s: %w", path, err)
		}
		data = []byte(expanded)
	}

	scope, err := parseContent(path, data)
	if err != nil {
		return nil, fmt.Errorf("parse content %s: %w", path, err)
	}

	return scope, nil
}

func parseContent(path string, data []byte) (Scope, error) {
	var raw any
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yamlv3.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, err
	}

	normalized := normalizeKeys(raw)
	if normalized == nil {
		return Scope{}, nil
	}
	obj, ok := normalized.(map[string]any)
	if !ok {
		return nil, errContentRoot
	}

	return Scope(obj), nil
}

// normalizeKeys 将 YAML 解出的 map[any]any 统一为 map[string]any。
func normalizeKeys(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		for key, value := range typed {
			typed[key] = normalizeKeys(value)
		}
		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprintf("%v", key)] = normalizeKeys(value)
		}
		return out
	case []any:
		for i := range typed {
			typed[i] = normalizeKeys(typed[i])
		}
		return typed
	default:
		return val
	}
}
