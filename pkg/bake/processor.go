package bake

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/lwmacct/251207-go-pkg-bake/pkg/templexp"
)

var placeholderRegexp = regexp.MustCompile(`\{\{([.\-\w]*)\}\}`)

// Processor 是每层展开前对文本执行的预处理。
//
// 同一层文本只调用一次，早于 include 指令的解析。
type Processor interface {
	Process(ctx context.Context, text string, scope Scope) (string, error)
}

// ProcessorFunc 将普通函数适配为 [Processor]。
type ProcessorFunc func(ctx context.Context, text string, scope Scope) (string, error)

// Process 实现 [Processor]。
func (f ProcessorFunc) Process(ctx context.Context, text string, scope Scope) (string, error) {
	return f(ctx, text, scope)
}

// Placeholders 是默认处理器，将 {{dotted.key}} 替换为 Scope 中的值。
//
// 找不到的 key 记录一条警告并替换为空字符串。
type Placeholders struct {
	Logger *slog.Logger
}

// Process 实现 [Processor]。
func (p Placeholders) Process(_ context.Context, text string, scope Scope) (string, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return placeholderRegexp.ReplaceAllStringFunc(text, func(match string) string {
		key := match[2 : len(match)-2]
		value, ok := Resolve(key, scope)
		if !ok {
			logger.Warn("can't find placeholder", "key", key)
		}

		return value
	}), nil
}

// ShellExpansion 对文本执行 ${VAR} 参数展开。
//
// 变量表为环境变量快照，Scope 顶层的字符串值覆盖同名环境变量。
type ShellExpansion struct{}

// Process 实现 [Processor]。
func (ShellExpansion) Process(_ context.Context, text string, scope Scope) (string, error) {
	vars := templexp.Environ()
	for key, value := range scope {
		if s, ok := value.(string); ok {
			vars[key] = s
		}
	}

	expanded, err := templexp.Expand(text, vars)
	if err != nil {
		return "", fmt.Errorf("shell expansion: %w", err)
	}

	return expanded, nil
}

// Chain 按顺序串联多个处理器。
func Chain(processors ...Processor) Processor {
	return ProcessorFunc(func(ctx context.Context, text string, scope Scope) (string, error) {
		for _, p := range processors {
			var err error
			if text, err = p.Process(ctx, text, scope); err != nil {
				return "", err
			}
		}

		return text, nil
	})
}

// Identity 不做任何处理，用于关闭预处理。
var Identity Processor = ProcessorFunc(func(_ context.Context, text string, _ Scope) (string, error) {
	return text, nil
})
