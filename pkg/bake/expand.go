package bake

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/lwmacct/251207-go-pkg-bake/pkg/bake"

// Expander 递归展开 include 指令。
//
// 每层文本先经过 [Processor]，再从左到右处理其中的指令；
// 所有层级共享调用方传入的同一个 [Scope]。
type Expander struct {
	fs        afero.Fs
	basePath  string
	processor Processor
	logger    *slog.Logger
	tracer    trace.Tracer
	maxDepth  int
}

// NewExpander 创建 Expander。只使用与展开相关的选项，内容文件相关选项被忽略。
func NewExpander(opts ...Option) *Expander {
	return newExpander(resolveOptions(opts))
}

func newExpander(o *options) *Expander {
	return &Expander{
		fs:        o.fs,
		basePath:  o.basePath,
		processor: o.processor,
		logger:    o.logger,
		tracer:    o.tracer,
		maxDepth:  o.maxDepth,
	}
}

func resolveOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.fs == nil {
		o.fs = afero.NewOsFs()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.processor == nil {
		o.processor = Placeholders{Logger: o.logger}
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	if o.maxDepth <= 0 {
		o.maxDepth = DefaultMaxDepth
	}

	return o
}

// Expand 展开 text 中的占位符与 include 指令。
//
// filePath 是 text 所在文件的路径，用于解析相对 include；
// scope 会被指令的内联属性就地修改。scope 为 nil 时使用空 Scope。
//
// include 目标不存在时记录警告并替换为空字符串；
// 出现循环引用时返回 [*CircularIncludeError]。
func (e *Expander) Expand(ctx context.Context, text, filePath string, scope Scope) (string, error) {
	if scope == nil {
		scope = Scope{}
	}

	var chain []string
	if filePath != "" {
		chain = []string{path.Clean(filePath)}
	}

	return e.expand(ctx, text, filePath, scope, chain)
}

func (e *Expander) expand(ctx context.Context, text, filePath string, scope Scope, chain []string) (string, error) {
	if len(chain) > e.maxDepth {
		return "", fmt.Errorf("%w (%d): %s", ErrMaxDepth, e.maxDepth, filePath)
	}

	processed, err := e.processor.Process(ctx, text, scope)
	if err != nil {
		return "", fmt.Errorf("process %s: %w", filePath, err)
	}

	directives := FindDirectives(processed)
	if len(directives) == 0 {
		return processed, nil
	}

	var buf strings.Builder
	buf.Grow(len(processed))

	last := 0
	for _, d := range directives {
		buf.WriteString(processed[last:d.Start])

		out, err := e.include(ctx, d, filePath, scope, chain)
		if err != nil {
			return "", err
		}
		buf.WriteString(out)

		last = d.End
	}
	buf.WriteString(processed[last:])

	return buf.String(), nil
}

// include 计算单条指令的替换文本。
func (e *Expander) include(ctx context.Context, d Directive, from string, scope Scope, chain []string) (string, error) {
	inline := ParseInlineOptions(d.Attributes)

	if cond, ok := inline[IfOption]; ok {
		if !HasValue(cond, scope) {
			e.logger.Debug("Skipping include", "path", d.Path, "from", from, "if", cond)
			return "", nil
		}
		delete(inline, IfOption)
	}

	overrides := make(Scope, len(inline))
	for key, value := range inline {
		overrides[key] = value
	}
	Merge(scope, overrides)

	target := ResolvePath(d.Path, from, e.basePath)

	ctx, span := e.tracer.Start(ctx, "bake.include", trace.WithAttributes(
		attribute.String("bake.path", target),
		attribute.String("bake.from", from),
	))
	defer span.End()

	out, err := e.includeFile(ctx, d.Indent, target, from, scope, chain)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return out, err
}

func (e *Expander) includeFile(ctx context.Context, indent, target, from string, scope Scope, chain []string) (string, error) {
	exists, err := afero.Exists(e.fs, target)
	if err != nil {
		return "", fmt.Errorf("stat include %s: %w", target, err)
	}
	if !exists {
		e.logger.Warn("include not found", "path", target, "from", from)
		return "", nil
	}

	key := path.Clean(target)
	if slices.Contains(chain, key) {
		return "", &CircularIncludeError{Chain: append(slices.Clone(chain), key)}
	}

	data, err := afero.ReadFile(e.fs, target)
	if err != nil {
		return "", fmt.Errorf("read include %s: %w", target, err)
	}

	e.logger.Debug("Expanding include", "path", target, "from", from, "depth", len(chain))

	content := applyIndent(indent, string(data))

	return e.expand(ctx, content, target, scope, append(slices.Clone(chain), key))
}

// applyIndent 为每一行加上缩进前缀。
func applyIndent(indent, content string) string {
	if indent == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}

	return strings.Join(lines, "\n")
}
