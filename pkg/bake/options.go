package bake

import (
	"log/slog"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMaxDepth 是 include 嵌套层数的默认上限。
const DefaultMaxDepth = 64

// options 一次 bake 的配置。
type options struct {
	fs               afero.Fs
	content          string // 内容文件路径，空表示使用空 Scope
	section          string // 选取内容文件中的顶层 key 作为根 Scope
	basePath         string // 绝对风格 include 的前缀，非空时以 "/" 结尾
	processor        Processor
	logger           *slog.Logger
	tracer           trace.Tracer
	maxDepth         int
	contentExpansion bool // 解析内容文件前是否执行 ${VAR} 展开
}

// Option 配置选项函数。
type Option func(*options)

// WithFs 设置文件读写所使用的文件系统，默认为 afero.NewOsFs()。
func WithFs(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// WithContent 设置内容文件 (JSON/YAML/TOML)。
//
// 每个任务都会重新读取一次，任务之间不共享 Scope。
func WithContent(path string) Option {
	return func(o *options) {
		o.content = path
	}
}

// WithSection 选取内容文件中的某个顶层对象作为根 Scope。
func WithSection(name string) Option {
	return func(o *options) {
		o.section = name
	}
}

// WithBasePath 设置以 "/" 开头的 include 路径的基准前缀。
//
// 非空时自动补齐结尾的 "/"。
func WithBasePath(path string) Option {
	return func(o *options) {
		o.basePath = NormalizeBasePath(path)
	}
}

// WithProcessor 替换默认的占位符处理器 [Placeholders]。
func WithProcessor(p Processor) Option {
	return func(o *options) {
		o.processor = p
	}
}

// WithLogger 设置日志输出，默认为 slog.Default()。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTracer 设置 OpenTelemetry tracer，默认取全局 TracerProvider。
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// WithMaxDepth 设置 include 嵌套层数上限，n <= 0 时使用 [DefaultMaxDepth]。
func WithMaxDepth(n int) Option {
	return func(o *options) {
		o.maxDepth = n
	}
}

// WithContentExpansion 在解析内容文件前执行 ${VAR} 环境变量展开。
func WithContentExpansion() Option {
	return func(o *options) {
		o.contentExpansion = true
	}
}
