package bake

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Task 是一组源文件与目标文件。
type Task struct {
	Src  string `json:"src"  desc:"源文件"`
	Dest string `json:"dest" desc:"目标文件"`
}

// Baker 按顺序执行 bake 任务。
type Baker struct {
	opts     *options
	expander *Expander
}

// New 创建 Baker。
//
// 示例：
//
//	b := bake.New(
//	    bake.WithContent("content.json"),
//	    bake.WithSection("en"),
//	    bake.WithBasePath("app"),
//	)
//	err := b.Run(ctx, []bake.Task{{Src: "app/index.html", Dest: "dist/index.html"}})
func New(opts ...Option) *Baker {
	o := resolveOptions(opts)

	return &Baker{
		opts:     o,
		expander: newExpander(o),
	}
}

// Expander 返回 Baker 使用的展开器。
func (b *Baker) Expander() *Expander {
	return b.expander
}

// Run 依次执行全部任务。
//
// 单个任务失败只记录日志，不影响后续任务；返回所有失败任务的合并错误。
func (b *Baker) Run(ctx context.Context, tasks []Task) error {
	var errs []error
	for _, task := range tasks {
		if err := b.Bake(ctx, task); err != nil {
			b.opts.logger.Error("Bake failed", "src", task.Src, "dest", task.Dest, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", task.Src, err))
		}
	}

	return errors.Join(errs...)
}

// Bake 执行单个任务：读取源文件、展开、写入目标文件。
//
// 源文件不存在时返回 [ErrSourceNotFound]；内容文件中缺少 section 时
// 记录错误并以空 Scope 继续。
func (b *Baker) Bake(ctx context.Context, task Task) (err error) {
	ctx, span := b.opts.tracer.Start(ctx, "bake.task", trace.WithAttributes(
		attribute.String("bake.src", task.Src),
		attribute.String("bake.dest", task.Dest),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	fs := b.opts.fs

	exists, err := afero.Exists(fs, task.Src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if !exists {
		b.opts.logger.Error("Source file not found", "src", task.Src)
		return fmt.Errorf("%w: %s", ErrSourceNotFound, task.Src)
	}

	scope, err := b.loadScope()
	if err != nil {
		return err
	}

	src, err := afero.ReadFile(fs, task.Src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	out, err := b.expander.Expand(ctx, string(src), task.Src, scope)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(task.Dest); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dest dir: %w", err)
		}
	}
	if err := afero.WriteFile(fs, task.Dest, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write dest: %w", err)
	}

	b.opts.logger.Info("File created", "dest", task.Dest, "src", task.Src)

	return nil
}

// loadScope 为每个任务重新加载根 Scope。
func (b *Baker) loadScope() (Scope, error) {
	scope := Scope{}
	if b.opts.content != "" {
		loaded, err := LoadContent(b.opts.fs, b.opts.content, b.opts.contentExpansion)
		if err != nil {
			return nil, err
		}
		scope = loaded
	}

	if b.opts.section == "" {
		return scope, nil
	}

	section, ok := Section(scope, b.opts.section)
	if !ok {
		b.opts.logger.Error("Content doesn't have section", "section", b.opts.section, "content", b.opts.content)
		return Scope{}, nil
	}

	return section, nil
}
