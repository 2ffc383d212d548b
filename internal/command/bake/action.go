package bake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-bake/internal/config"
	engine "github.com/lwmacct/251207-go-pkg-bake/pkg/bake"
	"github.com/lwmacct/251207-go-pkg-bake/pkg/cfgm"
)

// errNoTasks 表示既没有参数也没有配置任务。
var errNoTasks = errors.New("no files to bake: pass SRC:DEST arguments or set bake.files")

func action(ctx context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 配置文件 → 环境变量 → CLI flags
	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), config.AppName,
		cfgm.WithConfigPaths(cmd.String("config")),
		cfgm.WithEnvPrefix(config.EnvPrefix),
	)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	errWriter := cmd.Root().ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	logger, err := newLogger(cfg.Log, errWriter)
	if err != nil {
		return err
	}

	processor, err := newProcessor(cfg.Bake.Process, logger)
	if err != nil {
		return err
	}

	argTasks, err := parseTasks(cmd.Args().Slice())
	if err != nil {
		return err
	}
	tasks := append(append([]engine.Task{}, cfg.Bake.Files...), argTasks...)
	if len(tasks) == 0 {
		return errNoTasks
	}

	opts := []engine.Option{
		engine.WithFs(afero.NewOsFs()),
		engine.WithContent(cfg.Bake.Content),
		engine.WithSection(cfg.Bake.Section),
		engine.WithBasePath(cfg.Bake.BasePath),
		engine.WithProcessor(processor),
		engine.WithLogger(logger),
		engine.WithMaxDepth(cfg.Bake.MaxDepth),
	}
	if cfg.Bake.ContentExpansion {
		opts = append(opts, engine.WithContentExpansion())
	}

	start := time.Now()
	err = engine.New(opts...).Run(ctx, tasks)
	logger.Debug("Bake finished", "tasks", len(tasks), "duration", time.Since(start))

	return err
}

// parseTasks 解析 SRC:DEST 形式的参数。
func parseTasks(args []string) ([]engine.Task, error) {
	tasks := make([]engine.Task, 0, len(args))
	for _, arg := range args {
		src, dest, ok := strings.Cut(arg, ":")
		if !ok || src == "" || dest == "" {
			return nil, fmt.Errorf("invalid task %q: want SRC:DEST", arg)
		}
		tasks = append(tasks, engine.Task{Src: src, Dest: dest})
	}

	return tasks, nil
}

// newProcessor 按名称选择预处理器。
func newProcessor(name string, logger *slog.Logger) (engine.Processor, error) {
	placeholders := engine.Placeholders{Logger: logger}

	switch strings.ToLower(name) {
	case "", "placeholders":
		return placeholders, nil
	case "shell":
		return engine.ShellExpansion{}, nil
	case "both":
		return engine.Chain(placeholders, engine.ShellExpansion{}), nil
	case "none":
		return engine.Identity, nil
	default:
		return nil, fmt.Errorf("unknown processor %q: want placeholders, shell, both or none", name)
	}
}

// newLogger 根据日志配置创建 slog.Logger。
func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: want text or json", cfg.Format)
	}
}
