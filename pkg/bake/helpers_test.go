package bake_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// logBuffer 收集测试中的日志输出。
type logBuffer struct {
	bytes.Buffer
}

func (b *logBuffer) count(level slog.Level) int {
	return strings.Count(b.String(), "level="+level.String())
}

func newTestLogger() (*slog.Logger, *logBuffer) {
	buf := &logBuffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	return slog.New(handler), buf
}

// newTestFs 创建内存文件系统并写入给定文件。
func newTestFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}

	return fs
}

func readFile(t *testing.T, fs afero.Fs, name string) string {
	t.Helper()

	data, err := afero.ReadFile(fs, name)
	require.NoError(t, err)

	return string(data)
}
