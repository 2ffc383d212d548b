package bake

import (
	"errors"
	"strings"
)

var (
	// ErrSourceNotFound 表示任务的源文件不存在。
	ErrSourceNotFound = errors.New("source file not found")

	// ErrCircularInclude 表示 include 链回到了正在展开的文件。
	ErrCircularInclude = errors.New("circular include")

	// ErrMaxDepth 表示 include 嵌套层数超过上限。
	ErrMaxDepth = errors.New("maximum include depth exceeded")
)

// CircularIncludeError 记录形成环的 include 链。
type CircularIncludeError struct {
	Chain []string
}

func (e *CircularIncludeError) Error() string {
	return ErrCircularInclude.Error() + ": " + strings.Join(e.Chain, " -> ")
}

func (e *CircularIncludeError) Unwrap() error {
	return ErrCircularInclude
}
