package bake_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-bake/pkg/bake"
)

func TestBake_WritesDestination(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"app/index.html":         "<!--(bake /partials/head.html)-->\n<p>{{home.text}}</p>",
		"app/partials/head.html": "<title>{{title}}</title>",
		"content/site.json":      `{"title": "Bake", "home": {"text": "Welcome"}}`,
	})
	logger, logs := newTestLogger()

	b := bake.New(
		bake.WithFs(fs),
		bake.WithLogger(logger),
		bake.WithContent("content/site.json"),
		bake.WithBasePath("app"),
	)

	require.NoError(t, b.Bake(context.Background(), bake.Task{Src: "app/index.html", Dest: "dist/index.html"}))
	assert.Equal(t, "<title>Bake</title>\n<p>Welcome</p>", readFile(t, fs, "dist/index.html"))
	assert.Contains(t, logs.String(), "File created")
}

func TestBake_Section(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"src/index.html": "{{hello}}",
		"content.yaml":   "en:\n  hello: Hello\nde:\n  hello: Hallo\n",
	})
	logger, _ := newTestLogger()

	b := bake.New(bake.WithFs(fs), bake.WithLogger(logger), bake.WithContent("content.yaml"), bake.WithSection("de"))
	require.NoError(t, b.Bake(context.Background(), bake.Task{Src: "src/index.html", Dest: "out/index.html"}))
	assert.Equal(t, "Hallo", readFile(t, fs, "out/index.html"))
}

func TestBake_MissingSectionContinuesWithEmptyScope(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"src/index.html": "[{{hello}}]<!--(bake a.html _if=\"hello\")-->",
		"src/a.html":     "A",
		"content.json":   `{"en": {"hello": "Hello"}}`,
	})
	logger, logs := newTestLogger()

	b := bake.New(bake.WithFs(fs), bake.WithLogger(logger), bake.WithContent("content.json"), bake.WithSection("fr"))
	require.NoError(t, b.Bake(context.Background(), bake.Task{Src: "src/index.html", Dest: "out.html"}))
	assert.Equal(t, "[]", readFile(t, fs, "out.html"))
	assert.Equal(t, 1, logs.count(slog.LevelError))
	assert.Contains(t, logs.String(), "section=fr")
}

func TestBake_MissingSource(t *testing.T) {
	logger, logs := newTestLogger()
	b := bake.New(bake.WithFs(newTestFs(t, nil)), bake.WithLogger(logger))

	err := b.Bake(context.Background(), bake.Task{Src: "src/nope.html", Dest: "out.html"})
	require.ErrorIs(t, err, bake.ErrSourceNotFound)
	assert.Contains(t, logs.String(), "Source file not found")
}

func TestBake_ScopeNotSharedAcrossTasks(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"src/first.html":  `<!--(bake set.html title="Changed")-->`,
		"src/set.html":    "{{title}}",
		"src/second.html": "{{title}}",
		"content.json":    `{"title": "Original"}`,
	})
	logger, _ := newTestLogger()

	b := bake.New(bake.WithFs(fs), bake.WithLogger(logger), bake.WithContent("content.json"))
	require.NoError(t, b.Run(context.Background(), []bake.Task{
		{Src: "src/first.html", Dest: "out/first.html"},
		{Src: "src/second.html", Dest: "out/second.html"},
	}))

	assert.Equal(t, "Changed", readFile(t, fs, "out/first.html"))
	assert.Equal(t, "Original", readFile(t, fs, "out/second.html"))
}

func TestRun_IsolatesTaskFailures(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"src/loop.html": "<!--(bake loop.html)-->",
		"src/ok.html":   "ok",
	})
	logger, logs := newTestLogger()

	b := bake.New(bake.WithFs(fs), bake.WithLogger(logger))
	err := b.Run(context.Background(), []bake.Task{
		{Src: "src/missing.html", Dest: "out/missing.html"},
		{Src: "src/loop.html", Dest: "out/loop.html"},
		{Src: "src/ok.html", Dest: "out/ok.html"},
	})

	require.Error(t, err)
	require.ErrorIs(t, err, bake.ErrSourceNotFound)
	require.ErrorIs(t, err, bake.ErrCircularInclude)
	assert.Contains(t, err.Error(), "src/missing.html")
	assert.Equal(t, "ok", readFile(t, fs, "out/ok.html"))

	exists, statErr := afero.Exists(fs, "out/loop.html")
	require.NoError(t, statErr)
	assert.False(t, exists, "失败的任务不写目标文件")
	assert.GreaterOrEqual(t, logs.count(slog.LevelError), 2)
}

func TestRun_NoContentUsesEmptyScope(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"src/index.html": "a{{x}}b",
	})
	logger, logs := newTestLogger()

	require.NoError(t, bake.New(bake.WithFs(fs), bake.WithLogger(logger)).Run(context.Background(), []bake.Task{
		{Src: "src/index.html", Dest: "index.html"},
	}))
	assert.Equal(t, "ab", readFile(t, fs, "index.html"))
	assert.Equal(t, 1, logs.count(slog.LevelWarn))
}

func TestBake_BadContentFails(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"src/index.html": "x",
		"content.json":   `["not", "an", "object"]`,
	})
	logger, _ := newTestLogger()

	err := bake.New(bake.WithFs(fs), bake.WithLogger(logger), bake.WithContent("content.json")).
		Bake(context.Background(), bake.Task{Src: "src/index.html", Dest: "out.html"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content root must be object")
}

func TestBake_ShellProcessorChain(t *testing.T) {
	t.Setenv("BAKE_TEST_VERSION", "1.2.3")

	fs := newTestFs(t, map[string]string{
		"src/index.html": "{{name}} v${BAKE_TEST_VERSION}",
	})
	logger, _ := newTestLogger()

	b := bake.New(
		bake.WithFs(fs),
		bake.WithLogger(logger),
		bake.WithProcessor(bake.Chain(bake.Placeholders{Logger: logger}, bake.ShellExpansion{})),
	)
	require.NoError(t, b.Run(context.Background(), []bake.Task{{Src: "src/index.html", Dest: "out.html"}}))
	assert.Equal(t, " v1.2.3", readFile(t, fs, "out.html"))
}
