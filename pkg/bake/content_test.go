package bake_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lwmacct/251207-go-pkg-bake/pkg/bake"
)

func TestLoadContent_Formats(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"c.json": `{"site": {"title": "Bake", "year": 2024}}`,
		"c.yaml": "site:\n  title: Bake\n  year: 2024\n",
		"c.yml":  "site: {title: Bake, year: 2024}\n",
		"c.toml": "[site]\ntitle = \"Bake\"\nyear = 2024\n",
	})

	for _, name := range []string{"c.json", "c.yaml", "c.yml", "c.toml"} {
		t.Run(name, func(t *testing.T) {
			scope, err := bake.LoadContent(fs, name, false)
			require.NoError(t, err)

			title, ok := bake.Resolve("site.title", scope)
			assert.True(t, ok)
			assert.Equal(t, "Bake", title)

			year, ok := bake.Resolve("site.year", scope)
			assert.True(t, ok)
			assert.Equal(t, "2024", year)
		})
	}
}

func TestLoadContent_YAMLNonStringKeys(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"c.yaml": "codes:\n  404: Not Found\n",
	})

	scope, err := bake.LoadContent(fs, "c.yaml", false)
	require.NoError(t, err)

	got, ok := bake.Resolve("codes.404", scope)
	assert.True(t, ok)
	assert.Equal(t, "Not Found", got)
}

func TestLoadContent_Empty(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"empty.yaml": "",
	})

	scope, err := bake.LoadContent(fs, "empty.yaml", false)
	require.NoError(t, err)
	assert.Empty(t, scope)
}

func TestLoadContent_Errors(t *testing.T) {
	fs := newTestFs(t, map[string]string{
		"bad.json":   `{"a": `,
		"array.json": `[1, 2]`,
	})

	_, err := bake.LoadContent(fs, "missing.json", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read content missing.json")

	_, err = bake.LoadContent(fs, "bad.json", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse content bad.json")

	_, err = bake.LoadContent(fs, "array.json", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content root must be object")
}

func TestLoadContent_EnvExpansion(t *testing.T) {
	t.Setenv("BAKE_TEST_CDN", "https://cdn.example.com")

	fs := newTestFs(t, map[string]string{
		"c.json": `{"cdn": "${BAKE_TEST_CDN}", "env": "${BAKE_TEST_ENV_UNSET:-dev}"}`,
	})

	expanded, err := bake.LoadContent(fs, "c.json", true)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com", expanded["cdn"])
	assert.Equal(t, "dev", expanded["env"])

	raw, err := bake.LoadContent(fs, "c.json", false)
	require.NoError(t, err)
	assert.Equal(t, "${BAKE_TEST_CDN}", raw["cdn"])
}
