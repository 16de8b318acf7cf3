package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloudposse/tswig/errors"
	"github.com/cloudposse/tswig/pkg/tswig"
	"github.com/cloudposse/tswig/pkg/version"
)

// execute runs a fresh command tree in an isolated working directory and
// returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("TSWIG_XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(Cleanup)

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "index.ts"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "view.tsx"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tsconfig.json"), []byte(`{
  "compilerOptions": {
    "module": "CommonJS",
    "target": "ES2018",
    "esModuleInterop": true,
    "sourceMap": true,
    "jsx": "react-jsx"
  }
}`), 0o644))
	return dir
}

func TestConvertPrintsBuilderOutput(t *testing.T) {
	dir := writeProject(t)

	out, err := execute(t, "convert")
	require.NoError(t, err)

	b, err := tswig.Convert(filepath.Join(dir, "tsconfig.json"), nil)
	require.NoError(t, err)
	assert.Equal(t, b.String()+"\n", out)
}

func TestConvertOverridesAndSet(t *testing.T) {
	dir := writeProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "overrides.yaml"), []byte("jsc:\n  target: es2020\nminify: false\n"), 0o644))

	out, err := execute(t, "convert", "--overrides", "overrides.yaml", "--set", "minify=true", "--set", "jsc.transform.react.pragma=h")
	require.NoError(t, err)
	assert.Contains(t, out, `"target": "es2020"`)
	assert.Contains(t, out, `"minify": true`)
	assert.Contains(t, out, `"pragma": "h"`)
}

func TestConvertOutputFile(t *testing.T) {
	dir := writeProject(t)

	out, err := execute(t, "convert", dir, "-o", ".swcrc")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(filepath.Join(dir, ".swcrc"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type": "commonjs"`)
}

func TestConvertSettingsFile(t *testing.T) {
	dir := writeProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tswig.yaml"), []byte("convert:\n  output: build.swcrc\n"), 0o644))

	_, err := execute(t, "convert")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "build.swcrc"))
}

func TestConvertValidate(t *testing.T) {
	writeProject(t)

	out, err := execute(t, "convert", "--validate")
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "commonjs"`)

	out, err = execute(t, "convert", "--validate", "--set", "jsc.target=es1999")
	require.Error(t, err)
	assert.Empty(t, out)
	assert.True(t, errors.Is(err, errUtils.ErrInvalidSWC))

	_, err = execute(t, "convert", "--set", "jsc.target=es1999")
	require.NoError(t, err)
}

func TestConvertErrors(t *testing.T) {
	dir := writeProject(t)

	_, err := execute(t, "convert", "--set", "=x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errUtils.ErrInvalidSetFlag))
	assert.Equal(t, errUtils.ExitCodeUsage, errUtils.GetExitCode(err))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.json"), []byte(`{}`), 0o644))
	_, err = execute(t, "convert", "empty.json")
	require.Error(t, err)
	assert.Equal(t, errUtils.ExitCodeConversion, errUtils.GetExitCode(err))

	_, err = execute(t, "convert", "missing.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errUtils.ErrReadTsConfig))
}

func TestParseSet(t *testing.T) {
	tests := []struct {
		in   string
		want map[string]any
	}{
		{"jsc.target=es2022", map[string]any{"jsc": map[string]any{"target": "es2022"}}},
		{"minify=true", map[string]any{"minify": true}},
		{"jsc.minify.passes=3", map[string]any{"jsc": map[string]any{"minify": map[string]any{"passes": 3}}}},
		{"module.importInterop=", map[string]any{"module": map[string]any{"importInterop": ""}}},
		{"env.targets=[node 18]", map[string]any{"env": map[string]any{"targets": []any{"node 18"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSet(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"novalue", "=x", ".a=1", "a.=1", "a..b=1"} {
		_, err := parseSet(bad)
		assert.Error(t, err, bad)
	}
}

func TestFiles(t *testing.T) {
	writeProject(t)

	out, err := execute(t, "files", "--relative")
	require.NoError(t, err)
	assert.Equal(t, []string{"src/index.ts", "src/view.tsx"}, strings.Fields(out))
}

func TestVersion(t *testing.T) {
	chdir(t, t.TempDir())
	orig := version.Version
	t.Cleanup(func() { version.Version = orig })
	version.Version = "v9.9.9"

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "tswig v9.9.9")

	out, err = execute(t, "version", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"version": "v9.9.9"`)

	out, err = execute(t, "version", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "version: v9.9.9")

	_, err = execute(t, "version", "--format", "xml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errUtils.ErrInvalidFormat))
}

func TestInvalidLogLevel(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := execute(t, "version", "--logs-level", "Loud")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errUtils.ErrInvalidLogLevel))
}
