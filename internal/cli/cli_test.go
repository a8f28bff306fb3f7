package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// maxSource always rolls the highest face.
type maxSource struct{}

func (maxSource) Intn(n int) int { return n - 1 }

func newTestApp() (*App, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	app := New(&stdout, &stderr)
	app.Source = maxSource{}
	return app, &stdout, &stderr
}

const maxSheet = `==== CoC6 ====
STR: 18 (6+6+6)
CON: 18 (6+6+6)
POW: 18 (6+6+6)
DEX: 18 (6+6+6)
APP: 18 (6+6+6)
SIZ: 18 (6+6+6)
INT: 18 (6+6+6)
EDU: 21 (6+6+6+3)
`

func TestRun_CharDefaultEdition(t *testing.T) {
	app, stdout, _ := newTestApp()
	code := app.Run(context.Background(), []string{"char"})
	require.Equal(t, ExitOK, code)
	assert.Equal(t, maxSheet, stdout.String())
}

func TestRun_CharExplicitRule(t *testing.T) {
	for _, args := range [][]string{
		{"char", "-rule", "coc6"},
		{"char", "--rule=coc6"},
		{"char", "-r", "coc6"},
	} {
		app, stdout, _ := newTestApp()
		require.Equal(t, ExitOK, app.Run(context.Background(), args), args)
		assert.Equal(t, maxSheet, stdout.String(), args)
	}
}

func TestRun_CharConcurrentKeepsOrder(t *testing.T) {
	app, stdout, _ := newTestApp()
	require.Equal(t, ExitOK, app.Run(context.Background(), []string{"char", "-concurrent"}))
	assert.Equal(t, maxSheet, stdout.String())
}

func TestRun_CharRandomHasNineLines(t *testing.T) {
	var stdout, stderr bytes.Buffer
	app := New(&stdout, &stderr)
	require.Equal(t, ExitOK, app.Run(context.Background(), []string{"char"}))

	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "==== CoC6 ====", lines[0])
	for i, code := range []string{"STR", "CON", "POW", "DEX", "APP", "SIZ", "INT", "EDU"} {
		assert.True(t, strings.HasPrefix(lines[i+1], code+": "), lines[i+1])
	}
}

func TestRun_CharSeedIsReproducible(t *testing.T) {
	run := func() string {
		var stdout, stderr bytes.Buffer
		require.Equal(t, ExitOK, New(&stdout, &stderr).Run(context.Background(), []string{"char", "-seed", "1234"}))
		return stdout.String()
	}
	assert.Equal(t, run(), run())
}

func TestRun_CharUnimplementedEdition(t *testing.T) {
	app, stdout, stderr := newTestApp()
	code := app.Run(context.Background(), []string{"char", "-rule", "coc7"})
	assert.Equal(t, ExitNotImplemented, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "coc7")
	assert.Contains(t, stderr.String(), "not implemented")
}

func TestRun_CharUnknownEdition(t *testing.T) {
	app, stdout, stderr := newTestApp()
	code := app.Run(context.Background(), []string{"char", "-rule", "dnd5e"})
	assert.Equal(t, ExitUsage, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "unknown edition")
}

func TestRun_CharTableOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
attributes:
  STR: 1d6
  CON: 3d6
  POW: 3d6
  DEX: 3d6
  APP: 3d6
  SIZ: 2d6+6
  INT: 2d6+6
  EDU: 3d6+3
`), 0644))

	app, stdout, _ := newTestApp()
	require.Equal(t, ExitOK, app.Run(context.Background(), []string{"char", "-table", path}))
	assert.Contains(t, stdout.String(), "STR:  6 (6)\n")
}

func TestRun_CharInvalidTableAbortsBeforeOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
attributes:
  STR: 0d6
  CON: 3d6
  POW: 3d6
  DEX: 3d6
  APP: 3d6
  SIZ: 2d6+6
  INT: 2d6+6
  EDU: 3d6+3
`), 0644))

	app, stdout, stderr := newTestApp()
	assert.Equal(t, ExitError, app.Run(context.Background(), []string{"char", "-table", path}))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "STR")
}

func TestRun_CharYAMLFormat(t *testing.T) {
	app, stdout, _ := newTestApp()
	require.Equal(t, ExitOK, app.Run(context.Background(), []string{"char", "-format", "yaml"}))

	var doc struct {
		Edition    string `yaml:"edition"`
		Attributes []struct {
			Code  string `yaml:"code"`
			Score int    `yaml:"score"`
		} `yaml:"attributes"`
	}
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, "coc6", doc.Edition)
	require.Len(t, doc.Attributes, 8)
	assert.Equal(t, "EDU", doc.Attributes[7].Code)
	assert.Equal(t, 21, doc.Attributes[7].Score)
}

func TestRun_CharConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sheet:\n  edition: coc7\n"), 0644))

	app, stdout, _ := newTestApp()
	assert.Equal(t, ExitNotImplemented, app.Run(context.Background(), []string{"char", "-config", path}))
	assert.Empty(t, stdout.String())

	app, stdout, _ = newTestApp()
	require.Equal(t, ExitOK, app.Run(context.Background(), []string{"char", "-config", path, "-rule", "coc6"}))
	assert.Equal(t, maxSheet, stdout.String())
}

func TestRun_CharBadConfig(t *testing.T) {
	app, stdout, stderr := newTestApp()
	assert.Equal(t, ExitError, app.Run(context.Background(), []string{"char", "-config", "/nonexistent.yaml"}))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "loading config")
}

func TestRun_CharBadFlag(t *testing.T) {
	app, stdout, _ := newTestApp()
	assert.Equal(t, ExitUsage, app.Run(context.Background(), []string{"char", "-nope"}))
	assert.Empty(t, stdout.String())

	app, _, _ = newTestApp()
	assert.Equal(t, ExitUsage, app.Run(context.Background(), []string{"char", "extra"}))
}

func TestRun_CharBadFormatFlag(t *testing.T) {
	app, stdout, stderr := newTestApp()
	assert.Equal(t, ExitUsage, app.Run(context.Background(), []string{"char", "-format", "xml"}))
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), `invalid -format "xml"`)
}

func TestRun_CharCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	app, stdout, _ := newTestApp()
	assert.Equal(t, ExitError, app.Run(ctx, []string{"char", "-concurrent"}))
	assert.Empty(t, stdout.String())
}

func TestRun_NoCommand(t *testing.T) {
	app, _, stderr := newTestApp()
	assert.Equal(t, ExitUsage, app.Run(context.Background(), nil))
	assert.Contains(t, stderr.String(), "usage")
}

func TestRun_UnknownCommand(t *testing.T) {
	app, _, stderr := newTestApp()
	assert.Equal(t, ExitUsage, app.Run(context.Background(), []string{"roll"}))
	assert.Contains(t, stderr.String(), `unknown command "roll"`)
}

func TestRun_Help(t *testing.T) {
	app, stdout, _ := newTestApp()
	assert.Equal(t, ExitOK, app.Run(context.Background(), []string{"help"}))
	assert.Contains(t, stdout.String(), "char")
}
