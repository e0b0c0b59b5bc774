package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yurifrl/finscore/pkg/classifier"
	"github.com/yurifrl/finscore/pkg/parser"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "finscore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestBuildDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Build("", nil)
	require.NoError(t, err)

	assert.Equal(t, log.InfoLevel, cfg.Level())
	assert.Equal(t, parser.DefaultMaxInputBytes, cfg.Parser.MaxInputBytes)
	assert.Equal(t, classifier.PrecedenceClassifier, cfg.Precedence())
	assert.Equal(t, 0.10, cfg.Advice.AnnualRate)
	assert.Equal(t, []int{3, 5, 10}, cfg.Advice.Tenures)
	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr)
}

func TestBuildLayers(t *testing.T) {
	chdir(t, t.TempDir())
	path := writeConfig(t, `
log_level: debug
classifier:
  precedence: upstream
advice:
  annual_rate: 0.12
ynab:
  budget_id: from-file
`)
	t.Setenv("FINSCORE_YNAB_TOKEN", "secret")
	t.Setenv("FINSCORE_YNAB_BUDGET_ID", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("addr", "", "")
	require.NoError(t, flags.Parse([]string{"--addr", "127.0.0.1:9000"}))

	cfg, err := Build(path, flags)
	require.NoError(t, err)

	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.Equal(t, classifier.PrecedenceUpstream, cfg.Precedence())
	assert.Equal(t, 0.12, cfg.Advice.AnnualRate)
	assert.Equal(t, "secret", cfg.YNAB.Token)
	assert.Equal(t, "from-env", cfg.YNAB.BudgetID)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
}

func TestBuildDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FINSCORE_OUTPUT_PATH=/tmp/out\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("FINSCORE_OUTPUT_PATH") })

	cfg, err := Build("", nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", cfg.OutputPath)
}

func TestBuildRejects(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Build(writeConfig(t, "classifier:\n  precedence: whoever\n"), nil)
	assert.ErrorContains(t, err, "precedence")

	_, err = Build(writeConfig(t, "log_level: loud\n"), nil)
	assert.ErrorContains(t, err, "log_level")

	_, err = Build(writeConfig(t, "parser:\n  max_input_bytes: 0\n"), nil)
	assert.ErrorContains(t, err, "max_input_bytes")

	_, err = Build(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
