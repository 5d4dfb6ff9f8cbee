package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nice-copacabana/meteor-shower/internal/adapters"
	"github.com/nice-copacabana/meteor-shower/internal/history"
)

const passableCaseYAML = `id: brainstorm
name: Brainstorm
category: writing
difficulty: legendary
scenario:
  task: Brainstorm ideas for a launch
expected:
  type: creative
scoring:
  accuracy: 40
  completeness: 30
  creativity: 20
  efficiency: 10
`

const strictCaseYAML = `id: exact-answer
name: Exact Answer
category: coding
difficulty: beginner
scenario:
  task: Answer with the magic word
expected:
  type: exact
  content: xyzzy
scoring:
  accuracy: 100
  completeness: 0
  creativity: 0
  efficiency: 0
`

func writeCaseDir(t *testing.T, yamls ...string) string {
	t.Helper()
	dir := t.TempDir()
	for i, y := range yamls {
		path := filepath.Join(dir, string(rune('a'+i))+".yaml")
		require.NoError(t, os.WriteFile(path, []byte(y), 0o644))
	}
	return dir
}

func TestRunCommand_DryRun(t *testing.T) {
	casesDir := writeCaseDir(t, passableCaseYAML)
	workDir := t.TempDir()
	historyDir := filepath.Join(workDir, "history")
	reportPath := filepath.Join(workDir, "report.md")

	var buf bytes.Buffer
	cmd := newRunCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{
		casesDir,
		"--tool", "alpha",
		"--tool", "beta",
		"--dry-run",
		"--history-dir", historyDir,
		"-o", reportPath,
	})
	require.NoError(t, cmd.Execute())

	// Both tools were persisted to history.
	store := history.New(historyDir)
	tools, err := store.Tools()
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "beta"}, tools)

	alpha, err := store.List("alpha")
	require.NoError(t, err)
	require.Len(t, alpha, 1)
	require.Equal(t, "brainstorm", alpha[0].CaseID)
	require.Greater(t, alpha[0].Scores.Overall, 0.0)

	// The Markdown report covers the comparison.
	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "# Comparison Report: Brainstorm")
}

func TestRunCommand_FailedVerdictExitsNonZero(t *testing.T) {
	// Stub output never matches the exact answer, so the beginner-level
	// case fails its threshold.
	casesDir := writeCaseDir(t, strictCaseYAML)

	cmd := newRunCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{
		casesDir,
		"--tool", "alpha",
		"--dry-run",
		"--no-history",
	})

	err := cmd.Execute()
	require.Error(t, err)

	var caseFailure *CaseFailureError
	require.ErrorAs(t, err, &caseFailure)
}

func TestRunCommand_RequiresTool(t *testing.T) {
	casesDir := writeCaseDir(t, passableCaseYAML)

	cmd := newRunCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{casesDir})

	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "--tool")
}

func TestRunCommand_UnknownCaseFilter(t *testing.T) {
	casesDir := writeCaseDir(t, passableCaseYAML)

	cmd := newRunCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{casesDir, "--tool", "alpha", "--dry-run", "--case", "missing", "--no-history"})

	require.Error(t, cmd.Execute())
}

func TestRunCommand_EmptyCaseDir(t *testing.T) {
	cmd := newRunCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{t.TempDir(), "--tool", "alpha", "--dry-run"})

	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "no cases found")
}

func TestRegisterTools(t *testing.T) {
	t.Run("dry-run stubs", func(t *testing.T) {
		registry := adapters.NewRegistry()
		names, err := registerTools(registry, []string{"alpha", "beta=some-command"}, true)
		require.NoError(t, err)
		require.Equal(t, []string{"alpha", "beta"}, names)
		require.True(t, registry.Has("alpha"))
		require.True(t, registry.Has("beta"))
	})

	t.Run("name=command splits args", func(t *testing.T) {
		registry := adapters.NewRegistry()
		names, err := registerTools(registry, []string{"cat-tool=cat -u"}, false)
		require.NoError(t, err)
		require.Equal(t, []string{"cat-tool"}, names)

		adapter, err := registry.Get("cat-tool")
		require.NoError(t, err)
		require.True(t, adapter.IsAvailable())
	})

	t.Run("rejects empty parts", func(t *testing.T) {
		registry := adapters.NewRegistry()
		_, err := registerTools(registry, []string{"=cmd"}, false)
		require.Error(t, err)
		_, err = registerTools(registry, []string{"name="}, false)
		require.Error(t, err)
	})
}
