package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nice-copacabana/meteor-shower/internal/history"
	"github.com/nice-copacabana/meteor-shower/internal/models"
)

func seedHistory(t *testing.T, dir string) {
	t.Helper()
	store := history.New(dir)

	put := func(id, tool string, overall float64) {
		require.NoError(t, store.Put(&models.Execution{
			ID:        id,
			CaseID:    "brainstorm",
			Tool:      tool,
			Output:    "stored output",
			StartedAt: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
			Status:    models.StatusCompleted,
			Scores:    models.Scores{Accuracy: overall, Completeness: overall, Creativity: overall, Efficiency: overall, Overall: overall},
		}))
	}
	put("e1", "alpha", 80)
	put("e2", "beta", 65)
}

func TestCompareCommand(t *testing.T) {
	casesDir := writeCaseDir(t, passableCaseYAML)
	historyDir := filepath.Join(t.TempDir(), "history")
	seedHistory(t, historyDir)

	reportPath := filepath.Join(t.TempDir(), "report.md")

	cmd := newCompareCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"brainstorm",
		"--cases", casesDir,
		"--history-dir", historyDir,
		"-o", reportPath,
	})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	md := string(data)
	require.Contains(t, md, "# Comparison Report: Brainstorm")
	require.Contains(t, md, "alpha")
	require.Contains(t, md, "beta")
	require.Contains(t, md, "**Best tool**: alpha")
}

func TestCompareCommand_ToolFilter(t *testing.T) {
	casesDir := writeCaseDir(t, passableCaseYAML)
	historyDir := filepath.Join(t.TempDir(), "history")
	seedHistory(t, historyDir)

	reportPath := filepath.Join(t.TempDir(), "report.md")

	cmd := newCompareCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"brainstorm",
		"--cases", casesDir,
		"--history-dir", historyDir,
		"--tool", "beta",
		"-o", reportPath,
	})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "**Best tool**: beta")
}

func TestCompareCommand_NoHistory(t *testing.T) {
	casesDir := writeCaseDir(t, passableCaseYAML)

	cmd := newCompareCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"brainstorm",
		"--cases", casesDir,
		"--history-dir", filepath.Join(t.TempDir(), "empty"),
	})
	require.Error(t, cmd.Execute())
}

func TestCompareCommand_UnknownCase(t *testing.T) {
	casesDir := writeCaseDir(t, passableCaseYAML)
	historyDir := filepath.Join(t.TempDir(), "history")
	seedHistory(t, historyDir)

	cmd := newCompareCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"missing", "--cases", casesDir, "--history-dir", historyDir})
	require.Error(t, cmd.Execute())
}

func TestHistoryCommand(t *testing.T) {
	historyDir := filepath.Join(t.TempDir(), "history")
	seedHistory(t, historyDir)

	cmd := newHistoryCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"alpha", "--history-dir", historyDir})
	require.NoError(t, cmd.Execute())
}

func TestHistoryCommand_CategoryNeedsCases(t *testing.T) {
	cmd := newHistoryCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"alpha", "--history-dir", t.TempDir(), "--category", "writing"})

	err := cmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "--cases")
}

func TestHistoryCommand_WithCategory(t *testing.T) {
	casesDir := writeCaseDir(t, passableCaseYAML)
	historyDir := filepath.Join(t.TempDir(), "history")
	seedHistory(t, historyDir)

	cmd := newHistoryCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"alpha",
		"--history-dir", historyDir,
		"--cases", casesDir,
		"--category", "writing",
	})
	require.NoError(t, cmd.Execute())
}
