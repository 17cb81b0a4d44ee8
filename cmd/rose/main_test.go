package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/gilded-rose/internal/cli"
	"github.com/Veraticus/gilded-rose/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRose executes the CLI against the database at dbPath with the given
// standard input and returns what was written to standard output.
func runRose(t *testing.T, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()

	return runApp(t, newApp(), dbPath, stdin, args...)
}

// runApp is runRose for a preconfigured app.
func runApp(t *testing.T, a *app, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd := a.rootCmd()
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--db", dbPath}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func testDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "inventory.db")
}

func TestVersionCommand(t *testing.T) {
	out, err := runRose(t, testDBPath(t), "", "version")
	require.NoError(t, err)
	assert.Equal(t, "rose version dev\n", out)
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	_, err := runRose(t, testDBPath(t), "", "--log-level", "loud", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loud")
}

func TestRootCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("simulation:\n  days: 1\n"), 0600))

	out, err := runRose(t, testDBPath(t), "", "--config", cfgPath, "simulate")
	require.NoError(t, err)

	assert.Contains(t, out, "-------- day 1 --------")
	assert.NotContains(t, out, "-------- day 2 --------")
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, fmt.Errorf("advance: %w", common.NewUserError("inventory is empty", nil)))

	assert.Contains(t, buf.String(), cli.ErrorIcon)
	assert.Contains(t, buf.String(), "inventory is empty")
	assert.NotContains(t, buf.String(), "advance:")
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		want string
		size int64
	}{
		{"0 B", 0},
		{"1023 B", 1023},
		{"1.0 KB", 1024},
		{"1.5 KB", 1536},
		{"1.0 MB", 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatFileSize(tt.size))
		})
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		when time.Time
		want string
	}{
		{"seconds", now.Add(-10 * time.Second), "just now"},
		{"one minute", now.Add(-90 * time.Second), "1 minute ago"},
		{"minutes", now.Add(-5 * time.Minute), "5 minutes ago"},
		{"hours", now.Add(-3 * time.Hour), "3 hours ago"},
		{"yesterday", now.Add(-30 * time.Hour), "yesterday"},
		{"days", now.Add(-72 * time.Hour), "3 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatRelativeTime(tt.when))
		})
	}

	old := now.Add(-30 * 24 * time.Hour)
	assert.Equal(t, old.Format("2006-01-02 15:04"), formatRelativeTime(old))
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}
