package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danieljhkim/datebucket/internal/config"
	"github.com/danieljhkim/datebucket/internal/engine"
)

var testDate = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// setupSource creates a source directory holding the given files
func setupSource(t *testing.T, names ...string) string {
	t.Helper()
	src := t.TempDir()
	for _, name := range names {
		path := filepath.Join(src, name)
		if err := os.WriteFile(path, []byte(name), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
		if err := os.Chtimes(path, testDate, testDate); err != nil {
			t.Fatalf("failed to set mtime: %v", err)
		}
	}
	return src
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd.SetArgs(args)
	var bufOut, bufErr bytes.Buffer
	rootCmd.SetOut(&bufOut)
	rootCmd.SetErr(&bufErr)
	err := rootCmd.Execute()
	return bufOut.String(), err
}

func TestRelocate_CopyByDefault(t *testing.T) {
	resetFlags()
	src := setupSource(t, "a.txt", "b.txt")
	dst := filepath.Join(t.TempDir(), "sorted")

	if _, err := execute(t, src, dst); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, name := range []string{"a.txt", "b.txt"} {
		if _, err := os.Stat(filepath.Join(dst, "2024-03-01", name)); err != nil {
			t.Errorf("%s not copied: %v", name, err)
		}
		if _, err := os.Stat(filepath.Join(src, name)); err != nil {
			t.Errorf("%s should remain in source: %v", name, err)
		}
	}
}

func TestRelocate_MoveFlag(t *testing.T) {
	resetFlags()
	src := setupSource(t, "a.txt")
	dst := t.TempDir()

	if _, err := execute(t, "-m", src, dst); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(src, "a.txt")); !os.IsNotExist(err) {
		t.Error("a.txt should be moved out of the source")
	}
	if _, err := os.Stat(filepath.Join(dst, "2024-03-01", "a.txt")); err != nil {
		t.Errorf("a.txt not moved: %v", err)
	}
}

func TestRelocate_JSONOutput(t *testing.T) {
	resetFlags()
	src := setupSource(t, "a.txt", "b.txt")
	dst := t.TempDir()

	output, err := execute(t, "--json", "-j", "2", src, dst)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var result engine.RunResult
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("expected valid JSON output, got error: %v, output: %q", err, output)
	}
	if result.Mode != config.ModeCopy {
		t.Errorf("mode = %q, want copy", result.Mode)
	}
	if len(result.Applied) != 2 {
		t.Errorf("applied = %d, want 2", len(result.Applied))
	}
	if len(result.Buckets) != 1 || result.Buckets[0] != "2024-03-01" {
		t.Errorf("buckets = %v", result.Buckets)
	}
}

func TestRelocate_MissingSource(t *testing.T) {
	resetFlags()
	base := t.TempDir()
	dst := filepath.Join(base, "dst")

	_, err := execute(t, filepath.Join(base, "missing"), dst)
	if !errors.Is(err, engine.ErrInvalidSource) {
		t.Fatalf("expected ErrInvalidSource, got %v", err)
	}
	if !strings.Contains(err.Error(), "source directory does not exist") {
		t.Errorf("error should say the source does not exist: %v", err)
	}
	if _, statErr := os.Stat(dst); !os.IsNotExist(statErr) {
		t.Error("destination must not be created")
	}
}

func TestRelocate_InvalidJobs(t *testing.T) {
	resetFlags()
	src := setupSource(t, "a.txt")

	_, err := execute(t, "-j", "0", src, t.TempDir())
	if !errors.Is(err, config.ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
}

func TestRelocate_SecondRunFails(t *testing.T) {
	resetFlags()
	src := setupSource(t, "a.txt")
	dst := t.TempDir()

	if _, err := execute(t, src, dst); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	resetFlags()
	if _, err := execute(t, src, dst); err == nil {
		t.Fatal("second run into the same destination should fail")
	}
}

func TestPrintCount(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{0, "0 files"},
		{1, "1 file"},
		{7, "7 files"},
	}
	for _, tt := range tests {
		if got := PrintCount(tt.count, "file", "files"); got != tt.want {
			t.Errorf("PrintCount(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}

func TestFormatError(t *testing.T) {
	got := FormatError(os.ErrNotExist)
	if !strings.Contains(got, "Error:") || !strings.Contains(got, os.ErrNotExist.Error()) {
		t.Errorf("FormatError() = %q", got)
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("verbose writes debug records", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(&buf, true).Debug("planning relocations")
		if !strings.Contains(buf.String(), "planning relocations") {
			t.Errorf("expected debug record, got %q", buf.String())
		}
	})

	t.Run("quiet discards records", func(t *testing.T) {
		var buf bytes.Buffer
		newLogger(&buf, false).Error("should not appear")
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})
}
