package errors

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeFile creates a fixture file and returns its path.
func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runbook.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestErrorLines_Basic(t *testing.T) {
	path := writeFile(t, "first\nsecond\nthird\n")

	target, prev, err := ErrorLines(path, 1)
	if err != nil {
		t.Fatalf("ErrorLines() failed: %v", err)
	}
	if target != "second\n" {
		t.Errorf("target = %q, want %q", target, "second\n")
	}
	if prev != "first\n" {
		t.Errorf("prev = %q, want %q", prev, "first\n")
	}
}

func TestErrorLines_FirstLine(t *testing.T) {
	path := writeFile(t, "first\nsecond\n")

	target, prev, err := ErrorLines(path, 0)
	if err != nil {
		t.Fatalf("ErrorLines() failed: %v", err)
	}
	if target != "first\n" {
		t.Errorf("target = %q, want %q", target, "first\n")
	}
	if prev != "" {
		t.Errorf("prev = %q, want empty", prev)
	}
}

func TestErrorLines_ClampsPastEOF(t *testing.T) {
	// The YAML loader reports the very last line for many failures;
	// an index past the end must behave as if it named the last line.
	path := writeFile(t, "first\nsecond\nlast\n")

	target, _, err := ErrorLines(path, 99)
	if err != nil {
		t.Fatalf("ErrorLines() failed: %v", err)
	}
	if target != "last\n" {
		t.Errorf("target = %q, want %q", target, "last\n")
	}
}

func TestErrorLines_SkipsTrailingBlanks(t *testing.T) {
	path := writeFile(t, "code\n\n   \n\t\n")

	target, _, err := ErrorLines(path, 3)
	if err != nil {
		t.Fatalf("ErrorLines() failed: %v", err)
	}
	if target != "code\n" {
		t.Errorf("target = %q, want %q", target, "code\n")
	}
}

func TestErrorLines_AllBlank(t *testing.T) {
	path := writeFile(t, "\n\n\n")

	_, _, err := ErrorLines(path, 2)
	if !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("err = %v, want ErrLineOutOfRange", err)
	}
}

func TestErrorLines_EmptyFile(t *testing.T) {
	path := writeFile(t, "")

	_, _, err := ErrorLines(path, 0)
	if !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("err = %v, want ErrLineOutOfRange", err)
	}
}

func TestErrorLines_NegativeIndex(t *testing.T) {
	path := writeFile(t, "first\n")

	_, _, err := ErrorLines(path, -1)
	if !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("err = %v, want ErrLineOutOfRange", err)
	}
}

func TestErrorLines_MissingFile(t *testing.T) {
	_, _, err := ErrorLines(filepath.Join(t.TempDir(), "nope.yaml"), 0)
	if !errors.Is(err, ErrContextUnreadable) {
		t.Errorf("err = %v, want ErrContextUnreadable", err)
	}
}

func TestErrorLines_DirectoryPath(t *testing.T) {
	_, _, err := ErrorLines(t.TempDir(), 0)
	if !errors.Is(err, ErrContextUnreadable) {
		t.Errorf("err = %v, want ErrContextUnreadable", err)
	}
}

func TestErrorLines_NoTrailingNewline(t *testing.T) {
	path := writeFile(t, "first\nlast")

	target, prev, err := ErrorLines(path, 1)
	if err != nil {
		t.Fatalf("ErrorLines() failed: %v", err)
	}
	if target != "last" {
		t.Errorf("target = %q, want %q", target, "last")
	}
	if prev != "first\n" {
		t.Errorf("prev = %q, want %q", prev, "first\n")
	}
}

func TestErrorLines_UTF8BOM(t *testing.T) {
	path := writeFile(t, "\xEF\xBB\xBFname: demo\nplays: []\n")

	target, _, err := ErrorLines(path, 0)
	if err != nil {
		t.Fatalf("ErrorLines() failed: %v", err)
	}
	if target != "name: demo\n" {
		t.Errorf("target = %q, want %q", target, "name: demo\n")
	}
}

func TestIsNonFileSource(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{SourceString, true},
		{SourceUnicode, true},
		{"runbook.yaml", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsNonFileSource(tt.source); got != tt.want {
			t.Errorf("IsNonFileSource(%q) = %v, want %v", tt.source, got, tt.want)
		}
	}
}
