package pathutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUnfrack_RelativeAgainstBasedir(t *testing.T) {
	got, err := Unfrack("sub/x.yaml", false, "/base")
	if err != nil {
		t.Fatalf("Unfrack() failed: %v", err)
	}
	if got != "/base/sub/x.yaml" {
		t.Errorf("Unfrack() = %q, want /base/sub/x.yaml", got)
	}
}

func TestUnfrack_RelativeAgainstCwd(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() failed: %v", err)
	}
	got, err := Unfrack("x.yaml", false, "")
	if err != nil {
		t.Fatalf("Unfrack() failed: %v", err)
	}
	if got != filepath.Join(wd, "x.yaml") {
		t.Errorf("Unfrack() = %q, want %q", got, filepath.Join(wd, "x.yaml"))
	}
}

func TestUnfrack_FileBasedirUsesParent(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	got, err := Unfrack("roles/a.yaml", false, file)
	if err != nil {
		t.Fatalf("Unfrack() failed: %v", err)
	}
	if got != filepath.Join(dir, "roles", "a.yaml") {
		t.Errorf("Unfrack() = %q, want under %q", got, dir)
	}
}

func TestUnfrack_ExpandsEnvAndCleans(t *testing.T) {
	t.Setenv("RUNBOOK_TEST_DIR", "/var/lib")
	got, err := Unfrack("$RUNBOOK_TEST_DIR/../mail", false, "")
	if err != nil {
		t.Fatalf("Unfrack() failed: %v", err)
	}
	if got != "/var/mail" {
		t.Errorf("Unfrack() = %q, want /var/mail", got)
	}
}

func TestUnfrack_ExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	got, err := Unfrack("~/runbooks", false, "")
	if err != nil {
		t.Fatalf("Unfrack() failed: %v", err)
	}
	if got != filepath.Join(home, "runbooks") {
		t.Errorf("Unfrack() = %q, want %q", got, filepath.Join(home, "runbooks"))
	}
}

func TestUnfrack_FollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real")
	if err := os.Mkdir(real, 0o755); err != nil {
		t.Fatalf("Mkdir() failed: %v", err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := Unfrack(link, true, "")
	if err != nil {
		t.Fatalf("Unfrack() failed: %v", err)
	}
	// EvalSymlinks may also resolve components of the temp dir itself.
	resolved, err := filepath.EvalSymlinks(real)
	if err != nil {
		t.Fatalf("EvalSymlinks() failed: %v", err)
	}
	if got != resolved {
		t.Errorf("Unfrack() = %q, want %q", got, resolved)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureDir(dir, 0o755); err != nil {
		t.Fatalf("EnsureDir() failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("directory was not created: %v", err)
	}

	// Existing directory is fine.
	if err := EnsureDir(dir, 0o755); err != nil {
		t.Errorf("EnsureDir() on existing directory failed: %v", err)
	}
}

func TestBasedir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() failed: %v", err)
	}

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"directory", dir, dir},
		{"file", file, dir},
		{"empty", "", wd},
		{"dot", ".", wd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Basedir(tt.source)
			if err != nil {
				t.Fatalf("Basedir(%q) failed: %v", tt.source, err)
			}
			if got != tt.want {
				t.Errorf("Basedir(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestBasedir_MissingSource(t *testing.T) {
	if _, err := Basedir(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("Basedir() accepted missing source")
	}
}

func TestCleanupTmpFile(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "tmp.yaml")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	CleanupTmpFile(file, nil)
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Error("file was not removed")
	}

	sub := filepath.Join(dir, "tmpdir")
	if err := os.MkdirAll(filepath.Join(sub, "nested"), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	CleanupTmpFile(sub, nil)
	if _, err := os.Stat(sub); !os.IsNotExist(err) {
		t.Error("directory was not removed")
	}

	// Missing path is silently ignored.
	CleanupTmpFile(filepath.Join(dir, "absent"), nil)
}

func TestIsSubpath(t *testing.T) {
	tests := []struct {
		name   string
		child  string
		parent string
		want   bool
	}{
		{"direct child", "/a/b/c", "/a/b", true},
		{"same path", "/a/b", "/a/b", true},
		{"sibling", "/a/c", "/a/b", false},
		{"prefix but not component", "/a/bc", "/a/b", false},
		{"parent of parent", "/a", "/a/b", false},
		{"traversal escapes", "/a/b/../../etc", "/a/b", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsSubpath(tt.child, tt.parent, false)
			if err != nil {
				t.Fatalf("IsSubpath() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsSubpath(%q, %q) = %v, want %v", tt.child, tt.parent, got, tt.want)
			}
		})
	}
}
