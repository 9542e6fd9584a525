// Package pathutil normalizes user-supplied paths. Runbook paths may
// carry environment variables, tildes, and relative traversals; every
// path crossing the CLI boundary goes through Unfrack first.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"runbook-hq/runbook/pkg/telemetry/logging"
)

// Unfrack returns an absolute, cleaned path with environment variables
// and a leading tilde expanded. Relative paths resolve against basedir,
// or the working directory when basedir is empty; a basedir naming a
// file resolves against its parent. When follow is true, symlinks are
// resolved too. The result is not checked for existence.
func Unfrack(path string, follow bool, basedir string) (string, error) {
	if basedir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		basedir = wd
	} else if info, err := os.Stat(basedir); err == nil && !info.IsDir() {
		basedir = filepath.Dir(basedir)
	}

	expanded := os.ExpandEnv(path)
	expanded, err := expandUser(expanded)
	if err != nil {
		return "", err
	}

	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(basedir, expanded)
	}

	if follow {
		// The target may not exist yet; fall back to the unresolved path.
		if resolved, err := filepath.EvalSymlinks(expanded); err == nil {
			expanded = resolved
		}
	}

	return filepath.Clean(expanded), nil
}

// expandUser replaces a leading ~ with the current user's home
// directory.
func expandUser(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// EnsureDir creates the directory chain for path if it does not exist.
// An existing directory is not an error.
func EnsureDir(path string, mode os.FileMode) error {
	resolved, err := Unfrack(path, true, "")
	if err != nil {
		return err
	}
	if mode == 0 {
		mode = 0o755
	}
	if err := os.MkdirAll(resolved, mode); err != nil {
		return fmt.Errorf("unable to create directories %q: %w", resolved, err)
	}
	return nil
}

// Basedir returns the directory a source path anchors relative lookups
// to: the path itself for directories, its parent for files, and the
// working directory for empty or "." sources. Symlinks are kept as-is.
func Basedir(source string) (string, error) {
	if source == "" || source == "." {
		return os.Getwd()
	}

	info, err := os.Stat(source)
	if err != nil {
		return "", fmt.Errorf("failed to stat %q: %w", source, err)
	}
	if info.IsDir() {
		return filepath.Abs(source)
	}
	return filepath.Abs(filepath.Dir(source))
}

// CleanupTmpFile removes a temporary file or directory, best effort.
// Failures are logged when a logger is supplied and never returned.
func CleanupTmpFile(path string, logger *logging.Logger) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}

	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil && logger != nil {
		logger.Warn("unable to remove temporary file", "path", path, "error", err)
	}
}

// IsSubpath reports whether child lives under parent. Both paths are
// normalized without following symlinks; set real to resolve symlinks
// before comparing.
func IsSubpath(child, parent string, real bool) (bool, error) {
	absChild, err := Unfrack(child, false, "")
	if err != nil {
		return false, err
	}
	absParent, err := Unfrack(parent, false, "")
	if err != nil {
		return false, err
	}

	if real {
		if resolved, err := filepath.EvalSymlinks(absChild); err == nil {
			absChild = resolved
		}
		if resolved, err := filepath.EvalSymlinks(absParent); err == nil {
			absParent = resolved
		}
	}

	sep := string(filepath.Separator)
	c := strings.Split(absChild, sep)
	p := strings.Split(absParent, sep)
	if len(c) < len(p) {
		return false, nil
	}
	for i := range p {
		if c[i] != p[i] {
			return false, nil
		}
	}
	return true, nil
}
