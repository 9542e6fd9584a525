// Package watcher re-runs lint checks when runbook files change on
// disk. Filesystem events are debounced so that editors performing
// write-rename dances trigger a single re-check.
package watcher
