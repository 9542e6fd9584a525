// Package metrics contains Prometheus collectors for the runbook tool.
//
// The diagnostic engine itself is pure; metrics are recorded by the
// code paths that invoke it (the lint command and the watcher), keyed
// by which heuristic notes fired. Collectors register on the default
// registry via promauto.
package metrics
