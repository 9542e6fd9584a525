// Package helpers holds small conversion utilities shared across the
// runbook loader.
package helpers

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"
)

// PctToCount converts a rollout size to an absolute count. The value is
// either a plain integer ("5") or a percentage of numItems ("30%").
// Percentages truncate toward zero but never go below minValue, so a
// small percentage of a small inventory still selects something.
func PctToCount(value string, numItems, minValue int) (int, error) {
	value = strings.TrimSpace(value)
	if strings.HasSuffix(value, "%") {
		pct, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
		if err != nil {
			return 0, fmt.Errorf("invalid percentage %q: %w", value, err)
		}
		count, err := safecast.Truncate[int](float64(pct) / 100.0 * float64(numItems))
		if err != nil {
			return 0, fmt.Errorf("percentage %q of %d items out of range: %w", value, numItems, err)
		}
		if count < minValue {
			count = minValue
		}
		return count, nil
	}

	count, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q: %w", value, err)
	}
	return count, nil
}

// Dedupe returns a copy of items with duplicates removed, keeping the
// order in which each item was first seen.
func Dedupe[T comparable](items []T) []T {
	if items == nil {
		return nil
	}
	seen := make(map[T]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
