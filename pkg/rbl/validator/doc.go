// Package validator performs structural validation of parsed runbooks:
// required fields, unique names, schedule expressions, and rollout
// sizes. Validation accumulates errors instead of stopping at the
// first one.
package validator
