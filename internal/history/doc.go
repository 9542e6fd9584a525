// Package history persists lint run results to a local SQLite database
// so that past failures can be reviewed after the fact.
package history
