package cli

import "fmt"

// ConfigError reports a configuration value the tool cannot work with.
// pkg/config returns it from validation so callers can show the exact
// key and value that were rejected.
type ConfigError struct {
	// Field is the dotted config key, e.g. "lint.color".
	Field string

	// Value is the rejected value.
	Value any

	// Message says what would have been acceptable.
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s = %v: %s", e.Field, e.Value, e.Message)
}

// CommandError marks a subcommand as failed. The root command prints it
// and exits non-zero; the wrapped error keeps the underlying cause
// inspectable.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("runbook %s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field string, value any, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}
