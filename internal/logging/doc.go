// Package logging provides slog construction with console and JSON handlers
// plus shared attribute helpers and field-name constants.
package logging
