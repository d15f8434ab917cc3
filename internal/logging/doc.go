// Package logging configures slog handlers for clipforge and exposes
// small helpers for building structured attributes with consistent keys.
package logging
