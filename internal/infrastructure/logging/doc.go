// Package logging provides the structured slog wrapper used throughout
// bookmarkd.
package logging
