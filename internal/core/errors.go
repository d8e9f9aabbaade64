package core

import "errors"

var (
	// ErrSourceMissing is returned when the event source cannot be opened.
	// Fatal to ingestion; no partial snapshot is exposed.
	ErrSourceMissing = errors.New("event source not found")

	// ErrBlankLine marks an empty source line. Skipped silently.
	ErrBlankLine = errors.New("blank line")

	// ErrMalformedLine marks a line whose leading date is missing or invalid.
	// The line is skipped and ingestion continues.
	ErrMalformedLine = errors.New("malformed line")

	// ErrExportFailed wraps any failure while selecting, rendering or writing
	// an export. No partial artifact is valid output.
	ErrExportFailed = errors.New("export failed")

	// ErrInvalidFilter is returned by strict filter parsing.
	ErrInvalidFilter = errors.New("invalid date filter")

	// ErrUnknownFormat is returned for an unsupported export format.
	ErrUnknownFormat = errors.New("unknown export format")

	// ErrNotLoaded is returned when a query runs before the first load.
	ErrNotLoaded = errors.New("snapshot not loaded")
)
