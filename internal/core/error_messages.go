package core

// # Error Codes Reference
//
// User-facing messages for the web page and the terminal browser. Codes are
// grouped by stage:
//
//	SRC001  - Source missing: the log file could not be opened
//	          Action: Check HW_SOURCE_PATH or --source
//	LINE001 - Malformed line: leading date is not YYYY.MM.DD (never fatal)
//	FLT001  - Invalid filter: date filter is neither YYYY-MM nor a date
//	          Action: Use 2024-02 or 2024-02-15
//	FMT001  - Unknown format: export format is not xlsx, csv or postgres
//	EXP001  - Export failed: the artifact could not be written
//	          Action: Check the output directory is writable
//	CFG001  - Configuration invalid: an environment value failed validation
//	          Action: Fix the named variable in .env or the environment
//	EXP002  - Too many exports: every export slot is busy
//	          Action: Retry in a few seconds
//	DB001   - Database unreachable (postgres export only)
//	LOAD001 - Not loaded: a query ran before the first ingestion finished
//	REQ001  - Request cancelled
//	REQ002  - Request timed out
//	ERR000  - Unknown error
//
// Sentinel errors are matched with errors.Is first; remaining errors fall back
// to case-insensitive substring patterns, first match wins.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type sentinelMessage struct {
	err error
	msg UserMessage
}

// sentinelMessages is checked in order with errors.Is.
var sentinelMessages = []sentinelMessage{
	{ErrSourceMissing, UserMessage{
		Message: "The inventory log could not be found",
		Action:  "Check HW_SOURCE_PATH or the --source flag",
		Code:    "SRC001",
	}},
	{ErrMalformedLine, UserMessage{
		Message: "A log line does not start with a YYYY.MM.DD date",
		Action:  "The line was skipped; fix it in the source file if it matters",
		Code:    "LINE001",
	}},
	{ErrInvalidFilter, UserMessage{
		Message: "The date filter was not understood",
		Action:  "Use a month like 2024-02 or a date like 2024-02-15",
		Code:    "FLT001",
	}},
	{ErrUnknownFormat, UserMessage{
		Message: "Unsupported export format",
		Action:  "Use xlsx, csv or postgres",
		Code:    "FMT001",
	}},
	{ErrTooManyExports, UserMessage{
		Message: "Too many exports are running",
		Action:  "Wait a few seconds and try again",
		Code:    "EXP002",
	}},
	{ErrNotLoaded, UserMessage{
		Message: "The inventory has not been loaded yet",
		Action:  "Wait for loading to finish or trigger a reload",
		Code:    "LOAD001",
	}},
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is consulted after sentinelMessages and before the generic
// export failure message, so a refused database connection inside an export
// still maps to DB001.
var errorPatterns = []errorPattern{
	{
		pattern: "config validation",
		msg: UserMessage{
			Message: "The configuration is invalid",
			Action:  "Fix the named variable in .env or the environment",
			Code:    "CFG001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the export database",
			Action:  "Check DATABASE_URL and try again",
			Code:    "DB001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a narrower date filter or try again later",
			Code:    "REQ002",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "The export could not be written",
			Action:  "Check the output directory is writable",
			Code:    "EXP001",
		},
	},
}

var exportFailedMessage = UserMessage{
	Message: "The export could not be written",
	Action:  "Check the output directory and try again",
	Code:    "EXP001",
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or check the logs",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	// Already mapped; its Error() text is the user message, not the cause.
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.User
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	if errors.Is(err, ErrExportFailed) {
		return exportFailedMessage
	}
	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
