// Package core provides the business logic for hardware login inventory.
//
// It reads a semicolon-delimited event log, normalizes it into relational
// entity tables and exports date-filtered subsets. Nothing here depends on a
// UI or transport layer; the web server, the terminal browser and the CLI all
// go through [Service].
//
// # Architecture
//
// The package is organized around several key concepts:
//
//   - Lookup: assigns stable identifiers to repeated values after trimming
//     and case folding.
//   - Builder: turns each parsed [Event] into rows of the [Registry] under a
//     per-table insertion policy.
//   - DisplayView: keeps the latest event per (user, machine) pair for
//     browsing.
//   - Select: matches logins against a [Filter] and computes the referential
//     closure that restricts every other table.
//   - Exporter: renders the registered sheets and hands them to a
//     [Serializer].
//
// # Sheet Registry
//
// Export sheets are registered at init time using [RegisterSheet]. Each
// [SheetDefinition] names its columns and renders rows from a selection:
//
//	core.RegisterSheet(core.SheetDefinition{
//	    Info: core.SheetInfo{Name: core.SheetUser, Order: 2, Columns: []string{"ID", "Name"}},
//	    Rows: renderUsers,
//	})
//
// The tables subpackage registers the standard nine sheets.
//
// # Loading
//
// [LoadFile] reads the log line by line. A leading UTF-8 BOM is skipped and
// invalid UTF-8 is replaced. Blank and malformed lines are counted and
// skipped; only a missing source fails the load. [Service.Reload] swaps in
// the new [Snapshot] only after the whole file was ingested.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - SRC001, LINE001: source and line errors
//   - FLT001, FMT001: invalid filter or export format
//   - EXP001, EXP002: export failures and busy export slots
//   - REQ001, REQ002: cancelled or timed out requests
package core
