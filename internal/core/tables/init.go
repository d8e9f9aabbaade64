// Package tables registers the export sheets with the core registry.
// Import this package to ensure all sheets are registered before exporting.
//
// Each file registers the sheets for one part of the schema from init().
// Login rows keep selection order; entity rows are restricted to the
// selection's closure and emitted in ascending id order.
package tables

import "github.com/JonMunkholm/hwinventory/internal/core"

// Artifact positions.
const (
	orderLogin = iota + 1
	orderUser
	orderPC
	orderDevice
	orderModel
	orderBrand
	orderOperatingSystem
	orderProcessorModel
	orderProcessor
)

// closureRows renders the members of ids present in table, ascending by id.
// Identifiers without a stored record are skipped.
func closureRows[T any](ids map[int]struct{}, table map[int]T, row func(T) []any) [][]any {
	rows := make([][]any, 0, len(ids))
	for _, id := range core.SortedIDs(ids) {
		v, ok := table[id]
		if !ok {
			continue
		}
		rows = append(rows, row(v))
	}
	return rows
}
