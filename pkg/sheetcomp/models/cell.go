// Package models defines the serialisable views produced by sheet compression.
package models

// CellRow represents the non-empty cells of one retained row.
type CellRow struct {
	// R is the row index in the source sheet (1-based).
	R int `json:"r" yaml:"r"`
	// C maps column label (e.g. "B") to cell value.
	C map[string]string `json:"c" yaml:"c"`
}
