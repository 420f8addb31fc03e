package models

// SheetData represents the compressed views of a single sheet.
type SheetData struct {
	// Rows is the number of rows in the source grid.
	Rows int `json:"rows" yaml:"rows"`
	// Cols is the number of columns in the source grid.
	Cols int `json:"cols" yaml:"cols"`
	// DataRange is the bounding range of non-empty cells (e.g. "A1:D10").
	DataRange string `json:"data_range,omitempty" yaml:"data_range,omitempty"`
	// TableCandidates contains cell ranges likely representing tables.
	TableCandidates []string `json:"table_candidates,omitempty" yaml:"table_candidates,omitempty"`
	// Index is the inverted index ordered by value.
	Index []IndexEntry `json:"index,omitempty" yaml:"index,omitempty"`
	// Formats groups cells by data format.
	Formats []FormatGroup `json:"formats,omitempty" yaml:"formats,omitempty"`
	// Skeleton is the anchor-based reduction of the sheet.
	Skeleton *SkeletonView `json:"skeleton,omitempty" yaml:"skeleton,omitempty"`
}
