package models

// SkeletonView is a sheet restricted to its structural anchors and the
// lines within the margin of one.
type SkeletonView struct {
	// Margin is the number of neighbouring lines kept around each anchor.
	Margin int `json:"margin" yaml:"margin"`
	// RowAnchors are the anchor rows (0-based).
	RowAnchors []int `json:"row_anchors" yaml:"row_anchors"`
	// ColAnchors are the anchor columns (0-based).
	ColAnchors []int `json:"col_anchors" yaml:"col_anchors"`
	// Rows are the retained source rows (0-based, ascending).
	Rows []int `json:"rows" yaml:"rows"`
	// Cols are the retained source columns (0-based, ascending).
	Cols []int `json:"cols" yaml:"cols"`
	// Cells contains the non-empty retained cells keyed by source address.
	Cells []CellRow `json:"cells,omitempty" yaml:"cells,omitempty"`
}
