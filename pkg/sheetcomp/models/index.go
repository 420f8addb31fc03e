package models

// IndexEntry is one value of the inverted index with its cell ranges.
type IndexEntry struct {
	// Value is the literal cell text.
	Value string `json:"value" yaml:"value"`
	// Ranges lists addresses or vertical runs, e.g. "A2:A4", "C6".
	Ranges []string `json:"ranges" yaml:"ranges"`
}

// FormatGroup is a set of cells sharing a data format.
type FormatGroup struct {
	// Key is the category name, or the quoted literal for text values.
	Key string `json:"key" yaml:"key"`
	// Category is the data-type category of the group.
	Category string `json:"category" yaml:"category"`
	// Ranges lists the cells of the group as merged ranges.
	Ranges []string `json:"ranges" yaml:"ranges"`
	// Count is the number of cells in the group.
	Count int `json:"count" yaml:"count"`
	// Samples holds up to three example values of a typed group.
	Samples []string `json:"samples,omitempty" yaml:"samples,omitempty"`
}
