// Package classify assigns a semantic data-type category to cell values.
package classify

import "fmt"

// Category is the data-type label of a cell value.
type Category int

const (
	Empty Category = iota
	Year
	Integer
	Float
	Percentage
	ScientificNotation
	Date
	Time
	Currency
	Email
	Text
)

var categoryNames = [...]string{
	Empty:              "Empty",
	Year:               "Year",
	Integer:            "Integer",
	Float:              "Float",
	Percentage:         "Percentage",
	ScientificNotation: "ScientificNotation",
	Date:               "Date",
	Time:               "Time",
	Currency:           "Currency",
	Email:              "Email",
	Text:               "Text",
}

// String returns the category name.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// IsTyped reports whether the category groups values independently of their
// literal text, i.e. anything but Empty and Text.
func (c Category) IsTyped() bool {
	return c != Empty && c != Text
}

// ParseCategory resolves a category name as produced by String.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return Empty, fmt.Errorf("unknown category %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
