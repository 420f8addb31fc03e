package grid

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Coordinate addresses a single cell. Both indices are 0-based.
type Coordinate struct {
	Row int
	Col int
}

// At is shorthand for Coordinate{Row: row, Col: col}.
func At(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// Address renders the coordinate in display form, e.g. "A1" or "AB12".
func (c Coordinate) Address() string {
	return ColumnLabel(c.Col) + strconv.Itoa(c.Row+1)
}

// String implements fmt.Stringer.
func (c Coordinate) String() string {
	return c.Address()
}

// Less orders coordinates column-major: by column, then by row.
func (c Coordinate) Less(o Coordinate) bool {
	if c.Col != o.Col {
		return c.Col < o.Col
	}
	return c.Row < o.Row
}

// ColumnLabel converts a 0-based column index to letters.
// 0=A, 25=Z, 26=AA, 27=AB, etc. Negative indices yield "".
func ColumnLabel(index int) string {
	if index < 0 {
		return ""
	}

	var buf [16]byte
	i := len(buf)
	for n := index; n >= 0; n = n/26 - 1 {
		i--
		buf[i] = byte('A' + n%26)
	}
	return string(buf[i:])
}

// ParseAddress parses a display address such as "C7" or "$C$7".
func ParseAddress(addr string) (Coordinate, error) {
	col, row, err := excelize.CellNameToCoordinates(stripAbsolute(addr))
	if err != nil {
		return Coordinate{}, err
	}
	return Coordinate{Row: row - 1, Col: col - 1}, nil
}

func stripAbsolute(addr string) string {
	out := make([]byte, 0, len(addr))
	for i := 0; i < len(addr); i++ {
		if addr[i] != '$' {
			out = append(out, addr[i])
		}
	}
	return string(out)
}
