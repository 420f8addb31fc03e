// Package output serialises compression results.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/models"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatText Format = "text"
)

// ParseFormat resolves a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatYAML, FormatText:
		return Format(s), nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be json, yaml, or text)", s)
	}
}

// ToJSON serialises a workbook.
func ToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return marshalJSON(wb, pretty)
}

// SheetToJSON serialises a single sheet.
func SheetToJSON(sheet *models.SheetData, pretty bool) ([]byte, error) {
	return marshalJSON(sheet, pretty)
}

// ToYAML serialises any result value.
func ToYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes wb to w in the given format.
func Encode(w io.Writer, wb *models.WorkbookData, format Format, pretty bool) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = ToJSON(wb, pretty)
		if err == nil {
			data = append(data, '\n')
		}
	case FormatYAML:
		data, err = ToYAML(wb)
	case FormatText:
		data = []byte(RenderWorkbook(wb))
	default:
		err = fmt.Errorf("invalid format: %s", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// EncodeSheet writes one sheet to w in the given format.
func EncodeSheet(w io.Writer, sheet *models.SheetData, format Format, pretty bool) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatJSON:
		data, err = SheetToJSON(sheet, pretty)
		if err == nil {
			data = append(data, '\n')
		}
	case FormatYAML:
		data, err = ToYAML(sheet)
	case FormatText:
		data = []byte(RenderSheet(sheet))
	default:
		err = fmt.Errorf("invalid format: %s", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// RenderIndex renders index entries one per line as "value": A1:A3,A5, with
// the value Go-quoted so quotes and line breaks stay on one line.
func RenderIndex(entries []models.IndexEntry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s: %s\n", strconv.Quote(e.Value), strings.Join(e.Ranges, ","))
	}
	return b.String()
}

// RenderFormats renders format groups one per line.
func RenderFormats(groups []models.FormatGroup) string {
	var b strings.Builder
	for _, g := range groups {
		fmt.Fprintf(&b, "%s: %s", g.Key, strings.Join(g.Ranges, ","))
		if len(g.Samples) > 0 {
			fmt.Fprintf(&b, " (values: %s", strings.Join(g.Samples, ", "))
			if g.Count > len(g.Samples) {
				b.WriteString("...")
			}
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSkeleton renders the retained cells row by row as addr=value pairs.
func RenderSkeleton(s *models.SkeletonView) string {
	var b strings.Builder
	for _, row := range s.Cells {
		cols := make([]string, 0, len(row.C))
		for col := range row.C {
			cols = append(cols, col)
		}
		sort.Slice(cols, func(i, j int) bool {
			if len(cols[i]) != len(cols[j]) {
				return len(cols[i]) < len(cols[j])
			}
			return cols[i] < cols[j]
		})

		parts := make([]string, len(cols))
		for i, col := range cols {
			parts[i] = fmt.Sprintf("%s%d=%s", col, row.R, row.C[col])
		}
		b.WriteString(strings.Join(parts, "|"))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderSheet renders every view present in sheet as plain text.
func RenderSheet(sheet *models.SheetData) string {
	var b strings.Builder
	if len(sheet.Index) > 0 {
		b.WriteString("## index\n")
		b.WriteString(RenderIndex(sheet.Index))
	}
	if len(sheet.Formats) > 0 {
		b.WriteString("## formats\n")
		b.WriteString(RenderFormats(sheet.Formats))
	}
	if sheet.Skeleton != nil {
		fmt.Fprintf(&b, "## skeleton (k=%d, %d of %d rows, %d of %d cols)\n",
			sheet.Skeleton.Margin, len(sheet.Skeleton.Rows), sheet.Rows, len(sheet.Skeleton.Cols), sheet.Cols)
		b.WriteString(RenderSkeleton(sheet.Skeleton))
	}
	return b.String()
}

// RenderWorkbook renders all sheets ordered by name.
func RenderWorkbook(wb *models.WorkbookData) string {
	names := make([]string, 0, len(wb.Sheets))
	for name := range wb.Sheets {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		sheet := wb.Sheets[name]
		fmt.Fprintf(&b, "# %s!%s\n", wb.BookName, name)
		b.WriteString(RenderSheet(&sheet))
	}
	return b.String()
}

func marshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
