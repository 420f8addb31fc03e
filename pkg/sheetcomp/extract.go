package sheetcomp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/anchor"
	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/grid"
	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/index"
	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/models"
	"github.com/ukaji3/sheetcomp-go/pkg/sheetcomp/parser"
)

// Compress compresses every sheet of an Excel file.
func Compress(ctx context.Context, path string, opts Options) (*models.WorkbookData, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := opts.logger()

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	bookName := filepath.Base(path)
	log.Debug("opened workbook", zap.String("book", bookName), zap.Int("sheets", len(f.GetSheetList())))

	// Load sequentially; excelize file access is not safe for concurrent use.
	grids, err := parser.LoadSheets(f)
	if err != nil {
		var sheetErr *parser.SheetError
		if errors.As(err, &sheetErr) {
			return nil, NewExtractionError(sheetErr.SheetName, "load", sheetErr.Err)
		}
		return nil, err
	}

	var (
		mu     sync.Mutex
		sheets = make(map[string]models.SheetData, len(grids))
	)
	eg, ctx := errgroup.WithContext(ctx)
	for sheetName, g := range grids {
		eg.Go(func() error {
			data, err := CompressGrid(ctx, sheetName, g, opts)
			if err != nil {
				return err
			}
			mu.Lock()
			sheets[sheetName] = *data
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return &models.WorkbookData{
		BookName: bookName,
		Sheets:   sheets,
	}, nil
}

// CompressGrid produces the views selected by opts for one grid. The index
// and skeleton pipelines run concurrently over the same immutable grid.
func CompressGrid(ctx context.Context, sheetName string, g *grid.Grid, opts Options) (*models.SheetData, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := opts.logger().With(zap.String("sheet", sheetName))

	data := &models.SheetData{
		Rows:            g.Rows(),
		Cols:            g.Cols(),
		DataRange:       parser.DataRange(g),
		TableCandidates: parser.DetectTables(g, parser.DefaultTableParams()),
	}

	eg, ctx := errgroup.WithContext(ctx)

	if opts.ShouldIncludeIndex() {
		eg.Go(func() error {
			idx, err := index.BuildParallel(ctx, g, opts.Workers)
			if err != nil {
				return NewExtractionError(sheetName, "index", err)
			}
			data.Index = indexEntries(idx)
			log.Debug("built inverted index", zap.Int("values", idx.Len()))
			return nil
		})
	}

	if opts.ShouldIncludeFormats() {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return NewExtractionError(sheetName, "formats", err)
			}
			groups := index.Aggregate(g)
			data.Formats = formatGroups(groups)
			log.Debug("aggregated formats", zap.Int("groups", len(groups)))
			return nil
		})
	}

	if opts.ShouldIncludeSkeleton() {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return NewExtractionError(sheetName, "skeleton", err)
			}
			s, anchors, err := anchor.Skeletonize(g, opts.AnchorParams(), opts.Margin)
			if err != nil {
				return NewExtractionError(sheetName, "skeleton", err)
			}
			data.Skeleton = skeletonView(s, anchors, opts.Margin)
			log.Debug("extracted skeleton",
				zap.Int("row_anchors", len(anchors.Rows)),
				zap.Int("col_anchors", len(anchors.Cols)),
				zap.Int("rows_kept", len(s.Rows)),
				zap.Int("cols_kept", len(s.Cols)),
			)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

func indexEntries(idx index.Index) []models.IndexEntry {
	entries := idx.Entries()
	out := make([]models.IndexEntry, len(entries))
	for i, e := range entries {
		out[i] = models.IndexEntry{Value: e.Value, Ranges: rangeStrings(e.Ranges)}
	}
	return out
}

func formatGroups(groups []index.AggregateGroup) []models.FormatGroup {
	out := make([]models.FormatGroup, len(groups))
	for i, grp := range groups {
		out[i] = models.FormatGroup{
			Key:      grp.Key.String(),
			Category: grp.Key.Category.String(),
			Ranges:   rangeStrings(grp.Ranges),
			Count:    grp.Count,
			Samples:  grp.Samples,
		}
	}
	return out
}

func skeletonView(s *anchor.Skeleton, anchors anchor.AnchorSet, margin int) *models.SkeletonView {
	view := &models.SkeletonView{
		Margin:     margin,
		RowAnchors: nonNil(anchors.Rows),
		ColAnchors: nonNil(anchors.Cols),
		Rows:       nonNil(s.Rows),
		Cols:       nonNil(s.Cols),
	}

	for r := 0; r < s.Grid.Rows(); r++ {
		cells := make(map[string]string)
		for c := 0; c < s.Grid.Cols(); c++ {
			v := s.Grid.At(r, c)
			if grid.IsEmptyValue(v) {
				continue
			}
			cells[grid.ColumnLabel(s.Cols[c])] = v
		}
		if len(cells) > 0 {
			view.Cells = append(view.Cells, models.CellRow{R: s.Rows[r] + 1, C: cells})
		}
	}
	return view
}

func rangeStrings(ranges []index.RangeDescriptor) []string {
	out := make([]string, len(ranges))
	for i, r := range ranges {
		out[i] = r.String()
	}
	return out
}

func nonNil(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}
