package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"odsw/config"
	"odsw/ods"
	"odsw/state"
	"odsw/style"
	"odsw/table"
)

const headingStyleName = "Heading"

// workbook is a single output document assembled from one or more sheets.
type workbook struct {
	w       *ods.Writer
	in      *config.InputConfig
	log     *zap.Logger
	heading *style.TableCellStyle
	out     string
	src     string
	names   map[string]int
	start   time.Time
	rpt     *config.Report
}

// newWorkbook prepares output document for source src (path relative to
// processed location, including file name) in destination directory dst.
func newWorkbook(ctx context.Context, src, dst string, kind sourceKind, log *zap.Logger) (*workbook, error) {
	env := state.EnvFromContext(ctx)

	outputName := buildOutputPath(src, dst, kind, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return nil, fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return nil, fmt.Errorf("unable to create output directory: %w", err)
	}

	doc := env.Cfg.Document
	if doc.Title != "" {
		title, err := expandTemplate(config.TitleFieldName, doc.Title, buildValues(config.TitleFieldName, src, kind, &doc))
		if err != nil {
			log.Warn("Unable to prepare document title", zap.Error(err))
			title = ""
		}
		doc.Title = strings.TrimSpace(title)
	}

	w, err := ods.Create(ctx, outputName, &doc, log)
	if err != nil {
		return nil, err
	}

	heading := style.NewCellStyle(headingStyleName, style.CellProperties{
		TextAlign:     style.AlignCenter,
		VerticalAlign: style.VerticalAlignMiddle,
		Text:          style.TextProperties{Bold: true},
	})
	if err := w.RegisterStyle(heading); err != nil {
		return nil, multierr.Append(err, w.Close())
	}

	log.Info("Conversion starting", zap.String("from", src), zap.Stringer("kind", kind))
	return &workbook{
		w:       w,
		in:      &env.Cfg.Input,
		log:     log,
		heading: heading,
		out:     outputName,
		src:     src,
		names:   make(map[string]int),
		start:   time.Now(),
		rpt:     env.Rpt,
	}, nil
}

// fileSheetName returns name of the sheet for source file.
func fileSheetName(name string) string {
	name = path.Base(filepath.ToSlash(name))
	return strings.TrimSuffix(name, path.Ext(name))
}

// sheetName turns arbitrary source name into unique valid table name.
func (wb *workbook) sheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]*?:/\`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))
	if name == "" {
		name = "Sheet"
	}
	key := strings.ToLower(name)
	wb.names[key]++
	if n := wb.names[key]; n > 1 {
		name += " (" + strconv.Itoa(n) + ")"
		wb.names[strings.ToLower(name)]++
	}
	return name
}

// addSheet streams records produced by read into new table. First record is
// column header when header is set.
func (wb *workbook) addSheet(ctx context.Context, name string, header bool, read func(recordFunc) error) error {
	t, err := wb.w.AddTable(wb.sheetName(name))
	if err != nil {
		return err
	}

	var rows, cols int
	err = read(func(rec []any) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		r, err := t.NextRow()
		if err != nil {
			return err
		}
		heading := header && rows == 0
		for i, v := range rec {
			c, err := r.Cell(i)
			if err != nil {
				return fmt.Errorf("row %d: %w", rows+1, err)
			}
			if heading {
				if v != nil {
					if err := c.SetString(fmt.Sprint(v)); err != nil {
						return err
					}
				}
				err = c.SetStyle(wb.heading)
			} else {
				err = setValue(c, v, wb.in.InferTypes)
			}
			if err != nil {
				return fmt.Errorf("cell %s: %w", table.CellAddress(rows, i), err)
			}
		}
		rows++
		cols = max(cols, len(rec))
		return nil
	})
	if err != nil {
		return fmt.Errorf("unable to convert sheet %s: %w", t.Name(), err)
	}

	if header && rows > 0 {
		t.SetFrozen(wb.in.Freeze.Rows(), wb.in.Freeze.Columns())
		if wb.in.AutoFilter && cols > 0 {
			t.AddAutoFilter(table.Range{LastRow: rows - 1, LastCol: cols - 1})
		}
	}
	wb.log.Debug("Sheet converted", zap.String("sheet", t.Name()), zap.Int("rows", rows), zap.Int("columns", cols))
	return nil
}

// close finishes the document. When ok is false output is removed.
func (wb *workbook) close(ok bool) (err error) {
	if cerr := wb.w.Close(); cerr != nil {
		err = fmt.Errorf("unable to generate output: %w", cerr)
		ok = false
	}
	if !ok {
		if rerr := os.Remove(wb.out); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
			err = multierr.Append(err, rerr)
		}
		wb.log.Info("Conversion failed", zap.Duration("elapsed", time.Since(wb.start)), zap.String("from", wb.src))
		return err
	}

	// Store conversion result for debugging
	if wb.rpt != nil {
		wb.rpt.Store(fmt.Sprintf("result-%s%s", wb.w.ID(), outputExt), wb.out)
	}
	wb.log.Info("Conversion completed",
		zap.Duration("elapsed", time.Since(wb.start)), zap.String("to", wb.out), zap.Stringer("id", wb.w.ID()), zap.Int64("size", wb.w.Written()))
	return nil
}
