package table

import (
	"bytes"
	"fmt"
	"strconv"

	"odsw/style"
	"odsw/xmlutil"
)

// Row holds cells of a single table row until it is rendered.
type Row struct {
	table *Table
	index int
	style *style.TableRowStyle
	cells []*Cell
}

func (r *Row) Index() int { return r.index }

// Len returns number of cells allocated in row.
func (r *Row) Len() int { return len(r.cells) }

func (r *Row) SetStyle(rs *style.TableRowStyle) error {
	if r.table == nil {
		return fmt.Errorf("row %d: %w", r.index, ErrRowFlushed)
	}
	if err := r.table.styles.Source.EnsureRegistered(rs); err != nil {
		return err
	}
	r.style = rs
	return nil
}

// Cell returns cell at col creating it and all cells before it.
func (r *Row) Cell(col int) (*Cell, error) {
	if col < 0 || col >= MaxColumns {
		return nil, fmt.Errorf("column %d: %w", col, ErrBadIndex)
	}
	if r.table == nil {
		return nil, fmt.Errorf("row %d: %w", r.index, ErrRowFlushed)
	}
	for i := len(r.cells); i <= col; i++ {
		r.cells = append(r.cells, &Cell{row: r, col: i})
	}
	return r.cells[col], nil
}

// AppendXML renders row and updates table statistics.
func (r *Row) AppendXML(u *xmlutil.Util, b *bytes.Buffer) {
	t := r.table
	rs := r.style
	if rs == nil {
		rs = t.styles.Defaults.Row
	}
	b.WriteString("<table:table-row")
	u.AppendEAttribute(b, "table:style-name", rs.Name())
	b.WriteByte('>')

	if len(r.cells) == 0 {
		b.WriteString("<table:table-cell/>")
	}
	for i := 0; i < len(r.cells); {
		// collapse runs of empty cells
		if c := r.cells[i]; c.empty() {
			j := i + 1
			for j < len(r.cells) && r.cells[j].empty() {
				j++
			}
			appendEmptyCells(u, b, j-i)
			i = j
			continue
		}
		c := r.cells[i]
		c.appendXML(u, b)
		if c.kind != kindNone {
			t.cellCount++
		}
		i++
	}
	b.WriteString("</table:table-row>")
	t.rowCount++
}

func appendEmptyCells(u *xmlutil.Util, b *bytes.Buffer, n int) {
	b.WriteString("<table:table-cell")
	if n > 1 {
		u.AppendAttribute(b, "table:number-columns-repeated", strconv.Itoa(n))
	}
	b.WriteString("/>")
}

// Release drops row content, row may not be used after that.
func (r *Row) Release() {
	for _, c := range r.cells {
		c.row = nil
	}
	r.cells = nil
	r.table = nil
}
