// Package table keeps the editable tail of a table (sheet) in memory. Rows
// the caller moved past are drained and rendered, after that they can not be
// changed.
package table

import (
	"errors"
	"fmt"
	"strconv"

	"odsw/flush"
	"odsw/style"
	"odsw/xmlutil"
)

var (
	ErrRowFlushed   = errors.New("row was already flushed")
	ErrTableStarted = errors.New("table was already started")
	ErrBadIndex     = errors.New("index out of range")
)

// MaxColumns is the number of columns declared for every table.
const MaxColumns = 1024

// StyleSource makes styles referenced by cells, rows and columns known to
// the document.
type StyleSource interface {
	EnsureRegistered(s style.ObjectStyle) error
	InternCompositeCellStyle(base *style.TableCellStyle, ds style.DataStyle) (*style.TableCellStyle, error)
}

// Styles bundles document wide style state tables need.
type Styles struct {
	Source   StyleSource
	Defaults *style.Defaults
	Data     *style.DataStyles
}

// ViewSetting is a per table entry of settings part.
type ViewSetting struct {
	Name  string
	Type  string // config:type, "int", "short", "boolean" or "string"
	Value string
}

// Range is a rectangular block of cells, bounds are inclusive.
type Range struct {
	FirstRow, FirstCol, LastRow, LastCol int
}

// Table is a single sheet.
type Table struct {
	name    string
	styles  *Styles
	style   *style.TableStyle
	columns []*style.TableColumnStyle

	pending []*Row // rows from flushed up
	flushed int    // number of drained rows
	cursor  int    // index of last row the caller asked for
	started bool
	ended   bool

	flushRows int
	observer  func(*Table) error

	filters  []Range
	settings []ViewSetting

	rowCount, cellCount int
}

func New(name string, styles *Styles) *Table {
	return &Table{
		name:   name,
		styles: styles,
		style:  styles.Defaults.Table,
		cursor: -1,
	}
}

func (t *Table) Name() string { return t.name }

// Observe installs function called by NextRow and Row once at least n rows
// are ready for Drain.
func (t *Table) Observe(n int, fn func(*Table) error) {
	t.flushRows = max(n, 1)
	t.observer = fn
}

func (t *Table) SetStyle(ts *style.TableStyle) error {
	if t.started {
		return fmt.Errorf("table %s style: %w", t.name, ErrTableStarted)
	}
	if err := t.styles.Source.EnsureRegistered(ts); err != nil {
		return err
	}
	t.style = ts
	return nil
}

// SetColumnStyle must be called before table content is flushed.
func (t *Table) SetColumnStyle(col int, cs *style.TableColumnStyle) error {
	if t.started {
		return fmt.Errorf("table %s column %d: %w", t.name, col, ErrTableStarted)
	}
	if col < 0 || col >= MaxColumns {
		return fmt.Errorf("column %d: %w", col, ErrBadIndex)
	}
	if err := t.styles.Source.EnsureRegistered(cs); err != nil {
		return err
	}
	if dc := cs.DefaultCellStyle(); dc != nil {
		if err := t.styles.Source.EnsureRegistered(dc); err != nil {
			return err
		}
	}
	for len(t.columns) <= col {
		t.columns = append(t.columns, t.styles.Defaults.Column)
	}
	t.columns[col] = cs
	return nil
}

func (t *Table) columnStyle(col int) *style.TableColumnStyle {
	if col < len(t.columns) {
		return t.columns[col]
	}
	return t.styles.Defaults.Column
}

// defaultCellStyle is the cell style applied by column to cells without
// explicit style.
func (t *Table) defaultCellStyle(col int) *style.TableCellStyle {
	if dc := t.columnStyle(col).DefaultCellStyle(); dc != nil {
		return dc
	}
	return t.styles.Defaults.Cell
}

// AddAutoFilter shows filter buttons over range.
func (t *Table) AddAutoFilter(r Range) {
	t.filters = append(t.filters, r)
}

func (t *Table) AutoFilters() []Range { return t.filters }

// SetFrozen freezes first rows and cols when document is opened.
func (t *Table) SetFrozen(rows, cols int) {
	if cols > 0 {
		t.SetViewSetting("HorizontalSplitMode", "short", "2")
		t.SetViewSetting("HorizontalSplitPosition", "int", strconv.Itoa(cols))
		t.SetViewSetting("PositionRight", "int", strconv.Itoa(cols))
	}
	if rows > 0 {
		t.SetViewSetting("VerticalSplitMode", "short", "2")
		t.SetViewSetting("VerticalSplitPosition", "int", strconv.Itoa(rows))
		t.SetViewSetting("PositionBottom", "int", strconv.Itoa(rows))
	}
	if rows > 0 || cols > 0 {
		t.SetViewSetting("ActiveSplitRange", "short", "2")
	}
}

// SetViewSetting adds or replaces table view setting.
func (t *Table) SetViewSetting(name, typ, value string) {
	for i := range t.settings {
		if t.settings[i].Name == name {
			t.settings[i] = ViewSetting{Name: name, Type: typ, Value: value}
			return
		}
	}
	t.settings = append(t.settings, ViewSetting{Name: name, Type: typ, Value: value})
}

func (t *Table) ViewSettings() []ViewSetting { return t.settings }

// row returns row at index creating it and all rows before it.
func (t *Table) row(index int) (*Row, error) {
	if index < 0 {
		return nil, fmt.Errorf("row %d: %w", index, ErrBadIndex)
	}
	if index < t.flushed {
		return nil, fmt.Errorf("table %s row %d: %w", t.name, index, ErrRowFlushed)
	}
	if t.ended {
		return nil, fmt.Errorf("table %s row %d: %w", t.name, index, ErrRowFlushed)
	}
	for i := t.flushed + len(t.pending); i <= index; i++ {
		t.pending = append(t.pending, &Row{table: t, index: i})
	}
	return t.pending[index-t.flushed], nil
}

// Row returns row at index and makes it current, rows before current row are
// eligible for flushing.
func (t *Table) Row(index int) (*Row, error) {
	r, err := t.row(index)
	if err != nil {
		return nil, err
	}
	if index > t.cursor {
		t.cursor = index
		if err := t.notify(); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NextRow moves to the row after current one.
func (t *Table) NextRow() (*Row, error) {
	return t.Row(t.cursor + 1)
}

func (t *Table) notify() error {
	if t.observer == nil || t.Ready() < t.flushRows {
		return nil
	}
	return t.observer(t)
}

// Ready returns number of rows Drain would return.
func (t *Table) Ready() int {
	return max(t.cursor-t.flushed, 0)
}

// Drain removes and returns rows before current row once there are at least
// n of them.
func (t *Table) Drain(n int) []flush.Row {
	ready := t.Ready()
	if ready == 0 || ready < n {
		return nil
	}
	return t.take(ready)
}

// DrainAll removes every remaining row and closes table for editing.
func (t *Table) DrainAll() []flush.Row {
	t.ended = true
	return t.take(len(t.pending))
}

func (t *Table) take(n int) []flush.Row {
	rows := make([]flush.Row, n)
	for i := range n {
		rows[i] = t.pending[i]
	}
	clear(t.pending[:n])
	t.pending = t.pending[n:]
	t.flushed += n
	return rows
}

func (t *Table) Started() bool { return t.started }

// Rows returns number of rows rendered so far.
func (t *Table) Rows() int { return t.rowCount }

// Cells returns number of non empty cells rendered so far.
func (t *Table) Cells() int { return t.cellCount }

// AppendBegin renders table start and column declarations.
func (t *Table) AppendBegin(u *xmlutil.Util, b xmlutil.Appender) {
	t.started = true

	b.WriteString("<table:table")
	u.AppendEAttribute(b, "table:name", t.name)
	u.AppendEAttribute(b, "table:style-name", t.style.Name())
	b.WriteByte('>')

	for i := 0; i < len(t.columns); {
		cs := t.columns[i]
		j := i + 1
		for j < len(t.columns) && t.columns[j] == cs {
			j++
		}
		appendColumn(u, b, cs, j-i, t.styles.Defaults.Cell)
		i = j
	}
	appendColumn(u, b, t.styles.Defaults.Column, MaxColumns-len(t.columns), t.styles.Defaults.Cell)
}

func appendColumn(u *xmlutil.Util, b xmlutil.Appender, cs *style.TableColumnStyle, repeated int, def *style.TableCellStyle) {
	b.WriteString("<table:table-column")
	u.AppendEAttribute(b, "table:style-name", cs.Name())
	if repeated > 1 {
		u.AppendAttribute(b, "table:number-columns-repeated", strconv.Itoa(repeated))
	}
	dc := cs.DefaultCellStyle()
	if dc == nil {
		dc = def
	}
	u.AppendEAttribute(b, "table:default-cell-style-name", dc.Name())
	b.WriteString("/>")
}

func (t *Table) AppendEnd(b xmlutil.Appender) {
	b.WriteString("</table:table>")
}
