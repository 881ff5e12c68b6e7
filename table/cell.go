package table

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"odsw/style"
	"odsw/xmlutil"
)

type valueKind int

const (
	kindNone valueKind = iota
	kindVoid
	kindString
	kindFloat
	kindPercentage
	kindCurrency
	kindBoolean
	kindDate
	kindTime
)

var valueTypes = [...]string{
	kindString:     "string",
	kindFloat:      "float",
	kindPercentage: "percentage",
	kindCurrency:   "currency",
	kindBoolean:    "boolean",
	kindDate:       "date",
	kindTime:       "time",
}

// Cell is a single table cell. Setters fail with ErrRowFlushed once the row
// was handed for rendering.
type Cell struct {
	row *Row
	col int

	kind     valueKind
	value    string // office value attribute, already formatted
	text     string
	currency string
	formula  string
	tooltip  string

	base         *style.TableCellStyle
	data         style.DataStyle
	dataExplicit bool
	effective    *style.TableCellStyle

	colSpan, rowSpan int
	covered          bool
}

func (c *Cell) Column() int { return c.col }

func (c *Cell) IsCovered() bool { return c.covered }

// HasValue reports whether any value, including void, was set.
func (c *Cell) HasValue() bool { return c.kind != kindNone }

func (c *Cell) empty() bool {
	return !c.covered && c.kind <= kindVoid && c.effective == nil && c.formula == "" &&
		c.tooltip == "" && c.colSpan <= 1 && c.rowSpan <= 1
}

func (c *Cell) check() error {
	if c.row == nil || c.row.table == nil {
		return fmt.Errorf("cell %d: %w", c.col, ErrRowFlushed)
	}
	return nil
}

func (c *Cell) set(kind valueKind, value, text string) error {
	if err := c.check(); err != nil {
		return err
	}
	c.kind, c.value, c.text, c.currency = kind, value, text, ""
	return nil
}

// setTyped stores value and applies default data style for its type unless
// cell has one set with SetDataStyle. Nil ds drops previous type default.
func (c *Cell) setTyped(kind valueKind, value, text string, ds style.DataStyle) error {
	if err := c.set(kind, value, text); err != nil {
		return err
	}
	if c.dataExplicit || (ds == nil && c.data == nil) {
		return nil
	}
	return c.applyStyle(c.base, ds)
}

func (c *Cell) SetString(s string) error {
	return c.setTyped(kindString, "", s, nil)
}

func (c *Cell) SetFloat(f float64) error {
	return c.setTyped(kindFloat, xmlutil.FormatFloat(f), "", c.defaults().Float)
}

func (c *Cell) SetInt(i int64) error {
	return c.setTyped(kindFloat, strconv.FormatInt(i, 10), "", c.defaults().Float)
}

// SetPercentage stores fraction, 0.5 is displayed as 50%.
func (c *Cell) SetPercentage(f float64) error {
	return c.setTyped(kindPercentage, xmlutil.FormatFloat(f), "", c.defaults().Percentage)
}

// SetCurrency stores amount in currency given by ISO 4217 code.
func (c *Cell) SetCurrency(f float64, code string) error {
	if err := c.setTyped(kindCurrency, xmlutil.FormatFloat(f), "", c.defaults().Currency); err != nil {
		return err
	}
	c.currency = code
	return nil
}

func (c *Cell) SetBool(v bool) error {
	return c.setTyped(kindBoolean, xmlutil.FormatBool(v), "", c.defaults().Boolean)
}

func (c *Cell) SetDate(t time.Time) error {
	return c.setTyped(kindDate, xmlutil.FormatDate(t), "", c.defaults().Date)
}

// SetTime stores duration.
func (c *Cell) SetTime(d time.Duration) error {
	return c.setTyped(kindTime, xmlutil.FormatDuration(d.Milliseconds()), "", c.defaults().Time)
}

// SetVoid marks cell as explicitly empty.
func (c *Cell) SetVoid() error {
	return c.setTyped(kindVoid, "", "", nil)
}

// SetFormula sets OpenFormula expression without "of:=" prefix.
func (c *Cell) SetFormula(f string) error {
	if err := c.check(); err != nil {
		return err
	}
	c.formula = f
	return nil
}

// SetTooltip attaches annotation to the cell.
func (c *Cell) SetTooltip(s string) error {
	if err := c.check(); err != nil {
		return err
	}
	c.tooltip = s
	return nil
}

func (c *Cell) defaults() *style.DataStyles {
	if c.row == nil || c.row.table == nil {
		return &style.DataStyles{}
	}
	return c.row.table.styles.Data
}

// SetStyle sets cell style keeping data style, if any.
func (c *Cell) SetStyle(cs *style.TableCellStyle) error {
	if err := c.check(); err != nil {
		return err
	}
	return c.applyStyle(cs, c.data)
}

// SetDataStyle sets data style keeping cell style, if any. It overrides
// type defaults of later value setters, nil restores them.
func (c *Cell) SetDataStyle(ds style.DataStyle) error {
	if err := c.check(); err != nil {
		return err
	}
	if err := c.applyStyle(c.base, ds); err != nil {
		return err
	}
	c.dataExplicit = ds != nil
	return nil
}

func (c *Cell) applyStyle(base *style.TableCellStyle, ds style.DataStyle) error {
	src := c.row.table.styles.Source
	if base != nil {
		if err := src.EnsureRegistered(base); err != nil {
			return err
		}
	}
	if ds == nil {
		c.base, c.data, c.effective = base, nil, base
		return nil
	}
	parent := base
	if parent == nil {
		parent = c.row.table.defaultCellStyle(c.col)
	}
	cs, err := src.InternCompositeCellStyle(parent, ds)
	if err != nil {
		return err
	}
	c.base, c.data, c.effective = base, ds, cs
	return nil
}

// SetColumnsSpanned merges n cells starting with this one, following cells
// of the row become covered.
func (c *Cell) SetColumnsSpanned(n int) error {
	return c.SetCellMerge(max(c.rowSpan, 1), n)
}

// SetRowsSpanned merges n cells starting with this one downwards, cells below
// become covered.
func (c *Cell) SetRowsSpanned(n int) error {
	return c.SetCellMerge(n, max(c.colSpan, 1))
}

// SetCellMerge merges block of rows x cols cells with this cell at top left.
func (c *Cell) SetCellMerge(rows, cols int) error {
	if err := c.check(); err != nil {
		return err
	}
	if rows < 1 || cols < 1 || c.col+cols > MaxColumns {
		return fmt.Errorf("merge %dx%d at column %d: %w", rows, cols, c.col, ErrBadIndex)
	}
	if c.covered {
		return fmt.Errorf("merge at covered cell %d: %w", c.col, ErrBadIndex)
	}
	t := c.row.table
	for dr := range rows {
		r, err := t.row(c.row.index + dr)
		if err != nil {
			return err
		}
		for dc := range cols {
			if dr == 0 && dc == 0 {
				continue
			}
			cell, err := r.Cell(c.col + dc)
			if err != nil {
				return err
			}
			cell.covered = true
		}
	}
	c.rowSpan, c.colSpan = rows, cols
	return nil
}

func (c *Cell) appendXML(u *xmlutil.Util, b *bytes.Buffer) {
	if c.covered {
		b.WriteString("<table:covered-table-cell/>")
		return
	}
	b.WriteString("<table:table-cell")
	if c.effective != nil {
		u.AppendEAttribute(b, "table:style-name", c.effective.Name())
	}
	if c.formula != "" {
		u.AppendEAttribute(b, "table:formula", "of:="+c.formula)
	}
	if c.kind > kindVoid {
		u.AppendAttribute(b, "office:value-type", valueTypes[c.kind])
		u.AppendAttribute(b, "calcext:value-type", valueTypes[c.kind])
		switch c.kind {
		case kindBoolean:
			u.AppendAttribute(b, "office:boolean-value", c.value)
		case kindDate:
			u.AppendAttribute(b, "office:date-value", c.value)
		case kindTime:
			u.AppendAttribute(b, "office:time-value", c.value)
		case kindString:
		default:
			u.AppendAttribute(b, "office:value", c.value)
			if c.currency != "" {
				u.AppendEAttribute(b, "office:currency", c.currency)
			}
		}
	}
	if c.colSpan > 1 {
		u.AppendAttribute(b, "table:number-columns-spanned", strconv.Itoa(c.colSpan))
	}
	if c.rowSpan > 1 {
		u.AppendAttribute(b, "table:number-rows-spanned", strconv.Itoa(c.rowSpan))
	}
	if c.tooltip == "" && c.kind != kindString {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	if c.tooltip != "" {
		b.WriteString("<office:annotation>")
		appendParagraphs(u, b, c.tooltip)
		b.WriteString("</office:annotation>")
	}
	if c.kind == kindString {
		appendParagraphs(u, b, c.text)
	}
	b.WriteString("</table:table-cell>")
}

// appendParagraphs writes one text:p per line.
func appendParagraphs(u *xmlutil.Util, b *bytes.Buffer, text string) {
	for line := range strings.SplitSeq(text, "\n") {
		u.AppendTag(b, "text:p", line)
	}
}
