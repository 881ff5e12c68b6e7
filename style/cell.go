package style

import "odsw/xmlutil"

type Align string

const (
	AlignDefault Align = ""
	AlignStart   Align = "start"
	AlignCenter  Align = "center"
	AlignEnd     Align = "end"
	AlignJustify Align = "justify"
)

type VerticalAlign string

const (
	VerticalAlignDefault VerticalAlign = ""
	VerticalAlignTop     VerticalAlign = "top"
	VerticalAlignMiddle  VerticalAlign = "middle"
	VerticalAlignBottom  VerticalAlign = "bottom"
)

type Rotation string

const (
	RotationNone Rotation = ""
	Rotation0    Rotation = "0"
	Rotation90   Rotation = "90"
	Rotation180  Rotation = "180"
	Rotation270  Rotation = "270"
)

// Margins are lengths with units ("0.2cm"), empty sides are not rendered.
type Margins struct {
	Top, Right, Bottom, Left string
}

func (m Margins) IsEmpty() bool {
	return m == Margins{}
}

// AllMargins sets the same length on every side.
func AllMargins(length string) Margins {
	return Margins{Top: length, Right: length, Bottom: length, Left: length}
}

func (m Margins) appendXML(u *xmlutil.Util, b xmlutil.Appender, prefix string) {
	if m.Top != "" && m.Top == m.Right && m.Top == m.Bottom && m.Top == m.Left {
		u.AppendEAttribute(b, prefix, m.Top)
		return
	}
	for _, side := range []struct{ name, value string }{
		{"-top", m.Top}, {"-right", m.Right}, {"-bottom", m.Bottom}, {"-left", m.Left},
	} {
		if side.value != "" {
			u.AppendEAttribute(b, prefix+side.name, side.value)
		}
	}
}

// CellProperties is the visual part of a cell style. Border is an fo:border
// value such as "0.06pt solid #000000".
type CellProperties struct {
	BackgroundColor string
	Border          string
	Padding         Margins
	TextAlign       Align
	VerticalAlign   VerticalAlign
	Rotation        Rotation
	Wrap            bool
	Margins         Margins
	Text            TextProperties
}

func (p *CellProperties) hasCellProperties() bool {
	return p.BackgroundColor != "" || p.Border != "" || !p.Padding.IsEmpty() ||
		p.VerticalAlign != VerticalAlignDefault || p.Rotation != RotationNone || p.Wrap
}

func (p *CellProperties) hasParagraphProperties() bool {
	return p.TextAlign != AlignDefault || !p.Margins.IsEmpty()
}

// TableCellStyle formats table cells. A cell style may carry a data style
// which controls how the cell value is displayed.
type TableCellStyle struct {
	named
	parent *TableCellStyle
	data   DataStyle
	props  CellProperties
}

// NewCellStyle creates visible (common) cell style.
func NewCellStyle(name string, props CellProperties) *TableCellStyle {
	return &TableCellStyle{named: named{name: name}, props: props}
}

// NewAutomaticCellStyle creates hidden cell style.
func NewAutomaticCellStyle(name string, props CellProperties) *TableCellStyle {
	return &TableCellStyle{named: named{name: name, hidden: true}, props: props}
}

// Derive creates hidden child of s which adds data style to it.
func (s *TableCellStyle) Derive(name string, data DataStyle) *TableCellStyle {
	return &TableCellStyle{
		named:  named{name: name, hidden: true},
		parent: s,
		data:   data,
	}
}

// WithDataStyle returns a copy of s (same name and visibility) using data
// style.
func (s *TableCellStyle) WithDataStyle(data DataStyle) *TableCellStyle {
	c := *s
	c.data = data
	return &c
}

func (s *TableCellStyle) Family() Family { return FamilyTableCell }
func (s *TableCellStyle) Key() Key       { return Key{Family: FamilyTableCell, Name: s.name} }

func (s *TableCellStyle) RealName() string           { return RealName(s.name) }
func (s *TableCellStyle) Parent() *TableCellStyle    { return s.parent }
func (s *TableCellStyle) HasParent() bool            { return s.parent != nil }
func (s *TableCellStyle) DataStyle() DataStyle       { return s.data }
func (s *TableCellStyle) Properties() CellProperties { return s.props }

func (s *TableCellStyle) AppendXML(u *xmlutil.Util, b xmlutil.Appender) {
	appendStyleOpen(u, b, s.name, FamilyTableCell)
	if s.parent != nil {
		u.AppendEAttribute(b, "style:parent-style-name", s.parent.RealName())
	}
	if s.data != nil {
		u.AppendEAttribute(b, "style:data-style-name", s.data.Name())
	}

	p := &s.props
	cell, text, par := p.hasCellProperties(), !p.Text.IsEmpty(), p.hasParagraphProperties()
	if !cell && !text && !par {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	if cell {
		b.WriteString("<style:table-cell-properties")
		if p.BackgroundColor != "" {
			u.AppendEAttribute(b, "fo:background-color", p.BackgroundColor)
		}
		if p.VerticalAlign != VerticalAlignDefault {
			u.AppendAttribute(b, "style:vertical-align", string(p.VerticalAlign))
		}
		if p.Rotation != RotationNone {
			u.AppendAttribute(b, "style:rotation-angle", string(p.Rotation))
		}
		if p.Border != "" {
			u.AppendEAttribute(b, "fo:border", p.Border)
		}
		if !p.Padding.IsEmpty() {
			p.Padding.appendXML(u, b, "fo:padding")
		}
		if p.Wrap {
			u.AppendAttribute(b, "fo:wrap-option", "wrap")
		}
		b.WriteString("/>")
	}
	if text {
		p.Text.appendXML(u, b)
	}
	if par {
		b.WriteString("<style:paragraph-properties")
		if p.TextAlign != AlignDefault {
			u.AppendAttribute(b, "fo:text-align", string(p.TextAlign))
		}
		if !p.Margins.IsEmpty() {
			p.Margins.appendXML(u, b, "fo:margin")
		}
		b.WriteString("/>")
	}
	b.WriteString("</style:style>")
}
