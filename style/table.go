package style

import "odsw/xmlutil"

// TableStyle formats a whole table (sheet) and binds it to a master page.
type TableStyle struct {
	named
	masterPage string
}

// NewTableStyle creates automatic table style using master page by name,
// empty master page name omits the attribute.
func NewTableStyle(name, masterPage string) *TableStyle {
	return &TableStyle{named: named{name: name, hidden: true}, masterPage: masterPage}
}

func (s *TableStyle) Family() Family     { return FamilyTable }
func (s *TableStyle) Key() Key           { return Key{Family: FamilyTable, Name: s.name} }
func (s *TableStyle) MasterPage() string { return s.masterPage }

func (s *TableStyle) AppendXML(u *xmlutil.Util, b xmlutil.Appender) {
	appendStyleOpen(u, b, s.name, FamilyTable)
	if s.masterPage != "" {
		u.AppendEAttribute(b, "style:master-page-name", s.masterPage)
	}
	b.WriteString(`><style:table-properties table:display="true" style:writing-mode="lr-tb"/></style:style>`)
}

// TableRowStyle sets row height, empty height means optimal height.
type TableRowStyle struct {
	named
	height string
}

func NewTableRowStyle(name, height string) *TableRowStyle {
	return &TableRowStyle{named: named{name: name, hidden: true}, height: height}
}

func (s *TableRowStyle) Family() Family { return FamilyTableRow }
func (s *TableRowStyle) Key() Key       { return Key{Family: FamilyTableRow, Name: s.name} }
func (s *TableRowStyle) Height() string { return s.height }

func (s *TableRowStyle) AppendXML(u *xmlutil.Util, b xmlutil.Appender) {
	appendStyleOpen(u, b, s.name, FamilyTableRow)
	b.WriteString(`><style:table-row-properties fo:break-before="auto"`)
	if s.height != "" {
		u.AppendEAttribute(b, "style:row-height", s.height)
		u.AppendAttribute(b, "style:use-optimal-row-height", "false")
	} else {
		u.AppendAttribute(b, "style:use-optimal-row-height", "true")
	}
	b.WriteString("/></style:style>")
}

// TableColumnStyle sets column width. Default cell style is referenced by
// columns using this style and must be registered separately.
type TableColumnStyle struct {
	named
	width       string
	defaultCell *TableCellStyle
}

func NewTableColumnStyle(name, width string, defaultCell *TableCellStyle) *TableColumnStyle {
	return &TableColumnStyle{named: named{name: name, hidden: true}, width: width, defaultCell: defaultCell}
}

func (s *TableColumnStyle) Family() Family                    { return FamilyTableColumn }
func (s *TableColumnStyle) Key() Key                          { return Key{Family: FamilyTableColumn, Name: s.name} }
func (s *TableColumnStyle) Width() string                     { return s.width }
func (s *TableColumnStyle) DefaultCellStyle() *TableCellStyle { return s.defaultCell }

func (s *TableColumnStyle) AppendXML(u *xmlutil.Util, b xmlutil.Appender) {
	appendStyleOpen(u, b, s.name, FamilyTableColumn)
	b.WriteString(`><style:table-column-properties fo:break-before="auto"`)
	if s.width != "" {
		u.AppendEAttribute(b, "style:column-width", s.width)
	}
	b.WriteString("/></style:style>")
}
