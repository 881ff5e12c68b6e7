package style

// Defaults are styles every document needs: default table, row and column
// styles, default visible cell style and default page. A Defaults value is
// built per document and never shared through package state.
type Defaults struct {
	Table  *TableStyle
	Row    *TableRowStyle
	Column *TableColumnStyle
	Cell   *TableCellStyle
	Page   *PageStyle
}

const (
	DefaultTableStyleName  = "ta1"
	DefaultRowStyleName    = "ro1"
	DefaultColumnStyleName = "co1"
	DefaultCellStyleName   = "Default"
	DefaultColumnWidth     = "2.5cm"
)

// NewDefaults builds default styles using page options for default page.
func NewDefaults(page PageOptions) *Defaults {
	p := NewPageStyle(DefaultPageLayoutName, page)
	cell := NewCellStyle(DefaultCellStyleName, CellProperties{
		TextAlign:     AlignStart,
		VerticalAlign: VerticalAlignTop,
	})
	return &Defaults{
		Table:  NewTableStyle(DefaultTableStyleName, p.Master().Name()),
		Row:    NewTableRowStyle(DefaultRowStyleName, ""),
		Column: NewTableColumnStyle(DefaultColumnStyleName, DefaultColumnWidth, cell),
		Cell:   cell,
		Page:   p,
	}
}
