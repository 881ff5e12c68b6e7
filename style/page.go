package style

import "odsw/xmlutil"

const (
	DefaultMasterPageName = "DefaultMasterPage"
	DefaultPageLayoutName = "Mpm1"

	WritingModeLRTB = "lr-tb"
	WritingModeRLTB = "rl-tb"
	WritingModeTBRL = "tb-rl"
)

// HeaderFooter is a single paragraph shown on every printed page. Fields
// may contain ODF field markup, for example PageNumberField.
type HeaderFooter struct {
	Text      string
	Style     *TextStyle
	MinHeight string
	Margin    string // distance to page body
	Fields    []string
}

// Common header/footer fields, appended after Text.
const (
	PageNumberField = `<text:page-number>1</text:page-number>`
	PageCountField  = `<text:page-count>99</text:page-count>`
	SheetNameField  = `<text:sheet-name>???</text:sheet-name>`
	DateField       = `<text:date/>`
)

// PageLayoutStyle describes paper and margins.
type PageLayoutStyle struct {
	name        string
	width       string
	height      string
	orientation Orientation
	writingMode string
	background  string
	margins     Margins
	header      *HeaderFooter
	footer      *HeaderFooter
}

func (s *PageLayoutStyle) Name() string { return s.name }

func (s *PageLayoutStyle) AppendXML(u *xmlutil.Util, b xmlutil.Appender) {
	b.WriteString("<style:page-layout")
	u.AppendEAttribute(b, "style:name", s.name)
	b.WriteString("><style:page-layout-properties")
	u.AppendAttribute(b, "fo:page-width", s.width)
	u.AppendAttribute(b, "fo:page-height", s.height)
	u.AppendAttribute(b, "style:num-format", "1")
	u.AppendAttribute(b, "style:writing-mode", s.writingMode)
	u.AppendAttribute(b, "style:print-orientation", s.orientation.String())
	if s.background != "" {
		u.AppendEAttribute(b, "fo:background-color", s.background)
	}
	if !s.margins.IsEmpty() {
		s.margins.appendXML(u, b, "fo:margin")
	}
	b.WriteString("/>")
	appendHeaderFooterStyle(u, b, "style:header-style", "fo:margin-bottom", s.header)
	appendHeaderFooterStyle(u, b, "style:footer-style", "fo:margin-top", s.footer)
	b.WriteString("</style:page-layout>")
}

func appendHeaderFooterStyle(u *xmlutil.Util, b xmlutil.Appender, tag, marginAttr string, hf *HeaderFooter) {
	b.WriteByte('<')
	b.WriteString(tag)
	if hf == nil {
		b.WriteString("/>")
		return
	}
	b.WriteString("><style:header-footer-properties")
	u.AppendEAttribute(b, "fo:min-height", valueOr(hf.MinHeight, "0.75cm"))
	u.AppendEAttribute(b, marginAttr, valueOr(hf.Margin, "0.25cm"))
	b.WriteString("/></")
	b.WriteString(tag)
	b.WriteByte('>')
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// MasterPageStyle binds page layout to header and footer content.
type MasterPageStyle struct {
	name   string
	layout string
	header *HeaderFooter
	footer *HeaderFooter
}

func (s *MasterPageStyle) Name() string       { return s.name }
func (s *MasterPageStyle) LayoutName() string { return s.layout }

func (s *MasterPageStyle) HasHeaderFooter() bool {
	return s.header != nil || s.footer != nil
}

// TextStyles returns styles used by header and footer, they belong to
// automatic styles of styles part.
func (s *MasterPageStyle) TextStyles() []*TextStyle {
	var res []*TextStyle
	for _, hf := range []*HeaderFooter{s.header, s.footer} {
		if hf != nil && hf.Style != nil {
			res = append(res, hf.Style)
		}
	}
	return res
}

func (s *MasterPageStyle) AppendXML(u *xmlutil.Util, b xmlutil.Appender) {
	b.WriteString("<style:master-page")
	u.AppendEAttribute(b, "style:name", s.name)
	u.AppendEAttribute(b, "style:page-layout-name", s.layout)
	b.WriteByte('>')
	appendHeaderFooter(u, b, "style:header", s.header)
	appendHeaderFooter(u, b, "style:header-left", nil)
	appendHeaderFooter(u, b, "style:footer", s.footer)
	appendHeaderFooter(u, b, "style:footer-left", nil)
	b.WriteString("</style:master-page>")
}

func appendHeaderFooter(u *xmlutil.Util, b xmlutil.Appender, tag string, hf *HeaderFooter) {
	b.WriteByte('<')
	b.WriteString(tag)
	if hf == nil {
		b.WriteString(` style:display="false"/>`)
		return
	}
	b.WriteString("><text:p>")
	if hf.Style != nil {
		b.WriteString("<text:span")
		u.AppendEAttribute(b, "text:style-name", hf.Style.Name())
		b.WriteByte('>')
	}
	u.AppendContent(b, hf.Text)
	for _, f := range hf.Fields {
		b.WriteString(f)
	}
	if hf.Style != nil {
		b.WriteString("</text:span>")
	}
	b.WriteString("</text:p></")
	b.WriteString(tag)
	b.WriteByte('>')
}

// PageOptions configure NewPageStyle. Zero value is A4 portrait with left to
// right writing mode and no header or footer.
type PageOptions struct {
	MasterName  string
	Paper       PaperFormat
	Orientation Orientation
	WritingMode string
	Background  string
	Margins     Margins
	Header      *HeaderFooter
	Footer      *HeaderFooter
}

// PageStyle is a page layout together with its master page.
type PageStyle struct {
	layout *PageLayoutStyle
	master *MasterPageStyle
}

// NewPageStyle creates page layout named name and master page named
// opts.MasterName (DefaultMasterPageName when empty).
func NewPageStyle(name string, opts PageOptions) *PageStyle {
	w, h := opts.Paper.Size()
	if opts.Orientation == OrientationLandscape {
		w, h = h, w
	}
	layout := &PageLayoutStyle{
		name:        name,
		width:       w,
		height:      h,
		orientation: opts.Orientation,
		writingMode: valueOr(opts.WritingMode, WritingModeLRTB),
		background:  opts.Background,
		margins:     opts.Margins,
		header:      opts.Header,
		footer:      opts.Footer,
	}
	return &PageStyle{
		layout: layout,
		master: &MasterPageStyle{
			name:   valueOr(opts.MasterName, DefaultMasterPageName),
			layout: name,
			header: opts.Header,
			footer: opts.Footer,
		},
	}
}

func (p *PageStyle) Layout() *PageLayoutStyle { return p.layout }
func (p *PageStyle) Master() *MasterPageStyle { return p.master }
func (p *PageStyle) Name() string             { return p.layout.name }
