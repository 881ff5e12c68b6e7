package style

import "odsw/xmlutil"

// TextProperties holds character formatting. Empty values are not rendered.
type TextProperties struct {
	FontFamily string
	FontSize   string // e.g. "10pt"
	FontColor  string // "#RRGGBB"
	Bold       bool
	Italic     bool
	Underline  bool
}

func (p TextProperties) IsEmpty() bool {
	return p == TextProperties{}
}

func (p TextProperties) appendXML(u *xmlutil.Util, b xmlutil.Appender) {
	if p.IsEmpty() {
		return
	}
	b.WriteString("<style:text-properties")
	if p.FontFamily != "" {
		u.AppendEAttribute(b, "fo:font-family", p.FontFamily)
	}
	if p.FontSize != "" {
		u.AppendEAttribute(b, "fo:font-size", p.FontSize)
	}
	if p.FontColor != "" {
		u.AppendEAttribute(b, "fo:color", p.FontColor)
	}
	if p.Bold {
		u.AppendAttribute(b, "fo:font-weight", "bold")
		u.AppendAttribute(b, "style:font-weight-asian", "bold")
		u.AppendAttribute(b, "style:font-weight-complex", "bold")
	}
	if p.Italic {
		u.AppendAttribute(b, "fo:font-style", "italic")
		u.AppendAttribute(b, "style:font-style-asian", "italic")
		u.AppendAttribute(b, "style:font-style-complex", "italic")
	}
	if p.Underline {
		u.AppendAttribute(b, "style:text-underline-style", "solid")
		u.AppendAttribute(b, "style:text-underline-width", "auto")
		u.AppendAttribute(b, "style:text-underline-color", "font-color")
	}
	b.WriteString("/>")
}

// TextStyle formats spans of text, for example in page headers.
type TextStyle struct {
	named
	props TextProperties
}

// NewTextStyle creates automatic text style.
func NewTextStyle(name string, props TextProperties) *TextStyle {
	return &TextStyle{named: named{name: name, hidden: true}, props: props}
}

// NewCommonTextStyle creates visible text style.
func NewCommonTextStyle(name string, props TextProperties) *TextStyle {
	return &TextStyle{named: named{name: name}, props: props}
}

func (s *TextStyle) Family() Family { return FamilyText }
func (s *TextStyle) Key() Key       { return Key{Family: FamilyText, Name: s.name} }

func (s *TextStyle) Properties() TextProperties { return s.props }

func (s *TextStyle) AppendXML(u *xmlutil.Util, b xmlutil.Appender) {
	appendStyleOpen(u, b, s.name, FamilyText)
	b.WriteByte('>')
	s.props.appendXML(u, b)
	b.WriteString("</style:style>")
}
