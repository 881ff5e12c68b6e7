package xmlutil

// Appender is satisfied by *bytes.Buffer and *strings.Builder, writes to
// them never fail so errors are ignored throughout.
type Appender interface {
	WriteString(s string) (int, error)
	WriteByte(c byte) error
}

// Util renders markup fragments using a single escaper.
type Util struct {
	esc *Escaper
}

func New() *Util {
	return &Util{esc: NewEscaper()}
}

// NewWithEscaper allows sharing an escaper.
func NewWithEscaper(esc *Escaper) *Util {
	return &Util{esc: esc}
}

func (u *Util) EscapeAttribute(s string) string {
	return u.esc.EscapeAttribute(s)
}

func (u *Util) EscapeContent(s string) string {
	return u.esc.EscapeContent(s)
}

// AppendAttribute writes ` name="value"`, value must already be markup safe.
func (u *Util) AppendAttribute(b Appender, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(value)
	b.WriteByte('"')
}

// AppendEAttribute writes ` name="value"` escaping raw value.
func (u *Util) AppendEAttribute(b Appender, name, raw string) {
	u.AppendAttribute(b, name, u.esc.EscapeAttribute(raw))
}

// AppendTag writes `<tag>content</tag>` escaping raw content.
func (u *Util) AppendTag(b Appender, tag, raw string) {
	b.WriteByte('<')
	b.WriteString(tag)
	b.WriteByte('>')
	b.WriteString(u.esc.EscapeContent(raw))
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
}

// AppendContent writes escaped raw text.
func (u *Util) AppendContent(b Appender, raw string) {
	b.WriteString(u.esc.EscapeContent(raw))
}
