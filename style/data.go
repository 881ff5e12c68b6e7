package style

import (
	"strconv"

	"golang.org/x/text/language"

	"odsw/xmlutil"
)

// DataStyle controls display of a cell value. Data styles are always
// automatic and go to content and styles parts alongside automatic styles.
type DataStyle interface {
	Name() string
	Hidden() bool
	AppendXML(u *xmlutil.Util, b xmlutil.Appender)
}

type dataStyle struct {
	named
	locale language.Tag
}

func newDataStyle(name string, locale language.Tag) dataStyle {
	return dataStyle{named: named{name: name, hidden: true}, locale: locale}
}

func (d *dataStyle) open(u *xmlutil.Util, b xmlutil.Appender, tag, name string, volatile bool) {
	b.WriteByte('<')
	b.WriteString(tag)
	u.AppendEAttribute(b, "style:name", name)
	appendLocale(u, b, d.locale)
	if volatile {
		u.AppendAttribute(b, "style:volatile", "true")
	}
}

// appendLocale writes number:language and (when explicitly present in tag)
// number:country.
func appendLocale(u *xmlutil.Util, b xmlutil.Appender, tag language.Tag) {
	if tag == language.Und {
		return
	}
	if base, conf := tag.Base(); conf != language.No {
		u.AppendAttribute(b, "number:language", base.String())
	}
	if region, conf := tag.Region(); conf == language.Exact {
		u.AppendAttribute(b, "number:country", region.String())
	}
}

func appendText(u *xmlutil.Util, b xmlutil.Appender, text string) {
	u.AppendTag(b, "number:text", text)
}

type NumberKind int

const (
	NumberFloat NumberKind = iota
	NumberPercentage
	NumberScientific
	NumberFraction
	NumberCurrency
)

// NumberFormat describes numeric representation. Fields not relevant to
// particular kind are ignored.
type NumberFormat struct {
	DecimalPlaces     int
	MinIntegerDigits  int
	Grouping          bool
	NegativeRed       bool
	MinExponentDigits int    // scientific
	MinNumerator      int    // fraction
	MinDenominator    int    // fraction
	CurrencySymbol    string // currency
	Locale            language.Tag
}

// NumberStyle is float, percentage, scientific, fraction or currency data
// style.
type NumberStyle struct {
	dataStyle
	kind   NumberKind
	format NumberFormat
}

func NewNumberStyle(name string, kind NumberKind, format NumberFormat) *NumberStyle {
	if format.MinIntegerDigits <= 0 {
		format.MinIntegerDigits = 1
	}
	return &NumberStyle{dataStyle: newDataStyle(name, format.Locale), kind: kind, format: format}
}

func (s *NumberStyle) Kind() NumberKind { return s.kind }

func (s *NumberStyle) tag() string {
	switch s.kind {
	case NumberPercentage:
		return "number:percentage-style"
	case NumberCurrency:
		return "number:currency-style"
	default:
		return "number:number-style"
	}
}

// positiveName is the name of volatile style used for non negative values
// when negative values are shown in red.
func (s *NumberStyle) positiveName() string {
	return s.name + "P0"
}

func (s *NumberStyle) AppendXML(u *xmlutil.Util, b xmlutil.Appender) {
	tag := s.tag()
	if !s.format.NegativeRed {
		s.open(u, b, tag, s.name, false)
		b.WriteByte('>')
		s.appendBody(u, b)
		b.WriteString("</")
		b.WriteString(tag)
		b.WriteByte('>')
		return
	}

	s.open(u, b, tag, s.positiveName(), true)
	b.WriteByte('>')
	s.appendBody(u, b)
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')

	s.open(u, b, tag, s.name, false)
	b.WriteString(`><style:text-properties fo:color="#FF0000"/>`)
	appendText(u, b, "-")
	s.appendBody(u, b)
	b.WriteString(`<style:map style:condition="value()&gt;=0"`)
	u.AppendEAttribute(b, "style:apply-style-name", s.positiveName())
	b.WriteString("/></")
	b.WriteString(tag)
	b.WriteByte('>')
}

func (s *NumberStyle) appendBody(u *xmlutil.Util, b xmlutil.Appender) {
	f := &s.format
	switch s.kind {
	case NumberScientific:
		b.WriteString("<number:scientific-number")
		u.AppendAttribute(b, "number:decimal-places", strconv.Itoa(f.DecimalPlaces))
		u.AppendAttribute(b, "number:min-integer-digits", strconv.Itoa(f.MinIntegerDigits))
		u.AppendAttribute(b, "number:min-exponent-digits", strconv.Itoa(max(f.MinExponentDigits, 1)))
		b.WriteString("/>")
	case NumberFraction:
		b.WriteString("<number:fraction")
		u.AppendAttribute(b, "number:min-integer-digits", "0")
		u.AppendAttribute(b, "number:min-numerator-digits", strconv.Itoa(max(f.MinNumerator, 1)))
		u.AppendAttribute(b, "number:min-denominator-digits", strconv.Itoa(max(f.MinDenominator, 1)))
		b.WriteString("/>")
	default:
		s.appendNumber(u, b)
		switch s.kind {
		case NumberPercentage:
			appendText(u, b, "%")
		case NumberCurrency:
			appendText(u, b, " ")
			u.AppendTag(b, "number:currency-symbol", f.CurrencySymbol)
		}
	}
}

func (s *NumberStyle) appendNumber(u *xmlutil.Util, b xmlutil.Appender) {
	f := &s.format
	b.WriteString("<number:number")
	u.AppendAttribute(b, "number:decimal-places", strconv.Itoa(f.DecimalPlaces))
	u.AppendAttribute(b, "number:min-integer-digits", strconv.Itoa(f.MinIntegerDigits))
	if f.Grouping {
		u.AppendAttribute(b, "number:grouping", "true")
	}
	b.WriteString("/>")
}

// Date format tokens, combine them with DateText separators.
const (
	DateDay       = `<number:day/>`
	DateLongDay   = `<number:day number:style="long"/>`
	DateMonth     = `<number:month/>`
	DateLongMonth = `<number:month number:style="long"/>`
	DateMonthName = `<number:month number:textual="true" number:style="long"/>`
	DateYear      = `<number:year/>`
	DateLongYear  = `<number:year number:style="long"/>`
	DateHours     = `<number:hours number:style="long"/>`
	DateMinutes   = `<number:minutes number:style="long"/>`
	DateSeconds   = `<number:seconds number:style="long"/>`
)

// DateText is a literal date format token.
type DateText string

// DateStyle displays dates using sequence of format tokens. Tokens are either
// one of Date* constants or DateText literals.
type DateStyle struct {
	dataStyle
	format []any
}

// ISODateFormat renders dates as YYYY-MM-DD.
var ISODateFormat = []any{DateLongYear, DateText("-"), DateLongMonth, DateText("-"), DateLongDay}

func NewDateStyle(name string, locale language.Tag, format ...any) *DateStyle {
	if len(format) == 0 {
		format = ISODateFormat
	}
	return &DateStyle{dataStyle: newDataStyle(name, locale), format: format}
}

func (s *DateStyle) AppendXML(u *xmlutil.Util, b xmlutil.Appender) {
	s.open(u, b, "number:date-style", s.name, false)
	u.AppendAttribute(b, "number:automatic-order", "false")
	b.WriteByte('>')
	for _, token := range s.format {
		switch v := token.(type) {
		case DateText:
			appendText(u, b, string(v))
		case string:
			b.WriteString(v)
		}
	}
	b.WriteString("</number:date-style>")
}

// TimeStyle displays durations as hours, minutes and seconds. Hours are not
// wrapped at 24.
type TimeStyle struct {
	dataStyle
	decimals int
}

func NewTimeStyle(name string, locale language.Tag, decimals int) *TimeStyle {
	return &TimeStyle{dataStyle: newDataStyle(name, locale), decimals: decimals}
}

func (s *TimeStyle) AppendXML(u *xmlutil.Util, b xmlutil.Appender) {
	s.open(u, b, "number:time-style", s.name, false)
	u.AppendAttribute(b, "number:truncate-on-overflow", "false")
	b.WriteByte('>')
	b.WriteString(DateHours)
	appendText(u, b, ":")
	b.WriteString(DateMinutes)
	appendText(u, b, ":")
	if s.decimals > 0 {
		b.WriteString(`<number:seconds number:style="long"`)
		u.AppendAttribute(b, "number:decimal-places", strconv.Itoa(s.decimals))
		b.WriteString("/>")
	} else {
		b.WriteString(DateSeconds)
	}
	b.WriteString("</number:time-style>")
}

// BooleanStyle displays booleans as TRUE/FALSE in the locale language.
type BooleanStyle struct {
	dataStyle
}

func NewBooleanStyle(name string, locale language.Tag) *BooleanStyle {
	return &BooleanStyle{dataStyle: newDataStyle(name, locale)}
}

func (s *BooleanStyle) AppendXML(u *xmlutil.Util, b xmlutil.Appender) {
	s.open(u, b, "number:boolean-style", s.name, false)
	b.WriteString("><number:boolean/></number:boolean-style>")
}
