package xmlutil

import (
	"strings"
	"testing"
	"time"
	"unsafe"
)

func TestEscapeAttribute(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain", "plain"},
		{"&", "&amp;"},
		{"a&b<c>d'e\"f\tg\nh\ri\x01j", "a&amp;b&lt;c&gt;d&apos;e&quot;f&#x9;g&#xA;h&#xD;i�j"},
		{"&<>'\"\t\n\r\x01", "&amp;&lt;&gt;&apos;&quot;&#x9;&#xA;&#xD;�"},
		{"\x00\x1f", "��"},
		{"héllo & 世界", "héllo &amp; 世界"},
		{"tail<", "tail&lt;"},
		{">head", "&gt;head"},
	}
	e := NewEscaper()
	for _, tt := range tests {
		if got := e.EscapeAttribute(tt.in); got != tt.want {
			t.Errorf("EscapeAttribute(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeContent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a&b<c>d\n", "a&amp;b&lt;c&gt;d\n"},
		{"tab\there\r\n", "tab\there\r\n"},
		{`quotes "and" 'apos'`, `quotes "and" 'apos'`},
		{"bell\x07", "bell�"},
		{"", ""},
	}
	e := NewEscaper()
	for _, tt := range tests {
		if got := e.EscapeContent(tt.in); got != tt.want {
			t.Errorf("EscapeContent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscape_Memoized(t *testing.T) {
	e := NewEscaper()
	in := "x<y & y>z"
	first := e.EscapeAttribute(in)
	second := e.EscapeAttribute(in)
	if first != second {
		t.Fatalf("repeated escape differs: %q vs %q", first, second)
	}
	if unsafe.StringData(first) != unsafe.StringData(second) {
		t.Error("repeated escape was not served from cache")
	}
	// contexts must not share results
	if got := e.EscapeContent("a\tb"); got != "a\tb" {
		t.Errorf("EscapeContent after attribute use = %q", got)
	}
	if got := e.EscapeAttribute("a\tb"); got != "a&#x9;b" {
		t.Errorf("EscapeAttribute after content use = %q", got)
	}
}

func TestEscape_UnchangedInputIsReturned(t *testing.T) {
	e := NewEscaper()
	in := strings.Repeat("nothing special here ", 10)
	out := e.EscapeContent(in)
	if out != in {
		t.Fatalf("EscapeContent changed input")
	}
	if unsafe.StringData(out) != unsafe.StringData(in) {
		t.Error("unchanged input was copied")
	}
}

func TestEscape_BufferGrows(t *testing.T) {
	e := NewEscaper()
	in := strings.Repeat("<&>", 5*initialBufferSize)
	want := strings.Repeat("&lt;&amp;&gt;", 5*initialBufferSize)
	if got := e.EscapeContent(in); got != want {
		t.Fatalf("EscapeContent(long) length = %d, want %d", len(got), len(want))
	}
	if len(e.buf) < len(want) {
		t.Errorf("scratch buffer = %d bytes, want at least %d", len(e.buf), len(want))
	}
	// results produced earlier must not alias scratch buffer
	short := e.EscapeContent("a<b")
	again := e.EscapeContent("c>d")
	if short != "a&lt;b" || again != "c&gt;d" {
		t.Errorf("results alias scratch buffer: %q %q", short, again)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "PT00H00M00S"},
		{3661000, "PT01H01M01S"},
		{3600500, "PT01H00M00.500S"},
		{5, "PT00H00M00.005S"},
		{59_999, "PT00H00M59.999S"},
		{36_000_000, "PT10H00M00S"},
		{360_000_000, "PT100H00M00S"},
		{-61_000, "-PT00H01M01S"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.ms); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestFormatValues(t *testing.T) {
	if got := FormatFloat(1.5); got != "1.5" {
		t.Errorf("FormatFloat(1.5) = %q", got)
	}
	if got := FormatFloat(1e21); got != "1000000000000000000000" {
		t.Errorf("FormatFloat(1e21) = %q", got)
	}
	d := time.Date(2024, time.March, 5, 7, 8, 9, 10_000_000, time.UTC)
	if got := FormatDate(d); got != "2024-03-05T07:08:09.010" {
		t.Errorf("FormatDate() = %q", got)
	}
	if FormatBool(true) != "true" {
		t.Error("FormatBool(true)")
	}
}

func TestUtil_Append(t *testing.T) {
	u := New()
	var b strings.Builder
	b.WriteString("<x")
	u.AppendEAttribute(&b, "a", `1"2`)
	u.AppendAttribute(&b, "b", "plain")
	b.WriteByte('>')
	u.AppendTag(&b, "text:p", "R&D\n")
	u.AppendContent(&b, "<")
	want := `<x a="1&quot;2" b="plain"><text:p>R&amp;D` + "\n" + `</text:p>&lt;`
	if got := b.String(); got != want {
		t.Errorf("rendered %q, want %q", got, want)
	}
}
