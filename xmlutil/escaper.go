// Package xmlutil converts raw text into markup-safe text and formats the
// small value tokens used in document markup.
package xmlutil

// ReplacementChar is emitted in place of control characters which cannot be
// represented in XML 1.0.
const ReplacementChar = "\uFFFD"

const initialBufferSize = 1024

type entityTable [256]string

var (
	attributeEntities = buildEntities(true)
	contentEntities   = buildEntities(false)
)

func buildEntities(attribute bool) *entityTable {
	t := &entityTable{}
	for c := range 0x20 {
		t[c] = ReplacementChar
	}
	t['&'] = "&amp;"
	t['<'] = "&lt;"
	t['>'] = "&gt;"
	if attribute {
		t['\''] = "&apos;"
		t['"'] = "&quot;"
		t['\t'] = "&#x9;"
		t['\n'] = "&#xA;"
		t['\r'] = "&#xD;"
	} else {
		t['\t'] = ""
		t['\n'] = ""
		t['\r'] = ""
	}
	return t
}

// Escaper escapes text for attribute values and element content. Results are
// memoized per input for the lifetime of the escaper, so repeated values are
// scanned once.
// NOTE: not safe for concurrent use, scratch buffer and caches are owned by
// the instance.
type Escaper struct {
	buf     []byte
	attrs   map[string]string
	content map[string]string
}

func NewEscaper() *Escaper {
	return &Escaper{
		buf:     make([]byte, initialBufferSize),
		attrs:   make(map[string]string),
		content: make(map[string]string),
	}
}

// EscapeAttribute returns s made safe for a double or single quoted
// attribute value.
func (e *Escaper) EscapeAttribute(s string) string {
	if out, ok := e.attrs[s]; ok {
		return out
	}
	out := e.escape(s, attributeEntities)
	e.attrs[s] = out
	return out
}

// EscapeContent returns s made safe for element content. Tabs and line
// breaks are kept as is.
func (e *Escaper) EscapeContent(s string) string {
	if out, ok := e.content[s]; ok {
		return out
	}
	out := e.escape(s, contentEntities)
	e.content[s] = out
	return out
}

// escape copies unescaped runs of s into scratch buffer, substitutions are
// appended between them. All special characters are ASCII so scanning bytes
// never splits a multibyte sequence.
func (e *Escaper) escape(s string, entities *entityTable) string {
	var (
		dst      int
		copyFrom int
		changed  bool
	)
	for i := 0; i < len(s); i++ {
		sub := entities[s[i]]
		if len(sub) == 0 {
			continue
		}
		changed = true
		if i > copyFrom {
			dst = e.put(dst, s[copyFrom:i])
		}
		dst = e.put(dst, sub)
		copyFrom = i + 1
	}
	if !changed {
		return s
	}
	if len(s) > copyFrom {
		dst = e.put(dst, s[copyFrom:])
	}
	return string(e.buf[:dst])
}

func (e *Escaper) put(dst int, s string) int {
	if need := dst + len(s); need > len(e.buf) {
		size := max(len(e.buf), 1)
		for size < need {
			size *= 2
		}
		grown := make([]byte, size)
		copy(grown, e.buf[:dst])
		e.buf = grown
	}
	return dst + copy(e.buf[dst:], s)
}
