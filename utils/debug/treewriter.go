// Package debug has helpers producing human readable dumps of internal
// state for debug logs.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indent = "  "

// TreeWriter accumulates indented outline. Zero value is ready to use.
type TreeWriter struct {
	b strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{}
}

func (tw *TreeWriter) String() string {
	return tw.b.String()
}

// Line writes formatted line at depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.b.WriteString(strings.Repeat(indent, depth))
	fmt.Fprintf(&tw.b, format, args...)
	tw.b.WriteByte('\n')
}

// Section writes counted heading and returns depth for its items.
func (tw *TreeWriter) Section(depth int, label string, n int) int {
	tw.Line(depth, "%s: %d", label, n)
	return depth + 1
}

// Names writes quoted values one per line, empty values are skipped.
func (tw *TreeWriter) Names(depth int, values ...string) {
	for _, v := range values {
		if v == "" {
			continue
		}
		tw.Line(depth, "%s", strconv.Quote(v))
	}
}
