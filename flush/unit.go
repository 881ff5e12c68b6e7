// Package flush moves pre-rendered document chunks from the goroutine
// building content to the goroutine writing the package.
package flush

import (
	"bytes"

	"odsw/xmlutil"
)

// Unit is an immutable chunk of output. It may start a new part of the
// package, terminal unit carries no data and finishes the package.
type Unit struct {
	data     []byte
	part     string
	store    bool
	terminal bool
}

// NewUnit takes ownership of data.
func NewUnit(data []byte) *Unit {
	return &Unit{data: data}
}

// NewPartUnit opens part name before data is written. Stored parts are not
// compressed.
func NewPartUnit(name string, store bool, data []byte) *Unit {
	return &Unit{data: data, part: name, store: store}
}

func Terminal() *Unit {
	return &Unit{terminal: true}
}

func (u *Unit) IsTerminal() bool { return u.terminal }
func (u *Unit) Data() []byte     { return u.data }
func (u *Unit) Len() int         { return len(u.data) }

// Part returns name of the part unit opens, if any.
func (u *Unit) Part() (name string, store, ok bool) {
	return u.part, u.store, u.part != ""
}

// Row is a unit of table content which can render itself once and is
// released after that.
type Row interface {
	AppendXML(u *xmlutil.Util, b *bytes.Buffer)
	Release()
}

// rowSizeHint is a rough estimate of rendered row size.
const rowSizeHint = 256

// RenderRows renders rows into a single unit, releases them and clears the
// slice.
func RenderRows(u *xmlutil.Util, rows []Row) *Unit {
	var buf bytes.Buffer
	buf.Grow(len(rows) * rowSizeHint)
	for _, r := range rows {
		r.AppendXML(u, &buf)
		r.Release()
	}
	clear(rows)
	return NewUnit(buf.Bytes())
}
