// Package style defines formatting objects referenced by document content.
// Styles are immutable once built and render themselves as ODF markup.
package style

import (
	"strings"

	"odsw/xmlutil"
)

// Family is the ODF style family a style belongs to.
type Family string

const (
	FamilyTableCell   Family = "table-cell"
	FamilyTable       Family = "table"
	FamilyTableRow    Family = "table-row"
	FamilyTableColumn Family = "table-column"
	FamilyText        Family = "text"
)

// Key identifies a style inside a single destination.
type Key struct {
	Family Family
	Name   string
}

func (k Key) String() string {
	return string(k.Family) + "@" + k.Name
}

// ObjectStyle is a named formatting definition. Hidden styles are
// automatic (synthesized or document-local), visible ones are common styles
// shown to the user.
type ObjectStyle interface {
	Key() Key
	Name() string
	Family() Family
	Hidden() bool
	AppendXML(u *xmlutil.Util, b xmlutil.Appender)
}

// Separator joins base style name and data style name in synthesized cell
// style names.
const Separator = "-_-"

// RealName strips synthetic suffix (separator and everything after it) from
// name.
func RealName(name string) string {
	if i := strings.Index(name, Separator); i > 0 {
		return name[:i]
	}
	return name
}

// named is shared by all object styles.
type named struct {
	name   string
	hidden bool
}

func (n named) Name() string { return n.name }
func (n named) Hidden() bool { return n.hidden }

func appendStyleOpen(u *xmlutil.Util, b xmlutil.Appender, name string, family Family) {
	b.WriteString("<style:style")
	u.AppendEAttribute(b, "style:name", name)
	u.AppendAttribute(b, "style:family", string(family))
}
