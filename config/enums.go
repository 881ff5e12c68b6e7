package config

//go:generate go tool go-enum --marshal --names

// Panes frozen in every sheet produced from input with
// header.
// ENUM(none, header, headerAndColumn)
type FreezeMode int

// Rows returns number of frozen rows.
func (f FreezeMode) Rows() int {
	if f == FreezeModeNone {
		return 0
	}
	return 1
}

// Columns returns number of frozen columns.
func (f FreezeMode) Columns() int {
	if f == FreezeModeHeaderAndColumn {
		return 1
	}
	return 0
}
