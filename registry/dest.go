package registry

//go:generate go tool go-enum --marshal --names

// Dest selects where a registered style is written: automatic styles of
// content part, automatic styles of styles part or common styles of styles
// part.
// ENUM(contentAutomatic, stylesAutomatic, stylesCommon)
type Dest int

// Automatic reports whether destination only accepts hidden styles.
func (x Dest) Automatic() bool {
	return x != DestStylesCommon
}
