package style

//go:generate go tool go-enum --marshal --names

// ENUM(a4, a3, a5, letter, legal)
type PaperFormat int

// ENUM(portrait, landscape)
type Orientation int

// Size returns portrait width and height of paper.
func (x PaperFormat) Size() (width, height string) {
	switch x {
	case PaperFormatA3:
		return "29.7cm", "42.0cm"
	case PaperFormatA5:
		return "14.8cm", "21.0cm"
	case PaperFormatLetter:
		return "21.59cm", "27.94cm"
	case PaperFormatLegal:
		return "21.59cm", "35.57cm"
	default:
		return "21.0cm", "29.7cm"
	}
}
