package core

// Color is a foreground colour for a screen cell.
// Terminal hosts map these to ANSI codes; the window host ignores them.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorGray
	ColorDarkGray
)
