package core

// Color is a foreground color for a canvas cell.
// The platform layer maps each value to a terminal style.
type Color uint8

// Lab palette.
const (
	ColorDefault Color = iota
	ColorRed           // wrong answers, untested samples
	ColorGreen         // correct answers, solved labs
	ColorYellow        // arch prints, highlights
	ColorSky           // loop prints, headings
	ColorPurple        // whorl prints
	ColorPink          // Kastle-Meyer reaction
	ColorCyan          // luminol glow
	ColorWhite
	ColorGray
	ColorDim // dark-room background details
)
