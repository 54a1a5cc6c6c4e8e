package core

import (
	"strings"
	"unicode/utf8"
)

// Cell is one character position on the canvas.
type Cell struct {
	Rune  rune
	Color Color
}

// Canvas is a 2D character buffer labs draw into.
// It decouples lab rendering from the terminal; the platform turns it into
// styled output.
type Canvas struct {
	width  int
	height int
	cells  [][]Cell
}

// NewCanvas creates a new canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		width:  width,
		height: height,
	}
	c.allocate()
	c.Clear()
	return c
}

func (c *Canvas) allocate() {
	c.cells = make([][]Cell, c.height)
	for y := range c.cells {
		c.cells[y] = make([]Cell, c.width)
	}
}

// Width returns the canvas width in characters.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in characters.
func (c *Canvas) Height() int {
	return c.height
}

// Resize changes the canvas dimensions. Content is discarded; labs redraw
// every frame.
func (c *Canvas) Resize(width, height int) {
	if width == c.width && height == c.height {
		return
	}
	c.width = width
	c.height = height
	c.allocate()
	c.Clear()
}

// Clear fills the entire canvas with uncolored spaces.
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// Set places a rune at the given position with the default color.
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) Set(x, y int, r rune) {
	c.SetColored(x, y, r, ColorDefault)
}

// SetColored places a colored rune at the given position.
func (c *Canvas) SetColored(x, y int, r rune, col Color) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = Cell{Rune: r, Color: col}
}

// Get returns the rune at the given position, or a space when out of bounds.
func (c *Canvas) Get(x, y int) rune {
	return c.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
func (c *Canvas) GetCell(x, y int) Cell {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return Cell{Rune: ' '}
	}
	return c.cells[y][x]
}

// DrawText writes a string horizontally starting at (x, y).
func (c *Canvas) DrawText(x, y int, text string) {
	c.DrawTextColored(x, y, text, ColorDefault)
}

// DrawTextColored writes a colored string starting at (x, y), one cell per rune.
func (c *Canvas) DrawTextColored(x, y int, text string, col Color) {
	i := 0
	for _, r := range text {
		c.SetColored(x+i, y, r, col)
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (c *Canvas) DrawTextCentered(y int, text string, col Color) {
	x := (c.width - utf8.RuneCountInString(text)) / 2
	c.DrawTextColored(x, y, text, col)
}

// DrawWrapped writes text word-wrapped to fit width, returning the number of
// lines used.
func (c *Canvas) DrawWrapped(x, y, width int, text string, col Color) int {
	lines := WrapText(text, width)
	for i, line := range lines {
		c.DrawTextColored(x, y+i, line, col)
	}
	return len(lines)
}

// DrawBox draws a box outline using box-drawing characters.
func (c *Canvas) DrawBox(r Rect, col Color) {
	c.SetColored(r.X, r.Y, '┌', col)
	c.SetColored(r.Right()-1, r.Y, '┐', col)
	c.SetColored(r.X, r.Bottom()-1, '└', col)
	c.SetColored(r.Right()-1, r.Bottom()-1, '┘', col)

	for x := r.X + 1; x < r.Right()-1; x++ {
		c.SetColored(x, r.Y, '─', col)
		c.SetColored(x, r.Bottom()-1, '─', col)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		c.SetColored(r.X, y, '│', col)
		c.SetColored(r.Right()-1, y, '│', col)
	}
}

// DrawHLine draws a horizontal line from (x, y) with the given length.
func (c *Canvas) DrawHLine(x, y, length int, r rune, col Color) {
	for i := 0; i < length; i++ {
		c.SetColored(x+i, y, r, col)
	}
}

// DrawArt draws a multi-line block with its top-left corner at (x, y).
func (c *Canvas) DrawArt(x, y int, art []string, col Color) {
	for i, line := range art {
		j := 0
		for _, r := range line {
			if r != ' ' {
				c.SetColored(x+j, y+i, r, col)
			}
			j++
		}
	}
}

// String converts the canvas to plain text, rows joined by newlines.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)

	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < c.width; x++ {
			sb.WriteRune(c.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.height {
		return strings.Repeat(" ", c.width)
	}
	var sb strings.Builder
	for _, cell := range c.cells[y] {
		sb.WriteRune(cell.Rune)
	}
	return sb.String()
}

// WrapText splits text into lines no longer than width runes, breaking on spaces.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	var line strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		wl := utf8.RuneCountInString(word)
		if lineLen > 0 && lineLen+1+wl > width {
			lines = append(lines, line.String())
			line.Reset()
			lineLen = 0
		}
		if lineLen > 0 {
			line.WriteByte(' ')
			lineLen++
		}
		line.WriteString(word)
		lineLen += wl
	}
	if lineLen > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
