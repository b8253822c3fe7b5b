// Package display drives the terminal's 2-line character display.
package display

import (
	"fmt"
	"io"
	"os"
)

// Geometry of the character display.
const (
	Columns = 16
	Rows    = 2
)

// Display is the presentation surface the terminal renders to.
type Display interface {
	// Line replaces one full row. Text longer than Columns is cut;
	// shorter text clears the remainder of the row.
	Line(row int, text string)
	// Clear blanks both rows.
	Clear()
}

// Console renders the display to a writer, one block per refresh.
// It is the display of the simulated terminal and doubles as a
// development aid when no LCD is attached.
type Console struct {
	Out io.Writer

	last [Rows]string
}

// NewConsole creates a console display writing to stdout.
func NewConsole() *Console {
	return &Console{Out: os.Stdout}
}

// Line implements Display.
func (c *Console) Line(row int, text string) {
	if row < 0 || row >= Rows {
		return
	}
	text = Fit(text)
	if c.last[row] == text {
		return
	}
	c.last[row] = text
	fmt.Fprintf(c.Out, "[lcd%d] %s\n", row, text)
}

// Clear implements Display.
func (c *Console) Clear() {
	for row := range c.last {
		c.last[row] = ""
	}
}

// Fit cuts or pads text to exactly Columns characters.
func Fit(text string) string {
	if len(text) > Columns {
		return text[:Columns]
	}
	for len(text) < Columns {
		text += " "
	}
	return text
}

var _ Display = (*Console)(nil)
