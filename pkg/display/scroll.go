package display

// Scroller produces a marquee for text wider than the display. The
// text wraps around with a gap so the head is readable again after
// the tail passes.
type Scroller struct {
	Width int

	text string
	pos  int
}

const scrollGap = "   "

// SetText resets the scroller with new text.
func (s *Scroller) SetText(text string) {
	s.text, s.pos = text, 0
}

// Frame returns the current window and advances one character. Text
// that fits is returned as-is and never scrolls.
func (s *Scroller) Frame() string {
	width := s.Width
	if width == 0 {
		width = Columns
	}
	if len(s.text) <= width {
		return s.text
	}
	looped := s.text + scrollGap + s.text
	frame := looped[s.pos : s.pos+width]
	s.pos++
	if s.pos >= len(s.text)+len(scrollGap) {
		s.pos = 0
	}
	return frame
}
