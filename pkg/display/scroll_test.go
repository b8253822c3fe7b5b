package display

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScrollerShortTextStill(t *testing.T) {
	s := Scroller{Width: 8}
	s.SetText("Alice")
	require.Equal(t, "Alice", s.Frame())
	require.Equal(t, "Alice", s.Frame())
}

func TestScrollerAdvancesAndWraps(t *testing.T) {
	s := Scroller{Width: 8}
	s.SetText("Alexandra W")

	require.Equal(t, "Alexandr", s.Frame())
	require.Equal(t, "lexandra", s.Frame())

	// one full cycle returns to the head
	cycle := len("Alexandra W") + len(scrollGap)
	for i := 0; i < cycle-2; i++ {
		s.Frame()
	}
	require.Equal(t, "Alexandr", s.Frame())
}

func TestScrollerSetTextRewinds(t *testing.T) {
	s := Scroller{Width: 8}
	s.SetText("Alexandra W")
	s.Frame()
	s.Frame()
	s.SetText("Bartholomew")
	require.Equal(t, "Bartholo", s.Frame())
}

func TestFit(t *testing.T) {
	require.Equal(t, Columns, len(Fit("")))
	require.Equal(t, Columns, len(Fit("0123456789abcdefXYZ")))
	require.Equal(t, "0123456789abcdef", Fit("0123456789abcdefXYZ"))
}
