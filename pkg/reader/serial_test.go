package reader

import (
	"context"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// replayPort writes a canned byte stream to a file the reader opens
// as its serial port; Run drains it and returns io.EOF.
func replayPort(t *testing.T, frames ...*Frame) string {
	dir, err := ioutil.TempDir("", "serial")
	require.NoError(t, err)
	var stream []byte
	for _, f := range frames {
		stream = append(stream, f.Bytes()...)
	}
	path := filepath.Join(dir, "port")
	require.NoError(t, ioutil.WriteFile(path, stream, 0666))
	return path
}

func TestSerialDeliversCard(t *testing.T) {
	path := replayPort(t, CardFrame(Card{ID: "AB12", Name: "Alice"}))
	defer os.RemoveAll(filepath.Dir(path))

	r := (&Config{Port: path}).NewSerial()
	require.Equal(t, io.EOF, r.Run(context.Background()))

	card, ok := r.Poll()
	require.True(t, ok)
	require.Equal(t, Card{ID: "AB12", Name: "Alice"}, card)

	_, ok = r.Poll()
	require.False(t, ok)
}

func TestSerialFaultAbortsScanOnly(t *testing.T) {
	path := replayPort(t,
		&Frame{Code: CodeFault, Data: []byte{FaultAuth}},
		CardFrame(Card{ID: "CD34", Name: "Bob"}),
	)
	defer os.RemoveAll(filepath.Dir(path))

	r := (&Config{Port: path}).NewSerial()
	require.Equal(t, io.EOF, r.Run(context.Background()))

	card, ok := r.Poll()
	require.True(t, ok)
	require.Equal(t, "CD34", card.ID)
}

func TestSerialDropsSecondCardWhileBuffered(t *testing.T) {
	path := replayPort(t,
		CardFrame(Card{ID: "A", Name: "Alice"}),
		CardFrame(Card{ID: "B", Name: "Bob"}),
	)
	defer os.RemoveAll(filepath.Dir(path))

	r := (&Config{Port: path}).NewSerial()
	require.Equal(t, io.EOF, r.Run(context.Background()))

	card, ok := r.Poll()
	require.True(t, ok)
	require.Equal(t, "A", card.ID)
	_, ok = r.Poll()
	require.False(t, ok)
}

func TestSerialMissingPort(t *testing.T) {
	r := (&Config{Port: "/nonexistent/port"}).NewSerial()
	require.Error(t, r.Run(context.Background()))
}
