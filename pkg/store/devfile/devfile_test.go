package devfile

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taggate/tally.go/pkg/store"
)

func tempStore(t *testing.T) (*DevFile, func()) {
	dir, err := ioutil.TempDir("", "devfile")
	require.NoError(t, err)
	path := filepath.Join(dir, "eeprom")
	require.NoError(t, ioutil.WriteFile(path, make([]byte, 256), 0666))
	conf := &Config{Path: path}
	d, err := conf.Open()
	require.NoError(t, err)
	return d, func() {
		d.Close()
		os.RemoveAll(dir)
	}
}

func TestReadWrite(t *testing.T) {
	d, done := tempStore(t)
	defer done()

	d.WriteByte(10, 0xa5)
	require.Equal(t, byte(0xa5), d.ReadByte(10))
	store.WriteUint16(d, 0, 30)
	require.Equal(t, uint16(30), store.ReadUint16(d, 0))
}

func TestReadBeyondEndReturnsSentinel(t *testing.T) {
	d, done := tempStore(t)
	defer done()

	require.Equal(t, byte(0), d.ReadByte(1024))
}

func TestOpenMissingDevice(t *testing.T) {
	conf := &Config{Path: "/nonexistent/eeprom"}
	_, err := conf.Open()
	require.Error(t, err)
}
