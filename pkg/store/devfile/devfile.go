// Package devfile implements the byte store over a kernel-exposed
// EEPROM device file (e.g. the sysfs eeprom node of an I2C part).
package devfile

import (
	"flag"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/taggate/tally.go/pkg/store"
)

// Config defines the configuration for the device store.
type Config struct {
	Path        string
	SettleDelay time.Duration
}

var defaultConfig = Config{
	Path:        envOr("TALLY_STORE_PATH", "/sys/bus/i2c/devices/1-0050/eeprom"),
	SettleDelay: 5 * time.Millisecond,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Path, "store-path", defaultConfig.Path, "EEPROM device file.")
	flag.DurationVar(&defaultConfig.SettleDelay, "store-settle", defaultConfig.SettleDelay, "Write-cycle settle delay.")
}

// NewConfig creates the default configuration.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// DevFile is a store.Store backed by a byte-addressable device file.
// Every write is followed by the device's write-cycle settle delay.
type DevFile struct {
	file  *os.File
	delay time.Duration
}

// Open opens the device file for the configured store.
func (c *Config) Open() (*DevFile, error) {
	f, err := os.OpenFile(c.Path, os.O_RDWR, 0666)
	if err != nil {
		return nil, err
	}
	return &DevFile{file: f, delay: c.SettleDelay}, nil
}

// Close closes the underlying device file.
func (d *DevFile) Close() error {
	return d.file.Close()
}

// WriteByte implements store.Store. Device faults are logged and
// swallowed.
func (d *DevFile) WriteByte(addr int, b byte) {
	if _, err := d.file.WriteAt([]byte{b}, int64(addr)); err != nil {
		glog.Errorf("store write at %d failed: %v", addr, err)
	}
	if d.delay > 0 {
		time.Sleep(d.delay)
	}
}

// ReadByte implements store.Store, returning 0 when the device does
// not respond.
func (d *DevFile) ReadByte(addr int) byte {
	buf := make([]byte, 1)
	if _, err := d.file.ReadAt(buf, int64(addr)); err != nil {
		glog.Errorf("store read at %d failed: %v", addr, err)
		return 0
	}
	return buf[0]
}

var _ store.Store = (*DevFile)(nil)
