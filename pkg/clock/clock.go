// Package clock provides the real-time clock the terminal stamps
// records with.
package clock

import (
	"flag"
	"os"
	"sync"
	"time"
)

// Clock is the time source for record stamps and menu timeouts.
type Clock interface {
	Now() time.Time
	// Set moves the clock. Used by the operator time-set command.
	Set(t time.Time) error
}

// Config defines the configuration for the RTC.
type Config struct {
	Device string
}

var defaultConfig = Config{
	Device: envOr("TALLY_RTC_DEVICE", "/dev/rtc0"),
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Device, "rtc-device", defaultConfig.Device, "RTC device node.")
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

// Probe opens the configured RTC. A missing device is fatal at boot:
// the caller halts the terminal rather than stamping records with a
// bogus time.
func (c *Config) Probe() (*System, error) {
	if _, err := os.Stat(c.Device); err != nil {
		return nil, err
	}
	return &System{}, nil
}

// System is the Clock over the kernel-maintained RTC time. Set keeps
// an offset instead of programming the hardware, which needs no
// privileges; the offset lives until restart, matching a terminal
// whose RTC battery outlives its uptime anyway.
type System struct {
	lock   sync.Mutex
	offset time.Duration
}

// Now implements Clock.
func (c *System) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return time.Now().Add(c.offset)
}

// Set implements Clock.
func (c *System) Set(t time.Time) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.offset = t.Sub(time.Now())
	return nil
}

// Fake is a manually advanced Clock for tests and the simulated
// terminal.
type Fake struct {
	Current time.Time
}

// Now implements Clock.
func (c *Fake) Now() time.Time {
	return c.Current
}

// Set implements Clock.
func (c *Fake) Set(t time.Time) error {
	c.Current = t
	return nil
}

// Advance moves the fake clock forward.
func (c *Fake) Advance(d time.Duration) {
	c.Current = c.Current.Add(d)
}

var (
	_ Clock = (*System)(nil)
	_ Clock = (*Fake)(nil)
)
