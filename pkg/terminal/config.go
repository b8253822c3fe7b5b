package terminal

import (
	"flag"
	"time"

	"github.com/taggate/tally.go/pkg/clock"
	"github.com/taggate/tally.go/pkg/display"
	"github.com/taggate/tally.go/pkg/reader"
	"github.com/taggate/tally.go/pkg/tally"
)

// Config defines the configuration for the terminal controller.
type Config struct {
	ResultHold     time.Duration
	ConfirmTimeout time.Duration
}

var defaultConfig = Config{
	ResultHold:     2500 * time.Millisecond,
	ConfirmTimeout: 5 * time.Second,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.DurationVar(&defaultConfig.ResultHold, "result-hold", defaultConfig.ResultHold, "How long a scan result stays on the display.")
	flag.DurationVar(&defaultConfig.ConfirmTimeout, "confirm-timeout", defaultConfig.ConfirmTimeout, "Clear-confirmation prompt timeout.")
}

// NewConfig creates the default configuration.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewTerminal creates the terminal controller.
func (c *Config) NewTerminal(log *tally.Log, rd reader.Reader, disp display.Display, clk clock.Clock) *Terminal {
	return &Terminal{
		Log:            log,
		Reader:         rd,
		Display:        disp,
		Clock:          clk,
		ResultHold:     c.ResultHold,
		ConfirmTimeout: c.ConfirmTimeout,
	}
}
