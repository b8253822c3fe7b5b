// Package buttons reads the terminal's two navigation buttons, wired
// as a joystick-style input device.
package buttons

import (
	"bytes"
	"context"
	"encoding/binary"
	"flag"
	"os"
	"time"

	"github.com/golang/glog"

	fx "github.com/taggate/tally.go/pkg/framework"
)

// Button identifies one of the two panel buttons.
type Button int

// The panel buttons. Next walks the log browser, Select enters and
// confirms.
const (
	Next Button = iota
	Select
)

// String implements fmt.Stringer.
func (b Button) String() string {
	if b == Select {
		return "SELECT"
	}
	return "NEXT"
}

// PressMsg is posted into the control loop for every debounced press.
type PressMsg struct {
	Button Button
}

// Config defines the configuration for the button device.
type Config struct {
	Device   string
	Debounce time.Duration
}

var defaultConfig = Config{
	Device:   envOr("TALLY_BUTTONS_DEVICE", "/dev/input/js0"),
	Debounce: 30 * time.Millisecond,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Device, "buttons-device", defaultConfig.Device, "Button input device.")
	flag.DurationVar(&defaultConfig.Debounce, "buttons-debounce", defaultConfig.Debounce, "Press debounce window.")
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

// NewSource creates the button source for the configured device.
func (c *Config) NewSource() *Source {
	return &Source{Device: c.Device, Debounce: c.Debounce}
}

// Source pumps button presses from the input device into the loop.
type Source struct {
	Device   string
	Debounce time.Duration

	lastPress [2]time.Time
}

// Name implements framework.Named.
func (s *Source) Name() string {
	return "buttons"
}

// AddToLoop implements framework.LoopAdder.
func (s *Source) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(s)
}

// Run implements framework.Runnable.
func (s *Source) Run(ctx context.Context) error {
	dev, err := os.OpenFile(s.Device, os.O_RDONLY, 0666)
	if err != nil {
		return err
	}
	loopCtl := fx.LoopCtlFrom(ctx)
	return fx.RunWithContextCloser(ctx, dev, func() error {
		buf := make([]byte, 8)
		for {
			if _, err := dev.Read(buf); err != nil {
				return err
			}
			btn, pressed, ok := decodeEvent(buf)
			if !ok || !pressed {
				continue
			}
			now := time.Now()
			if now.Sub(s.lastPress[btn]) < s.Debounce {
				continue
			}
			s.lastPress[btn] = now
			glog.V(2).Infof("button %v pressed", btn)
			loopCtl.PostMessage(PressMsg{Button: btn})
			loopCtl.TriggerNext()
		}
	})
}

type rawEvent struct {
	Time   uint32
	Value  int16
	Type   uint8
	Number uint8
}

const (
	evInit   uint8 = 0x80
	evButton uint8 = 0x01
)

// decodeEvent parses one 8-byte device event. Init-state replays and
// non-button events are dropped.
func decodeEvent(buf []byte) (btn Button, pressed bool, ok bool) {
	var ev rawEvent
	if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &ev); err != nil {
		return 0, false, false
	}
	if ev.Type&evInit != 0 || ev.Type&evButton == 0 {
		return 0, false, false
	}
	if ev.Number > uint8(Select) {
		return 0, false, false
	}
	return Button(ev.Number), ev.Value != 0, true
}
