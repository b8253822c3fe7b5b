package reader

import (
	"context"
	"flag"
	"os"

	"github.com/golang/glog"

	fx "github.com/taggate/tally.go/pkg/framework"
)

// Config defines the configuration for the serial reader.
type Config struct {
	Port string
}

var defaultConfig = Config{
	Port: envOr("TALLY_READER_PORT", "/dev/ttyAMA0"),
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "reader-port", defaultConfig.Port, "Serial port of the RFID front-end.")
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

// NewSerial creates the serial reader for the configured port.
func (c *Config) NewSerial() *Serial {
	return &Serial{Port: c.Port, cardCh: make(chan Card, 1)}
}

// Serial reads the front-end module over a serial port. It runs the
// byte pump in the background and buffers at most one card for the
// loop to poll; a second card presented before the loop consumes the
// first is dropped, matching the one-scan-at-a-time model.
type Serial struct {
	Port string

	parser Parser
	cardCh chan Card
}

// Name implements framework.Named.
func (r *Serial) Name() string {
	return "reader"
}

// AddToLoop implements framework.LoopAdder.
func (r *Serial) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(r)
}

// Poll implements Reader.
func (r *Serial) Poll() (Card, bool) {
	select {
	case c := <-r.cardCh:
		return c, true
	default:
		return Card{}, false
	}
}

// Run implements framework.Runnable.
func (r *Serial) Run(ctx context.Context) error {
	port, err := os.OpenFile(r.Port, os.O_RDWR, 0666)
	if err != nil {
		return err
	}
	return fx.RunWithContextCloser(ctx, port, func() error {
		buf := make([]byte, 1)
		for {
			if _, err := port.Read(buf); err != nil {
				return err
			}
			if f := r.parser.Parse(buf[0]); f != nil {
				r.handleFrame(f)
			}
		}
	})
}

func (r *Serial) handleFrame(f *Frame) {
	switch f.Code {
	case CodeCard:
		card := DecodeCard(f.Data)
		select {
		case r.cardCh <- card:
		default:
			glog.Warningf("card %q dropped, scan in progress", card.ID)
		}
	case CodeFault:
		// transient, abort this scan only; nothing is retried
		reason := "unknown"
		if len(f.Data) > 0 {
			switch f.Data[0] {
			case FaultAuth:
				reason = "card authentication failed"
			case FaultRead:
				reason = "card read failed"
			}
		}
		glog.Errorf("reader fault: %s", reason)
	default:
		glog.V(2).Infof("reader frame code %#x ignored", f.Code)
	}
}

var _ Reader = (*Serial)(nil)
