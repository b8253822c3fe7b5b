package terminal

import (
	"time"

	"github.com/taggate/tally.go/pkg/record"
)

// Console requests. The operator console never touches the log or the
// store directly: it posts one of these into the loop and waits on the
// reply channel, keeping the loop the single writer.

// DumpReq asks for all records in insertion order.
type DumpReq struct {
	Reply chan []record.Record
}

// ClearReq resets the log and the inside tally.
type ClearReq struct {
	Reply chan struct{}
}

// Status is the terminal state reported to the console.
type Status struct {
	TerminalID string
	LogCount   int
	Inside     int
	Now        time.Time
}

// StatusReq asks for counts and the current time.
type StatusReq struct {
	Reply chan Status
}

// SetTimeReq moves the real-time clock.
type SetTimeReq struct {
	To    time.Time
	Reply chan error
}
