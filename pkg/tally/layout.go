package tally

import "github.com/taggate/tally.go/pkg/record"

// Persisted layout. These values define the on-device format and
// MUST NOT be configurable.
const (
	// AddrLogCount holds the record count, big-endian 16-bit.
	AddrLogCount = 0
	// AddrInsideCount holds the inside tally, big-endian 16-bit,
	// read back as signed.
	AddrInsideCount = 2

	// RecordBase is the address of slot 0.
	RecordBase = 100
	// SlotSize is the byte size of one record slot, terminator
	// included.
	SlotSize = record.SlotSize
	// MaxLogs is the slot count; the log saturates here and evicts
	// the oldest record on overflow.
	MaxLogs = 30
)

func slotAddr(index int) int {
	return RecordBase + index*SlotSize
}
