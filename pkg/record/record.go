// Package record defines one attendance entry and its fixed-slot
// text encoding.
package record

import (
	"fmt"
	"time"
)

// Field and slot bounds. SlotSize includes the NUL terminator.
const (
	IDMax    = 8
	NameMax  = 32
	SlotSize = 80
)

// Delimiter separates the four fields of an encoded record.
const Delimiter = "|"

// UnknownName substitutes an absent card holder name.
const UnknownName = "Unknown"

// Status is the IN/OUT state of a card holder.
type Status byte

// Status values. Out is the implicit never-seen state, so a brand-new
// card's first scan always toggles to In.
const (
	Out Status = iota
	In
)

// String implements fmt.Stringer.
func (s Status) String() string {
	if s == In {
		return "IN"
	}
	return "OUT"
}

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	if s == In {
		return Out
	}
	return In
}

// ParseStatus parses the encoded status field.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "IN":
		return In, nil
	case "OUT":
		return Out, nil
	}
	return Out, fmt.Errorf("bad status %q", s)
}

// Stamp is the wall-clock time of a scan, minute resolution,
// two-digit year.
type Stamp struct {
	Day    int
	Month  int
	Year   int // 0..99
	Hour   int
	Minute int
}

// StampOf converts a time.Time.
func StampOf(t time.Time) Stamp {
	return Stamp{
		Day:    t.Day(),
		Month:  int(t.Month()),
		Year:   t.Year() % 100,
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// String renders the stamp in wire form: no leading zeros on day,
// month or hour, two digits for year and minute. The asymmetry is
// part of the format and must be preserved for log consumers.
func (s Stamp) String() string {
	return fmt.Sprintf("%d/%d/%02d %d:%02d", s.Day, s.Month, s.Year, s.Hour, s.Minute)
}

// Record is one attendance entry.
type Record struct {
	CardID string
	Name   string
	Status Status
	Stamp  Stamp
}
