package record

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnparseable marks a slot whose bytes do not decode into a
// record. Callers skip such slots; malformed data never crashes the
// terminal.
var ErrUnparseable = errors.New("unparseable record")

// Encode serializes a record into its wire form:
//
//	cardID|name|status|D/M/YY H:M
//
// An absent name is substituted with UnknownName. Fields are clamped
// to their bounds; a form still exceeding the slot is truncated by
// the store on write.
func Encode(r Record) string {
	id := r.CardID
	if len(id) > IDMax {
		id = id[:IDMax]
	}
	name := r.Name
	if name == "" {
		name = UnknownName
	}
	if len(name) > NameMax {
		name = name[:NameMax]
	}
	return strings.Join([]string{id, name, r.Status.String(), r.Stamp.String()}, Delimiter)
}

// Decode parses one slot's text back into a record. Anything with
// fewer than four fields, or with a malformed status or stamp, yields
// ErrUnparseable.
func Decode(s string) (Record, error) {
	fields := strings.SplitN(s, Delimiter, 4)
	if len(fields) != 4 {
		return Record{}, ErrUnparseable
	}
	status, err := ParseStatus(fields[2])
	if err != nil {
		return Record{}, ErrUnparseable
	}
	stamp, err := parseStamp(fields[3])
	if err != nil {
		return Record{}, ErrUnparseable
	}
	return Record{
		CardID: fields[0],
		Name:   fields[1],
		Status: status,
		Stamp:  stamp,
	}, nil
}

func parseStamp(s string) (Stamp, error) {
	var st Stamp
	parts := strings.SplitN(s, " ", 2)
	if len(parts) != 2 {
		return st, ErrUnparseable
	}
	date := strings.SplitN(parts[0], "/", 3)
	clock := strings.SplitN(parts[1], ":", 2)
	if len(date) != 3 || len(clock) != 2 {
		return st, ErrUnparseable
	}
	var err error
	for _, f := range []struct {
		dst *int
		in  string
	}{
		{&st.Day, date[0]},
		{&st.Month, date[1]},
		{&st.Year, date[2]},
		{&st.Hour, clock[0]},
		{&st.Minute, clock[1]},
	} {
		if *f.dst, err = strconv.Atoi(f.in); err != nil {
			return Stamp{}, ErrUnparseable
		}
	}
	return st, nil
}
