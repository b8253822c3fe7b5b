// Package tally owns the append-only circular attendance log and the
// inside tally, persisted over a byte store.
package tally

import (
	"github.com/golang/glog"

	"github.com/taggate/tally.go/pkg/record"
	"github.com/taggate/tally.go/pkg/store"
)

// Log is the attendance log over a byte store. It caches the two
// header counters in memory and re-persists them after every
// mutation. Not safe for concurrent use: the control loop is the
// single owner.
type Log struct {
	store  store.Store
	count  int
	inside int
}

// Open reads and validates the persisted header. Out-of-range values
// (a blank or corrupted device) are clamped to zero; record bytes are
// left as found, bounded by the count.
func Open(s store.Store) *Log {
	l := &Log{store: s}
	l.count = int(store.ReadUint16(s, AddrLogCount))
	if l.count > MaxLogs {
		glog.Errorf("log count %d out of range, resetting", l.count)
		l.count = 0
		store.WriteUint16(s, AddrLogCount, 0)
	}
	l.inside = int(int16(store.ReadUint16(s, AddrInsideCount)))
	if l.inside < 0 {
		glog.Errorf("inside tally %d out of range, resetting", l.inside)
		l.inside = 0
		store.WriteUint16(s, AddrInsideCount, 0)
	}
	return l
}

// Count returns the number of records in the log.
func (l *Log) Count() int {
	return l.count
}

// Inside returns the inside tally. It is a persisted running count,
// never recomputed from the log, so it can drift from the record
// sequence after an interrupted write.
func (l *Log) Inside() int {
	return l.inside
}

// Append stores one record. When the log is full the oldest record is
// evicted first by shifting every later slot down one, so the count
// saturates at MaxLogs. The count is re-persisted after the mutation;
// there is no rollback if the store drops writes mid-append.
func (l *Log) Append(rec record.Record) {
	if l.count == MaxLogs {
		l.evictOldest()
	}
	l.writeSlot(l.count, record.Encode(rec))
	l.count++
	store.WriteUint16(l.store, AddrLogCount, uint16(l.count))
}

// evictOldest shifts slots 1..count-1 down to 0..count-2, one store
// read+write per record, and clamps the count to count-1.
func (l *Log) evictOldest() {
	for i := 1; i < l.count; i++ {
		s := store.ReadString(l.store, slotAddr(i), SlotSize)
		l.writeSlot(i-1, s)
	}
	l.count--
}

// writeSlot stores one encoded record and zeroes the rest of the
// slot, so a shorter record overwriting a longer one leaves no bytes
// of the old record behind the terminator.
func (l *Log) writeSlot(index int, s string) {
	addr := slotAddr(index)
	store.WriteString(l.store, addr, s, SlotSize)
	n := len(s)
	if n > SlotSize-1 {
		n = SlotSize - 1
	}
	for i := n + 1; i < SlotSize; i++ {
		l.store.WriteByte(addr+i, 0)
	}
}

// LastStatus scans from the most recent record backward and returns
// the status of the first record matching cardID. Unparseable slots
// are skipped. An id never seen is Out, so its first scan toggles to
// In.
func (l *Log) LastStatus(cardID string) record.Status {
	for i := l.count - 1; i >= 0; i-- {
		rec, err := l.Get(i)
		if err != nil {
			glog.V(2).Infof("skipping unparseable slot %d", i)
			continue
		}
		if rec.CardID == cardID {
			return rec.Status
		}
	}
	return record.Out
}

// Get fetches and decodes one slot.
func (l *Log) Get(index int) (record.Record, error) {
	return record.Decode(store.ReadString(l.store, slotAddr(index), SlotSize))
}

// Clear resets both counters to zero and persists them. Record bytes
// are not wiped; they become unreachable since the count bounds all
// reads.
func (l *Log) Clear() {
	l.count = 0
	l.inside = 0
	store.WriteUint16(l.store, AddrLogCount, 0)
	store.WriteUint16(l.store, AddrInsideCount, 0)
}

// AdjustInside moves the inside tally for one transition: +1 on In,
// -1 on Out floored at zero, persisted immediately.
func (l *Log) AdjustInside(status record.Status) {
	if status == record.In {
		l.inside++
	} else if l.inside > 0 {
		l.inside--
	}
	store.WriteUint16(l.store, AddrInsideCount, uint16(l.inside))
}
