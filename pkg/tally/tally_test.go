package tally

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taggate/tally.go/pkg/record"
	"github.com/taggate/tally.go/pkg/store"
	"github.com/taggate/tally.go/pkg/store/memstore"
)

func openEmpty(t *testing.T) (*Log, *memstore.MemStore) {
	m := memstore.New()
	return Open(m), m
}

func stamp(minute int) record.Stamp {
	return record.Stamp{Day: 3, Month: 7, Year: 26, Hour: 9, Minute: minute}
}

// scan runs the toggle decision plus the two mutations one card
// presentation causes.
func scan(l *Log, id, name string) record.Status {
	status := l.LastStatus(id).Toggle()
	l.Append(record.Record{CardID: id, Name: name, Status: status, Stamp: stamp(l.Count() % 60)})
	l.AdjustInside(status)
	return status
}

func TestToggleSequence(t *testing.T) {
	l, _ := openEmpty(t)

	require.Equal(t, record.Out, l.LastStatus("AB12"))
	require.Equal(t, record.In, scan(l, "AB12", "Alice"))
	require.Equal(t, record.Out, scan(l, "AB12", "Alice"))
	require.Equal(t, record.In, scan(l, "AB12", "Alice"))

	require.Equal(t, 3, l.Count())
	require.Equal(t, 1, l.Inside())
	require.Equal(t, record.Out, l.LastStatus("never-seen"))
}

func TestToggleIndependentPerCard(t *testing.T) {
	l, _ := openEmpty(t)

	require.Equal(t, record.In, scan(l, "A", "Alice"))
	require.Equal(t, record.In, scan(l, "B", "Bob"))
	require.Equal(t, record.Out, scan(l, "A", "Alice"))
	require.Equal(t, record.In, l.LastStatus("B"))
	require.Equal(t, record.Out, l.LastStatus("A"))
	require.Equal(t, 1, l.Inside())
}

func TestAppendSaturatesAndEvicts(t *testing.T) {
	l, _ := openEmpty(t)

	for i := 0; i < MaxLogs; i++ {
		l.Append(record.Record{CardID: fmt.Sprintf("C%d", i), Name: "N", Status: record.In, Stamp: stamp(i % 60)})
	}
	require.Equal(t, MaxLogs, l.Count())

	l.Append(record.Record{CardID: "NEW", Name: "N", Status: record.In, Stamp: stamp(0)})
	require.Equal(t, MaxLogs, l.Count())

	// oldest gone, relative order preserved, new record last
	got, err := l.Get(0)
	require.NoError(t, err)
	require.Equal(t, "C1", got.CardID)
	for i := 0; i < MaxLogs-1; i++ {
		got, err := l.Get(i)
		require.NoError(t, err)
		require.Equal(t, fmt.Sprintf("C%d", i+1), got.CardID)
	}
	got, err = l.Get(MaxLogs - 1)
	require.NoError(t, err)
	require.Equal(t, "NEW", got.CardID)
}

func TestInsideNeverNegative(t *testing.T) {
	l, _ := openEmpty(t)

	l.AdjustInside(record.Out)
	require.Equal(t, 0, l.Inside())
	l.AdjustInside(record.In)
	l.AdjustInside(record.Out)
	l.AdjustInside(record.Out)
	require.Equal(t, 0, l.Inside())
}

func TestClear(t *testing.T) {
	l, m := openEmpty(t)

	scan(l, "AB12", "Alice")
	scan(l, "CD34", "Bob")
	l.Clear()
	require.Equal(t, 0, l.Count())
	require.Equal(t, 0, l.Inside())
	require.Equal(t, uint16(0), store.ReadUint16(m, AddrLogCount))
	require.Equal(t, uint16(0), store.ReadUint16(m, AddrInsideCount))

	// stale bytes are inert: the next append behaves as if empty
	require.Equal(t, record.Out, l.LastStatus("AB12"))
	scan(l, "EF56", "Carol")
	require.Equal(t, 1, l.Count())
	got, err := l.Get(0)
	require.NoError(t, err)
	require.Equal(t, "EF56", got.CardID)
}

func TestPersistedLayout(t *testing.T) {
	l, m := openEmpty(t)

	l.Append(record.Record{CardID: "AB12", Name: "Alice", Status: record.In, Stamp: stamp(5)})
	l.AdjustInside(record.In)

	raw := m.Bytes()
	require.Equal(t, []byte{0, 1}, raw[0:2])
	require.Equal(t, []byte{0, 1}, raw[2:4])
	wire := "AB12|Alice|IN|3/7/26 9:05"
	require.Equal(t, wire, string(raw[RecordBase:RecordBase+len(wire)]))
	require.Equal(t, byte(0), raw[RecordBase+len(wire)])

	l.Append(record.Record{CardID: "CD34", Name: "Bob", Status: record.In, Stamp: stamp(6)})
	require.Equal(t, "CD34", string(raw[RecordBase+SlotSize:RecordBase+SlotSize+4]))
}

func TestOpenClampsCorruptHeader(t *testing.T) {
	m := memstore.New()
	store.WriteUint16(m, AddrLogCount, 0xffff)    // blank device
	store.WriteUint16(m, AddrInsideCount, 0xfffe) // negative as int16

	l := Open(m)
	require.Equal(t, 0, l.Count())
	require.Equal(t, 0, l.Inside())
	require.Equal(t, uint16(0), store.ReadUint16(m, AddrLogCount))
	require.Equal(t, uint16(0), store.ReadUint16(m, AddrInsideCount))
}

func TestOpenKeepsValidHeader(t *testing.T) {
	m := memstore.New()
	l := Open(m)
	scan(l, "AB12", "Alice")
	scan(l, "CD34", "Bob")

	reopened := Open(m)
	require.Equal(t, 2, reopened.Count())
	require.Equal(t, 2, reopened.Inside())
	require.Equal(t, record.In, reopened.LastStatus("AB12"))
}

func TestLastStatusSkipsUnparseable(t *testing.T) {
	l, m := openEmpty(t)
	scan(l, "AB12", "Alice")
	scan(l, "AB12", "Alice") // AB12 now OUT

	// corrupt the newest slot in place
	store.WriteString(m, RecordBase+SlotSize, "garbage", SlotSize)
	require.Equal(t, record.In, l.LastStatus("AB12"))

	_, err := l.Get(1)
	require.Equal(t, record.ErrUnparseable, err)
}

func TestEvictionZeroesSlotRemainder(t *testing.T) {
	l, m := openEmpty(t)

	long := "Alexandra Wilhelmina Montgomery"
	l.Append(record.Record{CardID: "LONGCARD", Name: long, Status: record.In, Stamp: stamp(0)})
	for i := 1; i < MaxLogs; i++ {
		l.Append(record.Record{CardID: fmt.Sprintf("C%d", i), Name: "N", Status: record.In, Stamp: stamp(i % 60)})
	}
	// Shifts the short C1 record into the slot the long one occupied.
	l.Append(record.Record{CardID: "NEW", Name: "N", Status: record.In, Stamp: stamp(0)})

	rec, err := l.Get(0)
	require.NoError(t, err)
	require.Equal(t, "C1", rec.CardID)

	slot := m.Bytes()[RecordBase : RecordBase+SlotSize]
	end := len(record.Encode(rec))
	for i := end; i < SlotSize; i++ {
		require.Equal(t, byte(0), slot[i], "byte %d", i)
	}
}

func TestMaxLengthRecordStaysInSlot(t *testing.T) {
	l, m := openEmpty(t)
	long := "WXYZWXYZ"                                  // IDMax bytes
	name := "0123456789012345678901234567890123456789" // clamped to NameMax
	l.Append(record.Record{CardID: long, Name: name, Status: record.In, Stamp: stamp(0)})

	// slot 1 bytes untouched
	require.Equal(t, byte(0), m.Bytes()[RecordBase+SlotSize])
	got, err := l.Get(0)
	require.NoError(t, err)
	require.Equal(t, long, got.CardID)
}
