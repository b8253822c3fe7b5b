package reader

// Card is one successful card read.
type Card struct {
	ID   string
	Name string
}

// Valid reports whether the card carries usable identity data. An
// empty ID or name on a present card means an uninitialized card;
// the terminal rejects it without logging a record.
func (c Card) Valid() bool {
	return c.ID != "" && c.Name != ""
}

// Reader is polled once per loop iteration. ok is false when no card
// was presented since the last poll, or when the read failed.
type Reader interface {
	Poll() (c Card, ok bool)
}
