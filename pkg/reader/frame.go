package reader

import (
	"bytes"
	"io"
)

// Frame codes pushed by the front-end module.
const (
	// CodeCard carries "id NUL name" for a successful read.
	CodeCard byte = 0x01
	// CodeFault carries a reason byte for a failed read
	// (authentication or block read).
	CodeFault byte = 0x7f
)

// Fault reasons carried by CodeFault frames.
const (
	FaultAuth byte = 0x01
	FaultRead byte = 0x02
)

// stx opens every frame.
const stx byte = 0x02

// maxDataLen bounds the declared payload length; anything larger is
// treated as line noise.
const maxDataLen = 0x7f

// Frame is one unit pushed by the front-end module.
type Frame struct {
	Code byte
	Data []byte
}

// Bytes returns the encoded form for sending.
func (f *Frame) Bytes() []byte {
	b := make([]byte, len(f.Data)+3)
	b[0], b[1], b[2] = stx, f.Code, byte(len(f.Data))
	copy(b[3:], f.Data)
	return b
}

// WriteTo writes the encoded form.
func (f *Frame) WriteTo(w io.Writer) (int, error) {
	return w.Write(f.Bytes())
}

// CardFrame encodes a card read as a frame.
func CardFrame(c Card) *Frame {
	data := make([]byte, 0, len(c.ID)+len(c.Name)+1)
	data = append(data, c.ID...)
	data = append(data, 0)
	data = append(data, c.Name...)
	return &Frame{Code: CodeCard, Data: data}
}

// DecodeCard extracts the card from a CodeCard payload.
func DecodeCard(data []byte) Card {
	parts := bytes.SplitN(data, []byte{0}, 2)
	c := Card{ID: string(parts[0])}
	if len(parts) == 2 {
		c.Name = string(parts[1])
	}
	return c
}
