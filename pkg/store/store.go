package store

// Store is raw single-byte access to non-volatile memory.
type Store interface {
	// WriteByte writes one byte. Device faults are logged and
	// swallowed; the write is simply lost.
	WriteByte(addr int, b byte)
	// ReadByte reads one byte, returning 0 when the device does
	// not respond.
	ReadByte(addr int) byte
}

// WriteString writes up to max-1 bytes of s followed by a NUL
// terminator. Longer strings are silently truncated.
func WriteString(s Store, addr int, str string, max int) {
	n := len(str)
	if n > max-1 {
		n = max - 1
	}
	for i := 0; i < n; i++ {
		s.WriteByte(addr+i, str[i])
	}
	s.WriteByte(addr+n, 0)
}

// ReadString reads up to max-1 bytes starting at addr, stopping early
// at a NUL terminator, and returns whatever was accumulated.
func ReadString(s Store, addr int, max int) string {
	buf := make([]byte, 0, max-1)
	for i := 0; i < max-1; i++ {
		b := s.ReadByte(addr + i)
		if b == 0 {
			break
		}
		buf = append(buf, b)
	}
	return string(buf)
}

// WriteUint16 stores v big-endian at two consecutive addresses.
func WriteUint16(s Store, addr int, v uint16) {
	s.WriteByte(addr, byte(v>>8))
	s.WriteByte(addr+1, byte(v))
}

// ReadUint16 reads a big-endian 16-bit value from two consecutive
// addresses.
func ReadUint16(s Store, addr int) uint16 {
	return uint16(s.ReadByte(addr))<<8 | uint16(s.ReadByte(addr+1))
}
