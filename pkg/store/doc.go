// Package store provides raw byte-addressed access to the terminal's
// non-volatile memory.
package store

// The store knows nothing about records. Addresses are absolute byte
// offsets into the device. Writes are best-effort: a device fault is
// logged and swallowed, there is no retry and no checksum, so a write
// interrupted by power loss leaves silently corrupted bytes. Callers
// that need to survive that (the attendance log) recover by clamping
// out-of-range values and skipping unparseable records at read time.
//
// Producer: EEPROM-style device (devfile) or memory (memstore)
// Consumer: attendance log
