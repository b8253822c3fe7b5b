// Package reader provides the identity card reader: the interface the
// terminal polls, and the serial frame protocol spoken by the RFID
// front-end module.
package reader

// The front-end module owns the block-level card mechanics
// (authentication, sector reads) and pushes one frame per successful
// read over a point-to-point serial line. The protocol favors being
// recoverable over being verified: framing is resynchronized on any
// malformed byte and there is no CRC; a corrupted frame costs one
// scan, which the holder simply repeats.
//
// Producer: RFID front-end firmware
// Consumer: terminal control loop
