// Package comm provides L0 protocol support.
package comm

// L0 protocol is communicated between the L0 firmware driving the servos
// and the L1 controller streaming timed moves over a serial port.
//
// Every packet starts with a marker byte which also determines the total
// packet size. There is no length prefix, no sequence number and no
// checksum: the transport is assumed to be reliable and the receiver only
// frames a packet once all its bytes are available.
//
// Relative delays are little-endian, sync timestamps and reset angles are
// big-endian. Replies flow back as newline terminated text lines.
//
// Producer: L1 controller
// Consumer: L0 firmware
