// Package comm provides the transaction layer of the USB-ADDA protocol.
package comm

// The board is driven over a point-to-point serial channel with a strict
// request/response discipline: the host writes one ASCII command frame, the
// board echoes the frame back byte for byte as an acknowledgment, then
// (depending on the command) sends a fixed number of data bytes.
//
// There is no terminator byte and no checksum. Framing relies purely on the
// byte counts known per command and on the transport read timeout. Once a
// transaction fails in the middle the byte alignment of the stream is lost,
// so the Conn is marked broken and must be reopened.
//
// Producer: USB-ADDA firmware
// Consumer: host
