// Package link moves link protocol frames over a byte transport.
//
// The Receiver is the only reader of a transport and the Transmitter the
// only writer. Both are meant to live for one session; neither reconnects.
package link
