package transport

import proto "github.com/ystepanoff/rssilink/protocol"

// RadioDriver is the interface that wraps the basic radio operations.
//
// Tx failures wrap proto.ErrLink. Rx never blocks: it returns proto.ErrNoData
// when nothing is queued, and Any reports whether a frame is waiting.
// Close releases the underlying hardware or connection.
type RadioDriver interface {
	Configure(cfg proto.LinkConfig) error
	Tx(data []byte) error
	Rx() ([]byte, error)
	Any() bool
	Close() error
}
