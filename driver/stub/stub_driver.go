//go:build !tinygo && !baremetal

package stub

import (
	"fmt"
	"sync"

	proto "github.com/ystepanoff/rssilink/protocol"
	"github.com/ystepanoff/rssilink/transport"
)

// Driver implements a mock radio driver for host-side testing and simulation.
// Two drivers joined with Pair deliver each other's frames when they were
// configured with the same channel and data pipe, like two real radios.
type Driver struct {
	mu         sync.Mutex
	rxBuf      ringBuffer
	txBuf      ringBuffer
	cfg        proto.LinkConfig
	configured bool
	closed     bool
	peer       *Driver
}

var _ transport.RadioDriver = (*Driver)(nil)

func New() *Driver { return &Driver{} }

// Pair links two drivers in both directions.
func Pair(a, b *Driver) {
	a.mu.Lock()
	a.peer = b
	a.mu.Unlock()

	b.mu.Lock()
	b.peer = a
	b.mu.Unlock()
}

func (d *Driver) Configure(cfg proto.LinkConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cfg = cfg
	d.configured = true
	return nil
}

func (d *Driver) Tx(data []byte) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return fmt.Errorf("%w: driver closed", proto.ErrLink)
	}
	frame := make([]byte, len(data))
	copy(frame, data)
	d.txBuf.push(frame)
	cfg, configured, peer := d.cfg, d.configured, d.peer
	d.mu.Unlock()

	// Deliver outside our own lock so two peers sending at once cannot deadlock.
	if peer != nil && configured {
		peer.deliver(cfg, frame)
	}
	return nil
}

func (d *Driver) deliver(from proto.LinkConfig, frame []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || !d.configured {
		return
	}
	if from.Channel != d.cfg.Channel || from.TxAddress != d.cfg.TxAddress {
		return
	}
	d.rxBuf.push(frame)
}

func (d *Driver) Any() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rxBuf.count > 0
}

func (d *Driver) Rx() ([]byte, error) {
	d.mu.Lock()
	frame, ok := d.rxBuf.pop()
	d.mu.Unlock()
	if !ok {
		return nil, proto.ErrNoData
	}
	out := make([]byte, len(frame))
	copy(out, frame)
	return out, nil
}

func (d *Driver) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func (d *Driver) InjectRx(data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	frame := make([]byte, len(data))
	copy(frame, data)
	d.rxBuf.push(frame)
}

func (d *Driver) GetTxLog() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.txBuf.snapshot()
}

const ringCapacity = 64

type ringBuffer struct {
	data       [ringCapacity][]byte
	head, tail int // head = next pop, tail = next push
	count      int
}

func (rb *ringBuffer) push(frame []byte) {
	if rb.count == ringCapacity {
		// Overwrite the oldest when buffer is full to keep memory bounded
		rb.data[rb.tail] = nil
		rb.head = (rb.head + 1) % ringCapacity
		rb.count--
	}
	rb.data[rb.tail] = frame
	rb.tail = (rb.tail + 1) % ringCapacity
	rb.count++
}

func (rb *ringBuffer) pop() ([]byte, bool) {
	if rb.count == 0 {
		return nil, false
	}
	frame := rb.data[rb.head]
	rb.data[rb.head] = nil
	rb.head = (rb.head + 1) % ringCapacity
	rb.count--
	return frame, true
}

func (rb *ringBuffer) snapshot() [][]byte {
	out := make([][]byte, rb.count)
	i := rb.head
	for c := 0; c < rb.count; c++ {
		p := rb.data[i]
		cp := make([]byte, len(p))
		copy(cp, p)
		out[c] = cp
		i = (i + 1) % ringCapacity
	}
	return out
}
