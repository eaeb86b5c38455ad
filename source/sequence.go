// Package source provides SignalSource implementations.
package source

import (
	"sync"

	proto "github.com/ystepanoff/rssilink/protocol"
	"github.com/ystepanoff/rssilink/transport"
)

var _ transport.SignalSource = (*Sequence)(nil)

// Sequence replays fixed readings. Once exhausted it reports
// proto.DisconnectedRSSI, unless it loops.
type Sequence struct {
	mu     sync.Mutex
	values []int32
	next   int
	loop   bool
}

func NewSequence(values []int32, loop bool) *Sequence {
	return &Sequence{values: append([]int32(nil), values...), loop: loop}
}

func (s *Sequence) Read() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return proto.DisconnectedRSSI
	}
	if s.next >= len(s.values) {
		if !s.loop {
			return proto.DisconnectedRSSI
		}
		s.next = 0
	}
	v := s.values[s.next]
	s.next++
	return v
}

// Reset rewinds to the first value.
func (s *Sequence) Reset() {
	s.mu.Lock()
	s.next = 0
	s.mu.Unlock()
}
