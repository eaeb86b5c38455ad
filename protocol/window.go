package protocol

// SampleWindow holds the readings of one measurement cycle in arrival order.
// It is append-only; a new cycle starts with a new window.
type SampleWindow struct {
	samples []int32
}

func NewSampleWindow(capacity int) *SampleWindow {
	if capacity < 0 {
		capacity = 0
	}
	return &SampleWindow{samples: make([]int32, 0, capacity)}
}

func (w *SampleWindow) Append(v int32) { w.samples = append(w.samples, v) }

func (w *SampleWindow) Len() int { return len(w.samples) }

func (w *SampleWindow) Empty() bool { return len(w.samples) == 0 }

// Values returns a copy of the samples in insertion order.
func (w *SampleWindow) Values() []int32 {
	out := make([]int32, len(w.samples))
	copy(out, w.samples)
	return out
}

// Stats computes the window summary; an empty window yields the zero Statistics.
func (w *SampleWindow) Stats() Statistics {
	return Compute(w.samples)
}
