package protocol

import "math"

// Statistics is the population summary of one SampleWindow.
type Statistics struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Count  int     `json:"count"`
}

// Mean returns sum/count, or 0 for an empty input.
func Mean(values []int32) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum int64
	for _, v := range values {
		sum += int64(v)
	}
	return float64(sum) / float64(len(values))
}

// StdDev returns the population standard deviation (divisor N), or 0 for an empty input.
func StdDev(values []int32) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	var acc float64
	for _, v := range values {
		d := float64(v) - mean
		acc += d * d
	}
	return math.Sqrt(acc / float64(len(values)))
}

// Compute derives both statistics in one call.
func Compute(values []int32) Statistics {
	return Statistics{
		Mean:   Mean(values),
		StdDev: StdDev(values),
		Count:  len(values),
	}
}

// RoundedMean and RoundedStdDev are what the transmitter puts on the wire.
func (s Statistics) RoundedMean() int32 { return int32(math.Round(s.Mean)) }

// RoundedStdDev saturates at math.MaxInt32; the spread of two extreme int32
// samples rounds one past it.
func (s Statistics) RoundedStdDev() int32 {
	r := math.Round(s.StdDev)
	if r > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(r)
}
