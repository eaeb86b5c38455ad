package protocol

import (
	"encoding/binary"
	"fmt"
)

// Frame is the only unit that crosses the radio link: one signed 32-bit sample.
// Layout: Value(4), little-endian two's complement.
// Samples, means and standard deviations all travel as plain Frames.
type Frame [FrameSize]byte

// EncodeFrame serialises a sample into on-air bytes.
func EncodeFrame(v int32) Frame {
	var f Frame
	binary.LittleEndian.PutUint32(f[:], uint32(v))
	return f
}

// Bytes returns the frame as a slice for drivers that take []byte.
func (f Frame) Bytes() []byte {
	return f[:]
}

// DecodeFrame parses a received buffer. Anything that is not exactly FrameSize
// bytes is rejected with ErrMalformedFrame; the caller drops it and carries on.
func DecodeFrame(data []byte) (int32, error) {
	if len(data) != FrameSize {
		return 0, fmt.Errorf("%w: got %d bytes, want %d", ErrMalformedFrame, len(data), FrameSize)
	}
	return int32(binary.LittleEndian.Uint32(data)), nil
}
