package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestFrameEncoding(t *testing.T) {
	tests := []struct {
		name  string
		value int32
		want  []byte
	}{
		{
			name:  "zero",
			value: 0,
			want:  []byte{0x00, 0x00, 0x00, 0x00},
		},
		{
			name:  "positive",
			value: 0x01020304,
			want:  []byte{0x04, 0x03, 0x02, 0x01},
		},
		{
			name:  "disconnected sentinel",
			value: DisconnectedRSSI,
			want:  []byte{0x9C, 0xFF, 0xFF, 0xFF},
		},
		{
			name:  "minus one",
			value: -1,
			want:  []byte{0xFF, 0xFF, 0xFF, 0xFF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeFrame(tt.value)

			if len(encoded.Bytes()) != FrameSize {
				t.Errorf("EncodeFrame() size = %v, want %v", len(encoded.Bytes()), FrameSize)
			}
			if !bytes.Equal(encoded.Bytes(), tt.want) {
				t.Errorf("EncodeFrame() = % X, want % X", encoded.Bytes(), tt.want)
			}

			// Same layout as struct.pack("<i") on the other end
			got := int32(binary.LittleEndian.Uint32(encoded[:]))
			if got != tt.value {
				t.Errorf("raw little-endian value = %v, want %v", got, tt.value)
			}
		})
	}
}

func TestFrameRoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, -40, -100, -120, 42, math.MaxInt32, math.MinInt32}

	for _, v := range values {
		decoded, err := DecodeFrame(EncodeFrame(v).Bytes())
		if err != nil {
			t.Fatalf("DecodeFrame(EncodeFrame(%d)) error = %v", v, err)
		}
		if decoded != v {
			t.Errorf("DecodeFrame(EncodeFrame(%d)) = %d", v, decoded)
		}
	}
}

func TestFrameRoundTripFromBytes(t *testing.T) {
	raw := [][]byte{
		{0x00, 0x00, 0x00, 0x00},
		{0xD8, 0xFF, 0xFF, 0xFF},
		{0x12, 0x34, 0x56, 0x78},
		{0xFF, 0xFF, 0xFF, 0x7F},
	}

	for _, data := range raw {
		v, err := DecodeFrame(data)
		if err != nil {
			t.Fatalf("DecodeFrame(% X) error = %v", data, err)
		}
		if re := EncodeFrame(v); !bytes.Equal(re.Bytes(), data) {
			t.Errorf("EncodeFrame(DecodeFrame(% X)) = % X", data, re.Bytes())
		}
	}
}

func TestDecodeInvalidFrames(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{
			name: "nil data",
			data: nil,
		},
		{
			name: "empty",
			data: []byte{},
		},
		{
			name: "too short",
			data: []byte{0x01, 0x02, 0x03},
		},
		{
			name: "too long",
			data: []byte{0x01, 0x02, 0x03, 0x04, 0x05},
		},
		{
			name: "legacy 64 byte buffer",
			data: bytes.Repeat([]byte{0xAA}, 64),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DecodeFrame(tt.data)
			if !errors.Is(err, ErrMalformedFrame) {
				t.Errorf("DecodeFrame() error = %v, want %v", err, ErrMalformedFrame)
			}
			if v != 0 {
				t.Errorf("DecodeFrame() value = %v, want 0 on error", v)
			}
		})
	}
}
