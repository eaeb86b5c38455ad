package display

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	proto "github.com/ystepanoff/rssilink/protocol"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("display unplugged") }

func TestConsole_Render(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, nil)

	samples := []int32{-40, -42, -41, -43, -40, -41, -42, -44, -40, -41}
	require.NoError(t, c.Render(proto.Compute(samples)))
	assert.Equal(t, "Mean RSSI:\n-41.4 dBm\nStd dev:\n1.3 dB\n\n", buf.String())
}

func TestConsole_RenderNoData(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, nil)
	require.NoError(t, c.RenderNoData())
	assert.Equal(t, "No data received.\n\n", buf.String())
}

func TestConsole_WriteError(t *testing.T) {
	c := NewConsole(failingWriter{}, nil)
	assert.Error(t, c.Render(proto.Compute([]int32{-50})))
	assert.Error(t, c.RenderNoData())
}
