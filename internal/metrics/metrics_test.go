package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	proto "github.com/ystepanoff/rssilink/protocol"
	"github.com/ystepanoff/rssilink/transport"
)

func TestRecorder_Counters(t *testing.T) {
	r := New("tx-1")

	r.FrameSent()
	r.FrameSent()
	r.SendFailed()
	r.FrameReceived()
	r.FrameMalformed()
	r.ReceiveFailed()
	r.NoData()

	assert.Equal(t, 2.0, testutil.ToFloat64(r.framesSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sendFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.framesReceived))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.framesMalformed))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.receiveFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.noData))
}

func TestRecorder_CycleCompleted(t *testing.T) {
	r := New("rx-1")
	stats := proto.Compute([]int32{-40, -42})

	r.CycleCompleted(transport.RoleReceiver, stats)
	r.CycleCompleted(transport.RoleReceiver, stats)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.cycles.WithLabelValues(transport.RoleReceiver)))
	assert.Equal(t, -41.0, testutil.ToFloat64(r.mean.WithLabelValues(transport.RoleReceiver)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.stdDev.WithLabelValues(transport.RoleReceiver)))
	assert.Equal(t, 1, testutil.CollectAndCount(r.cycles), "one series per role")
}

func TestRecorder_SeparateRegistries(t *testing.T) {
	a := New("a")
	b := New("b")
	a.FrameSent()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.framesSent))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.framesSent))
}

func TestHandler_ServesMetrics(t *testing.T) {
	r := New("tx-1")
	r.FrameSent()
	r.CycleCompleted(transport.RoleTransmitter, proto.Compute([]int32{-50}))

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Contains(t, text, `rssilink_frames_sent_total{node="tx-1"} 1`)
	assert.Contains(t, text, `rssilink_window_mean_dbm{node="tx-1",role="transmitter"} -50`)
	assert.True(t, strings.Contains(text, "go_goroutines"), "expected Go runtime metrics")
}
