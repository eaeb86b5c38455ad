// Package display renders receiver summaries.
package display

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"

	proto "github.com/ystepanoff/rssilink/protocol"
	"github.com/ystepanoff/rssilink/transport"
)

var _ transport.DisplayOutput = (*Console)(nil)

// Console writes each summary as a four-line block, the same layout the
// 128x64 OLED on the receiver board shows.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	logger *zap.Logger
}

// NewConsole writes to w, or stdout when w is nil.
func NewConsole(w io.Writer, logger *zap.Logger) *Console {
	if w == nil {
		w = os.Stdout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{w: w, logger: logger.With(zap.String("component", "display"))}
}

func (c *Console) Render(stats proto.Statistics) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := fmt.Fprintf(c.w, "Mean RSSI:\n%.1f dBm\nStd dev:\n%.1f dB\n\n", stats.Mean, stats.StdDev)
	if err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	c.logger.Debug("summary rendered", zap.Int("count", stats.Count))
	return nil
}

func (c *Console) RenderNoData() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := io.WriteString(c.w, "No data received.\n\n"); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
