//go:build !tinygo && !baremetal

package source

import (
	"fmt"

	"github.com/prometheus/procfs"
	"go.uber.org/zap"

	proto "github.com/ystepanoff/rssilink/protocol"
	"github.com/ystepanoff/rssilink/transport"
)

var _ transport.SignalSource = (*Wireless)(nil)

// Wireless reads the signal level of one interface from /proc/net/wireless.
type Wireless struct {
	fs     procfs.FS
	iface  string
	logger *zap.Logger
}

// NewWireless opens the proc filesystem mounted at procRoot ("/proc" normally).
func NewWireless(procRoot, iface string, logger *zap.Logger) (*Wireless, error) {
	if procRoot == "" {
		procRoot = procfs.DefaultMountPoint
	}
	fs, err := procfs.NewFS(procRoot)
	if err != nil {
		return nil, fmt.Errorf("open procfs %s: %w", procRoot, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Wireless{fs: fs, iface: iface, logger: logger.With(zap.String("iface", iface))}, nil
}

// Read returns the level in dBm, or proto.DisconnectedRSSI when the
// interface is missing or not associated.
func (w *Wireless) Read() int32 {
	stats, err := w.fs.Wireless()
	if err != nil {
		w.logger.Debug("wireless stats unavailable", zap.Error(err))
		return proto.DisconnectedRSSI
	}
	for _, s := range stats {
		if s.Name != w.iface {
			continue
		}
		if s.QualityLink == 0 {
			return proto.DisconnectedRSSI
		}
		return int32(s.QualityLevel)
	}
	w.logger.Debug("interface not listed in net/wireless")
	return proto.DisconnectedRSSI
}
