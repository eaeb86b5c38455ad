package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ystepanoff/rssilink/driver/stub"
	"github.com/ystepanoff/rssilink/transport"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run both nodes in one process over paired stub radios",
	Long: `Run the transmitter and the receiver side by side, joined by in-memory
radios that honour the channel and data pipe address. link.driver is
ignored; every other setting applies as for transmit and receive.

Example:
  RSSILINK_SOURCE_KIND=sequence RSSILINK_TRIGGER_KIND=interval rssilink simulate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runSimulate(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func runSimulate(ctx context.Context, in io.Reader, out io.Writer) error {
	cfg, logger, err := load(v)
	if err != nil {
		return err
	}
	n := newNode(cfg, logger, "simulate")
	defer n.close()

	txSession, err := cfg.TransmitterSession()
	if err != nil {
		return err
	}
	rxSession, err := cfg.ReceiverSession()
	if err != nil {
		return err
	}
	src, err := n.source()
	if err != nil {
		return err
	}
	disp, err := n.display(out)
	if err != nil {
		return err
	}

	txRadio, rxRadio := stub.New(), stub.New()
	stub.Pair(txRadio, rxRadio)
	rec := n.recorder(ctx)

	tx := transport.NewTransmitterWithDriver(txSession, txRadio, src, n.trigger(ctx, in),
		transport.WithLogger(logger.Named("tx")),
		transport.WithRecorder(rec),
	)
	defer tx.Close()
	rx := transport.NewReceiverWithDriver(rxSession, rxRadio, disp,
		transport.WithLogger(logger.Named("rx")),
		transport.WithRecorder(rec),
	)
	defer rx.Close()

	if err := rx.Initialise(); err != nil {
		return err
	}
	if err := tx.Initialise(); err != nil {
		return err
	}

	logger.Info("simulation running",
		zap.Uint8("channel", txSession.Link.Channel),
		zap.Stringer("pipe", txSession.Link.TxAddress),
	)

	// The sessions are single-threaded; each gets its own goroutine.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return stopped(tx.Run(gctx)) })
	g.Go(func() error { return stopped(rx.Run(gctx)) })
	return g.Wait()
}
