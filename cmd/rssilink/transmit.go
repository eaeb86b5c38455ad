package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ystepanoff/rssilink/transport"
)

var transmitCmd = &cobra.Command{
	Use:   "transmit",
	Short: "Run the measuring node",
	Long: `Run the measuring node.

Each trigger (Enter on stdin, or every trigger.interval) takes
transmitter.sample_count readings, sends each one, then sends the rounded
mean and standard deviation of the batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runTransmit(ctx, cmd.InOrStdin())
	},
}

func runTransmit(ctx context.Context, in io.Reader) error {
	cfg, logger, err := load(v)
	if err != nil {
		return err
	}
	n := newNode(cfg, logger, transport.RoleTransmitter)
	defer n.close()

	session, err := cfg.TransmitterSession()
	if err != nil {
		return err
	}
	drv, err := n.driver()
	if err != nil {
		return err
	}
	src, err := n.source()
	if err != nil {
		return err
	}

	tx := transport.NewTransmitterWithDriver(session, drv, src, n.trigger(ctx, in),
		transport.WithLogger(logger),
		transport.WithRecorder(n.recorder(ctx)),
	)
	defer tx.Close()

	if err := tx.Initialise(); err != nil {
		return err
	}
	return stopped(tx.Run(ctx))
}
