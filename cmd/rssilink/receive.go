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

var receiveCmd = &cobra.Command{
	Use:   "receive",
	Short: "Run the displaying node",
	Long: `Run the displaying node.

Frames are collected for receiver.window at a time; after each window the
mean and standard deviation of everything received are shown, or a
"no data" notice if nothing arrived.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runReceive(ctx, cmd.OutOrStdout())
	},
}

func runReceive(ctx context.Context, out io.Writer) error {
	cfg, logger, err := load(v)
	if err != nil {
		return err
	}
	n := newNode(cfg, logger, transport.RoleReceiver)
	defer n.close()

	session, err := cfg.ReceiverSession()
	if err != nil {
		return err
	}
	drv, err := n.driver()
	if err != nil {
		return err
	}
	disp, err := n.display(out)
	if err != nil {
		return err
	}

	rx := transport.NewReceiverWithDriver(session, drv, disp,
		transport.WithLogger(logger),
		transport.WithRecorder(n.recorder(ctx)),
	)
	defer rx.Close()

	if err := rx.Initialise(); err != nil {
		return err
	}
	return stopped(rx.Run(ctx))
}
