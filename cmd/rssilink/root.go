package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ystepanoff/rssilink/internal/config"
)

var (
	// Global flags
	configFile string
	v          = config.New()
)

var rootCmd = &cobra.Command{
	Use:   "rssilink",
	Short: "Two-node RSSI telemetry link",
	Long: `rssilink measures connectivity quality on one node, sends the readings and
their summary over a point-to-point link, and shows per-window statistics
on the other node.

Without radio hardware the link runs over an MQTT broker (link.driver: mqtt)
or entirely in-process (the simulate command).`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path (YAML); RSSILINK_* environment variables override it")
	rootCmd.PersistentFlags().String("log-level", "info",
		"log level: debug, info, warn, error")
	_ = v.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(transmitCmd)
	rootCmd.AddCommand(receiveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(validateCmd)
}

// load reads the configuration once per command and builds the logger.
func load(v *viper.Viper) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return nil, nil, err
	}
	logger, err := config.NewLogger(v)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, logger, nil
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration and print the resolved link setup",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v, configFile)
		if err != nil {
			return err
		}
		link, err := cfg.ProtoLink()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "VALID: channel %d (%d MHz), data pipe %s, %d Mbps, power %d, driver %s\n",
			link.Channel, link.FrequencyMHz(), link.TxAddress, link.DataRate, link.Power, cfg.Link.Driver)
		return nil
	},
}
