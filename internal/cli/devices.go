package cli

import (
	"fmt"

	"github.com/leandrodaf/midikeys/sdk/capture"
	"github.com/leandrodaf/midikeys/sdk/contracts"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(devicesCmd)
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List MIDI input devices usable by live mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		client, err := capture.NewClient(contracts.WithCaptureLogger(newLogger(cfg)))
		if err != nil {
			return err
		}
		defer client.Stop()

		devices, err := client.ListDevices()
		if err != nil {
			return err
		}
		for i, d := range devices {
			fmt.Fprintf(cmd.OutOrStdout(), "%d: %s (%s, %s)\n", i, d.Name, d.EntityName, d.Manufacturer)
		}
		return nil
	},
}
