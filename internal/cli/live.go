package cli

import (
	"github.com/leandrodaf/midikeys/internal/live"
	"github.com/leandrodaf/midikeys/sdk/capture"
	"github.com/leandrodaf/midikeys/sdk/contracts"
	"github.com/spf13/cobra"
)

var liveDevice int

func init() {
	liveCmd.Flags().IntVar(&liveDevice, "device", 0, "MIDI input device index (see `midikeys devices`)")
	rootCmd.AddCommand(liveCmd)
}

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Type notes played on a MIDI keyboard as they arrive",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cfg, log, err := newPlayer(cmd)
		if err != nil {
			return err
		}
		device := cfg.LiveDevice
		if cmd.Flags().Changed("device") {
			device = liveDevice
		}

		client, err := capture.NewClient(contracts.WithCaptureLogger(log))
		if err != nil {
			return err
		}
		defer client.Stop()

		if err := client.SelectDevice(device); err != nil {
			return err
		}
		events := make(chan contracts.MIDI, 256)
		client.StartCapture(events)

		opts := p.Options()
		_, err = live.Run(cmd.Context(), events, live.Config{
			Keyboard:     opts.Keyboard,
			Clock:        opts.Clock,
			Logger:       log,
			Layout:       p.Layout(),
			SettleMargin: opts.SettleMargin,
			CancelKey:    opts.CancelKey,
			PollInterval: live.DefaultPollInterval,
		})
		return err
	},
}
