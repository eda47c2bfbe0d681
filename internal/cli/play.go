package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/leandrodaf/midikeys/internal/prompt"
	"github.com/leandrodaf/midikeys/sdk/contracts"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play [file]",
	Short: "Play a MIDI file, or prompt for files until end of input",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, log, err := newPlayer(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			res, err := p.PlayFile(ctx, args[0])
			if err != nil {
				log.Error("Playback failed", log.Field().String("file", args[0]), log.Field().Error("error", err))
				return err
			}
			printResult(out, res)
			return nil
		}

		pr := prompt.New(cmd.InOrStdin(), out)
		for ctx.Err() == nil {
			path, err := pr.ReadPath()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			res, err := p.PlayFile(ctx, path)
			if err != nil {
				pr.Error(fmt.Sprintf("Cannot play %s: %v\n", path, err))
				continue
			}
			printResult(out, res)
		}
		return nil
	},
}

func printResult(out io.Writer, res contracts.PlaybackResult) {
	status := "finished"
	if res.Cancelled {
		status = "cancelled"
	}
	fmt.Fprintf(out, "Playback %s (%s mode): %d events, %d presses, %d dropped notes, %s\n\n",
		status, res.Mode, res.Events, res.Pressed, res.Dropped, res.Elapsed.Round(time.Millisecond))
}
