package cli

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/leandrodaf/midikeys/internal/keymap"
	"github.com/leandrodaf/midikeys/internal/playback"
	"github.com/leandrodaf/midikeys/internal/score"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Describe how a MIDI file would be played",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		sc, err := score.ReadFile(args[0])
		if err != nil {
			return err
		}
		return inspect(cmd.OutOrStdout(), sc, keymap.Default.WithBase(uint8(cfg.BasePitch)))
	},
}

func inspect(out io.Writer, sc *score.Score, layout *keymap.Layout) error {
	conv, err := score.NewTempoConverter(sc.Division)
	if err != nil {
		return err
	}
	var length time.Duration
	m := score.NewMerger(sc.Tracks)
	for ev, ok := m.Next(); ok; ev, ok = m.Next() {
		length = conv.Convert(ev.Tick, ev.Event)
	}

	st := sc.Stats()
	var unmapped []int
	dropped := 0
	for pitch, n := range st.Pitches {
		if _, ok := layout.Lookup(pitch); !ok {
			unmapped = append(unmapped, int(pitch))
			dropped += n
		}
	}
	sort.Ints(unmapped)

	fmt.Fprintf(out, "division:  %s\n", sc.Division)
	fmt.Fprintf(out, "tracks:    %d\n", st.Tracks)
	fmt.Fprintf(out, "mode:      %s\n", playback.DetectMode(sc))
	fmt.Fprintf(out, "length:    %s\n", length.Round(time.Millisecond))
	fmt.Fprintf(out, "note-on:   %d\n", st.NoteOns)
	fmt.Fprintf(out, "note-off:  %d\n", st.NoteOffs)
	fmt.Fprintf(out, "tempos:    %d\n", st.Tempos)
	fmt.Fprintf(out, "dropped:   %d note-ons outside %d-%d %v\n",
		dropped, layout.Base(), int(layout.Base())+layout.Len()-1, unmapped)
	return nil
}
