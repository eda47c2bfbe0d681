package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/leandrodaf/midikeys/internal/keyboard/kbdryrun"
	"github.com/leandrodaf/midikeys/internal/logger"
	"github.com/leandrodaf/midikeys/sdk/contracts"
	"github.com/leandrodaf/midikeys/sdk/player"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: simple_use <file.mid>")
		return
	}
	log := logger.NewZapLogger()

	p, err := player.NewPlayer(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.DebugLevel),
		contracts.WithKeyboard(kbdryrun.New(log)),
		contracts.WithStartDelay(0),
	)
	if err != nil {
		log.Error("Failed to initialize player", log.Field().Error("error", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	res, err := p.PlayFile(ctx, os.Args[1])
	if err != nil {
		log.Error("Playback failed", log.Field().Error("error", err))
		return
	}
	fmt.Printf("%s mode: %d presses, %d releases, %d dropped in %s\n",
		res.Mode, res.Pressed, res.Released, res.Dropped, res.Elapsed)
}
