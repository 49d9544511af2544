package main

import (
	"bufio"
	"errors"
	"flag"
	"io"
	"os"
	"time"

	"cardtable-server/internal/config"
	"cardtable-server/internal/rng"
	"cardtable-server/pkg/playable"
	"cardtable-server/pkg/room/gamefactory"
	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var (
	game    = flag.String("game", "blackjack", "the game to play")
	variant = flag.String("variant", "", "the roulette wheel (american, european)")
	seed    = flag.Int64("seed", 0, "seed the deck and wheel for a reproducible session")
)

func main() {
	flag.Parse()

	cfg := config.Instance()
	if *seed != 0 {
		cfg.RNG.Crypto = false
		cfg.RNG.Seed = *seed
	}

	// log lines from the game would interleave with the table
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	factory, err := gamefactory.Get(*game)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	data := playable.AdditionalData{}
	if *variant != "" {
		data["variant"] = *variant
	}

	g, err := factory.CreateGame(logger, rng.New(cfg.RNG.Crypto, cfg.RNG.Seed), cfg, data)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	pterm.DefaultHeader.WithFullWidth().Println(g.Name())

	in := &input{
		reader:      bufio.NewReader(os.Stdin),
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}

	if err := play(g, in); err != nil && !errors.Is(err, errQuit) && !errors.Is(err, io.EOF) {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// play runs the game until the player quits
func play(g playable.Playable, in *input) error {
	for {
		printLogs(g)
		res := g.GetState()
		render(res.Data)

		msg, err := in.next(res.Data)
		if err != nil {
			var ue usageError
			if errors.As(err, &ue) {
				pterm.Warning.Println(ue)
				continue
			}

			return err
		}

		if _, _, err := g.Action(msg); err != nil {
			pterm.Error.Println(err)
			continue
		}

		if tickable, ok := g.(playable.Tickable); ok && g.Phase() == playable.PhaseSpinning {
			if err := waitForTick(tickable); err != nil {
				return err
			}
		}
	}
}

func waitForTick(tickable playable.Tickable) error {
	spinner, _ := pterm.DefaultSpinner.Start("Spinning...")
	for {
		time.Sleep(tickable.Delay())
		updated, err := tickable.Tick()
		if err != nil {
			_ = spinner.Stop()
			return err
		}

		if updated {
			spinner.Success("The wheel has stopped")
			return nil
		}
	}
}

func printLogs(g playable.Playable) {
	for {
		select {
		case msgs := <-g.LogChan():
			for _, msg := range msgs {
				pterm.Info.Println(msg.Message)
			}
		default:
			return
		}
	}
}
