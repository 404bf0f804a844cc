package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/jvesely/arcade/internal/game"
	"github.com/jvesely/arcade/internal/loop"
	"github.com/jvesely/arcade/internal/sound"
)

func main() {
	seed := flag.Int64("seed", 0, "fix the spawn RNG (0 = time-seeded)")
	mute := flag.Bool("mute", false, "disable sound effects")
	flag.Parse()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	opts := loop.Options{Seed: *seed}

	if !*mute {
		player, sndErr := sound.NewPlayer()
		if sndErr != nil {
			// Keep playing without audio.
			fmt.Fprintf(os.Stderr, "sound disabled: %v\n", sndErr)
		}
		defer player.Close()
		opts.Events = func(ev game.Event) { player.Handle(ev) }
	}

	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(reader, os.Stdout, opts); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
