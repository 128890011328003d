package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/brensch/cycles/game"
	"github.com/brensch/cycles/logging"
	"github.com/brensch/cycles/store"
	"github.com/rs/zerolog/log"
)

func main() {
	frame := flag.Int("frame", -1, "Only print this frame")
	noBoard := flag.Bool("no-board", false, "Skip the ASCII board")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file.parquet>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	if err := logging.Setup(os.Stderr, "info", logging.FormatConsole); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	path := flag.Arg(0)
	rows, err := store.ReadTicks(path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read recording")
	}
	if len(rows) == 0 {
		log.Warn().Str("path", path).Msg("recording is empty")
		return
	}

	fmt.Printf("Session %s, bot %s, %d ticks\n\n", rows[0].SessionID, rows[0].Bot, len(rows))
	for _, row := range rows {
		if *frame >= 0 && int(row.Frame) != *frame {
			continue
		}
		printTick(row, !*noBoard)
	}
}

func printTick(row store.TickRow, board bool) {
	decision, err := row.Decision()
	if err != nil {
		log.Warn().Err(err).Msg("skipping tick")
		return
	}

	state := row.GameState()
	status := ""
	switch {
	case !row.Evaluated:
		status = " (self never seen, default sent)"
	case !row.SelfFound:
		status = " (self missing, last known position)"
	}
	fmt.Printf("Frame %3d | self (%d,%d)%s | %.2fms\n", row.Frame, row.SelfX, row.SelfY, status, float64(row.ElapsedMicros)/1000)

	for _, m := range decision.Moves {
		marker := " "
		if m.Direction == decision.Direction {
			marker = ">"
		}
		if m.Legal {
			fmt.Printf("  %s %-5s %5d  area=%d risk=%d\n", marker, m.Direction, m.Score, m.Area, m.Risk)
		} else {
			fmt.Printf("  %s %-5s   --   illegal\n", marker, m.Direction)
		}
	}

	if board {
		fmt.Println(game.Summary(state))
		fmt.Print(game.Render(state, row.Bot))
	}
	fmt.Println()
}
