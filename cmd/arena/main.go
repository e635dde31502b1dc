// Command arena pits two computer difficulties against each other and
// reports win/draw tallies over a series of games.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jaminalder/tictactoe-arena/internal/ai"
	"github.com/jaminalder/tictactoe-arena/internal/sim"
)

func main() {
	games := flag.Int("games", 100, "number of games to play")
	first := flag.String("first", "hard", "difficulty playing X: easy, medium or hard")
	second := flag.String("second", "easy", "difficulty playing O: easy, medium or hard")
	debug := flag.Bool("debug", false, "log every game result")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	x := mustStrategy(*first)
	o := mustStrategy(*second)

	log.Info().Int("games", *games).Str("x", *first).Str("o", *second).Msg("series started")
	start := time.Now()
	tally, err := sim.PlaySeries(*games, x, o)
	if err != nil {
		log.Fatal().Err(err).Msg("series aborted")
	}
	log.Info().
		Int("x_wins", tally.XWins).
		Int("o_wins", tally.OWins).
		Int("draws", tally.Draws).
		Dur("elapsed", time.Since(start)).
		Msg("series finished")
}

func mustStrategy(name string) ai.Strategy {
	d, err := ai.ParseDifficulty(name)
	if err != nil {
		log.Fatal().Str("difficulty", name).Msg("unknown difficulty")
	}
	s, err := ai.ForDifficulty(d)
	if err != nil {
		log.Fatal().Err(err).Msg("strategy init failed")
	}
	return s
}
