package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"coerceo_go/internal/game"
)

func main() {
	maxDepth := flag.Int("d", 4, "maximum tree depth")
	variantName := flag.String("variant", "laurentius", "starting setup (laurentius or ocius)")
	rate := flag.Int("rate", 1, "captured tiles spent per exchange")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	variant, err := game.ParseVariant(*variantName)
	if err != nil {
		log.Fatal().Err(err).Msg("bad variant")
	}

	for d := 1; d <= *maxDepth; d++ {
		gs, err := game.NewGame(variant, *rate)
		if err != nil {
			log.Fatal().Err(err).Msg("new game")
		}
		start := time.Now()
		nodes := perft(gs, d)
		elapsed := time.Since(start)
		log.Info().
			Int("depth", d).
			Uint64("nodes", nodes).
			Dur("elapsed", elapsed).
			Float64("knps", float64(nodes)/elapsed.Seconds()/1000).
			Msg("perft")
	}
}

func perft(gs *game.GameState, depth int) uint64 {
	if depth == 0 || gs.Outcome() != game.Ongoing {
		return 1
	}
	var nodes uint64
	for _, m := range gs.LegalMoves() {
		if err := gs.Apply(m); err != nil {
			log.Fatal().Err(err).Stringer("move", m).Msg("generated move failed to apply")
		}
		nodes += perft(gs, depth-1)
		if err := gs.Undo(); err != nil {
			log.Fatal().Err(err).Msg("undo")
		}
	}
	return nodes
}
