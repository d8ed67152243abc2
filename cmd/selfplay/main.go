package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"coerceo_go/internal/game"
)

const maxPlies = 600

type tally struct {
	white, black, draws int64
	plies               int64
}

func main() {
	numGames := flag.Int("n", 100, "number of games to play")
	depth := flag.Int("d", 4, "search depth per move")
	variantName := flag.String("variant", "laurentius", "starting setup (laurentius or ocius)")
	rate := flag.Int("rate", 1, "captured tiles spent per exchange")
	openingPlies := flag.Int("random", 4, "random plies before the engines take over")
	workers := flag.Int("w", runtime.NumCPU(), "parallel workers")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	variant, err := game.ParseVariant(*variantName)
	if err != nil {
		log.Fatal().Err(err).Msg("bad variant")
	}
	if *workers < 1 {
		*workers = 1
	}

	log.Info().
		Int("games", *numGames).
		Int("depth", *depth).
		Int("workers", *workers).
		Stringer("variant", variant).
		Msg("starting self play")

	var res tally
	var next int64
	start := time.Now()

	g, ctx := errgroup.WithContext(context.Background())
	for w := 0; w < *workers; w++ {
		g.Go(func() error {
			for {
				id := int(atomic.AddInt64(&next, 1)) - 1
				if id >= *numGames {
					return nil
				}
				if err := playOne(ctx, variant, *rate, *depth, *openingPlies, &res); err != nil {
					return err
				}
				if done := atomic.LoadInt64(&res.white) + atomic.LoadInt64(&res.black) + atomic.LoadInt64(&res.draws); done%50 == 0 {
					log.Info().Int64("done", done).Msg("progress")
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("self play aborted")
	}

	total := res.white + res.black + res.draws
	log.Info().
		Int64("white", res.white).
		Int64("black", res.black).
		Int64("draws", res.draws).
		Float64("avg_plies", float64(res.plies)/float64(total)).
		Dur("elapsed", time.Since(start)).
		Msg("finished")
}

func playOne(ctx context.Context, v game.Variant, rate, depth, openingPlies int, res *tally) error {
	gs, err := game.NewGame(v, rate)
	if err != nil {
		return err
	}
	searcher, err := game.NewSearcher(game.SearchConfig{
		MaxDepth: depth,
		TTPow:    18,
		Contempt: 100,
	})
	if err != nil {
		return err
	}

	plies := 0
	for gs.Outcome() == game.Ongoing && plies < maxPlies {
		var m game.Move
		if plies < openingPlies {
			moves := gs.LegalMoves()
			m = moves[frand.Intn(len(moves))]
		} else {
			sr, err := searcher.BestMove(ctx, gs)
			if err != nil {
				return err
			}
			m = sr.Move
		}
		if err := gs.Apply(m); err != nil {
			return err
		}
		plies++
	}

	atomic.AddInt64(&res.plies, int64(plies))
	switch gs.Outcome() {
	case game.WhiteWins:
		atomic.AddInt64(&res.white, 1)
	case game.BlackWins:
		atomic.AddInt64(&res.black, 1)
	default:
		atomic.AddInt64(&res.draws, 1)
	}
	return nil
}
