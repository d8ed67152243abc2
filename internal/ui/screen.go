package ui

import (
	"context"
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"coerceo_go/internal/config"
	"coerceo_go/internal/game"
)

const (
	WindowWidth  = 800
	WindowHeight = 600
)

const noSelection = game.FieldID(-1)

// GameScreen implements ebiten.Game: a human plays White against the
// engine's Black. Click a piece, then a highlighted field; E arms an
// exchange, U takes back a move pair, N starts over.
type GameScreen struct {
	cfg      *config.Config
	state    *game.GameState
	searcher *game.Searcher

	selected game.FieldID
	targets  map[game.FieldID]bool
	exchange bool

	aiMove       chan game.Move
	aiBusy       bool
	aiDelayUntil time.Time
}

// NewGameScreen starts a fresh game from the configuration.
func NewGameScreen(cfg *config.Config) (*GameScreen, error) {
	gs := &GameScreen{
		cfg:      cfg,
		selected: noSelection,
		aiMove:   make(chan game.Move, 1),
	}
	if err := gs.reset(); err != nil {
		return nil, err
	}
	return gs, nil
}

func (gs *GameScreen) reset() error {
	variant, err := game.ParseVariant(gs.cfg.Variant)
	if err != nil {
		return err
	}
	state, err := game.NewGame(variant, gs.cfg.ExchangeRate)
	if err != nil {
		return err
	}
	searcher, err := game.NewSearcher(game.SearchConfig{
		MaxDepth: gs.cfg.SearchDepth,
		TTPow:    uint8(gs.cfg.TTPow),
		Contempt: gs.cfg.Contempt,
	})
	if err != nil {
		return err
	}
	gs.state = state
	gs.searcher = searcher
	gs.selected = noSelection
	gs.targets = nil
	gs.exchange = false
	return nil
}

// Update advances one tick: apply a finished engine move, kick off the
// engine's turn, or handle the human's input.
func (gs *GameScreen) Update() error {
	if gs.aiBusy {
		select {
		case m := <-gs.aiMove:
			gs.aiBusy = false
			if m.IsNone() {
				break
			}
			if err := gs.state.Apply(m); err != nil {
				log.Error().Err(err).Stringer("move", m).Msg("engine move rejected")
			}
		default:
		}
		return nil
	}

	gs.handleKeys()
	if gs.state.Outcome() != game.Ongoing {
		return nil
	}

	if gs.state.Turn() == game.Black {
		if time.Now().Before(gs.aiDelayUntil) {
			return nil
		}
		gs.startEngineTurn()
		return nil
	}

	gs.handleMouse()
	return nil
}

// startEngineTurn searches a copy of the position in the background so
// drawing never races the search.
func (gs *GameScreen) startEngineTurn() {
	gs.aiBusy = true
	gs.aiDelayUntil = time.Now().Add(200 * time.Millisecond)
	pos := gs.state.Clone()
	searcher := gs.searcher
	go func() {
		res, err := searcher.BestMove(context.Background(), pos)
		if err != nil {
			if !errors.Is(err, game.ErrTerminalState) {
				log.Error().Err(err).Msg("search failed")
			}
			gs.aiMove <- game.NoMove
			return
		}
		log.Info().Stringer("move", res.Move).Int("score", res.Score).
			Int("depth", res.Depth).Uint64("nodes", res.Nodes).
			Dur("elapsed", res.Elapsed).Msg("engine move")
		gs.aiMove <- res.Move
	}()
}

// Draw renders the full frame.
func (gs *GameScreen) Draw(screen *ebiten.Image) {
	drawFrame(screen, gs)
}

// Layout fixes the logical resolution.
func (gs *GameScreen) Layout(outsideWidth, outsideHeight int) (int, int) {
	return WindowWidth, WindowHeight
}
