package ui

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog/log"

	"coerceo_go/internal/game"
)

func (gs *GameScreen) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := gs.reset(); err != nil {
			log.Error().Err(err).Msg("reset failed")
		}
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		gs.clearSelection()
		// Take back a full round so it is the human's turn again.
		for i := 0; i < 2; i++ {
			if err := gs.state.Undo(); err != nil {
				if !errors.Is(err, game.ErrNoHistory) {
					log.Error().Err(err).Msg("undo failed")
				}
				break
			}
		}
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		if gs.exchange {
			gs.exchange = false
			return
		}
		if gs.state.CapturedTiles(gs.state.Turn()) >= gs.state.ExchangeRate() {
			gs.clearSelection()
			gs.exchange = true
		}
	}
}

func (gs *GameScreen) handleMouse() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	id, ok := gs.pickField(float64(mx), float64(my))
	if !ok {
		gs.clearSelection()
		return
	}

	if gs.exchange {
		gs.tryApply(game.Move{Kind: game.ExchangePiece, From: -1, To: id})
		return
	}

	if gs.selected != noSelection && gs.targets[id] {
		gs.tryApply(game.Move{Kind: game.MovePiece, From: gs.selected, To: id})
		return
	}

	// Clicking a piece of the side to move selects it, anything else clears.
	gs.clearSelection()
	if c, occupied := gs.state.Board().PieceAt(id); occupied && c == gs.state.Turn() {
		gs.selected = id
		gs.targets = make(map[game.FieldID]bool)
		for _, m := range gs.state.LegalMoves() {
			if m.Kind == game.MovePiece && m.From == id {
				gs.targets[m.To] = true
			}
		}
	}
}

func (gs *GameScreen) tryApply(m game.Move) {
	gs.clearSelection()
	gs.exchange = false
	if err := gs.state.Apply(m); err != nil {
		log.Debug().Err(err).Stringer("move", m).Msg("rejected")
	}
}

func (gs *GameScreen) clearSelection() {
	gs.selected = noSelection
	gs.targets = nil
}

// pickField returns the field under the cursor, if any.
func (gs *GameScreen) pickField(x, y float64) (game.FieldID, bool) {
	board := gs.state.Board()
	for id := game.FieldID(0); id < game.NumFields; id++ {
		if !board.TileExtant(id.Tile()) {
			continue
		}
		if pointInTriangle(x, y, fieldTriangle(id)) {
			return id, true
		}
	}
	return noSelection, false
}

func pointInTriangle(px, py float64, tri [3][2]float64) bool {
	sign := func(ax, ay, bx, by, cx, cy float64) float64 {
		return (ax-cx)*(by-cy) - (bx-cx)*(ay-cy)
	}
	d1 := sign(px, py, tri[0][0], tri[0][1], tri[1][0], tri[1][1])
	d2 := sign(px, py, tri[1][0], tri[1][1], tri[2][0], tri[2][1])
	d3 := sign(px, py, tri[2][0], tri[2][1], tri[0][0], tri[0][1])
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
