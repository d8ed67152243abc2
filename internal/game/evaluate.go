package game

// Material weights in centipiece units.
const (
	PieceWeight = 100
	TileWeight  = 50
)

// Evaluate scores the position for the side to move: piece difference plus
// the captured tile pool difference. The search handles wins, draws, and
// repetitions itself, so this stays purely material.
func Evaluate(gs *GameState) int {
	us, them := gs.turn, gs.turn.Other()
	return PieceWeight*(gs.pieces[us]-gs.pieces[them]) +
		TileWeight*(gs.captured[us]-gs.captured[them])
}
