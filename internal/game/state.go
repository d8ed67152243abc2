package game

import (
	"fmt"
)

// Outcome is the result of a finished game, or Ongoing.
type Outcome uint8

const (
	Ongoing Outcome = iota
	WhiteWins
	BlackWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "white wins"
	case BlackWins:
		return "black wins"
	case Draw:
		return "draw"
	}
	return "ongoing"
}

func winFor(c Color) Outcome {
	if c == White {
		return WhiteWins
	}
	return BlackWins
}

type capturedPiece struct {
	id    FieldID
	owner Color
}

// undoRecord holds everything Apply changed, so Undo can restore it.
type undoRecord struct {
	move     Move
	captured []capturedPiece
	removed  []int8 // tile indices, in removal order
	credited int    // tiles credited to the mover
	spent    int    // tiles paid for an exchange
	prevHash uint64
}

// GameState is a full game position plus the history needed to take moves
// back. It is not safe for concurrent use; searches own their state.
type GameState struct {
	board    Board
	turn     Color
	variant  Variant
	rate     int // captured tiles per exchange
	pieces   [2]int
	captured [2]int // captured tile pool per player
	hash     uint64

	history     []undoRecord
	repetitions map[uint64]int
}

// NewGame starts a fresh game. exchangeRate is the number of captured tiles
// one exchange costs, 1 or 2.
func NewGame(v Variant, exchangeRate int) (*GameState, error) {
	if v != Laurentius && v != Ocius {
		return nil, fmt.Errorf("%w: variant %d", ErrInvalidConfiguration, v)
	}
	if exchangeRate != 1 && exchangeRate != 2 {
		return nil, fmt.Errorf("%w: exchange rate %d, want 1 or 2", ErrInvalidConfiguration, exchangeRate)
	}
	gs := &GameState{
		variant:     v,
		rate:        exchangeRate,
		turn:        White,
		repetitions: make(map[uint64]int),
	}
	v.setup(&gs.board)
	gs.pieces[White] = v.startPieces()
	gs.pieces[Black] = v.startPieces()
	gs.hash = gs.computeHash()
	gs.repetitions[gs.hash] = 1
	return gs, nil
}

// Board exposes the position, read-only by convention.
func (gs *GameState) Board() *Board { return &gs.board }

// Turn returns the side to move.
func (gs *GameState) Turn() Color { return gs.turn }

// Variant returns the layout the game started from.
func (gs *GameState) Variant() Variant { return gs.variant }

// ExchangeRate returns the captured tile cost of one exchange.
func (gs *GameState) ExchangeRate() int { return gs.rate }

// Pieces returns how many pieces the player has on the board.
func (gs *GameState) Pieces(c Color) int { return gs.pieces[c] }

// CapturedTiles returns the player's spendable captured tile pool.
func (gs *GameState) CapturedTiles(c Color) int { return gs.captured[c] }

// Hash is the Zobrist fingerprint of board, tiles, captured tile pools,
// and side to move.
func (gs *GameState) Hash() uint64 { return gs.hash }

// Repetitions returns how often the current position has occurred.
func (gs *GameState) Repetitions() int { return gs.repetitions[gs.hash] }

// History returns the applied moves, oldest first.
func (gs *GameState) History() []Move {
	moves := make([]Move, len(gs.history))
	for i, u := range gs.history {
		moves[i] = u.move
	}
	return moves
}

// Clone returns an independent copy of the position and its history.
func (gs *GameState) Clone() *GameState {
	cp := *gs
	cp.history = append([]undoRecord(nil), gs.history...)
	cp.repetitions = make(map[uint64]int, len(gs.repetitions))
	for k, v := range gs.repetitions {
		cp.repetitions[k] = v
	}
	return &cp
}

// Outcome reports the game result. A player with no pieces, or no legal
// action on their turn, loses. A threefold repetition is a draw.
func (gs *GameState) Outcome() Outcome {
	if gs.pieces[White] == 0 {
		return BlackWins
	}
	if gs.pieces[Black] == 0 {
		return WhiteWins
	}
	if gs.repetitions[gs.hash] >= 3 {
		return Draw
	}
	if !gs.hasLegalAction() {
		return winFor(gs.turn.Other())
	}
	return Ongoing
}

// Apply plays m for the side to move, resolves all captures and tile
// removals it triggers, and flips the turn.
func (gs *GameState) Apply(m Move) error {
	if gs.pieces[White] == 0 || gs.pieces[Black] == 0 || gs.repetitions[gs.hash] >= 3 {
		return fmt.Errorf("%w: cannot apply %v", ErrTerminalState, m)
	}
	u := undoRecord{move: m, prevHash: gs.hash}
	switch m.Kind {
	case MovePiece:
		if err := gs.applyMovePiece(m); err != nil {
			return err
		}
		gs.resolve(&u, true)
	case ExchangePiece:
		if err := gs.applyExchange(m, &u); err != nil {
			return err
		}
		gs.resolve(&u, false)
	default:
		return fmt.Errorf("%w: unknown move kind %d", ErrIllegalMove, m.Kind)
	}
	gs.turn = gs.turn.Other()
	gs.hash ^= sideKey
	gs.history = append(gs.history, u)
	gs.repetitions[gs.hash]++
	return nil
}

func (gs *GameState) applyMovePiece(m Move) error {
	if m.From < 0 || m.From >= NumFields || m.To < 0 || m.To >= NumFields {
		return fmt.Errorf("%w: %v is off the board", ErrIllegalMove, m)
	}
	owner, ok := gs.board.PieceAt(m.From)
	if !ok || owner != gs.turn {
		return fmt.Errorf("%w: %v: no %v piece on %v", ErrIllegalMove, m, gs.turn, m.From)
	}
	var buf [3]FieldID
	n := gs.board.liveNeighbors(m.From, &buf)
	adjacent := false
	for i := 0; i < n; i++ {
		if buf[i] == m.To {
			adjacent = true
			break
		}
	}
	if !adjacent {
		return fmt.Errorf("%w: %v: fields do not share an edge", ErrIllegalMove, m)
	}
	if gs.board.Occupied(m.To) {
		return fmt.Errorf("%w: %v: destination is occupied", ErrIllegalMove, m)
	}
	gs.board.fields[m.From] = cellEmpty
	gs.board.fields[m.To] = cellFor(gs.turn)
	gs.hash ^= pieceKeys[m.From][gs.turn] ^ pieceKeys[m.To][gs.turn]
	return nil
}

func (gs *GameState) applyExchange(m Move, u *undoRecord) error {
	if gs.captured[gs.turn] < gs.rate {
		return fmt.Errorf("%w: %v: %v has %d captured tiles, exchange costs %d",
			ErrIllegalMove, m, gs.turn, gs.captured[gs.turn], gs.rate)
	}
	if m.To < 0 || m.To >= NumFields {
		return fmt.Errorf("%w: %v is off the board", ErrIllegalMove, m)
	}
	owner, ok := gs.board.PieceAt(m.To)
	if !ok || owner != gs.turn.Other() {
		return fmt.Errorf("%w: %v: no %v piece on %v", ErrIllegalMove, m, gs.turn.Other(), m.To)
	}
	gs.removePiece(m.To, owner, u)
	gs.setPool(gs.turn, gs.captured[gs.turn]-gs.rate)
	u.spent = gs.rate
	return nil
}

// setPool updates a captured tile pool and its hash contribution together.
func (gs *GameState) setPool(c Color, n int) {
	gs.hash ^= poolKeys[c][gs.captured[c]] ^ poolKeys[c][n]
	gs.captured[c] = n
}

func (gs *GameState) removePiece(id FieldID, owner Color, u *undoRecord) {
	gs.board.fields[id] = cellEmpty
	gs.pieces[owner]--
	gs.hash ^= pieceKeys[id][owner]
	u.captured = append(u.captured, capturedPiece{id, owner})
}

// resolve runs tile removals and enclosure captures to a fixpoint. Removed
// tiles are credited to the mover only after a piece move; an exchange never
// earns tiles.
func (gs *GameState) resolve(u *undoRecord, credit bool) {
	for {
		changed := gs.removeTiles(u, credit)
		if gs.captureEnclosed(u) {
			changed = true
		}
		if !changed {
			return
		}
	}
}

// removeTiles strips every removable tile, rescanning from the lowest index
// after each removal so cascades resolve in a fixed order.
func (gs *GameState) removeTiles(u *undoRecord, credit bool) bool {
	changed := false
	for t := 0; t < NumTiles; {
		if !gs.board.TileRemovable(t) {
			t++
			continue
		}
		gs.board.extant[t] = false
		gs.board.tiles--
		gs.hash ^= tileKeys[t]
		u.removed = append(u.removed, int8(t))
		if credit {
			gs.setPool(gs.turn, gs.captured[gs.turn]+1)
			u.credited++
		}
		changed = true
		t = 0
	}
	return changed
}

// captureEnclosed removes every opponent group with no adjacent empty field.
// Groups are connected over shared edges; enclosure is transitive, so a
// group walled in only by other trapped pieces still falls.
func (gs *GameState) captureEnclosed(u *undoRecord) bool {
	opp := gs.turn.Other()
	oppCell := cellFor(opp)
	var visited [NumFields]bool
	var group []FieldID
	changed := false
	for id := FieldID(0); id < NumFields; id++ {
		if visited[id] || gs.board.fields[id] != oppCell || !gs.board.extant[id.Tile()] {
			continue
		}
		group = group[:0]
		enclosed := true
		visited[id] = true
		group = append(group, id)
		for i := 0; i < len(group); i++ {
			var buf [3]FieldID
			n := gs.board.liveNeighbors(group[i], &buf)
			for j := 0; j < n; j++ {
				nb := buf[j]
				switch gs.board.fields[nb] {
				case cellEmpty:
					enclosed = false
				case oppCell:
					if !visited[nb] {
						visited[nb] = true
						group = append(group, nb)
					}
				}
			}
		}
		if !enclosed {
			continue
		}
		for _, g := range group {
			gs.removePiece(g, opp, u)
		}
		changed = true
	}
	return changed
}

// Undo takes back the most recently applied move.
func (gs *GameState) Undo() error {
	if len(gs.history) == 0 {
		return ErrNoHistory
	}
	u := gs.history[len(gs.history)-1]
	gs.history = gs.history[:len(gs.history)-1]

	gs.repetitions[gs.hash]--
	if gs.repetitions[gs.hash] == 0 {
		delete(gs.repetitions, gs.hash)
	}
	gs.turn = gs.turn.Other()

	for i := len(u.removed) - 1; i >= 0; i-- {
		t := u.removed[i]
		gs.board.extant[t] = true
		gs.board.tiles++
	}
	gs.captured[gs.turn] += u.spent - u.credited
	for i := len(u.captured) - 1; i >= 0; i-- {
		p := u.captured[i]
		gs.board.fields[p.id] = cellFor(p.owner)
		gs.pieces[p.owner]++
	}
	if u.move.Kind == MovePiece {
		gs.board.fields[u.move.To] = cellEmpty
		gs.board.fields[u.move.From] = cellFor(gs.turn)
	}
	gs.hash = u.prevHash
	return nil
}

// computeHash builds the Zobrist hash from scratch. Apply and Undo keep it
// incrementally; this is the reference for tests and initialization.
func (gs *GameState) computeHash() uint64 {
	var h uint64
	for id := FieldID(0); id < NumFields; id++ {
		if c, ok := gs.board.PieceAt(id); ok {
			h ^= pieceKeys[id][c]
		}
	}
	for t := 0; t < NumTiles; t++ {
		if !gs.board.extant[t] {
			h ^= tileKeys[t]
		}
	}
	h ^= poolKeys[White][gs.captured[White]]
	h ^= poolKeys[Black][gs.captured[Black]]
	if gs.turn == Black {
		h ^= sideKey
	}
	return h
}
