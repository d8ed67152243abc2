package game

import "sort"

// LegalMoves enumerates the side to move's actions in a fixed order: piece
// moves sorted by (from, to) notation, then exchanges sorted by target
// notation. Callers may rely on the order being deterministic.
func (gs *GameState) LegalMoves() []Move {
	moves := make([]Move, 0, 64)
	mine := cellFor(gs.turn)
	var buf [3]FieldID
	for id := FieldID(0); id < NumFields; id++ {
		if gs.board.fields[id] != mine {
			continue
		}
		n := gs.board.liveNeighbors(id, &buf)
		for i := 0; i < n; i++ {
			if gs.board.fields[buf[i]] == cellEmpty {
				moves = append(moves, Move{Kind: MovePiece, From: id, To: buf[i]})
			}
		}
	}
	sort.Slice(moves, func(i, j int) bool {
		if moves[i].From != moves[j].From {
			return notationKey[moves[i].From] < notationKey[moves[j].From]
		}
		return notationKey[moves[i].To] < notationKey[moves[j].To]
	})

	if gs.captured[gs.turn] >= gs.rate {
		theirs := cellFor(gs.turn.Other())
		start := len(moves)
		for id := FieldID(0); id < NumFields; id++ {
			if gs.board.fields[id] == theirs {
				moves = append(moves, Move{Kind: ExchangePiece, From: -1, To: id})
			}
		}
		ex := moves[start:]
		sort.Slice(ex, func(i, j int) bool {
			return notationKey[ex[i].To] < notationKey[ex[j].To]
		})
	}
	return moves
}

// hasLegalAction is the cheap form of len(LegalMoves()) > 0.
func (gs *GameState) hasLegalAction() bool {
	if gs.captured[gs.turn] >= gs.rate && gs.pieces[gs.turn.Other()] > 0 {
		return true
	}
	mine := cellFor(gs.turn)
	var buf [3]FieldID
	for id := FieldID(0); id < NumFields; id++ {
		if gs.board.fields[id] != mine {
			continue
		}
		n := gs.board.liveNeighbors(id, &buf)
		for i := 0; i < n; i++ {
			if gs.board.fields[buf[i]] == cellEmpty {
				return true
			}
		}
	}
	return false
}

// captureEstimate scores the material m wins before any cascade: enclosure
// captures completed by filling m.To, the mover's origin tile coming free,
// or the piece taken by an exchange net of the tiles it costs. Zero gain
// means the move is quiet.
//
// The second result reports whether the estimate is the full story. It is
// false when resolution can keep going past the direct effects, which
// happens when the move leaves an empty removable tile behind (removal can
// seal further groups for unbounded extra material) or when it takes the
// opponent's last piece (the value is a win, not a material count). Only
// exact moves are safe to prune on the estimate.
func (gs *GameState) captureEstimate(m Move) (int, bool) {
	if m.Kind == ExchangePiece {
		gain := PieceWeight - gs.rate*TileWeight
		exact := gs.pieces[gs.turn.Other()] > 1 &&
			!gs.tileEmptiesAfter(m.To.Tile(), nil, m.To, -1)
		return gain, exact
	}
	oppCell := cellFor(gs.turn.Other())
	gain := 0
	capturedPieces := 0
	var visited, fallen [NumFields]bool
	var capturedTiles []int
	var group []FieldID
	var buf [3]FieldID
	n := gs.board.liveNeighbors(m.To, &buf)
	seeds := buf
	for s := 0; s < n; s++ {
		id := seeds[s]
		if gs.board.fields[id] != oppCell || visited[id] {
			continue
		}
		// A group falls iff its only empty neighbor is m.To and it does not
		// touch m.From, which the move vacates.
		captured := true
		visited[id] = true
		group = append(group[:0], id)
		for i := 0; i < len(group); i++ {
			nn := gs.board.liveNeighbors(group[i], &buf)
			for j := 0; j < nn; j++ {
				nb := buf[j]
				if nb == m.From {
					captured = false
					continue
				}
				switch gs.board.fields[nb] {
				case cellEmpty:
					if nb != m.To {
						captured = false
					}
				case oppCell:
					if !visited[nb] {
						visited[nb] = true
						group = append(group, nb)
					}
				}
			}
		}
		if captured {
			gain += len(group) * PieceWeight
			capturedPieces += len(group)
			for _, g := range group {
				fallen[g] = true
				capturedTiles = appendTile(capturedTiles, g.Tile())
			}
		}
	}

	exact := capturedPieces < gs.pieces[gs.turn.Other()]

	// Vacating the last piece of a boundary tile removes it for a tile
	// credit, and the removal can cascade.
	if t := m.From.Tile(); t != m.To.Tile() && gs.tileEmptiesAfter(t, &fallen, m.From, m.To) {
		if removableMask[gs.board.neighborDirMask(t)] {
			gain += TileWeight
			exact = false
		}
	}
	for _, t := range capturedTiles {
		if gs.tileEmptiesAfter(t, &fallen, m.From, m.To) &&
			removableMask[gs.board.neighborDirMask(t)] {
			exact = false
		}
	}
	return gain, exact
}

// tileEmptiesAfter reports whether tile t holds no pieces once the move
// resolves its direct effects: vacated is freed, occupied is filled, and
// fields in fallen (captured pieces) count as empty.
func (gs *GameState) tileEmptiesAfter(t int, fallen *[NumFields]bool, vacated, occupied FieldID) bool {
	base := FieldID(t * FieldsPerTile)
	for f := FieldID(0); f < FieldsPerTile; f++ {
		id := base + f
		if id == occupied {
			return false
		}
		if id == vacated || gs.board.fields[id] == cellEmpty {
			continue
		}
		if fallen != nil && fallen[id] {
			continue
		}
		return false
	}
	return true
}

func appendTile(tiles []int, t int) []int {
	for _, have := range tiles {
		if have == t {
			return tiles
		}
	}
	return append(tiles, t)
}
