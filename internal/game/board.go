package game

import (
	"fmt"
	"strings"
)

// Color identifies a player. White moves first.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposing player.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// cell is the content of one field.
type cell uint8

const (
	cellEmpty cell = iota
	cellWhite
	cellBlack
)

func cellFor(c Color) cell {
	if c == White {
		return cellWhite
	}
	return cellBlack
}

func (cl cell) color() Color {
	if cl == cellWhite {
		return White
	}
	return Black
}

// ------------------------------------------------------------
// Precomputed geometry
// ------------------------------------------------------------

// tileNeighbors[t][d] is the tile index adjacent to tile t in direction d,
// or -1 off the board. Liveness is checked separately against Board.extant.
var tileNeighbors = func() [NumTiles][FieldsPerTile]int8 {
	var tn [NumTiles][FieldsPerTile]int8
	for t := 0; t < NumTiles; t++ {
		h := hexCoords[t]
		for d := 0; d < FieldsPerTile; d++ {
			nx, ny := h.X+tileDirections[d].X, h.Y+tileDirections[d].Y
			if ValidHex(nx, ny) {
				tn[t][d] = int8(HexCoord{nx, ny}.Index())
			} else {
				tn[t][d] = -1
			}
		}
	}
	return tn
}()

// fieldAdj[id] lists the fields sharing an edge with id: always the two
// flanking fields on the same tile, plus the mirrored field on the tile
// across edge f when that tile exists. -1 pads the unused slot.
var fieldAdj = func() [NumFields][3]FieldID {
	var adj [NumFields][3]FieldID
	for t := 0; t < NumTiles; t++ {
		for f := 0; f < FieldsPerTile; f++ {
			id := t*FieldsPerTile + f
			adj[id][0] = FieldID(t*FieldsPerTile + (f+1)%6)
			adj[id][1] = FieldID(t*FieldsPerTile + (f+5)%6)
			adj[id][2] = -1
			if nt := tileNeighbors[t][f]; nt >= 0 {
				adj[id][2] = FieldID(int(nt)*FieldsPerTile + (f+3)%6)
			}
		}
	}
	return adj
}()

// notationKey orders fields by (file, rank, field letter); move generation
// sorts with it so the enumeration matches the printed notation order.
var notationKey = func() [NumFields]uint16 {
	var keys [NumFields]uint16
	for id := FieldID(0); id < NumFields; id++ {
		h := id.Coord()
		file := uint16(h.X + 2)
		rank := uint16(h.Y + rankOffset(h.X))
		letter := uint16(5 - id.Sub())
		keys[id] = file<<8 | rank<<4 | letter
	}
	return keys
}()

// removableMask[m] is true when an empty tile whose extant neighbors occupy
// exactly the direction set m may leave the board: one to three neighbors,
// all adjacent to each other, so the tile sits on the outer boundary and
// removing it cannot disconnect the rest.
var removableMask = func() [64]bool {
	var ok [64]bool
	for f := 0; f < 6; f++ {
		single := 1 << f
		double := single | 1<<((f+1)%6)
		triple := double | 1<<((f+2)%6)
		ok[single] = true
		ok[double] = true
		ok[triple] = true
	}
	return ok
}()

// ------------------------------------------------------------
// Board
// ------------------------------------------------------------

// Board holds field occupancy and the tile lifecycle. Captured tile
// accounting and turn logic live in GameState.
type Board struct {
	fields [NumFields]cell
	extant [NumTiles]bool
	tiles  int
}

// TileExtant reports whether tile t is still part of the board.
func (b *Board) TileExtant(t int) bool {
	return b.extant[t]
}

// Tiles returns the number of extant tiles.
func (b *Board) Tiles() int {
	return b.tiles
}

// Occupied reports whether a piece sits on field id.
func (b *Board) Occupied(id FieldID) bool {
	return b.fields[id] != cellEmpty
}

// PieceAt returns the owner of the piece on field id.
func (b *Board) PieceAt(id FieldID) (Color, bool) {
	cl := b.fields[id]
	if cl == cellEmpty {
		return White, false
	}
	return cl.color(), true
}

// Place puts a piece of the given color on an empty field of a live tile.
func (b *Board) Place(id FieldID, c Color) error {
	if !b.extant[id.Tile()] {
		return fmt.Errorf("%w: field %v is on a removed tile", ErrIllegalMove, id)
	}
	if b.fields[id] != cellEmpty {
		return fmt.Errorf("%w: field %v is occupied", ErrIllegalMove, id)
	}
	b.fields[id] = cellFor(c)
	return nil
}

// Remove takes the piece off field id and returns its owner.
func (b *Board) Remove(id FieldID) (Color, error) {
	cl := b.fields[id]
	if cl == cellEmpty {
		return White, fmt.Errorf("%w: field %v is empty", ErrIllegalMove, id)
	}
	b.fields[id] = cellEmpty
	return cl.color(), nil
}

// liveNeighbors fills buf with the edge neighbors of id that lie on extant
// tiles and returns the count. A field has at most three neighbors; fewer
// when the adjacent tile is removed or was never on the board.
func (b *Board) liveNeighbors(id FieldID, buf *[3]FieldID) int {
	n := 0
	for _, nb := range fieldAdj[id] {
		if nb >= 0 && b.extant[nb.Tile()] {
			buf[n] = nb
			n++
		}
	}
	return n
}

// Neighbors returns the live edge neighbors of a field.
func (b *Board) Neighbors(id FieldID) []FieldID {
	var buf [3]FieldID
	n := b.liveNeighbors(id, &buf)
	out := make([]FieldID, n)
	copy(out, buf[:n])
	return out
}

// neighborDirMask returns the set of directions holding an extant tile next
// to tile t.
func (b *Board) neighborDirMask(t int) int {
	mask := 0
	for d := 0; d < FieldsPerTile; d++ {
		if nt := tileNeighbors[t][d]; nt >= 0 && b.extant[nt] {
			mask |= 1 << d
		}
	}
	return mask
}

// TileRemovable reports whether tile t must leave the board: extant, all six
// fields empty, and attached to the rest of the board along at most three
// mutually adjacent sides.
func (b *Board) TileRemovable(t int) bool {
	if !b.extant[t] {
		return false
	}
	base := t * FieldsPerTile
	for f := 0; f < FieldsPerTile; f++ {
		if b.fields[base+f] != cellEmpty {
			return false
		}
	}
	return removableMask[b.neighborDirMask(t)]
}

// RemoveTile deactivates tile t for the rest of the game.
func (b *Board) RemoveTile(t int) error {
	if !b.TileRemovable(t) {
		return fmt.Errorf("%w: tile %v is not removable", ErrIllegalMove, TileCoord(t))
	}
	b.extant[t] = false
	b.tiles--
	return nil
}

// String renders occupancy one tile per line, for logs and test failures.
func (b *Board) String() string {
	var sb strings.Builder
	for t := 0; t < NumTiles; t++ {
		if !b.extant[t] {
			continue
		}
		h := hexCoords[t]
		fmt.Fprintf(&sb, "%c%d:", 'c'+rune(h.X), h.Y+rankOffset(h.X))
		for f := 0; f < FieldsPerTile; f++ {
			switch b.fields[t*FieldsPerTile+f] {
			case cellWhite:
				sb.WriteByte('W')
			case cellBlack:
				sb.WriteByte('B')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func rankOffset(x int8) int8 {
	if x < 0 {
		return 3 + x
	}
	return 3
}
