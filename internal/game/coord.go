package game

import (
	"fmt"
)

// The board is a hexagon of hexagons addressed with axial coordinates,
// (0, 0) at the center. The x-axis slopes up to the right, the y-axis runs
// straight up. Each tile is split into six triangular fields numbered
// clockwise from the top edge.
//
//	            ____
//	           /    \
//	      ____/  +y  \____
//	     /    \      /    \
//	    /      \____/  +x  \
//	    \      /    \      /
//	     \____/      \____/
//	     /    \      /    \
//	    /  -x  \____/      \
//	    \      /    \      /
//	     \____/  -y  \____/
//	          \      /
//	           \____/

const (
	NumTiles  = 19
	NumFields = NumTiles * FieldsPerTile

	FieldsPerTile = 6
)

// HexCoord addresses one tile.
type HexCoord struct {
	X, Y int8
}

// FieldID is a dense index over all fields: tile index * 6 + field number.
// It indexes the precomputed adjacency and notation tables.
type FieldID int16

// tileDirections lists the six tile neighbor offsets, indexed by the field
// number whose outer edge faces that neighbor.
var tileDirections = [FieldsPerTile]HexCoord{
	{0, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, 0}, {-1, 1},
}

// ValidHex reports whether (x, y) is a tile of the full board.
func ValidHex(x, y int8) bool {
	return abs8(x) <= 2 && abs8(y) <= 2 && abs8(x+y) <= 2
}

func abs8(x int8) int8 {
	if x < 0 {
		return -x
	}
	return x
}

// Index maps a tile coordinate to its dense index (row-major by y, then x).
func (h HexCoord) Index() int {
	raw := 5*(int(h.Y)+2) + int(h.X) + 2
	switch {
	case raw >= 2 && raw <= 4:
		return raw - 2
	case raw >= 6 && raw <= 18:
		return raw - 3
	case raw >= 20 && raw <= 22:
		return raw - 4
	}
	panic(fmt.Sprintf("game: invalid hex coordinate %v", h))
}

// hexCoords is the inverse of HexCoord.Index.
var hexCoords = func() [NumTiles]HexCoord {
	var coords [NumTiles]HexCoord
	for y := int8(-2); y <= 2; y++ {
		for x := int8(-2); x <= 2; x++ {
			if ValidHex(x, y) {
				h := HexCoord{x, y}
				coords[h.Index()] = h
			}
		}
	}
	return coords
}()

// TileCoord returns the axial coordinate of a tile index.
func TileCoord(tile int) HexCoord {
	return hexCoords[tile]
}

// Field builds the FieldID for field f (0..5) of this tile.
func (h HexCoord) Field(f int) FieldID {
	return FieldID(h.Index()*FieldsPerTile + f)
}

// Tile returns the dense tile index this field belongs to.
func (id FieldID) Tile() int {
	return int(id) / FieldsPerTile
}

// Sub returns the field number (0..5) within the tile.
func (id FieldID) Sub() int {
	return int(id) % FieldsPerTile
}

// Coord returns the axial coordinate of the field's tile.
func (id FieldID) Coord() HexCoord {
	return hexCoords[id.Tile()]
}

// Notation renders the field in game notation: file a-e (left to right, the
// rows bend at the c file), rank 1-5 (bottom up), and a trailing field letter
// a-f running counterclockwise from the upper-left triangle.
func (id FieldID) Notation() string {
	h := id.Coord()
	file := byte('c' + h.X)
	rank := byte('0' + h.Y + rankOffset(h.X))
	letter := byte('a' + 5 - id.Sub())
	return string([]byte{file, rank, letter})
}

// ParseField is the inverse of Notation. It accepts strings like "b3f".
func ParseField(s string) (FieldID, error) {
	if len(s) != 3 {
		return 0, fmt.Errorf("game: field notation %q: want 3 characters", s)
	}
	x := int8(s[0]) - 'c'
	if x < -2 || x > 2 {
		return 0, fmt.Errorf("game: field notation %q: bad file", s)
	}
	y := int8(s[1]) - '0' - rankOffset(x)
	if !ValidHex(x, y) {
		return 0, fmt.Errorf("game: field notation %q: bad rank", s)
	}
	f := 5 - (int8(s[2]) - 'a')
	if f < 0 || f > 5 {
		return 0, fmt.Errorf("game: field notation %q: bad field letter", s)
	}
	return HexCoord{x, y}.Field(int(f)), nil
}

func (id FieldID) String() string {
	return id.Notation()
}
