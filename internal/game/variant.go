package game

import "fmt"

// Variant selects the starting layout.
type Variant uint8

const (
	// Laurentius plays on all 19 tiles with 18 pieces per side; the center
	// tile starts empty.
	Laurentius Variant = iota

	// Ocius is the short game: the six corner tiles are absent and each side
	// starts with 12 pieces.
	Ocius
)

func (v Variant) String() string {
	if v == Ocius {
		return "ocius"
	}
	return "laurentius"
}

// ParseVariant maps a configuration string to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "laurentius", "":
		return Laurentius, nil
	case "ocius":
		return Ocius, nil
	}
	return 0, fmt.Errorf("%w: unknown variant %q", ErrInvalidConfiguration, s)
}

// laurentiusSetup lists, per non-center tile, the two fields that start
// occupied. Field parity fixes the owner: even fields take Black pieces,
// odd fields White, 18 apiece over the full board.
var laurentiusSetup = []struct {
	x, y   int8
	f1, f2 int
}{
	{-2, 2, 0, 4}, {-2, 1, 0, 3}, {-2, 0, 3, 5},
	{-1, 2, 1, 4}, {-1, 1, 0, 4}, {-1, 0, 3, 5}, {-1, -1, 2, 5},
	{0, 2, 1, 5}, {0, 1, 1, 5}, {0, -1, 2, 4}, {0, -2, 2, 4},
	{1, 1, 2, 5}, {1, 0, 0, 2}, {1, -1, 1, 3}, {1, -2, 1, 4},
	{2, 0, 0, 2}, {2, -1, 0, 3}, {2, -2, 1, 3},
}

// ociusAbsent lists the corner tiles missing from the Ocius board.
var ociusAbsent = []HexCoord{
	{2, 0}, {-2, 0}, {0, 2}, {0, -2}, {2, -2}, {-2, 2},
}

func pieceOwner(f int) Color {
	if f%2 == 0 {
		return Black
	}
	return White
}

// setup initializes a board for the variant's starting position.
func (v Variant) setup(b *Board) {
	for t := 0; t < NumTiles; t++ {
		b.extant[t] = true
	}
	b.tiles = NumTiles
	if v == Ocius {
		for _, h := range ociusAbsent {
			b.extant[h.Index()] = false
			b.tiles--
		}
	}
	for _, s := range laurentiusSetup {
		h := HexCoord{s.x, s.y}
		if !b.extant[h.Index()] {
			continue
		}
		b.fields[h.Field(s.f1)] = cellFor(pieceOwner(s.f1))
		b.fields[h.Field(s.f2)] = cellFor(pieceOwner(s.f2))
	}
}

// startPieces returns the per-side piece count of a fresh game.
func (v Variant) startPieces() int {
	if v == Ocius {
		return 12
	}
	return 18
}
