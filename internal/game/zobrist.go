package game

import (
	"lukechampine.com/frand"
)

// https://en.wikipedia.org/wiki/Zobrist_hashing
//
// A position's hash XORs one key per piece on its field, one key per
// removed tile, one key per player for the size of their captured tile
// pool, and sideKey when Black is to move. The pool keys matter: two
// lines can reach the same occupancy with the tile credit split
// differently, and those positions differ in evaluation and in whether
// an exchange is legal.
var (
	pieceKeys [NumFields][2]uint64
	tileKeys  [NumTiles]uint64
	poolKeys  [2][NumTiles + 1]uint64
	sideKey   uint64
)

const bignum = 1<<63 - 2

func init() {
	// Keep 0 out of the key set; it is the empty hash.
	for id := 0; id < NumFields; id++ {
		pieceKeys[id][White] = frand.Uint64n(bignum) + 1
		pieceKeys[id][Black] = frand.Uint64n(bignum) + 1
	}
	for t := 0; t < NumTiles; t++ {
		tileKeys[t] = frand.Uint64n(bignum) + 1
	}
	for n := 0; n <= NumTiles; n++ {
		poolKeys[White][n] = frand.Uint64n(bignum) + 1
		poolKeys[Black][n] = frand.Uint64n(bignum) + 1
	}
	sideKey = frand.Uint64n(bignum) + 1
}
