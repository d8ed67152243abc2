package game

import (
	"errors"
	"testing"

	"lukechampine.com/frand"
)

// testState builds a position from explicit piece placements. All tiles are
// extant; the caller keeps enough tiles occupied that the layout is stable.
func testState(t *testing.T, pieces map[FieldID]Color, turn Color, rate int) *GameState {
	t.Helper()
	gs := &GameState{
		variant:     Laurentius,
		rate:        rate,
		turn:        turn,
		repetitions: make(map[uint64]int),
	}
	for i := 0; i < NumTiles; i++ {
		gs.board.extant[i] = true
	}
	gs.board.tiles = NumTiles
	for id, c := range pieces {
		gs.board.fields[id] = cellFor(c)
		gs.pieces[c]++
	}
	gs.hash = gs.computeHash()
	gs.repetitions[gs.hash] = 1
	return gs
}

// fillerPieces puts one piece on field 0 of every tile not listed in skip,
// alternating colors, so no tile is empty and no group is short of
// liberties.
func fillerPieces(skip ...int) map[FieldID]Color {
	skipped := make(map[int]bool, len(skip))
	for _, t := range skip {
		skipped[t] = true
	}
	pieces := make(map[FieldID]Color)
	for t := 0; t < NumTiles; t++ {
		if skipped[t] {
			continue
		}
		pieces[FieldID(t*FieldsPerTile)] = Color(t % 2)
	}
	return pieces
}

func snapshot(gs *GameState) GameState {
	cp := *gs
	cp.history = nil
	cp.repetitions = nil
	return cp
}

func sameState(a, b GameState) bool {
	return a.board == b.board && a.turn == b.turn && a.pieces == b.pieces &&
		a.captured == b.captured && a.hash == b.hash
}

func TestNewGameLaurentius(t *testing.T) {
	gs, err := NewGame(Laurentius, 1)
	if err != nil {
		t.Fatal(err)
	}
	if gs.Pieces(White) != 18 || gs.Pieces(Black) != 18 {
		t.Errorf("pieces = %d/%d, want 18/18", gs.Pieces(White), gs.Pieces(Black))
	}
	if gs.Board().Tiles() != 19 {
		t.Errorf("tiles = %d, want 19", gs.Board().Tiles())
	}
	if gs.Turn() != White {
		t.Errorf("turn = %v, want White", gs.Turn())
	}
	center := HexCoord{0, 0}
	for f := 0; f < FieldsPerTile; f++ {
		if gs.Board().Occupied(center.Field(f)) {
			t.Errorf("center field %d occupied at start", f)
		}
	}
	// Ownership follows field parity.
	if c, ok := gs.Board().PieceAt(HexCoord{1, 0}.Field(0)); !ok || c != Black {
		t.Error("want Black on e3f")
	}
	if c, ok := gs.Board().PieceAt(HexCoord{-2, 0}.Field(3)); !ok || c != White {
		t.Error("want White on a1c")
	}
	if gs.Hash() == 0 {
		t.Error("zero hash for start position")
	}
	if gs.Hash() != gs.computeHash() {
		t.Error("incremental hash does not match recomputation")
	}
}

func TestNewGameOcius(t *testing.T) {
	gs, err := NewGame(Ocius, 2)
	if err != nil {
		t.Fatal(err)
	}
	if gs.Pieces(White) != 12 || gs.Pieces(Black) != 12 {
		t.Errorf("pieces = %d/%d, want 12/12", gs.Pieces(White), gs.Pieces(Black))
	}
	if gs.Board().Tiles() != 13 {
		t.Errorf("tiles = %d, want 13", gs.Board().Tiles())
	}
	for _, h := range ociusAbsent {
		if gs.Board().TileExtant(h.Index()) {
			t.Errorf("corner tile %v extant in ocius", h)
		}
	}
}

func TestNewGameRejectsBadConfig(t *testing.T) {
	if _, err := NewGame(Laurentius, 0); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("rate 0: got %v, want ErrInvalidConfiguration", err)
	}
	if _, err := NewGame(Laurentius, 3); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("rate 3: got %v, want ErrInvalidConfiguration", err)
	}
	if _, err := NewGame(Variant(9), 1); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("bad variant: got %v, want ErrInvalidConfiguration", err)
	}
}

func TestApplyRejectsIllegalMoves(t *testing.T) {
	gs, _ := NewGame(Laurentius, 1)
	from := HexCoord{-2, 0}.Field(5) // White piece
	cases := []Move{
		{Kind: MovePiece, From: HexCoord{0, 0}.Field(0), To: HexCoord{0, 0}.Field(1)}, // empty origin
		{Kind: MovePiece, From: HexCoord{1, 0}.Field(0), To: HexCoord{1, 0}.Field(1)}, // opponent piece
		{Kind: MovePiece, From: from, To: HexCoord{2, 0}.Field(0)},                    // not adjacent
		{Kind: MovePiece, From: from, To: HexCoord{-2, 0}.Field(3)},                   // occupied target
		{Kind: ExchangePiece, From: -1, To: HexCoord{1, 0}.Field(0)},                  // no captured tiles
	}
	before := snapshot(gs)
	for _, m := range cases {
		if err := gs.Apply(m); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("Apply(%v): got %v, want ErrIllegalMove", m, err)
		}
	}
	if !sameState(before, snapshot(gs)) {
		t.Error("state changed by rejected moves")
	}
}

func TestUndoWithoutHistory(t *testing.T) {
	gs, _ := NewGame(Laurentius, 1)
	if err := gs.Undo(); !errors.Is(err, ErrNoHistory) {
		t.Errorf("got %v, want ErrNoHistory", err)
	}
}

func TestEnclosureCapture(t *testing.T) {
	trapped := HexCoord{0, 0}.Field(0)
	pieces := fillerPieces(HexCoord{0, 0}.Index(), HexCoord{0, 1}.Index())
	pieces[trapped] = Black
	pieces[HexCoord{0, 0}.Field(1)] = White
	pieces[HexCoord{0, 0}.Field(5)] = White
	pieces[HexCoord{0, 1}.Field(4)] = White
	// An extra Black piece keeps the game alive after the capture.
	far := HexCoord{2, -2}.Field(1)
	pieces[far] = Black

	gs := testState(t, pieces, White, 1)
	before := snapshot(gs)

	// Sliding f4 -> f3 on the upper tile fills the trapped piece's last
	// empty neighbor.
	m := Move{Kind: MovePiece, From: HexCoord{0, 1}.Field(4), To: HexCoord{0, 1}.Field(3)}
	if err := gs.Apply(m); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if gs.Board().Occupied(trapped) {
		t.Error("trapped piece still on the board")
	}
	if got := gs.Pieces(Black); got != before.pieces[Black]-1 {
		t.Errorf("black pieces = %d, want %d", got, before.pieces[Black]-1)
	}
	if gs.Hash() != gs.computeHash() {
		t.Error("incremental hash diverged")
	}
	if err := gs.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !sameState(before, snapshot(gs)) {
		t.Error("undo did not restore the position")
	}
}

func TestTransitiveEnclosureCapturesWholeGroup(t *testing.T) {
	// Two connected Black pieces on the center tile, walled in together.
	b1 := HexCoord{0, 0}.Field(0)
	b2 := HexCoord{0, 0}.Field(1)
	pieces := fillerPieces(HexCoord{0, 0}.Index(), HexCoord{0, 1}.Index(), HexCoord{1, 0}.Index())
	pieces[b1] = Black
	pieces[b2] = Black
	pieces[HexCoord{0, 0}.Field(2)] = White
	pieces[HexCoord{0, 0}.Field(5)] = White
	pieces[HexCoord{0, 1}.Field(3)] = White
	pieces[HexCoord{1, 0}.Field(5)] = White // keeps that tile occupied
	pieces[HexCoord{2, -2}.Field(1)] = Black

	gs := testState(t, pieces, White, 1)
	blackBefore := gs.Pieces(Black)
	// b2's cross-tile neighbor is field 4 of tile (1, 0); filling it
	// suffocates both pieces at once.
	m := Move{Kind: MovePiece, From: HexCoord{1, 0}.Field(5), To: HexCoord{1, 0}.Field(4)}
	if err := gs.Apply(m); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if gs.Board().Occupied(b1) || gs.Board().Occupied(b2) {
		t.Error("enclosed group not fully captured")
	}
	if got := gs.Pieces(Black); got != blackBefore-2 {
		t.Errorf("black pieces = %d, want %d", got, blackBefore-2)
	}
}

func TestTileRemovalCreditsMover(t *testing.T) {
	corner := HexCoord{2, -2}.Index()
	mover := HexCoord{2, -2}.Field(0)
	pieces := fillerPieces(corner, HexCoord{2, -1}.Index())
	pieces[mover] = White
	pieces[HexCoord{2, -1}.Field(0)] = Black
	pieces[HexCoord{2, -1}.Field(5)] = White

	gs := testState(t, pieces, White, 1)
	before := snapshot(gs)

	// Leaving the corner tile empties it; it hangs on three contiguous
	// neighbors, so it comes off and the mover banks it.
	m := Move{Kind: MovePiece, From: mover, To: HexCoord{2, -1}.Field(3)}
	if err := gs.Apply(m); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if gs.Board().TileExtant(corner) {
		t.Error("corner tile still extant")
	}
	if got := gs.CapturedTiles(White); got != 1 {
		t.Errorf("white captured tiles = %d, want 1", got)
	}
	if gs.Board().Tiles() != NumTiles-1 {
		t.Errorf("tiles = %d, want %d", gs.Board().Tiles(), NumTiles-1)
	}
	if gs.Hash() != gs.computeHash() {
		t.Error("incremental hash diverged")
	}
	if err := gs.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !sameState(before, snapshot(gs)) {
		t.Error("undo did not restore the position")
	}
}

func TestExchangeSpendsTilesWithoutCredit(t *testing.T) {
	corner := HexCoord{2, -2}.Index()
	victim := HexCoord{2, -2}.Field(1)
	pieces := fillerPieces(corner)
	pieces[victim] = Black
	pieces[HexCoord{-2, 0}.Field(3)] = Black // keeps Black alive

	gs := testState(t, pieces, White, 1)
	gs.captured[White] = 1
	gs.hash = gs.computeHash()
	before := snapshot(gs)

	if err := gs.Apply(Move{Kind: ExchangePiece, From: -1, To: victim}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if gs.Board().Occupied(victim) {
		t.Error("exchanged piece still on the board")
	}
	// The emptied corner tile cascades off the board, but an exchange
	// earns nothing: the pool only shrinks by the fee.
	if gs.Board().TileExtant(corner) {
		t.Error("corner tile still extant after exchange emptied it")
	}
	if got := gs.CapturedTiles(White); got != 0 {
		t.Errorf("white captured tiles = %d, want 0", got)
	}
	if err := gs.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if !sameState(before, snapshot(gs)) {
		t.Error("undo did not restore the position")
	}
}

func TestExchangeRateTwo(t *testing.T) {
	victim := HexCoord{1, 0}.Field(0)
	pieces := fillerPieces()
	pieces[victim] = Black
	gs := testState(t, pieces, White, 2)

	gs.captured[White] = 1
	gs.hash = gs.computeHash()
	m := Move{Kind: ExchangePiece, From: -1, To: victim}
	if err := gs.Apply(m); !errors.Is(err, ErrIllegalMove) {
		t.Fatalf("one tile at rate two: got %v, want ErrIllegalMove", err)
	}
	gs.captured[White] = 2
	gs.hash = gs.computeHash()
	if err := gs.Apply(m); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := gs.CapturedTiles(White); got != 0 {
		t.Errorf("white captured tiles = %d, want 0", got)
	}
}

func TestHashCoversCapturedTilePools(t *testing.T) {
	// Two lines can transpose to the same occupancy with the tile credit
	// on different sides. Those positions evaluate differently and differ
	// in exchange rights, so their fingerprints must differ too.
	pieces := fillerPieces()
	base := testState(t, pieces, White, 1)
	whiteCredit := testState(t, pieces, White, 1)
	whiteCredit.captured[White] = 1
	whiteCredit.hash = whiteCredit.computeHash()
	blackCredit := testState(t, pieces, White, 1)
	blackCredit.captured[Black] = 1
	blackCredit.hash = blackCredit.computeHash()

	if base.Hash() == whiteCredit.Hash() {
		t.Error("white pool credit does not change the hash")
	}
	if base.Hash() == blackCredit.Hash() {
		t.Error("black pool credit does not change the hash")
	}
	if whiteCredit.Hash() == blackCredit.Hash() {
		t.Error("hash cannot tell which side holds the credited tile")
	}
}

func TestThreefoldRepetitionDraw(t *testing.T) {
	gs, _ := NewGame(Laurentius, 1)
	w1 := HexCoord{-1, 0}.Field(3)
	w2 := HexCoord{-1, 0}.Field(4)
	b1 := HexCoord{1, 0}.Field(0)
	b2 := HexCoord{1, 0}.Field(1)
	shuffle := []Move{
		{Kind: MovePiece, From: w1, To: w2},
		{Kind: MovePiece, From: b1, To: b2},
		{Kind: MovePiece, From: w2, To: w1},
		{Kind: MovePiece, From: b2, To: b1},
	}
	for cycle := 0; cycle < 2; cycle++ {
		if got := gs.Outcome(); got != Ongoing {
			t.Fatalf("outcome = %v before cycle %d, want ongoing", got, cycle)
		}
		for _, m := range shuffle {
			if err := gs.Apply(m); err != nil {
				t.Fatalf("Apply(%v): %v", m, err)
			}
		}
	}
	if gs.Repetitions() != 3 {
		t.Fatalf("repetitions = %d, want 3", gs.Repetitions())
	}
	if got := gs.Outcome(); got != Draw {
		t.Errorf("outcome = %v, want draw", got)
	}
	if err := gs.Apply(shuffle[0]); !errors.Is(err, ErrTerminalState) {
		t.Errorf("apply in drawn game: got %v, want ErrTerminalState", err)
	}
}

func TestOutcomeNoPiecesLoses(t *testing.T) {
	pieces := fillerPieces()
	// Recolor everything White, then hand Black a single doomed piece.
	for id := range pieces {
		pieces[id] = White
	}
	trapped := HexCoord{0, 0}.Field(0)
	pieces[trapped] = Black
	pieces[HexCoord{0, 0}.Field(1)] = White
	pieces[HexCoord{0, 0}.Field(5)] = White
	pieces[HexCoord{0, 1}.Field(4)] = White
	gs := testState(t, pieces, White, 1)

	m := Move{Kind: MovePiece, From: HexCoord{0, 1}.Field(4), To: HexCoord{0, 1}.Field(3)}
	if err := gs.Apply(m); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := gs.Outcome(); got != WhiteWins {
		t.Errorf("outcome = %v, want white wins", got)
	}
}

func TestRandomPlayoutRoundTrip(t *testing.T) {
	for _, variant := range []Variant{Laurentius, Ocius} {
		gs, err := NewGame(variant, 1)
		if err != nil {
			t.Fatal(err)
		}
		start := snapshot(gs)
		plies := 0
		for ; plies < 300; plies++ {
			if gs.Outcome() != Ongoing {
				break
			}
			moves := gs.LegalMoves()
			if len(moves) == 0 {
				t.Fatalf("%v: ongoing game with no legal moves at ply %d", variant, plies)
			}
			if gs.hasLegalAction() != (len(moves) > 0) {
				t.Fatalf("%v: hasLegalAction disagrees with LegalMoves at ply %d", variant, plies)
			}
			m := moves[frand.Intn(len(moves))]
			if err := gs.Apply(m); err != nil {
				t.Fatalf("%v: Apply(%v) at ply %d: %v", variant, m, plies, err)
			}
			if gs.Hash() != gs.computeHash() {
				t.Fatalf("%v: hash diverged after %v at ply %d", variant, m, plies)
			}
			w, b := 0, 0
			for id := FieldID(0); id < NumFields; id++ {
				if c, ok := gs.Board().PieceAt(id); ok {
					if c == White {
						w++
					} else {
						b++
					}
				}
			}
			if w != gs.Pieces(White) || b != gs.Pieces(Black) {
				t.Fatalf("%v: piece counts %d/%d disagree with board %d/%d",
					variant, gs.Pieces(White), gs.Pieces(Black), w, b)
			}
		}
		for i := 0; i < plies; i++ {
			if err := gs.Undo(); err != nil {
				t.Fatalf("%v: Undo %d: %v", variant, i, err)
			}
		}
		if !sameState(start, snapshot(gs)) {
			t.Errorf("%v: unwinding %d plies did not restore the start", variant, plies)
		}
		if gs.Repetitions() != 1 {
			t.Errorf("%v: start repetition count = %d, want 1", variant, gs.Repetitions())
		}
	}
}
