package game

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// infinity bounds the alpha-beta window; no real score reaches it.
	infinity = MateScore + 1

	// aspirationWindow is the half-width of the window centered on the
	// previous iteration's score. A fail outside it forces a full-width
	// re-search.
	aspirationWindow = 125

	// qsMaxPly stops runaway quiescence lines.
	qsMaxPly = 16

	// qsDeltaMargin pads the optimistic gain of a quiescence move before
	// comparing against alpha, covering cascade profits the per-move
	// estimate does not count.
	qsDeltaMargin = 2*TileWeight + PieceWeight
)

// Credit: MIT-licensed https://github.com/algerbrex/blunder/blob/main/engine/search.go
type PVLine struct {
	Moves []Move
	score int
}

// Clear the principal variation line.
func (pv *PVLine) Clear() {
	pv.Moves = pv.Moves[:0]
}

// Update the principal variation line with a new best move, and the line of
// best play after it.
func (pv *PVLine) Update(m Move, child PVLine, score int) {
	pv.Clear()
	pv.Moves = append(pv.Moves, m)
	pv.Moves = append(pv.Moves, child.Moves...)
	pv.score = score
}

func (pv PVLine) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "val %d;", pv.score)
	for i, m := range pv.Moves {
		fmt.Fprintf(&sb, " %d: %v;", i+1, m)
	}
	return sb.String()
}

// SearchConfig tunes a Searcher.
type SearchConfig struct {
	// MaxDepth is the last iterative deepening horizon, in plies.
	MaxDepth int

	// TTPow sizes the transposition table at 2^TTPow entries.
	TTPow uint8

	// Contempt is the penalty a repetition draw scores for the side to
	// move; positive values make the engine avoid draws.
	Contempt int
}

// DefaultSearchConfig is a reasonable interactive setting.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MaxDepth: 6,
		TTPow:    defaultTTPow,
		Contempt: 100,
	}
}

// SearchResult reports the outcome of one BestMove call.
type SearchResult struct {
	Move    Move
	Score   int
	Depth   int
	Nodes   uint64
	PV      []Move
	Elapsed time.Duration
}

// Searcher runs iterative deepening negamax with a transposition table.
// One Searcher serves one game at a time; it is not safe for concurrent use.
type Searcher struct {
	cfg SearchConfig
	tt  *TransTable

	pos   *GameState
	nodes uint64
}

// NewSearcher validates the config and allocates the transposition table.
func NewSearcher(cfg SearchConfig) (*Searcher, error) {
	if cfg.MaxDepth < 1 {
		return nil, fmt.Errorf("%w: max depth %d", ErrInvalidConfiguration, cfg.MaxDepth)
	}
	if cfg.TTPow < 10 || cfg.TTPow > 30 {
		return nil, fmt.Errorf("%w: tt pow %d, want 10..30", ErrInvalidConfiguration, cfg.TTPow)
	}
	return &Searcher{cfg: cfg, tt: NewTransTable(cfg.TTPow)}, nil
}

// TT exposes the searcher's transposition table for stats and clearing.
func (s *Searcher) TT() *TransTable { return s.tt }

// BestMove searches gs and returns the best action for the side to move.
// The deepening loop runs until MaxDepth or until ctx is done; a cancelled
// iteration is discarded and the previous result returned.
func (s *Searcher) BestMove(ctx context.Context, gs *GameState) (SearchResult, error) {
	if gs.Outcome() != Ongoing {
		return SearchResult{}, fmt.Errorf("%w: nothing to search", ErrTerminalState)
	}
	s.pos = gs
	s.nodes = 0
	start := time.Now()

	var res SearchResult
	var pv PVLine
	for depth := 1; depth <= s.cfg.MaxDepth; depth++ {
		alpha, beta := -infinity, infinity
		if depth > 1 {
			alpha = res.Score - aspirationWindow
			beta = res.Score + aspirationWindow
		}
		pv.Clear()
		val, err := s.negamax(ctx, depth, 0, alpha, beta, &pv)
		if err == nil && (val <= alpha || val >= beta) {
			log.Debug().Int("depth", depth).Int("val", val).
				Msg("aspiration-fail-researching")
			pv.Clear()
			val, err = s.negamax(ctx, depth, 0, -infinity, infinity, &pv)
		}
		if err != nil {
			if res.Depth == 0 {
				return SearchResult{}, err
			}
			break
		}
		res = SearchResult{
			Move:  pv.Moves[0],
			Score: val,
			Depth: depth,
			Nodes: s.nodes,
			PV:    append([]Move(nil), pv.Moves...),
		}
		log.Debug().Int("depth", depth).Int("val", val).
			Uint64("nodes", s.nodes).Str("pv", pv.String()).Msg("deepening")
		if val >= MateScore-maxPly || val <= -(MateScore-maxPly) {
			break
		}
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

const maxPly = 128

func (s *Searcher) negamax(ctx context.Context, depth, ply, alpha, beta int, pv *PVLine) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.nodes++
	gs := s.pos

	if gs.pieces[gs.turn] == 0 {
		return -(MateScore - ply), nil
	}
	if gs.pieces[gs.turn.Other()] == 0 {
		return MateScore - ply, nil
	}
	if ply > 0 && gs.repetitions[gs.hash] >= 3 {
		return -s.cfg.Contempt, nil
	}

	alphaOrig := alpha
	ttMove := NoMove
	if ply > 0 {
		if val, flag, ok := s.tt.Probe(gs.hash, depth); ok {
			val = fromTTScore(val, ply)
			switch flag {
			case ttExact:
				return val, nil
			case ttLower:
				alpha = max(alpha, val)
			case ttUpper:
				beta = min(beta, val)
			}
			if alpha >= beta {
				return val, nil
			}
		}
	}
	// The hash move hint helps ordering at any stored depth.
	if m, ok := s.tt.BestMove(gs.hash); ok {
		ttMove = m
	}

	if depth == 0 {
		return s.quiesce(ply, alpha, beta)
	}

	moves := gs.LegalMoves()
	if len(moves) == 0 {
		return -(MateScore - ply), nil
	}
	if !ttMove.IsNone() {
		for i, m := range moves {
			if m == ttMove {
				moves[0], moves[i] = moves[i], moves[0]
				break
			}
		}
	}

	bestValue := -infinity
	bestMove := NoMove
	var childPV PVLine
	for _, m := range moves {
		if err := gs.Apply(m); err != nil {
			return 0, err
		}
		val, err := s.negamax(ctx, depth-1, ply+1, -beta, -alpha, &childPV)
		if uerr := gs.Undo(); uerr != nil {
			return 0, uerr
		}
		if err != nil {
			return 0, err
		}
		if -val > bestValue {
			bestValue = -val
			bestMove = m
			pv.Update(m, childPV, bestValue)
		}
		alpha = max(alpha, bestValue)
		if alpha >= beta {
			break
		}
		childPV.Clear()
	}

	flag := ttExact
	if bestValue <= alphaOrig {
		flag = ttUpper
	} else if bestValue >= beta {
		flag = ttLower
	}
	s.tt.Store(gs.hash, depth, toTTScore(bestValue, ply), flag, bestMove)
	return bestValue, nil
}

// quiesce extends the search over captures and exchanges until the position
// goes quiet, so the horizon never cuts a capture sequence in half.
func (s *Searcher) quiesce(ply, alpha, beta int) (int, error) {
	s.nodes++
	gs := s.pos

	if gs.pieces[gs.turn] == 0 {
		return -(MateScore - ply), nil
	}
	if gs.pieces[gs.turn.Other()] == 0 {
		return MateScore - ply, nil
	}

	stand := Evaluate(gs)
	if stand >= beta || ply >= qsMaxPly {
		return stand, nil
	}
	alpha = max(alpha, stand)

	type scored struct {
		m     Move
		gain  int
		exact bool
	}
	var noisy []scored
	for _, m := range gs.LegalMoves() {
		gain, exact := gs.captureEstimate(m)
		if m.Kind == MovePiece && gain <= 0 {
			continue
		}
		noisy = append(noisy, scored{m, gain, exact})
	}
	sort.Slice(noisy, func(i, j int) bool { return noisy[i].gain > noisy[j].gain })

	best := stand
	for _, c := range noisy {
		// Delta pruning: when the estimate bounds the move's whole effect
		// and even that cannot lift alpha, skip it. Moves whose resolution
		// can cascade have no such bound and are always searched.
		if c.exact && stand+c.gain+qsDeltaMargin <= alpha {
			continue
		}
		if err := gs.Apply(c.m); err != nil {
			return 0, err
		}
		val, err := s.quiesce(ply+1, -beta, -alpha)
		if uerr := gs.Undo(); uerr != nil {
			return 0, uerr
		}
		if err != nil {
			return 0, err
		}
		if -val > best {
			best = -val
		}
		alpha = max(alpha, best)
		if alpha >= beta {
			break
		}
	}
	return best, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
