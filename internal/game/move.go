package game

import (
	"fmt"
	"strings"
)

// MoveKind distinguishes the two actions a turn can take.
type MoveKind uint8

const (
	// MovePiece slides a piece to an empty edge-adjacent field.
	MovePiece MoveKind = iota

	// ExchangePiece spends captured tiles to lift one enemy piece off the
	// board. From is unused; To names the removed piece.
	ExchangePiece
)

// Move is one player action. The zero value is not a valid move.
type Move struct {
	Kind     MoveKind
	From, To FieldID
}

// NoMove marks an absent move, e.g. an empty transposition hint.
var NoMove = Move{From: -1, To: -1}

// IsNone reports whether the move is the absent marker.
func (m Move) IsNone() bool {
	return m.To < 0
}

func (m Move) String() string {
	if m.IsNone() {
		return "Move(none)"
	}
	if m.Kind == ExchangePiece {
		return fmt.Sprintf("Exchange(%s)", m.To.Notation())
	}
	return fmt.Sprintf("Move(%s, %s)", m.From.Notation(), m.To.Notation())
}

// ParseMove reads the String form back: "Move(b3f, c4b)" or "Exchange(c1d)".
func ParseMove(s string) (Move, error) {
	switch {
	case strings.HasPrefix(s, "Move(") && strings.HasSuffix(s, ")"):
		from, to, ok := strings.Cut(s[len("Move("):len(s)-1], ", ")
		if !ok {
			break
		}
		f, err := ParseField(from)
		if err != nil {
			return NoMove, err
		}
		t, err := ParseField(to)
		if err != nil {
			return NoMove, err
		}
		return Move{Kind: MovePiece, From: f, To: t}, nil
	case strings.HasPrefix(s, "Exchange(") && strings.HasSuffix(s, ")"):
		t, err := ParseField(s[len("Exchange(") : len(s)-1])
		if err != nil {
			return NoMove, err
		}
		return Move{Kind: ExchangePiece, From: -1, To: t}, nil
	}
	return NoMove, fmt.Errorf("game: cannot parse move %q", s)
}
