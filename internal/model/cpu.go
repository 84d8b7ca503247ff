package model

import "math/rand/v2"

// Rand is the source the CPU draws from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// CPU plays one side by picking uniformly among its legal moves. Captures
// are implicit and pawns reaching the far row always promote to promote.
type CPU struct {
	rng     Rand
	promote PieceKind
}

func NewCPU(rng Rand, promote PieceKind) *CPU {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if !promotable(promote) {
		promote = Queen
	}
	return &CPU{rng: rng, promote: promote}
}

// Choose draws one legal move for the side to move. ok is false when that
// side has no legal move.
func (c *CPU) Choose(b *BoardState) (m Move, ok bool) {
	moves := LegalMoves(b, b.SideToMove)
	if len(moves) == 0 {
		return Move{}, false
	}
	return moves[c.rng.IntN(len(moves))], true
}

// Request declares m the way a human would have to: capture and promotion
// filled in from the board and the CPU's promotion choice.
func (c *CPU) Request(b *BoardState, m Move) MoveRequest {
	return Declare(b, m.From, m.To, c.promote)
}
