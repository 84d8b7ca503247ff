package model

import (
	"fmt"
	"strings"
)

// MoveRequest is a move as submitted by a player. Capture and Promotion are
// the player's declarations: the piece they expect to capture on To, and the
// piece a pawn becomes on the far row. nil means nothing declared.
type MoveRequest struct {
	Mover     Side      `json:"mover"`
	Kind      PieceKind `json:"kind"`
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Capture   *Piece    `json:"capture,omitempty"`
	Promotion *Piece    `json:"promotion,omitempty"`
}

func (r MoveRequest) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%c%c%s-%s", r.Mover.Letter(), r.Kind.Letter(), r.From, r.To)
	if r.Capture != nil {
		sb.WriteString("x" + r.Capture.Label())
	}
	if r.Promotion != nil {
		sb.WriteString("y" + r.Promotion.Label())
	}
	return sb.String()
}

type Move struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

func (m Move) String() string {
	return m.From.String() + "-" + m.To.String()
}

type OutcomeKind int

const (
	Rejected OutcomeKind = iota
	Executed
	ExecutedCheck
	ExecutedCheckmate
)

func (k OutcomeKind) String() string {
	switch k {
	case Executed:
		return "executed"
	case ExecutedCheck:
		return "check"
	case ExecutedCheckmate:
		return "checkmate"
	}
	return "rejected"
}

// Outcome is the result of submitting a move. Reason is set only when the
// move was rejected; Move and Captured only when it was executed.
type Outcome struct {
	Kind     OutcomeKind `json:"kind"`
	Reason   error       `json:"-"`
	Move     Move        `json:"move"`
	Captured Piece       `json:"captured"`
}

func rejected(reason error) Outcome {
	return Outcome{Kind: Rejected, Reason: reason}
}

func (o Outcome) Executed() bool {
	return o.Kind != Rejected
}
