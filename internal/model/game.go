package model

import (
	"sync"
)

// Game is one game between a human side and a CPU side. Every operation
// runs to completion under the game's mutex.
type Game struct {
	mu    sync.Mutex
	board BoardState
	human Side
	cpu   *CPU
}

type gameOptions struct {
	rng     Rand
	promote PieceKind
	board   *BoardState
}

type GameOption func(*gameOptions)

// WithRand sets the CPU's random source.
func WithRand(rng Rand) GameOption {
	return func(o *gameOptions) { o.rng = rng }
}

// WithPromotion sets the piece the CPU promotes to. Queen by default.
func WithPromotion(kind PieceKind) GameOption {
	return func(o *gameOptions) { o.promote = kind }
}

// WithBoard starts the game from b instead of the opening position.
func WithBoard(b BoardState) GameOption {
	return func(o *gameOptions) { o.board = &b }
}

// NewGame starts a game in which human plays the given side and the CPU the other.
func NewGame(human Side, opts ...GameOption) *Game {
	o := gameOptions{promote: Queen}
	for _, opt := range opts {
		opt(&o)
	}
	board := NewBoard()
	if o.board != nil {
		board = *o.board
	}
	return &Game{
		board: board,
		human: human,
		cpu:   NewCPU(o.rng, o.promote),
	}
}

func (g *Game) Human() Side {
	return g.human
}

func (g *Game) CPUSide() Side {
	return g.human.Opponent()
}

// Board returns a copy of the current position.
func (g *Game) Board() BoardState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.board
}

func (g *Game) Render() [BoardSize][BoardSize]string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.board.Labels()
}

func (g *Game) Terminal() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.board.Terminal
}

// HumanToMove reports whether the game is live and waiting on the human.
func (g *Game) HumanToMove() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return !g.board.Terminal && g.board.SideToMove == g.human
}

// SubmitMove plays the human's move. Turn and terminal checks run before
// the move is looked at; a rejected move leaves the game untouched.
func (g *Game) SubmitMove(req MoveRequest) Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.guard(g.human); err != nil {
		return rejected(err)
	}
	if req.Mover != g.board.SideToMove {
		return rejected(ErrOutOfTurn)
	}
	return g.play(req)
}

// SubmitCPUMove lets the CPU pick and play a move for its side.
func (g *Game) SubmitCPUMove() Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.guard(g.CPUSide()); err != nil {
		return rejected(err)
	}
	m, ok := g.cpu.Choose(&g.board)
	if !ok {
		return rejected(ErrNoLegalMove)
	}
	return g.play(g.cpu.Request(&g.board, m))
}

func (g *Game) guard(side Side) error {
	if g.board.Terminal {
		return ErrGameOver
	}
	if g.board.SideToMove != side {
		return ErrOutOfTurn
	}
	return nil
}

// play validates, executes and classifies req. Callers hold g.mu.
func (g *Game) play(req MoveRequest) Outcome {
	if err := Check(&g.board, req); err != nil {
		return rejected(err)
	}
	captured := Execute(&g.board, req)
	out := Outcome{
		Kind:     Executed,
		Move:     Move{From: req.From, To: req.To},
		Captured: captured,
	}
	switch {
	case IsCheckmate(&g.board, g.board.SideToMove):
		g.board.Terminal = true
		out.Kind = ExecutedCheckmate
	case g.board.InCheck:
		out.Kind = ExecutedCheck
	}
	return out
}
