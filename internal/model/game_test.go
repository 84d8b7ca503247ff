package model

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/benbeisheim/chessdev-backend/internal/testutil"
)

// force plays req for whichever side is to move, skipping the human guard.
func (g *Game) force(req MoveRequest) Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.play(req)
}

func TestNewGame(t *testing.T) {
	g := NewGame(Second)
	testutil.AssertEqual(t, g.Human(), Second)
	testutil.AssertEqual(t, g.CPUSide(), First)
	testutil.AssertEqual(t, g.Board(), NewBoard())
	testutil.AssertFalse(t, g.Terminal(), "Terminal")
	testutil.AssertFalse(t, g.HumanToMove(), "HumanToMove")
	opening := NewBoard()
	testutil.AssertEqual(t, g.Render(), opening.Labels())
}

func TestSubmitMoveOpeningPush(t *testing.T) {
	g := NewGame(First)
	out := g.SubmitMove(request("WP", "e2", "e4"))
	if out.Kind != Executed {
		t.Fatalf("SubmitMove(e2-e4) = %v (%v), want executed", out.Kind, out.Reason)
	}
	b := g.Board()
	if b.SideToMove != Second {
		t.Errorf("SideToMove = %v; want second", b.SideToMove)
	}
	testutil.AssertEqual(t, b.At(sq("e4")), piece("WP"))
}

func TestSubmitMoveMissingPiece(t *testing.T) {
	g := NewGame(First)
	out := g.SubmitMove(request("WP", "e3", "e4"))
	if out.Kind != Rejected {
		t.Fatalf("SubmitMove(e3-e4) kind = %v, want rejected", out.Kind)
	}
	testutil.AssertErrorIs(t, out.Reason, ErrPieceMismatch)
	testutil.AssertEqual(t, g.Board(), NewBoard())
}

func TestScholarsMate(t *testing.T) {
	g := NewGame(First)
	steps := []struct {
		human bool
		req   MoveRequest
		want  OutcomeKind
	}{
		{true, request("WP", "e2", "e4"), Executed},
		{false, request("BP", "e7", "e5"), Executed},
		{true, request("WB", "f1", "c4"), Executed},
		{false, request("BN", "b8", "c6"), Executed},
		{true, request("WQ", "d1", "h5"), Executed},
		{false, request("BN", "g8", "f6"), Executed},
		{true, request("WQ", "h5", "f7").capturing("BP"), ExecutedCheckmate},
	}
	for _, step := range steps {
		var out Outcome
		if step.human {
			out = g.SubmitMove(step.req)
		} else {
			out = g.force(step.req)
		}
		if out.Kind != step.want {
			t.Fatalf("%v: kind = %v (%v), want %v", step.req, out.Kind, out.Reason, step.want)
		}
	}

	testutil.AssertTrue(t, g.Terminal(), "Terminal after mate")
	b := g.Board()
	testutil.AssertTrue(t, b.InCheck, "InCheck after mate")

	out := g.SubmitMove(request("WP", "a2", "a3"))
	testutil.AssertErrorIs(t, out.Reason, ErrGameOver)
	out = g.SubmitCPUMove()
	testutil.AssertErrorIs(t, out.Reason, ErrGameOver)
	testutil.AssertEqual(t, g.Board(), b)
}

func TestPromotionRequiresDeclaration(t *testing.T) {
	b := position(t, First, map[string]string{"a1": "WK", "h5": "BK", "b7": "WP"})
	g := NewGame(First, WithBoard(b))

	out := g.SubmitMove(request("WP", "b7", "b8"))
	testutil.AssertErrorIs(t, out.Reason, ErrPromotionDeclaration)
	testutil.AssertEqual(t, g.Board(), b)

	out = g.SubmitMove(request("WP", "b7", "b8").promoting("WQ"))
	if !out.Executed() {
		t.Fatalf("SubmitMove(b7-b8=Q) rejected: %v", out.Reason)
	}
	after := g.Board()
	testutil.AssertEqual(t, after.At(sq("b8")), piece("WQ"))
}

func TestTurnGuards(t *testing.T) {
	t.Run("human second waits", func(t *testing.T) {
		g := NewGame(Second, WithRand(&stubRand{}))
		out := g.SubmitMove(request("BP", "e7", "e5"))
		testutil.AssertErrorIs(t, out.Reason, ErrOutOfTurn)

		out = g.SubmitCPUMove()
		if !out.Executed() {
			t.Fatalf("SubmitCPUMove() rejected: %v", out.Reason)
		}
		out = g.SubmitCPUMove()
		testutil.AssertErrorIs(t, out.Reason, ErrOutOfTurn)

		out = g.SubmitMove(request("BP", "e7", "e5"))
		testutil.AssertTrue(t, out.Executed(), "human move after CPU: %v", out.Reason)
	})

	t.Run("declared mover not to move", func(t *testing.T) {
		g := NewGame(First)
		out := g.SubmitMove(request("BP", "e7", "e5"))
		testutil.AssertErrorIs(t, out.Reason, ErrOutOfTurn)
		testutil.AssertEqual(t, g.Board(), NewBoard())
	})

	t.Run("cpu out of turn", func(t *testing.T) {
		g := NewGame(First)
		out := g.SubmitCPUMove()
		testutil.AssertErrorIs(t, out.Reason, ErrOutOfTurn)
	})
}

func TestRejectedMoveIsIdempotent(t *testing.T) {
	g := NewGame(First)
	req := request("WK", "e1", "e3")
	first := g.SubmitMove(req)
	second := g.SubmitMove(req)
	if first.Kind != Rejected || second.Kind != Rejected {
		t.Fatalf("kinds = %v, %v; want rejected twice", first.Kind, second.Kind)
	}
	if !errors.Is(first.Reason, second.Reason) {
		t.Errorf("reasons differ: %v then %v", first.Reason, second.Reason)
	}
	testutil.AssertEqual(t, g.Board(), NewBoard())
}

func countKings(b *BoardState, side Side) int {
	n := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.Board[row][col] == (Piece{Kind: King, Side: side}) {
				n++
			}
		}
	}
	return n
}

func TestRandomGamesKeepInvariants(t *testing.T) {
	promotions := []PieceKind{Knight, Bishop, Rook, Queen}
	for seed := uint64(1); seed <= 8; seed++ {
		rng := rand.New(rand.NewPCG(seed, 99))
		g := NewGame(First, WithRand(rng))
		for ply := 0; ply < 200 && !g.Terminal(); ply++ {
			b := g.Board()
			mover := b.SideToMove
			var out Outcome
			if g.HumanToMove() {
				moves := LegalMoves(&b, mover)
				if len(moves) == 0 {
					break
				}
				m := moves[rng.IntN(len(moves))]
				out = g.SubmitMove(Declare(&b, m.From, m.To, promotions[rng.IntN(len(promotions))]))
			} else {
				out = g.SubmitCPUMove()
				if errors.Is(out.Reason, ErrNoLegalMove) {
					break
				}
			}
			if !out.Executed() {
				t.Fatalf("seed %d ply %d: legal move rejected: %v", seed, ply, out.Reason)
			}

			after := g.Board()
			if after.SideToMove == mover {
				t.Fatalf("seed %d ply %d: side to move did not alternate", seed, ply)
			}
			if InCheck(&after, mover) {
				t.Fatalf("seed %d ply %d: %v left its own king attacked", seed, ply, mover)
			}
			if after.InCheck != InCheck(&after, after.SideToMove) {
				t.Fatalf("seed %d ply %d: InCheck flag out of date", seed, ply)
			}
			for _, s := range []Side{First, Second} {
				if countKings(&after, s) != 1 || after.At(after.King(s)) != (Piece{Kind: King, Side: s}) {
					t.Fatalf("seed %d ply %d: king cache for %v is wrong", seed, ply, s)
				}
			}
			if (out.Kind == ExecutedCheckmate) != after.Terminal {
				t.Fatalf("seed %d ply %d: outcome %v with Terminal=%v", seed, ply, out.Kind, after.Terminal)
			}
		}
	}
}
