package model

// reach reports whether a piece of side on from can get to to by its own
// movement pattern, given the current occupancy. It does not look at what
// stands on to beyond what the pattern itself needs (pawns care, sliders don't).
type reach func(b *BoardState, from, to Square, side Side) error

var movement = [...]reach{
	Pawn:   pawnReach,
	Knight: stepReach(knightDirs),
	Bishop: slideReach(diagonalDirs),
	Rook:   slideReach(orthogonalDirs),
	Queen:  slideReach(kingDirs),
	King:   stepReach(kingDirs),
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func slideReach(dirs []direction) reach {
	return func(b *BoardState, from, to Square, _ Side) error {
		dRow, dCol := to.Row-from.Row, to.Col-from.Col
		if dRow != 0 && dCol != 0 && abs(dRow) != abs(dCol) {
			return ErrGeometry
		}
		step := direction{sign(dRow), sign(dCol)}
		allowed := false
		for _, dir := range dirs {
			if dir == step {
				allowed = true
				break
			}
		}
		if !allowed {
			return ErrGeometry
		}
		for sq := from.offset(step.dRow, step.dCol); sq != to; sq = sq.offset(step.dRow, step.dCol) {
			if !b.At(sq).Empty() {
				return ErrPathBlocked
			}
		}
		return nil
	}
}

func stepReach(dirs []direction) reach {
	return func(_ *BoardState, from, to Square, _ Side) error {
		for _, dir := range dirs {
			if from.offset(dir.dRow, dir.dCol) == to {
				return nil
			}
		}
		return ErrGeometry
	}
}

func pawnReach(b *BoardState, from, to Square, side Side) error {
	fwd := side.Forward()
	dRow, dCol := to.Row-from.Row, to.Col-from.Col
	switch {
	case dCol == 0 && dRow == fwd:
		if !b.At(to).Empty() {
			return ErrPathBlocked
		}
		return nil
	case dCol == 0 && dRow == 2*fwd && from.Row == side.HomeRow():
		if !b.At(from.offset(fwd, 0)).Empty() || !b.At(to).Empty() {
			return ErrPathBlocked
		}
		return nil
	case abs(dCol) == 1 && dRow == fwd:
		if target := b.At(to); target.Empty() || target.Side == side {
			return ErrGeometry
		}
		return nil
	}
	return ErrGeometry
}

func promotable(k PieceKind) bool {
	return k == Knight || k == Bishop || k == Rook || k == Queen
}

// Check validates req against b and returns nil if the move is legal, or the
// first rule it breaks. The board is probed but always left as it was.
func Check(b *BoardState, req MoveRequest) error {
	if !req.From.Valid() || !req.To.Valid() {
		return ErrOffBoard
	}
	if req.Kind == NoKind || int(req.Kind) >= len(movement) {
		return ErrPieceMismatch
	}
	if b.At(req.From) != (Piece{Kind: req.Kind, Side: req.Mover}) {
		return ErrPieceMismatch
	}
	if req.From == req.To {
		return ErrGeometry
	}
	target := b.At(req.To)
	if !target.Empty() && target.Side == req.Mover {
		return ErrOwnPiece
	}
	if err := movement[req.Kind](b, req.From, req.To, req.Mover); err != nil {
		return err
	}

	if target.Empty() {
		if req.Capture != nil {
			return ErrCaptureDeclaration
		}
	} else if req.Capture == nil || *req.Capture != target {
		return ErrCaptureDeclaration
	}

	if req.Kind == Pawn && req.To.Row == req.Mover.FarRow() {
		p := req.Promotion
		if p == nil || p.Side != req.Mover || !promotable(p.Kind) {
			return ErrPromotionDeclaration
		}
	} else if req.Promotion != nil {
		return ErrPromotionDeclaration
	}

	if !leavesKingSafe(b, req.From, req.To, req.Mover) {
		return ErrSelfCheck
	}
	return nil
}

// Validate reports whether req is a legal move on b.
func Validate(b *BoardState, req MoveRequest) bool {
	return Check(b, req) == nil
}

// probe tentatively moves the piece on from to to. The returned func puts
// both squares and the king cache back exactly as they were.
func (b *BoardState) probe(from, to Square) (restore func()) {
	moving, taken := b.At(from), b.At(to)
	kings := b.kings
	b.Put(to, moving)
	b.clear(from)
	return func() {
		b.Board[from.Row][from.Col] = moving
		b.Board[to.Row][to.Col] = taken
		b.kings = kings
	}
}

func leavesKingSafe(b *BoardState, from, to Square, side Side) bool {
	restore := b.probe(from, to)
	defer restore()
	return !InCheck(b, side)
}
