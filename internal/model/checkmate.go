package model

// Declare builds the fully declared request for moving the piece on from to
// to: the capture is declared whenever to is occupied, and a pawn reaching
// the far row promotes to promote.
func Declare(b *BoardState, from, to Square, promote PieceKind) MoveRequest {
	piece := b.At(from)
	req := MoveRequest{Mover: piece.Side, Kind: piece.Kind, From: from, To: to}
	if target := b.At(to); !target.Empty() {
		req.Capture = &target
	}
	if piece.Kind == Pawn && to.Row == piece.Side.FarRow() {
		req.Promotion = &Piece{Kind: promote, Side: piece.Side}
	}
	return req
}

// LegalMoves lists every legal (origin, destination) pair for side, scanning
// origins and destinations in row-major order.
func LegalMoves(b *BoardState, side Side) []Move {
	var moves []Move
	forEachCandidate(b, side, func(from, to Square) bool {
		moves = append(moves, Move{From: from, To: to})
		return true
	})
	return moves
}

// HasLegalMove reports whether side has at least one legal move.
func HasLegalMove(b *BoardState, side Side) bool {
	found := false
	forEachCandidate(b, side, func(Square, Square) bool {
		found = true
		return false
	})
	return found
}

// forEachCandidate calls fn for each legal move of side until fn returns false.
// Promotions are tried as queens; the choice of piece never changes legality.
func forEachCandidate(b *BoardState, side Side, fn func(from, to Square) bool) {
	for fromRow := 0; fromRow < BoardSize; fromRow++ {
		for fromCol := 0; fromCol < BoardSize; fromCol++ {
			from := Square{Row: fromRow, Col: fromCol}
			if p := b.At(from); p.Empty() || p.Side != side {
				continue
			}
			for toRow := 0; toRow < BoardSize; toRow++ {
				for toCol := 0; toCol < BoardSize; toCol++ {
					to := Square{Row: toRow, Col: toCol}
					if !Validate(b, Declare(b, from, to, Queen)) {
						continue
					}
					if !fn(from, to) {
						return
					}
				}
			}
		}
	}
}

// IsCheckmate reports whether side is in check with no legal way out. The
// search probes every candidate through the validator and leaves b unchanged.
func IsCheckmate(b *BoardState, side Side) bool {
	if !InCheck(b, side) {
		return false
	}
	return !HasLegalMove(b, side)
}
