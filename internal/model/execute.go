package model

// Execute applies an already validated move to b and returns the piece that
// stood on the destination, if any. It does not re-validate and never
// touches Terminal.
func Execute(b *BoardState, req MoveRequest) Piece {
	piece := b.At(req.From)
	captured := b.At(req.To)
	if req.Promotion != nil && piece.Kind == Pawn {
		piece.Kind = req.Promotion.Kind
	}
	b.Put(req.To, piece)
	b.clear(req.From)

	next := req.Mover.Opponent()
	b.InCheck = InCheck(b, next)
	b.SideToMove = next
	return captured
}
