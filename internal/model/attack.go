package model

type direction struct {
	dRow, dCol int
}

func (d direction) diagonal() bool {
	return d.dRow != 0 && d.dCol != 0
}

var (
	orthogonalDirs = []direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalDirs   = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	kingDirs       = append(append([]direction{}, orthogonalDirs...), diagonalDirs...)
	knightDirs     = []direction{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

// IsAttacked reports whether any piece of defender's opponent attacks sq.
// The board is only read. sq must be on the board.
func IsAttacked(b *BoardState, sq Square, defender Side) bool {
	attacker := defender.Opponent()
	enemy := func(target Square, kind PieceKind) bool {
		return target.Valid() && b.At(target) == Piece{Kind: kind, Side: attacker}
	}

	for _, dir := range kingDirs {
		target := sq.offset(dir.dRow, dir.dCol)
		for target.Valid() {
			p := b.At(target)
			if !p.Empty() {
				if p.Side == attacker {
					switch p.Kind {
					case Queen:
						return true
					case Rook:
						if !dir.diagonal() {
							return true
						}
					case Bishop:
						if dir.diagonal() {
							return true
						}
					}
				}
				break
			}
			target = target.offset(dir.dRow, dir.dCol)
		}
	}

	for _, dir := range knightDirs {
		if enemy(sq.offset(dir.dRow, dir.dCol), Knight) {
			return true
		}
	}

	// An enemy pawn strikes sq from one row ahead of it, seen from the defender.
	ahead := defender.Forward()
	if enemy(sq.offset(ahead, -1), Pawn) || enemy(sq.offset(ahead, 1), Pawn) {
		return true
	}

	for _, dir := range kingDirs {
		if enemy(sq.offset(dir.dRow, dir.dCol), King) {
			return true
		}
	}
	return false
}

// InCheck reports whether side's king is attacked.
func InCheck(b *BoardState, side Side) bool {
	return IsAttacked(b, b.King(side), side)
}
