package model

import "testing"

// sq converts file/rank notation ("e2") to a Square.
func sq(name string) Square {
	return Square{Row: int(name[1] - '1'), Col: int(name[0] - 'a')}
}

func piece(label string) Piece {
	side, _ := ParseSide(label[0])
	kind, _ := ParsePieceKind(label[1])
	return Piece{Kind: kind, Side: side}
}

func piecePtr(label string) *Piece {
	p := piece(label)
	return &p
}

// position builds a board from square -> label pairs, e.g. {"e1": "WK"}.
func position(t testing.TB, toMove Side, pieces map[string]string) BoardState {
	t.Helper()
	b := EmptyBoard()
	kings := 0
	for name, label := range pieces {
		p := piece(label)
		if p.Kind == King {
			kings++
		}
		b.Put(sq(name), p)
	}
	if kings != 2 {
		t.Fatalf("position needs one king per side, got %d kings", kings)
	}
	b.SideToMove = toMove
	b.InCheck = InCheck(&b, toMove)
	return b
}

func request(label, from, to string) MoveRequest {
	p := piece(label)
	return MoveRequest{Mover: p.Side, Kind: p.Kind, From: sq(from), To: sq(to)}
}

func (r MoveRequest) capturing(label string) MoveRequest {
	r.Capture = piecePtr(label)
	return r
}

func (r MoveRequest) promoting(label string) MoveRequest {
	r.Promotion = piecePtr(label)
	return r
}
