package model

import (
	"fmt"
	"strconv"
	"strings"
)

const BoardSize = 8

type PieceKind uint8

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k PieceKind) Letter() byte {
	switch k {
	case Pawn:
		return 'P'
	case Knight:
		return 'N'
	case Bishop:
		return 'B'
	case Rook:
		return 'R'
	case Queen:
		return 'Q'
	case King:
		return 'K'
	}
	return '*'
}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// ParsePieceKind maps a wire letter (P N B R Q K) to a piece kind.
func ParsePieceKind(c byte) (PieceKind, bool) {
	switch c {
	case 'P':
		return Pawn, true
	case 'N':
		return Knight, true
	case 'B':
		return Bishop, true
	case 'R':
		return Rook, true
	case 'Q':
		return Queen, true
	case 'K':
		return King, true
	}
	return NoKind, false
}

// Side is one of the two players. First moves first and starts on rows 0-1.
type Side uint8

const (
	First Side = iota
	Second
)

func (s Side) Opponent() Side {
	if s == First {
		return Second
	}
	return First
}

// Forward is the row step of this side's pawns.
func (s Side) Forward() int {
	if s == First {
		return 1
	}
	return -1
}

// HomeRow is the row this side's pawns start on.
func (s Side) HomeRow() int {
	if s == First {
		return 1
	}
	return BoardSize - 2
}

// FarRow is the row this side's pawns promote on.
func (s Side) FarRow() int {
	if s == First {
		return BoardSize - 1
	}
	return 0
}

func (s Side) Letter() byte {
	if s == First {
		return 'W'
	}
	return 'B'
}

func (s Side) String() string {
	if s == First {
		return "first"
	}
	return "second"
}

// ParseSide maps a wire letter (W or B) to a side.
func ParseSide(c byte) (Side, bool) {
	switch c {
	case 'W':
		return First, true
	case 'B':
		return Second, true
	}
	return First, false
}

type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Square) Valid() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

func (s Square) offset(dRow, dCol int) Square {
	return Square{Row: s.Row + dRow, Col: s.Col + dCol}
}

// String renders the square in file/rank form, e.g. (1,4) is "e2".
func (s Square) String() string {
	return fmt.Sprintf("%c%d", 'a'+s.Col, s.Row+1)
}

// Piece is a piece on the board. The zero value is an empty cell.
type Piece struct {
	Kind PieceKind `json:"kind"`
	Side Side      `json:"side"`
}

func (p Piece) Empty() bool {
	return p.Kind == NoKind
}

// Label is the two-character cell label: side letter + kind letter, or "**".
func (p Piece) Label() string {
	if p.Empty() {
		return "**"
	}
	return string([]byte{p.Side.Letter(), p.Kind.Letter()})
}

func (p Piece) String() string {
	return p.Label()
}

// BoardState is the authoritative position of a game. kings is a cache of
// where each side's king stands and is kept in sync by Put and Execute.
type BoardState struct {
	Board      [BoardSize][BoardSize]Piece `json:"board"`
	SideToMove Side                        `json:"sideToMove"`
	InCheck    bool                        `json:"inCheck"`
	Terminal   bool                        `json:"terminal"`
	kings      [2]Square
}

func (b *BoardState) At(sq Square) Piece {
	return b.Board[sq.Row][sq.Col]
}

func (b *BoardState) King(s Side) Square {
	return b.kings[s]
}

// Put places p on sq, replacing whatever stood there.
func (b *BoardState) Put(sq Square, p Piece) {
	b.Board[sq.Row][sq.Col] = p
	if p.Kind == King {
		b.kings[p.Side] = sq
	}
}

func (b *BoardState) clear(sq Square) {
	b.Board[sq.Row][sq.Col] = Piece{}
}

var backRank = [BoardSize]PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard opening position with First to move.
func NewBoard() BoardState {
	b := EmptyBoard()
	for col := 0; col < BoardSize; col++ {
		b.Put(Square{Row: 0, Col: col}, Piece{Kind: backRank[col], Side: First})
		b.Put(Square{Row: 1, Col: col}, Piece{Kind: Pawn, Side: First})
		b.Put(Square{Row: 6, Col: col}, Piece{Kind: Pawn, Side: Second})
		b.Put(Square{Row: 7, Col: col}, Piece{Kind: backRank[col], Side: Second})
	}
	return b
}

// EmptyBoard returns a board with no pieces and First to move. Callers
// building a position must place exactly one king per side.
func EmptyBoard() BoardState {
	return BoardState{SideToMove: First}
}

// Labels renders every cell, row 0 first.
func (b *BoardState) Labels() [BoardSize][BoardSize]string {
	var rows [BoardSize][BoardSize]string
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			rows[row][col] = b.Board[row][col].Label()
		}
	}
	return rows
}

// FEN renders the position in Forsyth-Edwards notation with First as white.
// Castling and en passant are not part of this game, so both fields are "-".
func (b *BoardState) FEN() string {
	var sb strings.Builder
	for row := BoardSize - 1; row >= 0; row-- {
		empty := 0
		for col := 0; col < BoardSize; col++ {
			p := b.Board[row][col]
			if p.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			c := p.Kind.Letter()
			if p.Side == Second {
				c += 'a' - 'A'
			}
			sb.WriteByte(c)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row > 0 {
			sb.WriteByte('/')
		}
	}
	if b.SideToMove == First {
		sb.WriteString(" w")
	} else {
		sb.WriteString(" b")
	}
	sb.WriteString(" - - 0 1")
	return sb.String()
}
