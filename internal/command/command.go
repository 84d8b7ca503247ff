// Package command reads the line protocol spoken by chess clients and maps
// engine outcomes back to its status tokens.
//
// A line is a two-digit opcode followed by an optional body:
//
//	00W | 00B                      new game, human plays W or B
//	01                             show board
//	02WPe2-e4[xBP][yWQ]            human move with capture and promotion declarations
//	03                             CPU move
//	04                             end the game
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benbeisheim/chessdev-backend/internal/model"
)

// Op is the two-digit opcode that starts every line.
type Op string

const (
	OpNewGame   Op = "00"
	OpShowBoard Op = "01"
	OpMove      Op = "02"
	OpCPUMove   Op = "03"
	OpEndGame   Op = "04"
)

// ErrInvalidFormat is wrapped by every *ParseError.
var ErrInvalidFormat = errors.New("invalid command format")

// ParseError describes a line that could not be read. Op is set when the
// opcode itself was recognised, so callers can still apply per-command
// guards before reporting the format error.
type ParseError struct {
	Line   string
	Op     Op
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid command %q: %s", e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidFormat
}

// Command is one of NewGame, ShowBoard, Move, CPUMove or EndGame.
type Command interface {
	Op() Op
}

type NewGame struct {
	Human model.Side
}

type ShowBoard struct{}

type Move struct {
	Request model.MoveRequest
}

type CPUMove struct{}

type EndGame struct{}

func (NewGame) Op() Op   { return OpNewGame }
func (ShowBoard) Op() Op { return OpShowBoard }
func (Move) Op() Op      { return OpMove }
func (CPUMove) Op() Op   { return OpCPUMove }
func (EndGame) Op() Op   { return OpEndGame }

// Parse reads a single command line. Surrounding whitespace, including the
// trailing newline, is ignored.
func Parse(line string) (Command, error) {
	s := strings.TrimSpace(line)
	if len(s) < 2 {
		return nil, &ParseError{Line: line, Reason: "missing opcode"}
	}
	op, body := Op(s[:2]), s[2:]
	fail := func(reason string) (Command, error) {
		return nil, &ParseError{Line: line, Op: op, Reason: reason}
	}

	switch op {
	case OpNewGame:
		if len(body) != 1 {
			return fail("expected a single side letter")
		}
		side, ok := model.ParseSide(body[0])
		if !ok {
			return fail(fmt.Sprintf("unknown side %q", body[0]))
		}
		return NewGame{Human: side}, nil
	case OpShowBoard, OpCPUMove, OpEndGame:
		if body != "" {
			return fail("unexpected trailing input")
		}
		switch op {
		case OpShowBoard:
			return ShowBoard{}, nil
		case OpCPUMove:
			return CPUMove{}, nil
		}
		return EndGame{}, nil
	case OpMove:
		req, err := parseMove(body)
		if err != nil {
			return fail(err.Error())
		}
		return Move{Request: req}, nil
	}
	return nil, &ParseError{Line: line, Reason: fmt.Sprintf("unknown opcode %q", op)}
}

// parseMove reads "WPe2-e4" with optional "xBP" and "yWQ" suffixes, in that order.
func parseMove(body string) (model.MoveRequest, error) {
	var req model.MoveRequest
	if len(body) < 7 || body[4] != '-' {
		return req, errors.New("expected <side><piece><from>-<to>")
	}
	p, err := parsePiece(body[:2])
	if err != nil {
		return req, err
	}
	req.Mover, req.Kind = p.Side, p.Kind
	if req.From, err = parseSquare(body[2:4]); err != nil {
		return req, err
	}
	if req.To, err = parseSquare(body[5:7]); err != nil {
		return req, err
	}

	rest := body[7:]
	if strings.HasPrefix(rest, "x") {
		if len(rest) < 3 {
			return req, errors.New("truncated capture declaration")
		}
		c, err := parsePiece(rest[1:3])
		if err != nil {
			return req, err
		}
		req.Capture = &c
		rest = rest[3:]
	}
	if strings.HasPrefix(rest, "y") {
		if len(rest) < 3 {
			return req, errors.New("truncated promotion declaration")
		}
		pr, err := parsePiece(rest[1:3])
		if err != nil {
			return req, err
		}
		req.Promotion = &pr
		rest = rest[3:]
	}
	if rest != "" {
		return req, fmt.Errorf("unexpected trailing input %q", rest)
	}
	return req, nil
}

func parsePiece(s string) (model.Piece, error) {
	side, ok := model.ParseSide(s[0])
	if !ok {
		return model.Piece{}, fmt.Errorf("unknown side %q", s[0])
	}
	kind, ok := model.ParsePieceKind(s[1])
	if !ok {
		return model.Piece{}, fmt.Errorf("unknown piece %q", s[1])
	}
	return model.Piece{Kind: kind, Side: side}, nil
}

func parseSquare(s string) (model.Square, error) {
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return model.Square{}, fmt.Errorf("bad square %q", s)
	}
	return model.Square{Row: int(rank - '1'), Col: int(file - 'a')}, nil
}
