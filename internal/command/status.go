package command

import (
	"errors"
	"strings"

	"github.com/benbeisheim/chessdev-backend/internal/model"
)

// Status tokens written back to clients.
const (
	NoGame        = "NOGAME"
	Mate          = "MATE"
	OutOfTurn     = "OOT"
	InvalidFormat = "INVFMT"
	IllegalMove   = "ILLMOVE"
	Check         = "CHECK"
	OK            = "OK"
)

// ErrNoGame is returned for commands that need a game when none is running.
var ErrNoGame = errors.New("no game in progress")

// Status maps an engine outcome to its token.
func Status(out model.Outcome) string {
	switch out.Kind {
	case model.ExecutedCheckmate:
		return Mate
	case model.ExecutedCheck:
		return Check
	case model.Executed:
		return OK
	}
	return StatusForError(out.Reason)
}

// StatusForError maps a rejection to its token. Unknown errors, including
// a CPU with no legal move, read as an illegal move.
func StatusForError(err error) string {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, ErrNoGame):
		return NoGame
	case errors.Is(err, model.ErrGameOver):
		return Mate
	case errors.Is(err, model.ErrOutOfTurn):
		return OutOfTurn
	case errors.Is(err, ErrInvalidFormat):
		return InvalidFormat
	}
	return IllegalMove
}

// FormatBoard renders board rows as space-separated lines, row 0 first.
func FormatBoard(rows [][]string) string {
	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(strings.Join(row, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
