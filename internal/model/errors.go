package model

import (
	"errors"
	"fmt"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrOutOfTurn   = errors.New("not your turn")
	ErrIllegalMove = errors.New("illegal move")
	ErrNoLegalMove = errors.New("no legal move available")
)

// Reasons a move fails validation. Each wraps ErrIllegalMove.
var (
	ErrOffBoard             = fmt.Errorf("%w: square off the board", ErrIllegalMove)
	ErrPieceMismatch        = fmt.Errorf("%w: declared piece is not on the origin square", ErrIllegalMove)
	ErrGeometry             = fmt.Errorf("%w: piece cannot move that way", ErrIllegalMove)
	ErrPathBlocked          = fmt.Errorf("%w: path is blocked", ErrIllegalMove)
	ErrOwnPiece             = fmt.Errorf("%w: destination holds own piece", ErrIllegalMove)
	ErrCaptureDeclaration   = fmt.Errorf("%w: capture declaration does not match the board", ErrIllegalMove)
	ErrPromotionDeclaration = fmt.Errorf("%w: promotion declaration missing or invalid", ErrIllegalMove)
	ErrSelfCheck            = fmt.Errorf("%w: move leaves own king attacked", ErrIllegalMove)
)
