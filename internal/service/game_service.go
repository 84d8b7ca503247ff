package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/benbeisheim/chessdev-backend/internal/command"
	"github.com/benbeisheim/chessdev-backend/internal/model"
	"go.uber.org/zap"
)

// Reply is the answer to one command line. Board is set only for a board
// request on a live game.
type Reply struct {
	Status string     `json:"status"`
	Board  [][]string `json:"board,omitempty"`
}

// GameFactory starts a game with the human on the given side.
type GameFactory func(human model.Side) *model.Game

type GameService struct {
	sessions *SessionManager
	newGame  GameFactory
	logger   *zap.Logger
}

type ServiceOption func(*GameService)

// WithGameFactory replaces the way new games are started.
func WithGameFactory(f GameFactory) ServiceOption {
	return func(gs *GameService) { gs.newGame = f }
}

// WithCPU configures every new game's CPU. A zero seed draws a fresh random
// source per game; otherwise game n is seeded with (seed, n).
func WithCPU(seed uint64, promote model.PieceKind) ServiceOption {
	var games atomic.Uint64
	return func(gs *GameService) {
		gs.newGame = func(human model.Side) *model.Game {
			opts := []model.GameOption{model.WithPromotion(promote)}
			if seed != 0 {
				opts = append(opts, model.WithRand(rand.New(rand.NewPCG(seed, games.Add(1)))))
			}
			return model.NewGame(human, opts...)
		}
	}
}

func NewGameService(sessions *SessionManager, logger *zap.Logger, opts ...ServiceOption) *GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	gs := &GameService{
		sessions: sessions,
		logger:   logger,
		newGame: func(human model.Side) *model.Game {
			return model.NewGame(human)
		},
	}
	for _, opt := range opts {
		opt(gs)
	}
	return gs
}

func (gs *GameService) CreateSession(owner string) (string, error) {
	s, err := gs.sessions.Create(owner)
	if err != nil {
		return "", err
	}
	return s.ID, nil
}

func (gs *GameService) CloseSession(sessionID, owner string) error {
	return gs.sessions.Delete(sessionID, owner)
}

// Execute runs one command line against the session owned by playerID.
// Protocol outcomes, rejections included, come back in Reply.Status; the
// error is reserved for session lookup and ownership failures.
func (gs *GameService) Execute(ctx context.Context, sessionID, playerID, line string) (Reply, error) {
	if err := ctx.Err(); err != nil {
		return Reply{}, err
	}
	s, err := gs.sessions.Get(sessionID)
	if err != nil {
		return Reply{}, err
	}
	if s.Owner != playerID {
		return Reply{}, ErrNotSessionOwner
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastActive = time.Now()
	reply := gs.run(s, line)
	gs.logger.Debug("command executed",
		zap.String("session", sessionID),
		zap.String("command", line),
		zap.String("status", reply.Status),
	)
	return reply, nil
}

// run dispatches line. Callers hold s.mu.
func (gs *GameService) run(s *Session, line string) Reply {
	cmd, err := command.Parse(line)
	if err != nil {
		// A malformed move still reports the turn guards first.
		var perr *command.ParseError
		if errors.As(err, &perr) && perr.Op == command.OpMove {
			if gerr := humanGuard(s.game); gerr != nil {
				return Reply{Status: command.StatusForError(gerr)}
			}
		}
		return Reply{Status: command.InvalidFormat}
	}

	switch c := cmd.(type) {
	case command.NewGame:
		s.game = gs.newGame(c.Human)
		gs.logger.Info("game started", zap.String("session", s.ID), zap.Stringer("human", c.Human))
		return Reply{Status: command.OK}
	case command.ShowBoard:
		if s.game == nil {
			return Reply{Status: command.NoGame}
		}
		if s.game.Terminal() {
			return Reply{Status: command.Mate}
		}
		return Reply{Status: command.OK, Board: rows(s.game.Render())}
	case command.Move:
		if s.game == nil {
			return Reply{Status: command.NoGame}
		}
		return gs.outcome(s, s.game.SubmitMove(c.Request))
	case command.CPUMove:
		if s.game == nil {
			return Reply{Status: command.NoGame}
		}
		return gs.outcome(s, s.game.SubmitCPUMove())
	case command.EndGame:
		if err := humanGuard(s.game); err != nil {
			return Reply{Status: command.StatusForError(err)}
		}
		s.game = nil
		gs.logger.Info("game ended", zap.String("session", s.ID))
		return Reply{Status: command.OK}
	}
	return Reply{Status: command.InvalidFormat}
}

func (gs *GameService) outcome(s *Session, out model.Outcome) Reply {
	if out.Kind == model.ExecutedCheckmate {
		b := s.game.Board()
		gs.logger.Info("checkmate",
			zap.String("session", s.ID),
			zap.Stringer("move", out.Move),
			zap.String("fen", b.FEN()),
		)
	}
	return Reply{Status: command.Status(out)}
}

// Board renders the session's game for read-only viewers.
func (gs *GameService) Board(sessionID string) ([][]string, error) {
	s, err := gs.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	g := s.Game()
	if g == nil {
		return nil, command.ErrNoGame
	}
	return rows(g.Render()), nil
}

// humanGuard applies the no-game, game-over and turn checks in that order.
func humanGuard(g *model.Game) error {
	switch {
	case g == nil:
		return command.ErrNoGame
	case g.Terminal():
		return model.ErrGameOver
	case !g.HumanToMove():
		return model.ErrOutOfTurn
	}
	return nil
}

func rows(labels [model.BoardSize][model.BoardSize]string) [][]string {
	out := make([][]string, len(labels))
	for i := range labels {
		out[i] = append([]string(nil), labels[i][:]...)
	}
	return out
}
