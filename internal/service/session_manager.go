package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbeisheim/chessdev-backend/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotSessionOwner = errors.New("player does not own this session")
	ErrTooManySessions = errors.New("too many open sessions")
	ErrMissingOwner    = errors.New("session owner is required")
)

// Session is one client's game slot. The slot is empty until a new-game
// command arrives and again after the game is ended.
type Session struct {
	ID        string
	Owner     string
	CreatedAt time.Time

	mu         sync.Mutex
	game       *model.Game
	lastActive time.Time
}

// Game returns the running game, or nil.
func (s *Session) Game() *model.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.game
}

type SessionManager struct {
	sessions    map[string]*Session
	maxSessions int
	mu          sync.RWMutex
	logger      *zap.Logger
}

// NewSessionManager creates a manager holding at most maxSessions sessions.
// maxSessions <= 0 means no limit.
func NewSessionManager(maxSessions int, logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		logger:      logger,
	}
}

func (sm *SessionManager) Create(owner string) (*Session, error) {
	if owner == "" {
		return nil, ErrMissingOwner
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.maxSessions > 0 && len(sm.sessions) >= sm.maxSessions {
		sm.logger.Warn("session limit reached", zap.Int("max", sm.maxSessions))
		return nil, ErrTooManySessions
	}

	s := &Session{
		ID:        uuid.New().String(),
		Owner:     owner,
		CreatedAt: time.Now(),
	}
	s.lastActive = s.CreatedAt
	sm.sessions[s.ID] = s
	sm.logger.Info("session created", zap.String("session", s.ID), zap.String("owner", owner))
	return s, nil
}

func (sm *SessionManager) Get(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	s, ok := sm.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete removes the session if owner created it.
func (sm *SessionManager) Delete(id, owner string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	s, ok := sm.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if s.Owner != owner {
		return ErrNotSessionOwner
	}
	delete(sm.sessions, id)
	sm.logger.Info("session closed", zap.String("session", id))
	return nil
}

func (sm *SessionManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return len(sm.sessions)
}

// ReapIdle closes every session with no command since before now-idle and
// returns how many it closed.
func (sm *SessionManager) ReapIdle(now time.Time, idle time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	reaped := 0
	for id, s := range sm.sessions {
		s.mu.Lock()
		stale := now.Sub(s.lastActive) > idle
		s.mu.Unlock()
		if stale {
			delete(sm.sessions, id)
			reaped++
		}
	}
	if reaped > 0 {
		sm.logger.Info("idle sessions closed", zap.Int("count", reaped), zap.Int("open", len(sm.sessions)))
	}
	return reaped
}

// RunReaper calls ReapIdle every interval until ctx is done.
func (sm *SessionManager) RunReaper(ctx context.Context, idle, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			sm.ReapIdle(now, idle)
		}
	}
}
