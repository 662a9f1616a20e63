package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	appErrors "github.com/fatali-fataliyev/lesson_board/customErrors"
	"github.com/fatali-fataliyev/lesson_board/internal/contextutil"
	"github.com/fatali-fataliyev/lesson_board/internal/session"
	"github.com/fatali-fataliyev/lesson_board/logging"
)

// InMemoryStorage keeps sessions in a map keyed by token. Every method is
// safe for concurrent use; UpdateSession serialises work on all sessions.
type InMemoryStorage struct {
	mu       sync.Mutex
	sessions map[string]session.Session
}

func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{sessions: make(map[string]session.Session)}
}

func (inMem *InMemoryStorage) GetStorageType() string {
	return "inmemory"
}

func (inMem *InMemoryStorage) SaveSession(ctx context.Context, s session.Session) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	if _, ok := inMem.sessions[s.Token]; ok {
		logging.Logger.Errorf("[TraceID=%s] | duplicate session token in Storage.SaveSession() function | SessionID: %s", traceID, s.ID)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrConflict,
			Message: "Session already exists.",
		}
	}
	inMem.sessions[s.Token] = s.Clone()
	return nil
}

func (inMem *InMemoryStorage) GetSessionByToken(ctx context.Context, token string) (session.Session, error) {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	s, ok := inMem.sessions[strings.TrimSpace(token)]
	if !ok {
		return session.Session{}, sessionNotFound()
	}
	return s.Clone(), nil
}

// UpdateSession runs fn on a copy of the session and stores the copy only
// when fn succeeds.
func (inMem *InMemoryStorage) UpdateSession(ctx context.Context, token string, fn func(s *session.Session) error) error {
	traceID := contextutil.TraceIDFromContext(ctx)

	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	token = strings.TrimSpace(token)
	current, ok := inMem.sessions[token]
	if !ok {
		return sessionNotFound()
	}

	draft := current.Clone()
	if err := fn(&draft); err != nil {
		logging.Logger.Debugf("[TraceID=%s] | session update rolled back in Storage.UpdateSession() function | Error: %v", traceID, err)
		return err
	}
	if draft.Token != token {
		logging.Logger.Errorf("[TraceID=%s] | session token changed in Storage.UpdateSession() function | SessionID: %s", traceID, current.ID)
		return appErrors.ErrorResponse{
			Code:    appErrors.ErrInternal,
			Message: "Failed to update session, please try again later.",
		}
	}
	inMem.sessions[token] = draft
	return nil
}

func (inMem *InMemoryStorage) DeleteSession(ctx context.Context, token string) error {
	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	token = strings.TrimSpace(token)
	if _, ok := inMem.sessions[token]; !ok {
		return sessionNotFound()
	}
	delete(inMem.sessions, token)
	return nil
}

// PurgeExpired drops every session expired at now and returns how many went.
func (inMem *InMemoryStorage) PurgeExpired(ctx context.Context, now time.Time) int {
	traceID := contextutil.TraceIDFromContext(ctx)

	inMem.mu.Lock()
	defer inMem.mu.Unlock()

	purged := 0
	for token, s := range inMem.sessions {
		if s.Expired(now) {
			delete(inMem.sessions, token)
			purged++
		}
	}
	if purged > 0 {
		logging.Logger.Infof("[TraceID=%s] | purged %d expired sessions", traceID, purged)
	}
	return purged
}

func sessionNotFound() error {
	return appErrors.ErrorResponse{
		Code:    appErrors.ErrAuth,
		Message: "Session does not exist, please start a new session.",
	}
}
