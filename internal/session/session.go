package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

type Session struct {
	ID        string
	Token     string
	CreatedAt time.Time
	ExpireAt  time.Time
	State     State
}

// New starts a session that lives for ttl from now.
func New(now time.Time, ttl time.Duration) (Session, error) {
	tokenByte := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, tokenByte); err != nil {
		return Session{}, fmt.Errorf("failed to generate new session: %w", err)
	}

	state, err := NewState(now)
	if err != nil {
		return Session{}, fmt.Errorf("failed to seed session state: %w", err)
	}

	return Session{
		ID:        uuid.New().String(),
		Token:     hex.EncodeToString(tokenByte),
		CreatedAt: now,
		ExpireAt:  now.Add(ttl),
		State:     state,
	}, nil
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpireAt)
}

// NeedsRenewal reports whether less than a fifth of ttl is left.
func (s Session) NeedsRenewal(now time.Time, ttl time.Duration) bool {
	return s.ExpireAt.Sub(now) < ttl/5
}

func (s Session) Clone() Session {
	c := s
	c.State = s.State.Clone()
	return c
}
