package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is the per-login mutable state: who is playing, the grade level of
// the current round, and how it is going. Card content itself is never stored
// server-side.
type Session struct {
	ID         uuid.UUID
	PlayerID   uuid.UUID
	Grade      string
	TotalCards int
	ScoreCards int
}

// SessionStore keeps session state in Redis hashes keyed by an opaque
// session id, with a TTL refreshed on each round.
type SessionStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSessionStore(redisClient *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{redis: redisClient, ttl: ttl}
}

func sessionKey(id uuid.UUID) string {
	return "session:" + id.String()
}

// Create opens a fresh session for a login.
func (s *SessionStore) Create(ctx context.Context, playerID uuid.UUID) (uuid.UUID, error) {
	id := uuid.New()
	key := sessionKey(id)

	if err := s.redis.HSet(ctx, key,
		"player_id", playerID.String(),
		"grade", "1",
		"total_cards", 0,
		"score_cards", 0,
	).Err(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := s.redis.Expire(ctx, key, s.ttl).Err(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to set session TTL: %w", err)
	}

	return id, nil
}

func (s *SessionStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	fields, err := s.redis.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrSessionNotFound
	}

	playerID, err := uuid.Parse(fields["player_id"])
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}

	total, _ := strconv.Atoi(fields["total_cards"])
	score, _ := strconv.Atoi(fields["score_cards"])

	return &Session{
		ID:         id,
		PlayerID:   playerID,
		Grade:      fields["grade"],
		TotalCards: total,
		ScoreCards: score,
	}, nil
}

// Exists reports whether the session is still live; used by the auth
// middleware so a destroyed session invalidates its cookie.
func (s *SessionStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := s.redis.Exists(ctx, sessionKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// StartRound records a fresh deck: active grade, card count, score back to
// zero.
func (s *SessionStore) StartRound(ctx context.Context, id uuid.UUID, grade string, totalCards int) error {
	key := sessionKey(id)
	if err := s.redis.HSet(ctx, key,
		"grade", grade,
		"total_cards", totalCards,
		"score_cards", 0,
	).Err(); err != nil {
		return fmt.Errorf("failed to start round: %w", err)
	}
	return s.redis.Expire(ctx, key, s.ttl).Err()
}

// RecordCorrect bumps the correct-answer count for the current round.
func (s *SessionStore) RecordCorrect(ctx context.Context, id uuid.UUID) error {
	return s.redis.HIncrBy(ctx, sessionKey(id), "score_cards", 1).Err()
}

// Destroy removes the session at logout.
func (s *SessionStore) Destroy(ctx context.Context, id uuid.UUID) error {
	return s.redis.Del(ctx, sessionKey(id)).Err()
}
