package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"shopmate/domain"
)

// sessionTTL keeps a conversation around for a day after its last turn.
const sessionTTL = 24 * time.Hour

type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{
		client: client,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("chat:session:%s", sessionID)
}

// AppendTurn pushes one exchange onto the session log and refreshes the TTL.
func (r *SessionRepository) AppendTurn(ctx context.Context, sessionID string, turn domain.ChatTurn) error {
	jsonData, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("failed to marshal chat turn: %w", err)
	}

	key := sessionKey(sessionID)
	if err := r.client.RPush(ctx, key, jsonData).Err(); err != nil {
		return fmt.Errorf("failed to store chat turn: %w", err)
	}

	if err := r.client.Expire(ctx, key, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to refresh session TTL: %w", err)
	}

	return nil
}

// GetTurns returns the whole stored conversation, oldest first. An unknown
// session id yields an empty slice.
func (r *SessionRepository) GetTurns(ctx context.Context, sessionID string) ([]domain.ChatTurn, error) {
	vals, err := r.client.LRange(ctx, sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session from Redis: %w", err)
	}

	turns := make([]domain.ChatTurn, 0, len(vals))
	for _, val := range vals {
		var turn domain.ChatTurn
		if err := json.Unmarshal([]byte(val), &turn); err != nil {
			return nil, fmt.Errorf("failed to unmarshal chat turn: %w", err)
		}
		turns = append(turns, turn)
	}

	return turns, nil
}
