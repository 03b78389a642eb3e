package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"storefront/models"
)

// SessionRepository persists shopper sessions in Redis. A session is created
// once per client and never rotated; the TTL is refreshed on every write.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *SessionRepository) getKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// GetOrCreate loads the session with the given id, creating a fresh one when
// the id is blank or unknown.
func (r *SessionRepository) GetOrCreate(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		session := models.NewSession(uuid.NewString())
		if err := r.save(ctx, session); err != nil {
			return nil, err
		}
		return session, nil
	}

	data, err := r.client.Get(ctx, r.getKey(id)).Result()
	if err == redis.Nil {
		session := models.NewSession(id)
		if err := r.save(ctx, session); err != nil {
			return nil, err
		}
		return session, nil
	}
	if err != nil {
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) save(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = time.Now()

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.getKey(session.ID), data, r.ttl).Err()
}

// SetCurrency updates the session's display currency. Stored amounts are
// unaffected; only presentation changes.
func (r *SessionRepository) SetCurrency(ctx context.Context, id, currency string) (*models.Session, error) {
	session, err := r.GetOrCreate(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Currency = currency
	if err := r.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetCartSize updates the denormalized cart item count. Every cart mutation
// goes through here so the header badge stays eventually consistent.
func (r *SessionRepository) SetCartSize(ctx context.Context, id string, size int) error {
	session, err := r.GetOrCreate(ctx, id)
	if err != nil {
		return err
	}
	session.CartSize = size
	return r.save(ctx, session)
}
