package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/toyfront/storefront-gateway/models"
)

// CheckoutRepository persists the per-user checkout wizard state in Redis.
// State is transient: it expires on its own and is deleted once the order
// completes.
type CheckoutRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCheckoutRepository(client *redis.Client, ttl time.Duration) *CheckoutRepository {
	return &CheckoutRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CheckoutRepository) getKey(userID string) string {
	return fmt.Sprintf("checkout:user:%s", userID)
}

func (r *CheckoutRepository) GetSession(ctx context.Context, userID string) (*models.CheckoutSession, error) {
	data, err := r.client.Get(ctx, r.getKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session models.CheckoutSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *CheckoutRepository) SaveSession(ctx context.Context, session *models.CheckoutSession) error {
	session.UpdatedAt = time.Now()

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.getKey(session.UserID), data, r.ttl).Err()
}

func (r *CheckoutRepository) DeleteSession(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.getKey(userID)).Err()
}

func (r *CheckoutRepository) getIntentKey(intentID string) string {
	return fmt.Sprintf("checkout:intent:%s", intentID)
}

// IndexPaymentIntent records which user a payment intent belongs to, so the
// webhook (which only knows the intent id) can find the session.
func (r *CheckoutRepository) IndexPaymentIntent(ctx context.Context, intentID, userID string) error {
	return r.client.Set(ctx, r.getIntentKey(intentID), userID, r.ttl).Err()
}

// UserByPaymentIntent resolves a payment intent id back to the user whose
// checkout opened it. Returns "" when the index entry has expired.
func (r *CheckoutRepository) UserByPaymentIntent(ctx context.Context, intentID string) (string, error) {
	userID, err := r.client.Get(ctx, r.getIntentKey(intentID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}
