package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/subscription"
)

type SubscriptionRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byEmail map[string]subscription.Subscription
	order   []string
}

func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{
		nextID:  1,
		byEmail: make(map[string]subscription.Subscription),
	}
}

func (r *SubscriptionRepository) GetByEmail(_ context.Context, email string) (subscription.Subscription, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byEmail[email]
	return item, ok, nil
}

func (r *SubscriptionRepository) Create(_ context.Context, item subscription.Subscription) (subscription.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[item.Email]; exists {
		return subscription.Subscription{}, fmt.Errorf("%w: %s", subscription.ErrEmailTaken, item.Email)
	}

	item.ID = r.nextID
	r.nextID++
	r.byEmail[item.Email] = item
	r.order = append(r.order, item.Email)
	return item, nil
}

func (r *SubscriptionRepository) SetActive(_ context.Context, email string, active bool, at time.Time) (subscription.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byEmail[email]
	if !ok {
		return subscription.Subscription{}, fmt.Errorf("%w: %s", subscription.ErrNotFound, email)
	}
	item.IsActive = active
	item.UpdatedAt = at
	if active {
		item.SubscriptionDate = at
	}
	r.byEmail[email] = item
	return item, nil
}

func (r *SubscriptionRepository) CountActive(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.byEmail {
		if item.IsActive {
			count++
		}
	}
	return count, nil
}

func (r *SubscriptionRepository) List(_ context.Context) ([]subscription.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]subscription.Subscription, 0, len(r.order))
	for _, email := range r.order {
		out = append(out, r.byEmail[email])
	}
	return out, nil
}
