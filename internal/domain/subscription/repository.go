package subscription

import (
	"context"
	"time"
)

// Repository describes subscription persistence needs from use cases.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (Subscription, bool, error)
	Create(ctx context.Context, item Subscription) (Subscription, error)
	SetActive(ctx context.Context, email string, active bool, at time.Time) (Subscription, error)
	CountActive(ctx context.Context) (int, error)
	List(ctx context.Context) ([]Subscription, error)
}
