package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/subscription"
	qb "github.com/riskibarqy/nfl-trends-api/internal/platform/querybuilder"
)

const subscriptionReturning = "RETURNING id, email, subscription_date, is_active, created_at, updated_at"

var subscriptionColumns = []string{"id", "email", "subscription_date", "is_active", "created_at", "updated_at"}

type SubscriptionRepository struct {
	db *DB
}

func NewSubscriptionRepository(db *DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) GetByEmail(ctx context.Context, email string) (subscription.Subscription, bool, error) {
	query, args, err := qb.Select(subscriptionColumns...).From("email_subscriptions").
		Where(qb.Eq("email", email)).
		Limit(1).
		ToSQL()
	if err != nil {
		return subscription.Subscription{}, false, fmt.Errorf("build select subscription by email query: %w", err)
	}

	var row subscriptionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return subscription.Subscription{}, false, nil
		}
		return subscription.Subscription{}, false, fmt.Errorf("select subscription by email: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, item subscription.Subscription) (subscription.Subscription, error) {
	insertModel := subscriptionInsertModel{
		Email:            item.Email,
		SubscriptionDate: item.SubscriptionDate,
		IsActive:         item.IsActive,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}
	query, args, err := qb.InsertModel("email_subscriptions", insertModel, subscriptionReturning)
	if err != nil {
		return subscription.Subscription{}, fmt.Errorf("build insert subscription query: %w", err)
	}

	var row subscriptionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return subscription.Subscription{}, fmt.Errorf("%w: %s", subscription.ErrEmailTaken, item.Email)
		}
		return subscription.Subscription{}, fmt.Errorf("insert subscription: %w", err)
	}

	return row.toDomain(), nil
}

// SetActive flips is_active. Reactivation also restarts subscription_date.
func (r *SubscriptionRepository) SetActive(ctx context.Context, email string, active bool, at time.Time) (subscription.Subscription, error) {
	update := qb.Update("email_subscriptions").
		Set("is_active", active).
		Set("updated_at", at)
	if active {
		update = update.Set("subscription_date", at)
	}
	query, args, err := update.
		Where(qb.Eq("email", email)).
		Suffix(subscriptionReturning).
		ToSQL()
	if err != nil {
		return subscription.Subscription{}, fmt.Errorf("build update subscription query: %w", err)
	}

	var row subscriptionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return subscription.Subscription{}, fmt.Errorf("%w: %s", subscription.ErrNotFound, email)
		}
		return subscription.Subscription{}, fmt.Errorf("update subscription: %w", err)
	}

	return row.toDomain(), nil
}

func (r *SubscriptionRepository) CountActive(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("email_subscriptions").
		Where(qb.Eq("is_active", true)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count active subscriptions query: %w", err)
	}

	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count active subscriptions: %w", err)
	}
	return n, nil
}

func (r *SubscriptionRepository) List(ctx context.Context) ([]subscription.Subscription, error) {
	query, args, err := qb.Select(subscriptionColumns...).From("email_subscriptions").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select subscriptions query: %w", err)
	}

	var rows []subscriptionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select subscriptions: %w", err)
	}

	out := make([]subscription.Subscription, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (m subscriptionTableModel) toDomain() subscription.Subscription {
	return subscription.Subscription{
		ID:               m.ID,
		Email:            m.Email,
		SubscriptionDate: m.SubscriptionDate,
		IsActive:         m.IsActive,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
