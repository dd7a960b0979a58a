package postgres

import (
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/trend"
)

type weeklyTrendTableModel struct {
	trend.Trend
	GamesApplicable pq.StringArray `db:"games_applicable"`
}

type subscriptionTableModel struct {
	ID               int64     `db:"id"`
	Email            string    `db:"email"`
	SubscriptionDate time.Time `db:"subscription_date"`
	IsActive         bool      `db:"is_active"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type subscriptionInsertModel struct {
	Email            string    `db:"email"`
	SubscriptionDate time.Time `db:"subscription_date"`
	IsActive         bool      `db:"is_active"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type filterValueTableModel struct {
	FilterType  string     `db:"filter_type"`
	ValuesJSON  string     `db:"values_json"`
	LastUpdated *time.Time `db:"last_updated"`
}
