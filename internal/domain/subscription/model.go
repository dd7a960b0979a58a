package subscription

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmailTaken = errors.New("email address is already registered")
	ErrNotFound   = errors.New("subscription not found")
)

// Subscription is an email address registered for trend updates. Addresses
// are stored lower-cased and unique; unsubscribing only deactivates.
type Subscription struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	SubscriptionDate time.Time `json:"subscription_date"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s Subscription) Validate() error {
	if s.Email == "" {
		return fmt.Errorf("subscription email is required")
	}
	if s.Email != NormalizeEmail(s.Email) {
		return fmt.Errorf("subscription email must be normalized")
	}
	return nil
}
