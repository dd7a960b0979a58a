package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/subscription"
	"github.com/riskibarqy/nfl-trends-api/internal/platform/logging"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type SubscriptionService struct {
	repo   subscription.Repository
	logger *logging.Logger
	now    func() time.Time
}

func NewSubscriptionService(repo subscription.Repository, logger *logging.Logger) *SubscriptionService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SubscriptionService{repo: repo, logger: logger, now: time.Now}
}

type SubscriptionResult struct {
	Message          string     `json:"message"`
	Email            string     `json:"email"`
	SubscriptionDate *time.Time `json:"subscription_date,omitempty"`
}

type SubscriptionCount struct {
	ActiveSubscriptions int    `json:"active_subscriptions"`
	Message             string `json:"message"`
}

func (s *SubscriptionService) Subscribe(ctx context.Context, email string) (SubscriptionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubscriptionService.Subscribe")
	defer span.End()

	email, err := normalizeEmail(email)
	if err != nil {
		return SubscriptionResult{}, err
	}

	existing, exists, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return SubscriptionResult{}, fmt.Errorf("get subscription: %w", err)
	}
	now := s.now().UTC()

	if exists {
		if existing.IsActive {
			return SubscriptionResult{}, fmt.Errorf("%w: This email address is already subscribed to our newsletter", ErrConflict)
		}
		item, err := s.repo.SetActive(ctx, email, true, now)
		if err != nil {
			return SubscriptionResult{}, fmt.Errorf("reactivate subscription: %w", err)
		}
		return SubscriptionResult{
			Message:          "Successfully resubscribed to newsletter",
			Email:            item.Email,
			SubscriptionDate: &item.SubscriptionDate,
		}, nil
	}

	item, err := s.repo.Create(ctx, subscription.Subscription{
		Email:            email,
		SubscriptionDate: now,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
	if err != nil {
		if errors.Is(err, subscription.ErrEmailTaken) {
			return SubscriptionResult{}, fmt.Errorf("%w: This email address is already subscribed to our newsletter", ErrConflict)
		}
		return SubscriptionResult{}, fmt.Errorf("create subscription: %w", err)
	}

	s.logger.InfoContext(ctx, "new email subscription", "subscription_id", item.ID)
	return SubscriptionResult{
		Message:          "Successfully subscribed to newsletter",
		Email:            item.Email,
		SubscriptionDate: &item.SubscriptionDate,
	}, nil
}

// Unsubscribe deactivates email. Rows are never deleted.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, email string) (SubscriptionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubscriptionService.Unsubscribe")
	defer span.End()

	email, err := normalizeEmail(email)
	if err != nil {
		return SubscriptionResult{}, err
	}

	existing, exists, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return SubscriptionResult{}, fmt.Errorf("get subscription: %w", err)
	}
	if !exists {
		return SubscriptionResult{}, fmt.Errorf("%w: Email address not found in our subscription list", ErrNotFound)
	}
	if !existing.IsActive {
		return SubscriptionResult{Message: "Email address is already unsubscribed", Email: existing.Email}, nil
	}

	if _, err := s.repo.SetActive(ctx, email, false, s.now().UTC()); err != nil {
		if errors.Is(err, subscription.ErrNotFound) {
			return SubscriptionResult{}, fmt.Errorf("%w: Email address not found in our subscription list", ErrNotFound)
		}
		return SubscriptionResult{}, fmt.Errorf("deactivate subscription: %w", err)
	}

	s.logger.InfoContext(ctx, "email unsubscribed", "subscription_id", existing.ID)
	return SubscriptionResult{Message: "Successfully unsubscribed from newsletter", Email: existing.Email}, nil
}

func (s *SubscriptionService) Count(ctx context.Context) (SubscriptionCount, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubscriptionService.Count")
	defer span.End()

	n, err := s.repo.CountActive(ctx)
	if err != nil {
		return SubscriptionCount{}, fmt.Errorf("count active subscriptions: %w", err)
	}
	return SubscriptionCount{
		ActiveSubscriptions: n,
		Message:             fmt.Sprintf("Currently %d active subscribers", n),
	}, nil
}

func (s *SubscriptionService) List(ctx context.Context) ([]subscription.Subscription, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubscriptionService.List")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	if items == nil {
		items = []subscription.Subscription{}
	}
	return items, nil
}

func normalizeEmail(email string) (string, error) {
	email = subscription.NormalizeEmail(email)
	if email == "" {
		return "", fmt.Errorf("%w: Email address is required", ErrInvalidInput)
	}
	if !emailPattern.MatchString(email) {
		return "", fmt.Errorf("%w: Please enter a valid email address", ErrInvalidInput)
	}
	return email, nil
}
