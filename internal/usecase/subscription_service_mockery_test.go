package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/subscription"
	subscriptionmock "github.com/riskibarqy/nfl-trends-api/internal/mocks/domain/subscription"
	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2025, 9, 3, 15, 4, 5, 0, time.UTC)

func newSubscriptionServiceForTest(repo subscription.Repository) *SubscriptionService {
	svc := NewSubscriptionService(repo, nil)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestSubscriptionService_Subscribe_NewAddressUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := subscriptionmock.NewRepository(t)
	svc := newSubscriptionServiceForTest(repo)

	repo.On("GetByEmail", ctx, "fan@example.com").Return(subscription.Subscription{}, false, nil).Once()
	repo.
		On("Create", ctx, mock.MatchedBy(func(s subscription.Subscription) bool {
			return s.Email == "fan@example.com" && s.IsActive && s.SubscriptionDate.Equal(fixedNow)
		})).
		Return(subscription.Subscription{ID: 1, Email: "fan@example.com", SubscriptionDate: fixedNow, IsActive: true}, nil).
		Once()

	got, err := svc.Subscribe(ctx, "  Fan@Example.COM ")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if got.Message != "Successfully subscribed to newsletter" {
		t.Fatalf("unexpected message: %q", got.Message)
	}
	if got.Email != "fan@example.com" || got.SubscriptionDate == nil || !got.SubscriptionDate.Equal(fixedNow) {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestSubscriptionService_Subscribe_ActiveAddressConflictsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := subscriptionmock.NewRepository(t)
	svc := newSubscriptionServiceForTest(repo)

	repo.On("GetByEmail", ctx, "fan@example.com").
		Return(subscription.Subscription{Email: "fan@example.com", IsActive: true}, true, nil).
		Once()

	_, err := svc.Subscribe(ctx, "fan@example.com")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestSubscriptionService_Subscribe_ReactivatesUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := subscriptionmock.NewRepository(t)
	svc := newSubscriptionServiceForTest(repo)

	repo.On("GetByEmail", ctx, "fan@example.com").
		Return(subscription.Subscription{Email: "fan@example.com", IsActive: false}, true, nil).
		Once()
	repo.On("SetActive", ctx, "fan@example.com", true, fixedNow).
		Return(subscription.Subscription{Email: "fan@example.com", IsActive: true, SubscriptionDate: fixedNow}, nil).
		Once()

	got, err := svc.Subscribe(ctx, "fan@example.com")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if got.Message != "Successfully resubscribed to newsletter" {
		t.Fatalf("unexpected message: %q", got.Message)
	}
}

func TestSubscriptionService_Subscribe_RaceOnCreateIsConflictUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := subscriptionmock.NewRepository(t)
	svc := newSubscriptionServiceForTest(repo)

	repo.On("GetByEmail", ctx, "fan@example.com").Return(subscription.Subscription{}, false, nil).Once()
	repo.On("Create", ctx, mock.Anything).Return(subscription.Subscription{}, subscription.ErrEmailTaken).Once()

	_, err := svc.Subscribe(ctx, "fan@example.com")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestSubscriptionService_RejectsMalformedEmail(t *testing.T) {
	t.Parallel()

	svc := newSubscriptionServiceForTest(subscriptionmock.NewRepository(t))
	for _, email := range []string{"", "   ", "fan@", "fan@example", "fan example@x.io"} {
		if _, err := svc.Subscribe(context.Background(), email); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %q, got %v", email, err)
		}
	}
}

func TestSubscriptionService_UnsubscribeUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unknown address", func(t *testing.T) {
		repo := subscriptionmock.NewRepository(t)
		svc := newSubscriptionServiceForTest(repo)
		repo.On("GetByEmail", ctx, "ghost@example.com").Return(subscription.Subscription{}, false, nil).Once()

		_, err := svc.Unsubscribe(ctx, "ghost@example.com")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("already inactive", func(t *testing.T) {
		repo := subscriptionmock.NewRepository(t)
		svc := newSubscriptionServiceForTest(repo)
		repo.On("GetByEmail", ctx, "fan@example.com").
			Return(subscription.Subscription{Email: "fan@example.com"}, true, nil).
			Once()

		got, err := svc.Unsubscribe(ctx, "fan@example.com")
		if err != nil {
			t.Fatalf("unsubscribe: %v", err)
		}
		if got.Message != "Email address is already unsubscribed" {
			t.Fatalf("unexpected message: %q", got.Message)
		}
	})

	t.Run("active address", func(t *testing.T) {
		repo := subscriptionmock.NewRepository(t)
		svc := newSubscriptionServiceForTest(repo)
		repo.On("GetByEmail", ctx, "fan@example.com").
			Return(subscription.Subscription{Email: "fan@example.com", IsActive: true}, true, nil).
			Once()
		repo.On("SetActive", ctx, "fan@example.com", false, fixedNow).
			Return(subscription.Subscription{Email: "fan@example.com"}, nil).
			Once()

		got, err := svc.Unsubscribe(ctx, "fan@example.com")
		if err != nil {
			t.Fatalf("unsubscribe: %v", err)
		}
		if got.Message != "Successfully unsubscribed from newsletter" {
			t.Fatalf("unexpected message: %q", got.Message)
		}
	})
}

func TestSubscriptionService_CountUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := subscriptionmock.NewRepository(t)
	svc := newSubscriptionServiceForTest(repo)
	repo.On("CountActive", ctx).Return(3, nil).Once()

	got, err := svc.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if got.ActiveSubscriptions != 3 || got.Message != "Currently 3 active subscribers" {
		t.Fatalf("unexpected count: %+v", got)
	}
}
