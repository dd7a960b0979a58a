package usecase

import (
	"context"
	"errors"
	"testing"

	trendmock "github.com/riskibarqy/nfl-trends-api/internal/mocks/domain/trend"
	"github.com/stretchr/testify/mock"
)

func TestTableRegistry_ResolveUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("malformed name never reaches the catalog", func(t *testing.T) {
		catalog := trendmock.NewCatalog(t)
		registry := NewTableRegistry(catalog, 2)

		_, err := registry.Resolve(ctx, "games; drop table trends")
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("missing table", func(t *testing.T) {
		catalog := trendmock.NewCatalog(t)
		registry := NewTableRegistry(catalog, 2)
		catalog.On("Exists", mock.Anything, "phidal20250904").Return(false, nil).Once()

		_, err := registry.Resolve(ctx, "PHIDAL20250904")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("existing table is canonicalized", func(t *testing.T) {
		catalog := trendmock.NewCatalog(t)
		registry := NewTableRegistry(catalog, 2)
		catalog.On("Exists", mock.Anything, "phidal20250904").Return(true, nil).Once()

		got, err := registry.Resolve(ctx, " PHIDAL20250904 ")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		if got != "phidal20250904" {
			t.Fatalf("unexpected table: %s", got)
		}
	})
}

func TestTableRegistry_ListWithCountsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	catalog := trendmock.NewCatalog(t)
	registry := NewTableRegistry(catalog, 2)

	catalog.On("Tables", mock.Anything).
		Return([]string{"phidal20250904", "bufbal20250907", "chimin20250908"}, nil).
		Once()
	catalog.On("Count", mock.Anything, "phidal20250904").Return(12, nil).Once()
	catalog.On("Count", mock.Anything, "bufbal20250907").Return(0, errors.New("relation is being rebuilt")).Once()
	catalog.On("Count", mock.Anything, "chimin20250908").Return(4, nil).Once()

	got, err := registry.ListWithCounts(ctx)
	if err != nil {
		t.Fatalf("list with counts: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("unexpected row count: %d", len(got))
	}
	if got[0].Table != "bufbal20250907" || got[0].Error == "" {
		t.Fatalf("expected failed count reported on its row, got %+v", got[0])
	}
	if got[1].Table != "chimin20250908" || got[1].Rows != 4 {
		t.Fatalf("unexpected second row: %+v", got[1])
	}
	if got[2].Table != "phidal20250904" || got[2].Rows != 12 {
		t.Fatalf("unexpected third row: %+v", got[2])
	}
}
