package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/nfl-trends-api/internal/domain/filteroption"
)

type FilterOptionRepository struct {
	mu      sync.RWMutex
	options []filteroption.Option
}

func NewFilterOptionRepository(items []filteroption.Option) *FilterOptionRepository {
	return &FilterOptionRepository{options: append([]filteroption.Option(nil), items...)}
}

func (r *FilterOptionRepository) List(_ context.Context) ([]filteroption.Option, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]filteroption.Option, 0, len(r.options))
	out = append(out, r.options...)
	return out, nil
}
