package usecase

import "github.com/riskibarqy/nfl-trends-api/internal/domain/filter"

// Page is one window of a filtered collection.
type Page[T any] struct {
	Items  []T
	Limit  int
	Offset int
	Total  int
}

func newPage[T any](items []T, total int, q filter.Query) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Limit: q.Limit, Offset: q.Offset, Total: total}
}
