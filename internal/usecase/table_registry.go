package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/filter"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/trend"
	"go.opentelemetry.io/otel/attribute"
)

const defaultRegistryWorkers = 4

// TableRegistry resolves per-game trend tables. Tables are created and
// dropped by the job that computes them; the registry only observes.
type TableRegistry struct {
	catalog trend.Catalog
	workers int
}

func NewTableRegistry(catalog trend.Catalog, workers int) *TableRegistry {
	if workers < 1 {
		workers = defaultRegistryWorkers
	}
	return &TableRegistry{catalog: catalog, workers: workers}
}

func (r *TableRegistry) List(ctx context.Context) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TableRegistry.List")
	defer span.End()

	tables, err := r.catalog.Tables(ctx)
	if err != nil {
		return nil, failSpan(span, fmt.Errorf("list game trend tables: %w", err))
	}
	if tables == nil {
		tables = []string{}
	}
	return tables, nil
}

// Resolve validates name and confirms the table exists. It returns the
// canonical lower-case name.
func (r *TableRegistry) Resolve(ctx context.Context, name string) (string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TableRegistry.Resolve", attribute.String("trend.table", name))
	defer span.End()

	table, ok := filter.ValidTableName(name)
	if !ok {
		return "", fmt.Errorf("%w: table %q must look like phidal20250904", ErrInvalidInput, name)
	}

	exists, err := r.catalog.Exists(ctx, table)
	if err != nil {
		return "", failSpan(span, fmt.Errorf("check game trend table: %w", err))
	}
	if !exists {
		return "", fmt.Errorf("%w: table=%s", ErrNotFound, table)
	}
	return table, nil
}

type TableSummary struct {
	Table string `json:"table"`
	Rows  int    `json:"rows"`
	Error string `json:"error,omitempty"`
}

// ListWithCounts counts the rows of every table on a bounded worker pool. A
// failed count is reported on its row instead of failing the listing.
func (r *TableRegistry) ListWithCounts(ctx context.Context) ([]TableSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TableRegistry.ListWithCounts")
	defer span.End()

	tables, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return []TableSummary{}, nil
	}

	pool, err := ants.NewPool(min(r.workers, len(tables)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan TableSummary, len(tables))
	var workers sync.WaitGroup
	for _, table := range tables {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := TableSummary{Table: table}
			n, err := r.catalog.Count(ctx, table)
			if err != nil {
				row.Error = err.Error()
			}
			row.Rows = n
			results <- row
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := make([]TableSummary, 0, len(tables))
	for row := range results {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Table < out[j].Table })
	return out, nil
}
