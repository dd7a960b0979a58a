package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/nfl-trends-api/internal/domain/filteroption"
	qb "github.com/riskibarqy/nfl-trends-api/internal/platform/querybuilder"
)

type FilterOptionRepository struct {
	db *DB
}

func NewFilterOptionRepository(db *DB) *FilterOptionRepository {
	return &FilterOptionRepository{db: db}
}

func (r *FilterOptionRepository) List(ctx context.Context) ([]filteroption.Option, error) {
	query, args, err := qb.Select("filter_type", "values_json", "last_updated").From("filter_values").
		OrderBy("filter_type").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select filter values query: %w", err)
	}

	var rows []filterValueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select filter values: %w", err)
	}

	out := make([]filteroption.Option, 0, len(rows))
	for _, row := range rows {
		values := []any{}
		if row.ValuesJSON != "" {
			if err := sonic.UnmarshalString(row.ValuesJSON, &values); err != nil {
				return nil, fmt.Errorf("decode filter values %s: %w", row.FilterType, err)
			}
		}
		out = append(out, filteroption.Option{
			FilterType:  row.FilterType,
			Values:      values,
			LastUpdated: row.LastUpdated,
		})
	}
	return out, nil
}
