package filter

import (
	"bytes"
	"encoding/json"
	"strings"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

type SortField struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// SortList accepts "field", {"field": "x", "order": "desc"}, or a list mixing both.
type SortList []SortField

func (l *SortList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if isJSONNull(data) {
		*l = nil
		return nil
	}

	switch data[0] {
	case '[':
		var items []json.RawMessage
		if err := strictJSON.Unmarshal(data, &items); err != nil {
			return err
		}
		out := make(SortList, 0, len(items))
		for _, raw := range items {
			item, err := decodeSortItem(bytes.TrimSpace(raw))
			if err != nil {
				return err
			}
			out = append(out, item)
		}
		*l = out
		return nil
	default:
		item, err := decodeSortItem(data)
		if err != nil {
			return err
		}
		*l = SortList{item}
		return nil
	}
}

func decodeSortItem(data []byte) (SortField, error) {
	if len(data) == 0 {
		return SortField{}, &ValidationError{Field: "sort_by", Value: "", Constraint: "string or {field, order} object"}
	}
	switch data[0] {
	case '"':
		var field string
		if err := strictJSON.Unmarshal(data, &field); err != nil {
			return SortField{}, err
		}
		return SortField{Field: field, Order: OrderAsc}, nil
	case '{':
		var item SortField
		if err := strictJSON.Unmarshal(data, &item); err != nil {
			return SortField{}, err
		}
		if strings.TrimSpace(item.Field) == "" {
			return SortField{}, &ValidationError{Field: "sort_by.field", Value: string(data), Constraint: "required"}
		}
		if item.Order == "" {
			item.Order = OrderAsc
		}
		return item, nil
	default:
		return SortField{}, &ValidationError{Field: "sort_by", Value: string(data), Constraint: "string or {field, order} object"}
	}
}

// Ordering selects how a column's values rank when sorted.
type Ordering string

const (
	OrderingNatural     Ordering = ""
	OrderingMonth       Ordering = "month"
	OrderingWeekdayMon  Ordering = "weekday_monday_first"
	OrderingWeekdaySun  Ordering = "weekday_sunday_first"
	tiebreakColumn               = "id"
)

// SortKey is one compiled ORDER BY term.
type SortKey struct {
	Column   string   `json:"column"`
	Desc     bool     `json:"desc"`
	Ordering Ordering `json:"ordering,omitempty"`
}

// compileSort validates the requested keys against columns and appends the id
// tiebreak that makes the order total.
func compileSort(c *checker, requested, defaults SortList, columns map[string]Ordering) []SortKey {
	if len(requested) == 0 {
		requested = defaults
	}
	keys := make([]SortKey, 0, len(requested)+1)
	hasTiebreak := false
	for _, s := range requested {
		field := strings.TrimSpace(s.Field)
		ordering, ok := columns[field]
		if !ok {
			c.fail("sort_by", field, "known sort field")
			continue
		}
		order := strings.ToLower(strings.TrimSpace(s.Order))
		if order != OrderAsc && order != OrderDesc {
			c.fail("sort_by.order", s.Order, "asc or desc")
			continue
		}
		if field == tiebreakColumn {
			hasTiebreak = true
		}
		keys = append(keys, SortKey{Column: field, Desc: order == OrderDesc, Ordering: ordering})
	}
	if !hasTiebreak {
		keys = append(keys, SortKey{Column: tiebreakColumn})
	}
	return keys
}

func normalizeSort(list SortList) SortList {
	if len(list) == 0 {
		return nil
	}
	out := make(SortList, 0, len(list))
	for _, s := range list {
		order := strings.ToLower(strings.TrimSpace(s.Order))
		if order == "" {
			order = OrderAsc
		}
		out = append(out, SortField{Field: strings.TrimSpace(s.Field), Order: order})
	}
	return out
}

// Values lists the ranked values of an ordinal ordering, nil for natural order.
func (o Ordering) Values() []string {
	switch o {
	case OrderingMonth:
		return months
	case OrderingWeekdayMon:
		return gameWeekdays
	case OrderingWeekdaySun:
		return trendWeekdays
	default:
		return nil
	}
}

// Rank returns the 1-based position of v under o. NULL and unknown values
// rank after every known value.
func (o Ordering) Rank(v *string) int {
	values := o.Values()
	if v != nil {
		for i, candidate := range values {
			if candidate == *v {
				return i + 1
			}
		}
	}
	return len(values) + 1
}
