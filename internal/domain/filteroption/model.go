package filteroption

import "time"

// Option is the set of values offered for one weekly trends filter field,
// refreshed by the external job that rebuilds weekly trends.
type Option struct {
	FilterType  string     `json:"filter_type"`
	Values      []any      `json:"values"`
	LastUpdated *time.Time `json:"last_updated"`
}
