package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultGameLimit  = 100
	MaxGameLimit      = 1000
	DefaultTrendLimit = 5000
	MaxTrendLimit     = 5000
)

var (
	gameIDPattern = regexp.MustCompile(`^[A-Za-z]{2,3}[A-Za-z]{2,3}\d{8}$`)
	seasonPattern = regexp.MustCompile(`^(\d{4})-(\d{4})$`)
	tablePattern  = regexp.MustCompile(`^[a-z]{2,3}[a-z]{2,3}\d{8}$`)
)

// page fills the window defaults so the normalized filter always carries them.
func (c *checker) page(limit, offset **int, def, max int) {
	if *limit == nil {
		v := def
		*limit = &v
	} else if **limit < 1 || **limit > max {
		c.fail("limit", **limit, fmt.Sprintf("range 1..%d", max))
	}
	if *offset == nil {
		v := 0
		*offset = &v
	} else if **offset < 0 {
		c.fail("offset", **offset, ">= 0")
	}
}

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func canonicalGameID(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if !gameIDPattern.MatchString(v) {
		return "", false
	}
	return strings.ToUpper(v), true
}

// ValidGameID reports whether v has the {home}{away}{YYYYMMDD} shape and
// returns it upper-cased.
func ValidGameID(v string) (string, bool) { return canonicalGameID(v) }

// ValidTableName lower-cases v and reports whether it names a per-game trend table.
func ValidTableName(v string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(v))
	return name, tablePattern.MatchString(name)
}

func canonicalDate(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if _, err := time.Parse(time.DateOnly, v); err != nil {
		return "", false
	}
	return v, true
}

// canonicalSeason accepts "YYYY-YYYY" spanning consecutive years 2006-2007..2024-2025.
func canonicalSeason(v string) (string, bool) {
	if _, ok := seasonStart(v); !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func seasonStart(v string) (int, bool) {
	m := seasonPattern.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return 0, false
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if end != start+1 || start < FirstSeasonYear || start > LastSeasonYear {
		return 0, false
	}
	return start, true
}

// single validates an optional scalar through lookup and returns the canonical value.
func (c *checker) single(field string, v *string, constraint string, lookup func(string) (string, bool)) *string {
	if v == nil {
		return nil
	}
	out, ok := lookup(*v)
	if !ok {
		c.fail(field, *v, constraint)
		return v
	}
	return &out
}
