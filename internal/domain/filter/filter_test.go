package filter

import (
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeWeekly(t *testing.T, body string) WeeklyTrendFilter {
	t.Helper()
	var f WeeklyTrendFilter
	require.NoError(t, sonic.Unmarshal([]byte(body), &f))
	require.NoError(t, f.Normalize())
	return f
}

func TestWeeklyTrendFilter_CompileIsDeterministic(t *testing.T) {
	a := decodeWeekly(t, `{
		"category": ["home ats", "away ats"],
		"month": "september",
		"spread": {"or_less": [7, 3], "exact": "3.5"},
		"games_applicable": {"games": ["nyjvsne", "BUFvsMIA"]}
	}`)
	b := decodeWeekly(t, `{
		"games_applicable": {"match": "contains_any", "games": ["BUFvsMIA", "NYJvsNE"]},
		"spread": {"exact": ["3.5"], "or_less": [3, 7]},
		"month": ["September"],
		"category": ["away ats", "home ats", "home ats"]
	}`)

	assert.Equal(t, a, b)
	assert.Equal(t, a.Compile(), b.Compile())
	assert.Equal(t, a.Compile(), a.Compile())
}

func TestTrendFilter_MonthNoneComposesWithValues(t *testing.T) {
	var f TrendFilter
	require.NoError(t, sonic.Unmarshal([]byte(`{"month": ["January", "None"]}`), &f))
	require.NoError(t, f.Normalize())

	q := f.Compile()
	require.Len(t, q.Where, 1)
	assert.Equal(t, Predicate{Op: OpOr, Children: []Predicate{
		{Op: OpEq, Column: "month", Values: []any{"January"}},
		{Op: OpIsNull, Column: "month"},
	}}, q.Where[0])
}

func TestTrendFilter_MonthRangeSkipsNullMonth(t *testing.T) {
	var f TrendFilter
	require.NoError(t, sonic.Unmarshal([]byte(`{"end_month": "March"}`), &f))
	require.NoError(t, f.Normalize())

	q := f.Compile()
	require.Len(t, q.Where, 1)
	assert.Equal(t, Predicate{Op: OpAnd, Children: []Predicate{
		{Op: OpNotNull, Column: "month"},
		{Op: OpLte, Column: "month", Transform: TransformMonthNumber, Values: []any{3}},
	}}, q.Where[0])
}

func TestTrendFilter_LineConditions(t *testing.T) {
	var f TrendFilter
	require.NoError(t, sonic.Unmarshal([]byte(`{
		"spread": {"or_less": 7, "or_more": [10], "exact": ["None", "3.0"]},
		"total": "None"
	}`), &f))
	require.NoError(t, f.Normalize())

	q := f.Compile()
	require.Len(t, q.Where, 2)
	assert.Equal(t, Predicate{Op: OpOr, Children: []Predicate{
		{Op: OpIn, Column: "spread", Values: []any{"10 or more", "3.0", "7 or less"}},
		{Op: OpIsNull, Column: "spread"},
	}}, q.Where[0])
	assert.Equal(t, Predicate{Op: OpIsNull, Column: "total"}, q.Where[1])
}

func TestTrendFilter_SeasonsWidenByLabelOrder(t *testing.T) {
	var f TrendFilter
	require.NoError(t, sonic.Unmarshal([]byte(`{"seasons": {"since_or_later": "since 2023-2024"}}`), &f))
	require.NoError(t, f.Normalize())

	q := f.Compile()
	require.Len(t, q.Where, 1)
	assert.Equal(t, OpIn, q.Where[0].Op)
	assert.Equal(t, []any{"since 2023-2024", "since 2024-2025", "since 2025-2026"}, q.Where[0].Values)
}

func TestTrendFilter_Divisional(t *testing.T) {
	cases := []struct {
		body string
		want []Predicate
	}{
		{body: `{}`, want: nil},
		{body: `{"divisional": true}`, want: []Predicate{{Op: OpEq, Column: "divisional", Values: []any{true}}}},
		{body: `{"divisional": false}`, want: []Predicate{{Op: OpEq, Column: "divisional", Values: []any{false}}}},
		{body: `{"divisional": "None"}`, want: []Predicate{{Op: OpIsNull, Column: "divisional"}}},
	}
	for _, tc := range cases {
		var f TrendFilter
		require.NoError(t, sonic.Unmarshal([]byte(tc.body), &f), tc.body)
		require.NoError(t, f.Normalize(), tc.body)
		assert.Equal(t, tc.want, f.Compile().Where, tc.body)
	}

	var f TrendFilter
	assert.Error(t, sonic.Unmarshal([]byte(`{"divisional": "maybe"}`), &f))
}

func TestTrendFilter_DefaultsAndTiebreak(t *testing.T) {
	var f TrendFilter
	require.NoError(t, f.Normalize())

	q := f.Compile()
	assert.Equal(t, DefaultTrendLimit, q.Limit)
	assert.Equal(t, 0, q.Offset)
	assert.Equal(t, []SortKey{
		{Column: "win_percentage", Desc: true},
		{Column: "total_games", Desc: true},
		{Column: "id"},
	}, q.Sort)
}

func TestTrendFilter_SortShapes(t *testing.T) {
	for _, body := range []string{
		`{"sort_by": "day_of_week"}`,
		`{"sort_by": {"field": "day_of_week"}}`,
		`{"sort_by": ["day_of_week"]}`,
		`{"sort_by": [{"field": "day_of_week", "order": "asc"}]}`,
	} {
		var f TrendFilter
		require.NoError(t, sonic.Unmarshal([]byte(body), &f), body)
		require.NoError(t, f.Normalize(), body)
		assert.Equal(t, []SortKey{
			{Column: "day_of_week", Ordering: OrderingWeekdaySun},
			{Column: "id"},
		}, f.Compile().Sort, body)
	}
}

func TestTrendFilter_ValidationCollectsEveryField(t *testing.T) {
	var f TrendFilter
	require.NoError(t, sonic.Unmarshal([]byte(`{
		"trend_id": "home ats,October",
		"category": "sideways",
		"month": "Smarch",
		"spread": {"or_less": 20},
		"total": {"or_more": 42},
		"seasons": {"exact": "since 1999-2000"},
		"limit": 0,
		"sort_by": {"field": "nope"}
	}`), &f))

	err := f.Normalize()
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{
		"trend_id", "category", "month", "spread.or_less", "total.or_more",
		"seasons.exact", "limit", "sort_by",
	}, fields)
}

func TestWeeklyTrendFilter_GamesApplicableModes(t *testing.T) {
	cases := map[string]Op{
		"":             OpArrayContainsAny,
		"contains_any": OpArrayContainsAny,
		"contains_all": OpArrayContainsAll,
		"exact":        OpArrayEquals,
		"excludes_any": OpArrayExcludesAny,
	}
	for match, want := range cases {
		f := WeeklyTrendFilter{GamesApplicable: &GamesApplicable{Games: StringList{"NYJvsNE"}, Match: match}}
		require.NoError(t, f.Normalize(), match)
		where := f.Compile().Where
		require.Len(t, where, 1, match)
		assert.Equal(t, want, where[0].Op, match)
		assert.Equal(t, []any{"NYJvsNE"}, where[0].Values, match)
	}

	bad := WeeklyTrendFilter{GamesApplicable: &GamesApplicable{Games: StringList{"NYJ-NE"}, Match: "some"}}
	assert.Error(t, bad.Normalize())
}

func TestWeeklyTrendFilter_MatchModeKey(t *testing.T) {
	long := decodeWeekly(t, `{"games_applicable": {"games": ["PHIvsDAL"], "match_mode": "contains_any"}}`)
	short := decodeWeekly(t, `{"games_applicable": {"games": ["PHIvsDAL"], "match": "contains_any"}}`)
	bare := decodeWeekly(t, `{"games_applicable": {"games": ["PHIvsDAL"]}}`)

	assert.Equal(t, long, short)
	assert.Equal(t, long, bare)
	assert.Equal(t, MatchContainsAny, long.GamesApplicable.Match)
	assert.Empty(t, long.GamesApplicable.MatchAlias)

	var strict WeeklyTrendFilter
	require.NoError(t, strictJSON.Unmarshal([]byte(`{"games_applicable": {"games": ["PHIvsDAL"], "match_mode": "contains_any"}}`), &strict))

	excl := decodeWeekly(t, `{"games_applicable": {"games": ["PHIvsDAL"], "match_mode": "excludes_any"}}`)
	assert.Equal(t, OpArrayExcludesAny, excl.Compile().Where[0].Op)

	var conflict WeeklyTrendFilter
	require.NoError(t, sonic.Unmarshal([]byte(`{"games_applicable": {"games": ["PHIvsDAL"], "match_mode": "exact", "match": "contains_all"}}`), &conflict))
	assert.Error(t, conflict.Normalize())
}

func TestGameFilter_Matchup(t *testing.T) {
	cases := []struct {
		name string
		home StringList
		away StringList
		want Predicate
	}{
		{
			name: "same team both sides",
			home: StringList{"chicago bears"},
			away: StringList{"Chicago Bears"},
			want: Predicate{Op: OpOr, Children: []Predicate{
				{Op: OpEq, Column: "home_team", Values: []any{"Chicago Bears"}},
				{Op: OpEq, Column: "away_team", Values: []any{"Chicago Bears"}},
			}},
		},
		{
			name: "exact matchup",
			home: StringList{"Chicago Bears"},
			away: StringList{"New York Jets"},
			want: Predicate{Op: OpAnd, Children: []Predicate{
				{Op: OpEq, Column: "home_team", Values: []any{"Chicago Bears"}},
				{Op: OpEq, Column: "away_team", Values: []any{"New York Jets"}},
			}},
		},
		{
			name: "either orientation",
			home: StringList{"Chicago Bears", "New York Jets"},
			away: StringList{"Chicago Bears", "New York Jets"},
			want: Predicate{Op: OpOr, Children: []Predicate{
				{Op: OpAnd, Children: []Predicate{
					{Op: OpIn, Column: "home_team", Values: []any{"Chicago Bears", "New York Jets"}},
					{Op: OpIn, Column: "away_team", Values: []any{"Chicago Bears", "New York Jets"}},
				}},
				{Op: OpAnd, Children: []Predicate{
					{Op: OpIn, Column: "home_team", Values: []any{"Chicago Bears", "New York Jets"}},
					{Op: OpIn, Column: "away_team", Values: []any{"Chicago Bears", "New York Jets"}},
				}},
			}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := GameFilter{HomeTeam: tc.home, AwayTeam: tc.away}
			require.NoError(t, f.Normalize())
			where := f.Compile().Where
			require.Len(t, where, 1)
			assert.Equal(t, tc.want, where[0])
		})
	}
}

func TestGameFilter_ExactAndRangeAreAnded(t *testing.T) {
	f := GameFilter{
		HomeScore:    IntList{24, 17},
		MinHomeScore: ptr(20),
		StartSeason:  ptr("2010-2011"),
		EndMonth:     ptr("november"),
	}
	require.NoError(t, f.Normalize())

	assert.Equal(t, []Predicate{
		{Op: OpAnd, Children: []Predicate{
			{Op: OpNotNull, Column: "month"},
			{Op: OpLte, Column: "month", Transform: TransformMonthNumber, Values: []any{11}},
		}},
		{Op: OpGte, Column: "season", Transform: TransformSeasonStart, Values: []any{2010}},
		{Op: OpIn, Column: "home_score", Values: []any{17, 24}},
		{Op: OpGte, Column: "home_score", Values: []any{20}},
	}, f.Compile().Where)
}

func TestGameFilter_Validation(t *testing.T) {
	f := GameFilter{
		GameID:       StringList{"NYJ-NE"},
		Date:         StringList{"2024-13-01"},
		Season:       StringList{"2010-2012"},
		Spread:       FloatList{3.25},
		MinTotal:     ptr(50.0),
		MaxTotal:     ptr(40.0),
		Limit:        ptr(5000),
		HomeDivision: StringList{"AFC Central"},
	}
	err := f.Normalize()

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 7)
}

func TestGameFilter_Defaults(t *testing.T) {
	var f GameFilter
	require.NoError(t, f.Normalize())

	q := f.Compile()
	assert.Empty(t, q.Where)
	assert.Equal(t, DefaultGameLimit, q.Limit)
	assert.Equal(t, []SortKey{{Column: "date"}, {Column: "id_string"}, {Column: "id"}}, q.Sort)
}

func TestUpcomingGameFilter_IsDefault(t *testing.T) {
	assert.True(t, UpcomingGameFilter{}.IsDefault())
	assert.False(t, UpcomingGameFilter{HomeAbbreviation: StringList{"NYJ"}}.IsDefault())
}

func TestValidTableName(t *testing.T) {
	name, ok := ValidTableName("PHIDAL20250904")
	assert.True(t, ok)
	assert.Equal(t, "phidal20250904", name)

	for _, bad := range []string{"", "phi-dal20250904", "phidal2025094", "p1dal20250904", "phidal20250904; drop table games"} {
		_, ok := ValidTableName(bad)
		assert.False(t, ok, bad)
	}
}

func TestStrictDecodingRejectsUnknownNestedFields(t *testing.T) {
	var f TrendFilter
	assert.Error(t, sonic.Unmarshal([]byte(`{"spread": {"or_fewer": 3}}`), &f))
	assert.Error(t, sonic.Unmarshal([]byte(`{"sort_by": {"field": "wins", "direction": "desc"}}`), &f))
	assert.Error(t, sonic.Unmarshal([]byte(`{"sort_by": 3}`), &f))
}

func ptr[T any](v T) *T { return &v }
