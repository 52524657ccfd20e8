package postgres

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/golfcompete/golf-server/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderWhere(t *testing.T, condition store.Condition) (string, []any) {
	t.Helper()
	predicate, err := buildPredicate(condition)
	require.NoError(t, err)
	sql, vals, err := squirrel.Select("*").From("courses").Where(predicate).PlaceholderFormat(squirrel.Dollar).ToSql()
	require.NoError(t, err)
	return sql, vals
}

func TestBuildPredicate(t *testing.T) {
	cases := []struct {
		name      string
		condition store.Condition
		sql       string
		vals      []any
	}{
		{
			"eq",
			store.Eq("state", "CA"),
			"SELECT * FROM courses WHERE state = $1",
			[]any{"CA"},
		},
		{
			"neq",
			store.Condition{Column: "state", Operator: store.OperatorNeq, Value: "CA"},
			"SELECT * FROM courses WHERE state <> $1",
			[]any{"CA"},
		},
		{
			"gt",
			store.Condition{Column: "par", Operator: store.OperatorGt, Value: 71},
			"SELECT * FROM courses WHERE par > $1",
			[]any{71},
		},
		{
			"gte",
			store.Condition{Column: "par", Operator: store.OperatorGte, Value: 71},
			"SELECT * FROM courses WHERE par >= $1",
			[]any{71},
		},
		{
			"lt",
			store.Condition{Column: "par", Operator: store.OperatorLt, Value: 72},
			"SELECT * FROM courses WHERE par < $1",
			[]any{72},
		},
		{
			"lte",
			store.Condition{Column: "par", Operator: store.OperatorLte, Value: 72},
			"SELECT * FROM courses WHERE par <= $1",
			[]any{72},
		},
		{
			"like",
			store.Condition{Column: "name", Operator: store.OperatorLike, Value: "%Beach%"},
			"SELECT * FROM courses WHERE name LIKE $1",
			[]any{"%Beach%"},
		},
		{
			"ilike",
			store.Condition{Column: "name", Operator: store.OperatorILike, Value: "%beach%"},
			"SELECT * FROM courses WHERE name ILIKE $1",
			[]any{"%beach%"},
		},
		{
			"in",
			store.Condition{Column: "state", Operator: store.OperatorIn, Value: []string{"CA", "OR"}},
			"SELECT * FROM courses WHERE state IN ($1,$2)",
			[]any{"CA", "OR"},
		},
		{
			"contains",
			store.Condition{Column: "tags", Operator: store.OperatorContains, Value: []string{"links"}},
			"SELECT * FROM courses WHERE tags @> $1",
			[]any{[]string{"links"}},
		},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			sql, vals := renderWhere(t, testCase.condition)
			assert.Equal(t, testCase.sql, sql)
			assert.Equal(t, testCase.vals, vals)
		})
	}
}

func TestBuildPredicateUnknownOperator(t *testing.T) {
	_, err := buildPredicate(store.Condition{Column: "par", Operator: "between", Value: 1})
	assert.Error(t, err)
}

func TestBuildPredicatesCombines(t *testing.T) {
	predicates, err := buildPredicates([]store.Condition{
		store.Eq("state", "CA"),
		{Column: "par", Operator: store.OperatorGte, Value: 70},
	})
	require.NoError(t, err)
	require.Len(t, predicates, 2)

	query := squirrel.Select("COUNT(*)").From("courses")
	for _, predicate := range predicates {
		query = query.Where(predicate)
	}
	sql, vals, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM courses WHERE state = $1 AND par >= $2", sql)
	assert.Equal(t, []any{"CA", 70}, vals)
}
