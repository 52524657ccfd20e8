package memdb

import (
	"context"
	"errors"
	"testing"

	"github.com/golfcompete/golf-server/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New("courses")
	require.NoError(t, err)
	return client
}

func seedCourses(t *testing.T, client *Client) {
	t.Helper()
	_, err := client.Insert(context.Background(), "courses", []store.Record{
		{"id": "c1", "name": "Pebble Beach", "state": "CA", "par": 72, "tags": []any{"links", "coastal"}},
		{"id": "c2", "name": "Augusta National", "state": "GA", "par": 72, "tags": []any{"parkland"}},
		{"id": "c3", "name": "Bandon Dunes", "state": "OR", "par": 71, "tags": []any{"links"}},
	})
	require.NoError(t, err)
}

func TestSelectConditions(t *testing.T) {
	client := newTestClient(t)
	seedCourses(t, client)
	ctx := context.Background()

	cases := []struct {
		name      string
		condition store.Condition
		ids       []string
	}{
		{"eq", store.Eq("state", "CA"), []string{"c1"}},
		{"neq", store.Condition{Column: "par", Operator: store.OperatorNeq, Value: 72}, []string{"c3"}},
		{"gt", store.Condition{Column: "par", Operator: store.OperatorGt, Value: 71}, []string{"c1", "c2"}},
		{"lte", store.Condition{Column: "par", Operator: store.OperatorLte, Value: 71}, []string{"c3"}},
		{"like", store.Condition{Column: "name", Operator: store.OperatorLike, Value: "%Beach"}, []string{"c1"}},
		{"ilike", store.Condition{Column: "name", Operator: store.OperatorILike, Value: "%dunes%"}, []string{"c3"}},
		{"in", store.Condition{Column: "state", Operator: store.OperatorIn, Value: []any{"GA", "OR"}}, []string{"c2", "c3"}},
		{"contains", store.Condition{Column: "tags", Operator: store.OperatorContains, Value: []any{"links"}}, []string{"c1", "c3"}},
	}
	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			records, total, err := client.Select(ctx, "courses", store.Selection{
				Conditions: []store.Condition{testCase.condition},
				Order:      &store.Ordering{Column: "id"},
			})
			require.NoError(t, err)
			assert.Equal(t, uint64(len(testCase.ids)), total)
			ids := make([]string, 0, len(records))
			for _, record := range records {
				ids = append(ids, record.ID())
			}
			assert.Equal(t, testCase.ids, ids)
		})
	}
}

func TestSelectWindowAndTotal(t *testing.T) {
	client := newTestClient(t)
	seedCourses(t, client)

	records, total, err := client.Select(context.Background(), "courses", store.Selection{
		Order:  &store.Ordering{Column: "name"},
		Offset: 1,
		Limit:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), total)
	require.Len(t, records, 1)
	assert.Equal(t, "Bandon Dunes", records[0]["name"])
}

func TestSelectDescendingOrder(t *testing.T) {
	client := newTestClient(t)
	seedCourses(t, client)

	records, _, err := client.Select(context.Background(), "courses", store.Selection{
		Order: &store.Ordering{Column: "name", Descending: true},
	})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Pebble Beach", records[0]["name"])
}

func TestInsertGeneratesIDsAndRejectsDuplicates(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	inserted, err := client.Insert(ctx, "courses", []store.Record{{"name": "St Andrews"}})
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	assert.NotEmpty(t, inserted[0].ID())

	_, err = client.Insert(ctx, "courses", []store.Record{{"id": inserted[0].ID(), "name": "Dupe"}})
	var constraintErr *store.ConstraintError
	require.True(t, errors.As(err, &constraintErr))
}

func TestUpdateAndDelete(t *testing.T) {
	client := newTestClient(t)
	seedCourses(t, client)
	ctx := context.Background()

	updated, err := client.Update(ctx, "courses", []store.Condition{store.Eq("id", "c3")}, store.Record{"par": 72})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, 72, updated[0]["par"])

	require.NoError(t, client.Delete(ctx, "courses", []store.Condition{store.Eq("state", "CA")}))
	n, err := client.Count(ctx, "courses", nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
}

func TestCall(t *testing.T) {
	client := newTestClient(t)
	client.RegisterProcedure("echo", func(args ...any) ([]store.Record, error) {
		return []store.Record{{"arg": args[0]}}, nil
	})

	records, err := client.Call(context.Background(), "echo", "hello")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "hello", records[0]["arg"])

	_, err = client.Call(context.Background(), "missing")
	assert.Error(t, err)
}

func TestUnknownTable(t *testing.T) {
	client := newTestClient(t)
	_, _, err := client.Select(context.Background(), "nope", store.Selection{})
	assert.Error(t, err)
}
