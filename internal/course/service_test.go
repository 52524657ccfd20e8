package course

import (
	"context"
	"testing"

	"github.com/golfcompete/golf-server/internal/query"
	"github.com/golfcompete/golf-server/internal/service"
	"github.com/golfcompete/golf-server/internal/store"
	"github.com/golfcompete/golf-server/internal/store/memdb"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	client, err := memdb.New("courses", "holes")
	require.NoError(t, err)
	return NewService(service.NewBase(client, zerolog.Nop()))
}

func seedCourses(t *testing.T, svc *Service) []Course {
	t.Helper()
	seeded := make([]Course, 0, 3)
	for _, obj := range []Course{
		{Name: "Pebble Beach", City: "Pebble Beach", State: "CA", HoleCount: 18, Par: 72},
		{Name: "Augusta National", City: "Augusta", State: "GA", HoleCount: 18, Par: 72},
		{Name: "Bandon Dunes", City: "Bandon", State: "OR", HoleCount: 18, Par: 71},
	} {
		response := svc.Create(context.Background(), obj, nil)
		require.Equal(t, service.StatusSuccess, response.Status)
		seeded = append(seeded, response.Data.Course)
	}
	return seeded
}

func TestCreateAssignsIDsAndLinksHoles(t *testing.T) {
	svc := newTestService(t)

	response := svc.Create(context.Background(), Course{Name: "Pacific Dunes", HoleCount: 2, Par: 8}, []Hole{
		{Number: 1, Par: 4},
		{Number: 2, Par: 4},
	})
	require.Equal(t, service.StatusSuccess, response.Status)
	require.NotNil(t, response.Data)

	assert.NotEmpty(t, response.Data.Course.ID)
	require.Len(t, response.Data.Holes, 2)
	for _, hole := range response.Data.Holes {
		assert.NotEmpty(t, hole.ID)
		assert.Equal(t, response.Data.Course.ID, hole.CourseID)
	}
}

func TestCreateRequiresAName(t *testing.T) {
	svc := newTestService(t)

	response := svc.Create(context.Background(), Course{Par: 72}, nil)
	require.Equal(t, service.StatusError, response.Status)
	require.NotNil(t, response.Error)
	assert.Equal(t, service.CodeValidation, response.Error.Code)
}

func TestListFiltersAndOrders(t *testing.T) {
	svc := newTestService(t)
	seedCourses(t, svc)

	listing := svc.List(context.Background(), ListFilter{}, query.Raw{})
	require.Equal(t, service.StatusSuccess, listing.Status)
	require.Len(t, listing.Data, 3)
	// Default ordering is by name
	assert.Equal(t, "Augusta National", listing.Data[0].Name)
	assert.Equal(t, "Bandon Dunes", listing.Data[1].Name)
	assert.Equal(t, "Pebble Beach", listing.Data[2].Name)

	search := svc.List(context.Background(), ListFilter{Search: "dunes"}, query.Raw{})
	require.Len(t, search.Data, 1)
	assert.Equal(t, "Bandon Dunes", search.Data[0].Name)

	states := svc.List(context.Background(), ListFilter{States: []string{"CA", "GA"}}, query.Raw{})
	assert.Len(t, states.Data, 2)

	minPar := svc.List(context.Background(), ListFilter{MinPar: 72}, query.Raw{})
	assert.Len(t, minPar.Data, 2)
}

func TestListMergesRawFilters(t *testing.T) {
	svc := newTestService(t)
	seedCourses(t, svc)

	listing := svc.List(context.Background(), ListFilter{}, query.Raw{
		Filters: map[string]any{"par": map[string]any{"lt": 72}},
	})
	require.Equal(t, service.StatusSuccess, listing.Status)
	require.Len(t, listing.Data, 1)
	assert.Equal(t, "Bandon Dunes", listing.Data[0].Name)

	// The typed convenience filter wins over a raw condition on the same column
	merged := svc.List(context.Background(), ListFilter{MinPar: 72}, query.Raw{
		Filters: map[string]any{"par": map[string]any{"lt": 72}},
	})
	assert.Len(t, merged.Data, 2)
}

func TestGetScorecardOrdersHolesByNumber(t *testing.T) {
	svc := newTestService(t)

	created := svc.Create(context.Background(), Course{Name: "Short Nine", HoleCount: 3, Par: 11}, []Hole{
		{Number: 3, Par: 4},
		{Number: 1, Par: 3},
		{Number: 2, Par: 4},
	})
	require.Equal(t, service.StatusSuccess, created.Status)

	scorecard := svc.GetScorecard(context.Background(), created.Data.Course.ID)
	require.Equal(t, service.StatusSuccess, scorecard.Status)
	require.Len(t, scorecard.Data.Holes, 3)
	assert.Equal(t, 1, scorecard.Data.Holes[0].Number)
	assert.Equal(t, 2, scorecard.Data.Holes[1].Number)
	assert.Equal(t, 3, scorecard.Data.Holes[2].Number)
}

func TestGetScorecardOfUnknownCourse(t *testing.T) {
	svc := newTestService(t)

	response := svc.GetScorecard(context.Background(), "eadd77ec-9ed9-4ae5-bd1e-bcea33ba5d3a")
	require.Equal(t, service.StatusError, response.Status)
	require.NotNil(t, response.Error)
	assert.Equal(t, service.CodeNotFound, response.Error.Code)
}

func TestUpdate(t *testing.T) {
	svc := newTestService(t)
	seeded := seedCourses(t, svc)

	response := svc.Update(context.Background(), seeded[0].ID, store.Record{"slope": 145})
	require.Equal(t, service.StatusSuccess, response.Status)
	assert.Equal(t, 145, response.Data.Slope)
	assert.Equal(t, seeded[0].Name, response.Data.Name)
}

func TestDeleteRemovesHoles(t *testing.T) {
	svc := newTestService(t)

	created := svc.Create(context.Background(), Course{Name: "Short Nine", HoleCount: 1, Par: 3}, []Hole{
		{Number: 1, Par: 3},
	})
	require.Equal(t, service.StatusSuccess, created.Status)
	id := created.Data.Course.ID

	deleted := svc.Delete(context.Background(), id)
	require.Equal(t, service.StatusSuccess, deleted.Status)

	response := svc.GetScorecard(context.Background(), id)
	require.Equal(t, service.StatusError, response.Status)
	assert.Equal(t, service.CodeNotFound, response.Error.Code)
}
