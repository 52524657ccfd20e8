package course

import (
	"context"

	"github.com/golfcompete/golf-server/internal/query"
	"github.com/golfcompete/golf-server/internal/service"
	"github.com/golfcompete/golf-server/internal/store"
	"github.com/google/uuid"
)

// Service provides course management on top of the generic resource access layer.
// It owns no state besides its resource handles and adds only domain query shaping.
type Service struct {
	courses *service.Resources[Course]
	holes   *service.Resources[Hole]
}

// NewService creates a new course service
func NewService(base *service.Base) *Service {
	return &Service{
		courses: service.NewResources[Course](base, "courses"),
		holes:   service.NewResources[Hole](base, "holes"),
	}
}

// ListFilter shapes the course listing query
type ListFilter struct {
	// Search matches the course name case-insensitively
	Search string
	// States restricts the listing to the given states
	States []string
	// MinPar drops courses below the given par; zero means no restriction
	MinPar int
}

// List retrieves one page of courses. Arbitrary filter conditions may be passed via the raw
// query-parameters object; the typed convenience filter wins on conflicts. The listing is ordered
// by name unless the raw object requests another ordering.
func (svc *Service) List(ctx context.Context, filter ListFilter, raw query.Raw) *service.Paginated[Course] {
	if raw.Filters == nil {
		raw.Filters = map[string]any{}
	}
	if filter.Search != "" {
		raw.Filters["name"] = map[string]any{"ilike": "%" + filter.Search + "%"}
	}
	if len(filter.States) > 0 {
		raw.Filters["state"] = map[string]any{"in": filter.States}
	}
	if filter.MinPar > 0 {
		raw.Filters["par"] = map[string]any{"gte": filter.MinPar}
	}
	if raw.SortBy == "" {
		raw.SortBy = "name"
	}
	return svc.courses.FetchRecords(ctx, query.Parse(raw))
}

// Get retrieves a single course by its ID
func (svc *Service) Get(ctx context.Context, id string) *service.Response[Course] {
	return svc.courses.FetchByID(ctx, id)
}

// GetScorecard retrieves a course together with its holes, ordered by hole number
func (svc *Service) GetScorecard(ctx context.Context, id string) *service.Response[Scorecard] {
	courseResponse := svc.courses.FetchByID(ctx, id)
	if courseResponse.Error != nil {
		return service.Fail[Scorecard](courseResponse.Error)
	}

	holesResponse := svc.holes.FetchRecords(ctx, query.Parse(query.Raw{
		Limit:  27,
		SortBy: "number",
		Filters: map[string]any{
			"courseId": id,
		},
	}))
	if holesResponse.Error != nil {
		return service.Fail[Scorecard](holesResponse.Error)
	}

	return service.OK(Scorecard{
		Course: *courseResponse.Data,
		Holes:  holesResponse.Data,
	})
}

// Create creates a new course together with its holes.
// The two inserts are separate round trips; there is no cross-call transaction, so a failed hole
// insert leaves the course row in place and is surfaced to the caller.
func (svc *Service) Create(ctx context.Context, course Course, holes []Hole) *service.Response[Scorecard] {
	if course.Name == "" {
		return service.Fail[Scorecard](service.NewError(service.CodeValidation, "a course requires a name", nil))
	}
	course.ID = uuid.NewString()

	courseResponse := svc.courses.InsertRecord(ctx, course)
	if courseResponse.Error != nil {
		return service.Fail[Scorecard](courseResponse.Error)
	}

	for i := range holes {
		holes[i].ID = uuid.NewString()
		holes[i].CourseID = course.ID
	}
	holesResponse := svc.holes.InsertBatch(ctx, holes)
	if holesResponse.Error != nil {
		return service.Fail[Scorecard](holesResponse.Error)
	}

	return service.OK(Scorecard{
		Course: *courseResponse.Data,
		Holes:  *holesResponse.Data,
	})
}

// Update applies the given changes to a course
func (svc *Service) Update(ctx context.Context, id string, changes store.Record) *service.Response[Course] {
	return svc.courses.UpdateRecord(ctx, id, changes)
}

// Delete deletes a course and its holes
func (svc *Service) Delete(ctx context.Context, id string) *service.Response[bool] {
	if response := svc.holes.DeleteWhere(ctx, "courseId", id); response.Error != nil {
		return response
	}
	return svc.courses.DeleteRecord(ctx, id)
}
