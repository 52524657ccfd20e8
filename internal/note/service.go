package note

import (
	"context"

	"github.com/golfcompete/golf-server/internal/query"
	"github.com/golfcompete/golf-server/internal/service"
	"github.com/golfcompete/golf-server/internal/store"
	"github.com/google/uuid"
)

// Service provides note management.
// It is a pure composition of the generic resource access layer with no extra state.
type Service struct {
	notes *service.Resources[Note]
}

// NewService creates a new note service
func NewService(base *service.Base) *Service {
	return &Service{
		notes: service.NewResources[Note](base, "notes"),
	}
}

// ListForSubjects retrieves the notes of a profile attached to any of the given subjects
func (svc *Service) ListForSubjects(ctx context.Context, profileID, subjectType string, subjectIDs []string, page, limit any) *service.Paginated[Note] {
	params := query.Parse(query.Raw{
		Page:  page,
		Limit: limit,
		Filters: map[string]any{
			"profileId":   profileID,
			"subjectType": subjectType,
			"subjectId":   map[string]any{"in": subjectIDs},
		},
	})
	return svc.notes.FetchRecords(ctx, params)
}

// Get retrieves a note by its ID
func (svc *Service) Get(ctx context.Context, id string) *service.Response[Note] {
	return svc.notes.FetchByID(ctx, id)
}

// Create attaches a new note to a subject
func (svc *Service) Create(ctx context.Context, obj Note) *service.Response[Note] {
	if obj.Body == "" || obj.SubjectID == "" || obj.SubjectType == "" {
		return service.Fail[Note](service.NewError(service.CodeValidation, "a note requires a subject and a body", nil))
	}
	obj.ID = uuid.NewString()
	return svc.notes.InsertRecord(ctx, obj)
}

// Update replaces the body of a note
func (svc *Service) Update(ctx context.Context, id, body string) *service.Response[Note] {
	return svc.notes.UpdateRecord(ctx, id, store.Record{"body": body})
}

// Delete deletes a note
func (svc *Service) Delete(ctx context.Context, id string) *service.Response[bool] {
	return svc.notes.DeleteRecord(ctx, id)
}
