package series

import (
	"context"
	"encoding/json"

	"github.com/golfcompete/golf-server/internal/query"
	"github.com/golfcompete/golf-server/internal/service"
	"github.com/golfcompete/golf-server/internal/store"
	"github.com/google/uuid"
)

// Service provides series & event management on top of the generic resource access layer
type Service struct {
	series       *service.Resources[Series]
	events       *service.Resources[Event]
	participants *service.Resources[Participant]
}

// NewService creates a new series service
func NewService(base *service.Base) *Service {
	return &Service{
		series:       service.NewResources[Series](base, "series"),
		events:       service.NewResources[Event](base, "events"),
		participants: service.NewResources[Participant](base, "event_participants"),
	}
}

// List retrieves one page of series, optionally restricted to an owner
func (svc *Service) List(ctx context.Context, ownerID string, page, limit any) *service.Paginated[Series] {
	params := query.Parse(query.Raw{
		Page:   page,
		Limit:  limit,
		SortBy: "name",
		Filters: map[string]any{
			// A missing owner filter is expressed by a nil value, which the parser drops
			"ownerId": optional(ownerID),
		},
	})
	return svc.series.FetchRecords(ctx, params)
}

// Get retrieves a single series by its ID
func (svc *Service) Get(ctx context.Context, id string) *service.Response[Series] {
	return svc.series.FetchByID(ctx, id)
}

// Create creates a new series
func (svc *Service) Create(ctx context.Context, obj Series) *service.Response[Series] {
	if obj.Name == "" || obj.OwnerID == "" {
		return service.Fail[Series](service.NewError(service.CodeValidation, "a series requires a name and an owner", nil))
	}
	obj.ID = uuid.NewString()
	return svc.series.InsertRecord(ctx, obj)
}

// Update applies the given changes to a series
func (svc *Service) Update(ctx context.Context, id string, changes store.Record) *service.Response[Series] {
	return svc.series.UpdateRecord(ctx, id, changes)
}

// Delete deletes a series together with its events
func (svc *Service) Delete(ctx context.Context, id string) *service.Response[bool] {
	if response := svc.events.DeleteWhere(ctx, "seriesId", id); response.Error != nil {
		return response
	}
	return svc.series.DeleteRecord(ctx, id)
}

// ListEvents retrieves the events of a series in chronological order
func (svc *Service) ListEvents(ctx context.Context, seriesID string, page, limit any) *service.Paginated[Event] {
	params := query.Parse(query.Raw{
		Page:   page,
		Limit:  limit,
		SortBy: "eventDate",
		Filters: map[string]any{
			"seriesId": seriesID,
		},
	})
	return svc.events.FetchRecords(ctx, params)
}

// AddEvent adds a new event to a series
func (svc *Service) AddEvent(ctx context.Context, obj Event) *service.Response[Event] {
	if obj.SeriesID == "" || obj.Name == "" || obj.EventDate == "" {
		return service.Fail[Event](service.NewError(service.CodeValidation, "an event requires a series, a name and a date", nil))
	}
	obj.ID = uuid.NewString()
	return svc.events.InsertRecord(ctx, obj)
}

// Join registers a profile as a participant of an event.
// A duplicate registration surfaces as a constraint violation from the store.
func (svc *Service) Join(ctx context.Context, eventID, profileID string) *service.Response[Participant] {
	return svc.participants.InsertRecord(ctx, Participant{
		ID:        uuid.NewString(),
		EventID:   eventID,
		ProfileID: profileID,
	})
}

// Leave removes a profile from an event
func (svc *Service) Leave(ctx context.Context, eventID, profileID string) *service.Response[bool] {
	listing := svc.participants.FetchRecords(ctx, query.Parse(query.Raw{
		Filters: map[string]any{
			"eventId":   eventID,
			"profileId": profileID,
		},
	}))
	if listing.Error != nil {
		return service.Fail[bool](listing.Error)
	}
	if len(listing.Data) == 0 {
		return service.Fail[bool](service.NewError(service.CodeNotFound, "the profile is not registered for this event", nil))
	}
	return svc.participants.DeleteRecord(ctx, listing.Data[0].ID)
}

// RecordResult stores the scores of a participant
func (svc *Service) RecordResult(ctx context.Context, participantID string, changes store.Record) *service.Response[Participant] {
	return svc.participants.UpdateRecord(ctx, participantID, changes)
}

// Standings computes the leaderboard of a series through the store-side procedure
func (svc *Service) Standings(ctx context.Context, seriesID string) *service.Response[[]Standing] {
	response := svc.series.RawQuery(ctx, "series_leaderboard", seriesID)
	if response.Error != nil {
		return service.Fail[[]Standing](response.Error)
	}

	standings := make([]Standing, 0, len(*response.Data))
	for _, record := range *response.Data {
		var standing Standing
		buf, err := json.Marshal(record)
		if err == nil {
			err = json.Unmarshal(buf, &standing)
		}
		if err != nil {
			return service.Fail[[]Standing](service.NewError(service.CodeQueryError, "the leaderboard row could not be decoded", err))
		}
		standings = append(standings, standing)
	}
	return service.OK(standings)
}

func optional(value string) any {
	if value == "" {
		return nil
	}
	return value
}
