package round

import (
	"context"
	"fmt"

	"github.com/golfcompete/golf-server/internal/query"
	"github.com/golfcompete/golf-server/internal/service"
	"github.com/golfcompete/golf-server/internal/store"
	"github.com/google/uuid"
)

// Service provides round management on top of the generic resource access layer
type Service struct {
	base   *service.Base
	rounds *service.Resources[Round]
	scores *service.Resources[HoleScore]
}

// NewService creates a new round service
func NewService(base *service.Base) *Service {
	return &Service{
		base:   base,
		rounds: service.NewResources[Round](base, "rounds"),
		scores: service.NewResources[HoleScore](base, "hole_scores"),
	}
}

// ListByProfile retrieves one page of a profile's rounds.
// Rounds are a time-ordered resource, so the listing defaults to newest-first.
func (svc *Service) ListByProfile(ctx context.Context, profileID string, page, limit any) *service.Paginated[Round] {
	params := query.Parse(query.Raw{
		Page:    page,
		Limit:   limit,
		SortBy:  "playedAt",
		SortDir: "desc",
		Filters: map[string]any{
			"profileId": profileID,
		},
	})
	return svc.rounds.FetchRecords(ctx, params)
}

// Get retrieves a single round by its ID
func (svc *Service) Get(ctx context.Context, id string) *service.Response[Round] {
	return svc.rounds.FetchByID(ctx, id)
}

// GetScores retrieves the per-hole scores of a round, ordered by hole number
func (svc *Service) GetScores(ctx context.Context, roundID string) *service.Paginated[HoleScore] {
	return svc.scores.FetchRecords(ctx, query.Parse(query.Raw{
		Limit:  27,
		SortBy: "holeNumber",
		Filters: map[string]any{
			"roundId": roundID,
		},
	}))
}

// Submit records a played round together with its per-hole scores.
// The gross score is derived from the hole scores if it is not given.
func (svc *Service) Submit(ctx context.Context, round Round, scores []HoleScore) *service.Response[Round] {
	if round.ProfileID == "" || round.CourseID == "" {
		return service.Fail[Round](service.NewError(service.CodeValidation, "a round requires a profile and a course", nil))
	}
	if round.PlayedAt.IsZero() {
		return service.Fail[Round](service.NewError(service.CodeValidation, "a round requires a playing date", nil))
	}
	for _, score := range scores {
		if score.Strokes < 1 {
			return service.Fail[Round](service.NewError(service.CodeValidation, fmt.Sprintf("invalid stroke count on hole %d", score.HoleNumber), nil))
		}
	}

	round.ID = uuid.NewString()
	if round.HolesPlayed == 0 {
		round.HolesPlayed = len(scores)
	}
	if round.GrossScore == 0 {
		for _, score := range scores {
			round.GrossScore += score.Strokes
		}
	}

	roundResponse := svc.rounds.InsertRecord(ctx, round)
	if roundResponse.Error != nil {
		return roundResponse
	}

	for i := range scores {
		scores[i].ID = uuid.NewString()
		scores[i].RoundID = round.ID
	}
	if scoresResponse := svc.scores.InsertBatch(ctx, scores); scoresResponse.Error != nil {
		return service.Fail[Round](scoresResponse.Error)
	}

	return roundResponse
}

// Update applies the given changes to a round
func (svc *Service) Update(ctx context.Context, id string, changes store.Record) *service.Response[Round] {
	return svc.rounds.UpdateRecord(ctx, id, changes)
}

// Delete deletes a round and its per-hole scores
func (svc *Service) Delete(ctx context.Context, id string) *service.Response[bool] {
	if response := svc.scores.DeleteWhere(ctx, "roundId", id); response.Error != nil {
		return response
	}
	return svc.rounds.DeleteRecord(ctx, id)
}

// StatsByProfile summarizes the rounds of a profile.
// The count is a read-only operation, so it opts into the retry helper for transient failures.
func (svc *Service) StatsByProfile(ctx context.Context, profileID string) *service.Response[Stats] {
	var count *service.Response[uint64]
	err := svc.base.Retry(ctx, func(ctx context.Context) *service.Error {
		count = svc.rounds.Count(ctx, map[string]any{"profileId": profileID})
		return count.Error
	}, service.RetryOptions{})
	if err != nil {
		return service.Fail[Stats](err)
	}

	return service.OK(Stats{
		RoundsPlayed: *count.Data,
	})
}
