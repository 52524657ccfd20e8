package round

import "time"

// Round represents a played round of golf
type Round struct {
	ID          string    `json:"id,omitempty"`
	ProfileID   string    `json:"profileId"`
	CourseID    string    `json:"courseId"`
	EventID     *string   `json:"eventId,omitempty"`
	PlayedAt    time.Time `json:"playedAt"`
	GrossScore  int       `json:"grossScore,omitempty"`
	HolesPlayed int       `json:"holesPlayed"`
}

// HoleScore represents the score of a single hole within a round
type HoleScore struct {
	ID         string `json:"id,omitempty"`
	RoundID    string `json:"roundId"`
	HoleNumber int    `json:"holeNumber"`
	Strokes    int    `json:"strokes"`
	Putts      int    `json:"putts,omitempty"`
}

// Stats summarizes the rounds of a single profile
type Stats struct {
	RoundsPlayed uint64 `json:"roundsPlayed"`
}
