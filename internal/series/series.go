package series

import "time"

// Series represents a named competition series spanning multiple events
type Series struct {
	ID          string     `json:"id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	OwnerID     string     `json:"ownerId"`
	StartsAt    *time.Time `json:"startsAt,omitempty"`
	EndsAt      *time.Time `json:"endsAt,omitempty"`
}

// Event represents a single competition day within a series
type Event struct {
	ID        string `json:"id,omitempty"`
	SeriesID  string `json:"seriesId"`
	CourseID  string `json:"courseId,omitempty"`
	Name      string `json:"name"`
	EventDate string `json:"eventDate"`
	Format    string `json:"format,omitempty"`
}

// Participant represents a profile's result within an event
type Participant struct {
	ID         string `json:"id,omitempty"`
	EventID    string `json:"eventId"`
	ProfileID  string `json:"profileId"`
	GrossScore int    `json:"grossScore,omitempty"`
	NetScore   int    `json:"netScore,omitempty"`
	Points     int    `json:"points,omitempty"`
}

// Standing represents one row of a series leaderboard
type Standing struct {
	ProfileID    string `json:"profileId"`
	DisplayName  string `json:"displayName"`
	EventsPlayed int    `json:"eventsPlayed"`
	TotalPoints  int    `json:"totalPoints"`
}
