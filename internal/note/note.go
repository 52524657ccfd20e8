package note

// Note represents a free-form note attached to another resource (a course, a round, ...)
type Note struct {
	ID          string `json:"id,omitempty"`
	ProfileID   string `json:"profileId"`
	SubjectType string `json:"subjectType"`
	SubjectID   string `json:"subjectId"`
	Body        string `json:"body"`
}
