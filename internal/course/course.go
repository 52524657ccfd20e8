package course

// Course represents a golf course manageable through the application
type Course struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name"`
	City      string   `json:"city,omitempty"`
	State     string   `json:"state,omitempty"`
	HoleCount int      `json:"holeCount"`
	Par       int      `json:"par"`
	Rating    float64  `json:"rating,omitempty"`
	Slope     int      `json:"slope,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Hole represents a single hole of a course
type Hole struct {
	ID            string `json:"id,omitempty"`
	CourseID      string `json:"courseId"`
	Number        int    `json:"number"`
	Par           int    `json:"par"`
	Yardage       int    `json:"yardage,omitempty"`
	HandicapIndex int    `json:"handicapIndex,omitempty"`
}

// Scorecard bundles a course with its holes
type Scorecard struct {
	Course Course `json:"course"`
	Holes  []Hole `json:"holes"`
}
