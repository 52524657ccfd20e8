package auth

// Profile represents the application-side profile of a registered player.
// Credentials are owned by the identity provider; the profile only carries golf data.
type Profile struct {
	ID          string  `json:"id,omitempty"`
	Email       string  `json:"email"`
	DisplayName string  `json:"displayName"`
	Handicap    float64 `json:"handicap,omitempty"`
	IsAdmin     bool    `json:"isAdmin"`
}
