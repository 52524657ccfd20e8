package session

// Session represents a server-side login session of a profile.
// Sessions are identified by the hash of their token; the raw token only ever exists in the
// cookie handed to the client.
type Session struct {
	Token     string
	ProfileID string
	Expires   int64
}
