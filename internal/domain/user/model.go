package user

// Principal is the authenticated caller identity. The API gateway in front
// of this service verifies credentials and forwards the user id.
type Principal struct {
	UserID string
}
