package user

// Principal is the authenticated caller as asserted by the bearer token.
type Principal struct {
	UserID string
	Email  string
}
