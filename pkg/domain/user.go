package domain

// UserProfile is the identity returned by GET /api/me.
// It is replaced wholesale on each fetch, never patched.
type UserProfile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
