package domain

// Claims is the identity carried by a verified bearer token.
type Claims struct {
	UserID string
	Role   string
}
