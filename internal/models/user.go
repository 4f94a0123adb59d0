package models

// User represents a registered account.
//
// Users are identified by a caller-chosen userId rather than a generated
// one; registration fails if the id is already taken.
type User struct {
	// ID is the unique identifier for the user, chosen at registration.
	ID string `json:"userId"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// PasswordHash is the bcrypt hash of the user's optional password.
	// Empty when the user registered without one. Never serialized.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"createdAt"`
}
