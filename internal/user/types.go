// Package user manages user accounts. Every user belongs to one
// subscriber and holds one role; both references are checked before
// any write.
package user

// User is a stored user. PasswordHash is never serialised.
type User struct {
	ID           int64  `json:"id"`
	SubscriberID int64  `json:"subscriber_id"`
	Email        string `json:"email"`
	RoleID       int64  `json:"role_id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// HasPassword reports whether a credential is stored for the user.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// NewUser holds the fields for Create. An empty PasswordHash stores NULL.
type NewUser struct {
	SubscriberID int64
	Email        string
	RoleID       int64
	Username     string
	PasswordHash string
}

// Patch holds the fields for Update. Nil fields are left unchanged.
type Patch struct {
	SubscriberID *int64
	Email        *string
	RoleID       *int64
	Username     *string
	PasswordHash *string
}

func (p Patch) empty() bool {
	return p.SubscriberID == nil && p.Email == nil && p.RoleID == nil &&
		p.Username == nil && p.PasswordHash == nil
}
