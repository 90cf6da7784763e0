package models

import (
	"slices"
	"time"
)

// User is a person who books time. Emails are unique across users.
// PasswordHash is produced by the password hasher collaborator; the domain never sees plaintext.
type User struct {
	ID           UserID
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	RoleIDs      []RoleID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser constructs a User with a freshly minted ID and no roles.
func NewUser(email, firstName, lastName, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           NewID[userTag](),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// UpdateDetails replaces the profile fields. An empty passwordHash keeps the current one.
func (u *User) UpdateDetails(email, firstName, lastName, passwordHash string) {
	u.Email = email
	u.FirstName = firstName
	u.LastName = lastName
	if passwordHash != "" {
		u.PasswordHash = passwordHash
	}
	u.UpdatedAt = time.Now().UTC()
}

// HasRole reports whether roleID is assigned to the user.
func (u *User) HasRole(roleID RoleID) bool {
	return slices.Contains(u.RoleIDs, roleID)
}

// AssignRole adds roleID. Callers check HasRole first; assigning twice is a no-op.
func (u *User) AssignRole(roleID RoleID) {
	if u.HasRole(roleID) {
		return
	}
	u.RoleIDs = append(u.RoleIDs, roleID)
	u.UpdatedAt = time.Now().UTC()
}

// UnassignRole removes roleID if present.
func (u *User) UnassignRole(roleID RoleID) {
	u.RoleIDs = slices.DeleteFunc(u.RoleIDs, func(id RoleID) bool { return id == roleID })
	u.UpdatedAt = time.Now().UTC()
}

// DisplayName is the email, the user's unique key.
func (u *User) DisplayName() string { return u.Email }
func (u *User) Identity() UserID    { return u.ID }
