package model

import "time"

// Role values stored in users.role.  A user with no explicit role has the
// empty string; only RoleAdmin unlocks the administrative endpoints.
const (
	RoleAdmin = "admin"
)

// User represents an application user record as stored in the `users`
// table.  The email is the unique key: tokens carry an email claim and the
// authorization gate resolves it against this table.  The role is mutated
// only by the explicit promotion endpoint, never by the token holder.
//
// Fields:
//
//	ID           – primary key identifier.
//	Email        – unique email address.
//	Name         – display name supplied at registration.
//	PasswordHash – optional bcrypt hash; empty when no password was given.
//	Role         – "" or "admin".
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           int64     // users.id
	Email        string    // users.email
	Name         string    // users.name
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	CreatedAt    time.Time // users.created_at
}
