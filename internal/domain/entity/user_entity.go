package entity

import "time"

// User is the single identity record for both local and Google accounts.
//
// Invariants: exactly one User per email; username unique; GoogleAuth true
// means PasswordHash is empty and local sign-in is rejected, GoogleAuth
// false means PasswordHash is set and Google sign-in is rejected.
type User struct {
	ID           string
	FullName     string
	Email        string
	Username     string
	PasswordHash string // empty for Google accounts
	GoogleAuth   bool
	ProfileImg   string
	Bio          string
	TotalPosts   int64
	TotalReads   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
