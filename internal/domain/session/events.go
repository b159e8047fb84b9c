package session

import "time"

const (
	EventUserSignedUp  = "UserSignedUp"
	EventUserLoggedIn  = "UserLoggedIn"
	EventUserLoggedOut = "UserLoggedOut"
)

type UserSignedUp struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	SignedAt time.Time `json:"signed_at"`
}

type UserLoggedIn struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	LoggedAt time.Time `json:"logged_at"`
}

type UserLoggedOut struct {
	UserID   string    `json:"user_id"`
	LoggedAt time.Time `json:"logged_at"`
}
