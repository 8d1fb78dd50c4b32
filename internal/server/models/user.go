package models

import "time"

// Settings is the per-user preference bag, stored as JSON.
type Settings struct {
	Vibrate bool `json:"vibrate"`
}

// DefaultSettings is what a freshly registered user gets.
func DefaultSettings() Settings {
	return Settings{Vibrate: true}
}

type User struct {
	ID           string
	Handle       string
	Email        string
	PasswordHash string
	Image        string
	// Home is the name of the joined home; empty when the user has none.
	Home      string
	Settings  Settings
	CreatedAt time.Time
}

// HasHome reports whether the user currently references a home.
func (u *User) HasHome() bool {
	return u.Home != ""
}
