package models

import "time"

type Home struct {
	ID           string
	Name         string
	PasswordHash string
	Image        string
	CreatedAt    time.Time
}

// Member is a handle and image copied from a User when it joins a Home.
// It is not kept in sync with later profile changes.
type Member struct {
	Handle string `json:"handle"`
	Image  string `json:"image"`
}
