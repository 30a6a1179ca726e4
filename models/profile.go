// models/profile.go
package models

import "time"

// Profile is the cached projection of a user's upstream profile. Only the
// fields the navigation layer enriches the current user with are kept.
type Profile struct {
	UserID    string    `bson:"userId" json:"userId"`
	Name      string    `bson:"name" json:"name"`
	Avatar    string    `bson:"avatar" json:"avatar,omitempty"`
	Address   string    `bson:"address" json:"address,omitempty"`
	FetchedAt time.Time `bson:"fetchedAt" json:"fetchedAt"`
}

// Category is an active service category exposed to the registration flow.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"isActive"`
}
