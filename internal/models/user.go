// Package models contains the persistent domain models for Blogly.
package models

import (
	"strings"
	"time"
)

// DefaultImageURL is shown for users that have no profile image.
const DefaultImageURL = "https://www.freeiconspng.com/uploads/icon-user-blue-symbol-people-person-generic--public-domain--21.png"

// User is a blog author.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:50;not null" json:"first_name"`
	LastName  string    `gorm:"size:50;not null" json:"last_name"`
	ImageURL  *string   `json:"image_url"`
	Posts     []Post    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns "First Last".
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Image returns the profile image URL, falling back to DefaultImageURL.
func (u User) Image() string {
	if u.ImageURL == nil || *u.ImageURL == "" {
		return DefaultImageURL
	}
	return *u.ImageURL
}

// ImageURLValue returns the stored image URL or "" for form prefill.
func (u User) ImageURLValue() string {
	if u.ImageURL == nil {
		return ""
	}
	return *u.ImageURL
}
