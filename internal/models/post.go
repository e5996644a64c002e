package models

import "time"

// FriendlyDateLayout renders timestamps like "Mon Jan 2 2006, 3:04 PM".
const FriendlyDateLayout = "Mon Jan 2 2006, 3:04 PM"

// Post is a blog post owned by a User.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FriendlyDate formats CreatedAt for display.
func (p Post) FriendlyDate() string {
	return p.CreatedAt.Format(FriendlyDateLayout)
}
