// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"strings"
	"time"

	"blogly/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// Factory builds domain entities with realistic fake content.
type Factory struct {
	faker   *gofakeit.Faker
	maxDays int
}

// NewFactory creates a Factory. A seed of 0 picks a random seed.
func NewFactory(seed int64, maxDays int) *Factory {
	if maxDays <= 0 {
		maxDays = 90
	}
	return &Factory{faker: gofakeit.New(seed), maxDays: maxDays}
}

// BuildUser returns an unsaved user. Roughly a third get no image so the default avatar shows.
func (f *Factory) BuildUser(overrides ...func(*models.User)) *models.User {
	user := &models.User{
		FirstName: f.faker.FirstName(),
		LastName:  f.faker.LastName(),
	}
	if f.faker.Number(1, 3) > 1 {
		img := fmt.Sprintf("https://picsum.photos/seed/%s/200/200", f.faker.UUID())
		user.ImageURL = &img
	}
	for _, override := range overrides {
		override(user)
	}
	return user
}

// BuildPost returns an unsaved post for author with a created_at spread over the last maxDays.
func (f *Factory) BuildPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	title := strings.TrimSuffix(f.faker.Sentence(f.faker.Number(3, 7)), ".")
	if len(title) > 100 {
		title = title[:100]
	}

	back := time.Duration(f.faker.Number(0, f.maxDays*24*60)) * time.Minute
	post := &models.Post{
		Title:     title,
		Content:   f.faker.Paragraph(f.faker.Number(1, 3), 4, 12, "\n\n"),
		UserID:    author.ID,
		CreatedAt: time.Now().Add(-back),
	}
	for _, override := range overrides {
		override(post)
	}
	return post
}

// Pick returns a pseudo-random element index in [0, n).
func (f *Factory) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	return f.faker.Number(0, n-1)
}
