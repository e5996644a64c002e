package service

import (
	"context"
	"strings"
	"testing"

	"blogly/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostService_RecentPosts_DefaultLimit(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	var gotLimit int
	posts.recentFn = func(_ context.Context, limit int) ([]models.Post, error) {
		gotLimit = limit
		return []models.Post{{ID: 1}}, nil
	}
	svc := NewPostService(posts, noopUserRepo())

	_, err := svc.RecentPosts(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultRecentLimit, gotLimit)

	_, err = svc.RecentPosts(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, 12, gotLimit)
}

func TestPostService_GetPost_AttachesAuthor(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 7, Title: "Hello"}, nil
	}
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, FirstName: "Alan", LastName: "Alda"}, nil
	}

	post, err := NewPostService(posts, users).GetPost(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, post.User)
	assert.Equal(t, "Alan Alda", post.User.FullName())
}

func TestPostService_GetPost_MissingAuthorIsNotFound(t *testing.T) {
	t.Parallel()

	users := noopUserRepo()
	users.getByIDFn = notFound("User")

	_, err := NewPostService(noopPostRepo(), users).GetPost(context.Background(), 3)
	assert.True(t, models.IsNotFound(err))
}

func TestPostService_CreatePost(t *testing.T) {
	t.Parallel()

	t.Run("creates for author", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		var saved *models.Post
		posts.createFn = func(_ context.Context, p *models.Post) error {
			p.ID = 40
			saved = p
			return nil
		}
		users := noopUserRepo()
		users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, FirstName: "Jane", LastName: "Smith"}, nil
		}

		post, err := NewPostService(posts, users).CreatePost(context.Background(), 2, PostInput{
			Title:   "  First Post  ",
			Content: "Hello world",
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, uint(2), saved.UserID)
		assert.Equal(t, "First Post", saved.Title)
		assert.Equal(t, uint(40), post.ID)
		assert.Equal(t, "Jane", post.User.FirstName)
	})

	t.Run("unknown author", func(t *testing.T) {
		t.Parallel()
		users := noopUserRepo()
		users.getByIDFn = notFound("User")
		_, err := NewPostService(noopPostRepo(), users).CreatePost(context.Background(), 2, PostInput{Title: "t", Content: "c"})
		assert.True(t, models.IsNotFound(err))
	})

	t.Run("missing title", func(t *testing.T) {
		t.Parallel()
		_, err := NewPostService(noopPostRepo(), noopUserRepo()).CreatePost(context.Background(), 2, PostInput{Content: "c"})
		assertValidationError(t, err, "Title is required")
	})

	t.Run("missing content", func(t *testing.T) {
		t.Parallel()
		_, err := NewPostService(noopPostRepo(), noopUserRepo()).CreatePost(context.Background(), 2, PostInput{Title: "t"})
		assertValidationError(t, err, "Content is required")
	})

	t.Run("title too long", func(t *testing.T) {
		t.Parallel()
		_, err := NewPostService(noopPostRepo(), noopUserRepo()).CreatePost(context.Background(), 2, PostInput{
			Title:   strings.Repeat("t", 101),
			Content: "c",
		})
		assertValidationError(t, err, "Title must be at most 100 characters")
	})

	t.Run("title at the limit", func(t *testing.T) {
		t.Parallel()
		post, err := NewPostService(noopPostRepo(), noopUserRepo()).CreatePost(context.Background(), 2, PostInput{
			Title:   strings.Repeat("t", 100),
			Content: "c",
		})
		require.NoError(t, err)
		assert.Len(t, post.Title, 100)
	})
}

func TestPostService_UpdatePost_KeepsOwner(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 9, Title: "Old", Content: "Old body"}, nil
	}
	var saved *models.Post
	posts.updateFn = func(_ context.Context, p *models.Post) error {
		saved = p
		return nil
	}

	_, err := NewPostService(posts, noopUserRepo()).UpdatePost(context.Background(), 5, PostInput{Title: "New", Content: "New body"})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, uint(9), saved.UserID)
	assert.Equal(t, "New", saved.Title)
	assert.Equal(t, "New body", saved.Content)
}

func TestPostService_DeletePost(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 4, Title: "Bye"}, nil
	}
	var deleted uint
	posts.deleteFn = func(_ context.Context, id uint) error {
		deleted = id
		return nil
	}

	post, err := NewPostService(posts, noopUserRepo()).DeletePost(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, uint(6), deleted)
	assert.Equal(t, uint(4), post.UserID)

	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	_, err = NewPostService(posts, noopUserRepo()).DeletePost(context.Background(), 6)
	assert.True(t, models.IsNotFound(err))
}
