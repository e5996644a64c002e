package service

import (
	"context"
	"log/slog"

	"blogly/internal/middleware"
	"blogly/internal/models"
	"blogly/internal/observability"
	"blogly/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// DefaultRecentLimit is used when RecentPosts is called without a positive limit.
const DefaultRecentLimit = 5

// PostService manages posts and checks that their author exists.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// PostInput is the post form.
type PostInput struct {
	Title   string `form:"title" conform:"trim" validate:"required,max=100" label:"Title"`
	Content string `form:"content" conform:"trim" validate:"required" label:"Content"`
}

// NewPostService returns a PostService backed by the post and user repositories.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// RecentPosts returns the newest posts with their authors.
func (s *PostService) RecentPosts(ctx context.Context, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	return s.postRepo.Recent(ctx, limit)
}

// GetPost returns the post with its author attached.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	author, err := s.userRepo.GetByID(ctx, post.UserID)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	post.User = author
	return post, nil
}

// CreatePost validates in and saves it as a new post by userID.
func (s *PostService) CreatePost(ctx context.Context, userID uint, in PostInput) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.CreatePost", attribute.Int64("user.id", int64(userID)))
	defer span.End()

	author, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := sanitizeAndValidate(&in); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:   in.Title,
		Content: in.Content,
		UserID:  author.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		span.SetError(err)
		return nil, err
	}
	post.User = author
	return post, nil
}

// UpdatePost validates in and replaces the post's title and content.
func (s *PostService) UpdatePost(ctx context.Context, id uint, in PostInput) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.UpdatePost", attribute.Int64("post.id", int64(id)))
	defer span.End()

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sanitizeAndValidate(&in); err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Content = in.Content
	if err := s.postRepo.Update(ctx, post); err != nil {
		span.SetError(err)
		return nil, err
	}
	return post, nil
}

// DeletePost removes the post, returning it so the caller can redirect to its author.
func (s *PostService) DeletePost(ctx context.Context, id uint) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.DeletePost", attribute.Int64("post.id", int64(id)))
	defer span.End()

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		span.SetError(err)
		return nil, err
	}
	middleware.Logger.InfoContext(ctx, "Post deleted", slog.Uint64("post_id", uint64(id)), slog.Uint64("user_id", uint64(post.UserID)))
	return post, nil
}
