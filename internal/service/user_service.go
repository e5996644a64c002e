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

// UserService manages users and validates the user form.
type UserService struct {
	userRepo repository.UserRepository
}

// UserInput is the user form. A blank ImageURL is stored as NULL.
type UserInput struct {
	FirstName string `form:"first_name" conform:"trim" validate:"required,max=50" label:"First name"`
	LastName  string `form:"last_name" conform:"trim" validate:"required,max=50" label:"Last name"`
	ImageURL  string `form:"image_url" conform:"trim" validate:"omitempty,http_url,max=2048" label:"Image URL"`
}

func (in UserInput) imageURL() *string {
	if in.ImageURL == "" {
		return nil
	}
	v := in.ImageURL
	return &v
}

// NewUserService returns a UserService backed by userRepo.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserWithPosts returns the user and their posts, newest first.
func (s *UserService) GetUserWithPosts(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByIDWithPosts(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, in UserInput) (*models.User, error) {
	span, ctx := observability.NewSpan(ctx, "UserService.CreateUser")
	defer span.End()

	if err := sanitizeAndValidate(&in); err != nil {
		return nil, err
	}

	user := &models.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		ImageURL:  in.imageURL(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		span.SetError(err)
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, in UserInput) (*models.User, error) {
	span, ctx := observability.NewSpan(ctx, "UserService.UpdateUser", attribute.Int64("user.id", int64(id)))
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sanitizeAndValidate(&in); err != nil {
		return nil, err
	}

	user.FirstName = in.FirstName
	user.LastName = in.LastName
	user.ImageURL = in.imageURL()

	if err := s.userRepo.Update(ctx, user); err != nil {
		span.SetError(err)
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user and their posts, returning the deleted user for the confirmation message.
func (s *UserService) DeleteUser(ctx context.Context, id uint) (*models.User, error) {
	span, ctx := observability.NewSpan(ctx, "UserService.DeleteUser", attribute.Int64("user.id", int64(id)))
	defer span.End()

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		span.SetError(err)
		return nil, err
	}
	middleware.Logger.InfoContext(ctx, "User deleted", slog.Uint64("user_id", uint64(id)))
	return user, nil
}
