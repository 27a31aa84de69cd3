package service

import (
	"context"

	"pulseboard/internal/models"
	"pulseboard/internal/repository"
)

const (
	defaultListLimit = 5
	maxListLimit     = 100
)

// PostService handles the post lifecycle. All mutations are gated on
// ownership; existence is checked before ownership so a non-owner probing a
// missing ID learns nothing extra.
type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	// Published defaults to true when omitted.
	Published *bool `json:"published"`
}

// ReplacePostInput is the full-replacement payload. Every field is
// authoritative: omitting published resets it to the default (true), it never
// preserves the stored value like PatchPostInput does.
type ReplacePostInput struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published *bool  `json:"published"`
}

// PatchPostInput carries partial updates; nil fields are left unchanged.
type PatchPostInput struct {
	Title     *string `json:"title"`
	Content   *string `json:"content"`
	Published *bool   `json:"published"`
}

type ListPostsInput struct {
	Search string
	Limit  int
	Skip   int
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, userID uint, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}

	post := &models.Post{
		Title:     in.Title,
		Content:   in.Content,
		Published: published,
		UserID:    userID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	skip := in.Skip
	if skip < 0 {
		skip = 0
	}
	return s.postRepo.List(ctx, in.Search, limit, skip)
}

// ReplacePost overwrites every mutable field of the post.
func (s *PostService) ReplacePost(ctx context.Context, userID, postID uint, in ReplacePostInput) (*models.Post, error) {
	post, err := s.ownedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}

	post.Title = in.Title
	post.Content = in.Content
	post.Published = published

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// PatchPost updates only the fields present in the payload.
func (s *PostService) PatchPost(ctx context.Context, userID, postID uint, in PatchPostInput) (*models.Post, error) {
	post, err := s.ownedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title must not be empty")
		}
		post.Title = *in.Title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, models.NewValidationError("Content must not be empty")
		}
		post.Content = *in.Content
	}
	if in.Published != nil {
		post.Published = *in.Published
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	if _, err := s.ownedPost(ctx, userID, postID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

// ownedPost loads the post and enforces ownership. NotFound wins over
// Forbidden when both would apply.
func (s *PostService) ownedPost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, models.NewForbiddenError("Not authorized to perform requested action")
	}
	return post, nil
}
