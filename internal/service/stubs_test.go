package service

import (
	"context"
	"testing"

	"pulseboard/internal/models"

	"github.com/stretchr/testify/require"
)

// Function-field stubs for the repository interfaces. The noop constructors
// return stubs whose every method fails the test if called unexpectedly.

type userRepoStub struct {
	t          *testing.T
	getByIDFn  func(ctx context.Context, id uint) (*models.User, error)
	getByEmail func(ctx context.Context, email string) (*models.User, error)
	createFn   func(ctx context.Context, user *models.User) error
	updateFn   func(ctx context.Context, user *models.User) error
	deleteFn   func(ctx context.Context, id uint) error
}

func noopUserRepo(t *testing.T) *userRepoStub {
	return &userRepoStub{t: t}
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn == nil {
		s.t.Fatal("unexpected call to UserRepository.GetByID")
	}
	return s.getByIDFn(ctx, id)
}

func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmail == nil {
		s.t.Fatal("unexpected call to UserRepository.GetByEmail")
	}
	return s.getByEmail(ctx, email)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.createFn == nil {
		s.t.Fatal("unexpected call to UserRepository.Create")
	}
	return s.createFn(ctx, user)
}

func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	if s.updateFn == nil {
		s.t.Fatal("unexpected call to UserRepository.Update")
	}
	return s.updateFn(ctx, user)
}

func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	if s.deleteFn == nil {
		s.t.Fatal("unexpected call to UserRepository.Delete")
	}
	return s.deleteFn(ctx, id)
}

type postRepoStub struct {
	t         *testing.T
	createFn  func(ctx context.Context, post *models.Post) error
	getByIDFn func(ctx context.Context, id uint) (*models.Post, error)
	listFn    func(ctx context.Context, search string, limit, skip int) ([]*models.Post, error)
	updateFn  func(ctx context.Context, post *models.Post) error
	deleteFn  func(ctx context.Context, id uint) error
}

func noopPostRepo(t *testing.T) *postRepoStub {
	return &postRepoStub{t: t}
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	if s.createFn == nil {
		s.t.Fatal("unexpected call to PostRepository.Create")
	}
	return s.createFn(ctx, post)
}

func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	if s.getByIDFn == nil {
		s.t.Fatal("unexpected call to PostRepository.GetByID")
	}
	return s.getByIDFn(ctx, id)
}

func (s *postRepoStub) List(ctx context.Context, search string, limit, skip int) ([]*models.Post, error) {
	if s.listFn == nil {
		s.t.Fatal("unexpected call to PostRepository.List")
	}
	return s.listFn(ctx, search, limit, skip)
}

func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	if s.updateFn == nil {
		s.t.Fatal("unexpected call to PostRepository.Update")
	}
	return s.updateFn(ctx, post)
}

func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	if s.deleteFn == nil {
		s.t.Fatal("unexpected call to PostRepository.Delete")
	}
	return s.deleteFn(ctx, id)
}

type voteRepoStub struct {
	t        *testing.T
	getFn    func(ctx context.Context, userID, postID uint) (*models.Vote, error)
	createFn func(ctx context.Context, vote *models.Vote) error
	deleteFn func(ctx context.Context, userID, postID uint) error
}

func noopVoteRepo(t *testing.T) *voteRepoStub {
	return &voteRepoStub{t: t}
}

func (s *voteRepoStub) Get(ctx context.Context, userID, postID uint) (*models.Vote, error) {
	if s.getFn == nil {
		s.t.Fatal("unexpected call to VoteRepository.Get")
	}
	return s.getFn(ctx, userID, postID)
}

func (s *voteRepoStub) Create(ctx context.Context, vote *models.Vote) error {
	if s.createFn == nil {
		s.t.Fatal("unexpected call to VoteRepository.Create")
	}
	return s.createFn(ctx, vote)
}

func (s *voteRepoStub) Delete(ctx context.Context, userID, postID uint) error {
	if s.deleteFn == nil {
		s.t.Fatal("unexpected call to VoteRepository.Delete")
	}
	return s.deleteFn(ctx, userID, postID)
}

func assertAppErrCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrCode(t, err, models.CodeValidation)
}
