package repository

import (
	"context"
	"errors"

	"pulseboard/internal/cache"
	"pulseboard/internal/models"

	"gorm.io/gorm"
)

// VoteRepository defines persistence operations for the (user, post) vote pair.
type VoteRepository interface {
	Get(ctx context.Context, userID, postID uint) (*models.Vote, error)
	Create(ctx context.Context, vote *models.Vote) error
	Delete(ctx context.Context, userID, postID uint) error
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository returns a new VoteRepository implementation.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Get(ctx context.Context, userID, postID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &vote, nil
}

// Create inserts the vote pair. Two concurrent inserts race on the composite
// primary key; the loser's uniqueness violation surfaces as Conflict, never
// as an opaque storage error.
func (r *voteRepository) Create(ctx context.Context, vote *models.Vote) error {
	if err := r.db.WithContext(ctx).Create(vote).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("User has already voted on this post")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, vote.PostID)
	return nil
}

// Delete removes the vote pair. Deleting a pair that does not exist reports
// NotFound so the state machine's dir=0-from-NoVote case is visible even
// under concurrent retractions.
func (r *voteRepository) Delete(ctx context.Context, userID, postID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Vote{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Vote for post", postID)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}
