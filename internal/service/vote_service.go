package service

import (
	"context"

	"pulseboard/internal/models"
	"pulseboard/internal/observability"
	"pulseboard/internal/repository"
	"pulseboard/internal/validation"
)

// VoteService drives the per-(user, post) vote state machine. dir=1 adds a
// vote and conflicts if one exists; dir=0 retracts and fails if none exists.
type VoteService struct {
	voteRepo repository.VoteRepository
	postRepo repository.PostRepository
}

type CastVoteInput struct {
	PostID uint `json:"post_id"`
	Dir    int  `json:"dir"`
}

func NewVoteService(voteRepo repository.VoteRepository, postRepo repository.PostRepository) *VoteService {
	return &VoteService{
		voteRepo: voteRepo,
		postRepo: postRepo,
	}
}

// CastVote applies one transition for the caller on the target post and
// reports whether a vote was added (true) or retracted (false).
func (s *VoteService) CastVote(ctx context.Context, userID uint, in CastVoteInput) (bool, error) {
	if err := validation.ValidateVoteDir(in.Dir); err != nil {
		return false, models.NewValidationError(err.Error())
	}

	// The post must exist before any transition is considered.
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return false, err
	}

	existing, err := s.voteRepo.Get(ctx, userID, in.PostID)
	if err != nil {
		return false, err
	}

	if in.Dir == 1 {
		if existing != nil {
			observability.VoteTransitions.WithLabelValues("conflict").Inc()
			return false, models.NewConflictError("User has already voted on this post")
		}
		if err := s.voteRepo.Create(ctx, &models.Vote{UserID: userID, PostID: in.PostID}); err != nil {
			// A concurrent add can still lose the race to the composite key.
			if appErr, ok := err.(*models.AppError); ok && appErr.Code == models.CodeConflict {
				observability.VoteTransitions.WithLabelValues("conflict").Inc()
			}
			return false, err
		}
		observability.VoteTransitions.WithLabelValues("added").Inc()
		return true, nil
	}

	if existing == nil {
		observability.VoteTransitions.WithLabelValues("missing").Inc()
		return false, models.NewNotFoundError("Vote for post", in.PostID)
	}
	if err := s.voteRepo.Delete(ctx, userID, in.PostID); err != nil {
		return false, err
	}
	observability.VoteTransitions.WithLabelValues("retracted").Inc()
	return false, nil
}
