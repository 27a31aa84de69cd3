package server

import (
	"pulseboard/internal/models"
	"pulseboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CastVote handles POST /api/vote. dir=1 adds the caller's vote on the post,
// dir=0 retracts it.
func (s *Server) CastVote(c *fiber.Ctx) error {
	var req service.CastVoteInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	added, err := s.voteService.CastVote(c.UserContext(), currentUserID(c), req)
	if err != nil {
		return models.RespondError(c, err)
	}

	message := "successfully deleted vote"
	if added {
		message = "successfully added vote"
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
	})
}
