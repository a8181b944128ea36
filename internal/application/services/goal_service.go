package services

import (
	"context"

	"github.com/journalkeep/core/internal/domain/entities"
	"github.com/journalkeep/core/internal/infrastructure/logger"
	"github.com/journalkeep/core/internal/ports"
)

// GoalService handles goal operations. Writes go exclusively through the
// full-replace sync below.
type GoalService struct {
	goalRepo ports.GoalRepository
	userRepo ports.UserRepository
	logger   *logger.Logger
}

// NewGoalService creates a new goal service
func NewGoalService(goalRepo ports.GoalRepository, userRepo ports.UserRepository, logger *logger.Logger) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// List returns the goals for the given owner. An empty ownerID means the
// requester's own goals.
func (s *GoalService) List(ctx context.Context, requesterID, ownerID string) ([]entities.Record, error) {
	if ownerID == "" {
		ownerID = requesterID
	}

	if err := s.authorize(ctx, requesterID, ownerID); err != nil {
		return nil, err
	}

	return s.goalRepo.ListForOwner(ctx, ownerID)
}

// Sync replaces the owner's whole goal set with the supplied one. Goals
// omitted from the request are deleted; supplied records are stored
// verbatim, ids included.
func (s *GoalService) Sync(ctx context.Context, requesterID string, req ports.SyncGoalsRequest) ([]entities.Record, error) {
	if req.UserID == "" || req.Goals == nil {
		return nil, entities.ErrInvalidRequest
	}

	if err := s.authorize(ctx, requesterID, req.UserID); err != nil {
		return nil, err
	}

	if err := s.goalRepo.ReplaceForOwner(ctx, req.UserID, req.Goals); err != nil {
		return nil, err
	}

	s.logger.Infow("Goals synced", "user_id", req.UserID, "count", len(req.Goals))
	return s.goalRepo.ListForOwner(ctx, req.UserID)
}

func (s *GoalService) authorize(ctx context.Context, requesterID, ownerID string) error {
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return entities.ErrUnauthorized
	}
	if !requester.CanAccess(ownerID) {
		return entities.ErrUnauthorized
	}
	return nil
}
