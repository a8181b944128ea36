package services

import (
	"context"

	"github.com/journalkeep/core/internal/domain/entities"
	"github.com/journalkeep/core/internal/infrastructure/logger"
	"github.com/journalkeep/core/internal/ports"
)

// InvitationService handles invitation operations. Invitations carry the
// same CRUD shape as entries but without owner filtering.
type InvitationService struct {
	invitationRepo ports.InvitationRepository
	logger         *logger.Logger
}

// NewInvitationService creates a new invitation service
func NewInvitationService(invitationRepo ports.InvitationRepository, logger *logger.Logger) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		logger:         logger,
	}
}

// List returns every invitation
func (s *InvitationService) List(ctx context.Context) ([]entities.Record, error) {
	return s.invitationRepo.List(ctx)
}

// Create inserts one invitation
func (s *InvitationService) Create(ctx context.Context, rec entities.Record) (entities.Record, error) {
	stored, err := s.invitationRepo.Insert(ctx, rec)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Invitation created", "invitation_id", stored.ID())
	return stored, nil
}

// Update merges the partial record onto the invitation with the given id
func (s *InvitationService) Update(ctx context.Context, id string, partial entities.Record) (entities.Record, error) {
	partial = partial.Clone()
	delete(partial, "id")
	return s.invitationRepo.Update(ctx, id, partial)
}

// Delete removes the invitation with the given id
func (s *InvitationService) Delete(ctx context.Context, id string) error {
	if err := s.invitationRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("Invitation deleted", "invitation_id", id)
	return nil
}
