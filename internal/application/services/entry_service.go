package services

import (
	"context"

	"github.com/journalkeep/core/internal/domain/entities"
	"github.com/journalkeep/core/internal/infrastructure/logger"
	"github.com/journalkeep/core/internal/ports"
)

// EntryService handles diary entry operations
type EntryService struct {
	entryRepo ports.EntryRepository
	userRepo  ports.UserRepository
	logger    *logger.Logger
}

// NewEntryService creates a new entry service
func NewEntryService(entryRepo ports.EntryRepository, userRepo ports.UserRepository, logger *logger.Logger) *EntryService {
	return &EntryService{
		entryRepo: entryRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// List returns entries for the given owner. An empty ownerID means the
// requester's own entries. Reading someone else's entries requires the
// owner to appear on the requester's access list.
func (s *EntryService) List(ctx context.Context, requesterID, ownerID string) ([]entities.Record, error) {
	if ownerID == "" {
		ownerID = requesterID
	}

	if err := s.authorize(ctx, requesterID, ownerID); err != nil {
		return nil, err
	}

	return s.entryRepo.List(ctx, ownerID)
}

// Create inserts one entry. An entry without a userId is stamped with the
// requester's id.
func (s *EntryService) Create(ctx context.Context, requesterID string, rec entities.Record) (entities.Record, error) {
	rec = rec.Clone()
	if rec.StringField("userId") == "" {
		rec["userId"] = requesterID
	} else if err := s.authorize(ctx, requesterID, rec.StringField("userId")); err != nil {
		return nil, err
	}

	stored, err := s.entryRepo.Insert(ctx, rec)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("Entry created", "entry_id", stored.ID(), "user_id", stored.StringField("userId"))
	return stored, nil
}

// Update merges the partial record onto the entry with the given id
func (s *EntryService) Update(ctx context.Context, id string, partial entities.Record) (entities.Record, error) {
	partial = partial.Clone()
	delete(partial, "id")
	return s.entryRepo.Update(ctx, id, partial)
}

// Delete removes the entry with the given id
func (s *EntryService) Delete(ctx context.Context, id string) error {
	if err := s.entryRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("Entry deleted", "entry_id", id)
	return nil
}

func (s *EntryService) authorize(ctx context.Context, requesterID, ownerID string) error {
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		return entities.ErrUnauthorized
	}
	if !requester.CanAccess(ownerID) {
		return entities.ErrUnauthorized
	}
	return nil
}
