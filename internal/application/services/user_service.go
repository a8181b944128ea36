package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/journalkeep/core/internal/domain/entities"
	"github.com/journalkeep/core/internal/infrastructure/logger"
	"github.com/journalkeep/core/internal/ports"
)

// UserService handles user profile and per-user settings operations
type UserService struct {
	userRepo     ports.UserRepository
	settingsRepo ports.SettingsRepository
	logger       *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository, settingsRepo ports.SettingsRepository, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo:     userRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GetUser returns the sanitized record for one user
func (s *UserService) GetUser(ctx context.Context, id string) (entities.Record, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// UpdateUser merges the partial record onto the user. The id cannot be
// rewritten; a password in the partial is hashed before it is stored.
func (s *UserService) UpdateUser(ctx context.Context, id string, partial entities.Record) (entities.Record, error) {
	partial = partial.Clone()
	delete(partial, "id")

	if pw, ok := partial["password"].(string); ok {
		if pw == "" {
			return nil, fmt.Errorf("%w: password cannot be empty", entities.ErrInvalidRequest)
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		partial["password"] = string(hashed)
	}

	if role, ok := partial["role"].(string); ok && !entities.UserRole(role).IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", entities.ErrInvalidRequest, role)
	}

	user, err := s.userRepo.Update(ctx, id, partial)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("User updated", "user_id", id)
	return user.Sanitized(), nil
}

// ListUsers returns sanitized records for every user
func (s *UserService) ListUsers(ctx context.Context) ([]entities.Record, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]entities.Record, 0, len(users))
	for _, u := range users {
		records = append(records, u.Sanitized())
	}
	return records, nil
}

// GetSettings returns the settings object for a user, empty when unset
func (s *UserService) GetSettings(ctx context.Context, userID string) (entities.Record, error) {
	return s.settingsRepo.Get(ctx, userID)
}

// PutSettings replaces the settings object for a user, last write wins
func (s *UserService) PutSettings(ctx context.Context, userID string, settings entities.Record) (entities.Record, error) {
	if err := s.settingsRepo.Put(ctx, userID, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
