package ports

import (
	"context"
	"time"

	"github.com/journalkeep/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	GetByID(ctx context.Context, id string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, id string, partial entities.Record) (*entities.User, error)
	List(ctx context.Context) ([]*entities.User, error)
}

// EntryRepository defines the interface for diary entry operations.
// ownerID filters by the record's userId field; empty means no filter.
type EntryRepository interface {
	List(ctx context.Context, ownerID string) ([]entities.Record, error)
	Insert(ctx context.Context, rec entities.Record) (entities.Record, error)
	Update(ctx context.Context, id string, partial entities.Record) (entities.Record, error)
	Delete(ctx context.Context, id string) error
}

// GoalRepository defines the interface for goal operations. Goals are only
// ever written as a full per-owner replacement set.
type GoalRepository interface {
	ListForOwner(ctx context.Context, ownerID string) ([]entities.Record, error)
	ReplaceForOwner(ctx context.Context, ownerID string, goals []entities.Record) error
}

// InvitationRepository defines the interface for invitation operations
type InvitationRepository interface {
	List(ctx context.Context) ([]entities.Record, error)
	Insert(ctx context.Context, rec entities.Record) (entities.Record, error)
	Update(ctx context.Context, id string, partial entities.Record) (entities.Record, error)
	Delete(ctx context.Context, id string) error
}

// ResetTokenRepository defines the interface for the reset token ledger
type ResetTokenRepository interface {
	Issue(ctx context.Context, userID string, ttl time.Duration) (*entities.ResetToken, error)
	Consume(ctx context.Context, token string, passwordHash string) (*entities.User, error)
}

// SettingsRepository defines the interface for per-user settings. Put is a
// whole-object replacement, last write wins.
type SettingsRepository interface {
	Get(ctx context.Context, userID string) (entities.Record, error)
	Put(ctx context.Context, userID string, settings entities.Record) error
}
