package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/journalkeep/core/internal/domain/entities"
	"github.com/journalkeep/core/internal/infrastructure/store"
	"github.com/journalkeep/core/internal/ports"
)

// ResetTokenRepositoryImpl implements the reset token ledger on top of the
// document store
type ResetTokenRepositoryImpl struct {
	store *store.Store
	now   func() time.Time
}

// NewResetTokenRepository creates a new reset token repository
func NewResetTokenRepository(st *store.Store) ports.ResetTokenRepository {
	return &ResetTokenRepositoryImpl{store: st, now: time.Now}
}

// Issue creates a fresh token expiring ttl from now. Outstanding tokens for
// the same user stay valid until they expire or get consumed.
func (r *ResetTokenRepositoryImpl) Issue(ctx context.Context, userID string, ttl time.Duration) (*entities.ResetToken, error) {
	if userID == "" {
		return nil, entities.ErrInvalidRequest
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, fmt.Errorf("failed to generate random token: %w", err)
	}

	token := &entities.ResetToken{
		Token:   hex.EncodeToString(tokenBytes),
		UserID:  userID,
		Expires: r.now().Add(ttl),
	}

	err := r.store.Update(func(doc *entities.Document) error {
		doc.ResetTokens = append(doc.ResetTokens, token.ToRecord())
		return nil
	})
	if err != nil {
		return nil, err
	}

	return token, nil
}

// Consume validates the token, overwrites the user's password hash and
// removes the token, all within one rewrite so replay always fails. An
// expired token is rejected but left in place.
func (r *ResetTokenRepositoryImpl) Consume(ctx context.Context, token string, passwordHash string) (*entities.User, error) {
	var user *entities.User

	err := r.store.Update(func(doc *entities.Document) error {
		idx := -1
		for i, rec := range doc.ResetTokens {
			if rec.StringField("token") == token {
				idx = i
				break
			}
		}
		if idx < 0 {
			return entities.ErrTokenInvalid
		}

		stored := entities.ResetTokenFromRecord(doc.ResetTokens[idx])
		if stored.ExpiredAt(r.now()) {
			return entities.ErrTokenExpired
		}

		users := NewAccessor(&doc.Users)
		if _, err := users.FindByID(stored.UserID); err != nil {
			return entities.ErrUserNotFound
		}

		merged, err := users.UpdateByID(stored.UserID, entities.Record{"password": passwordHash})
		if err != nil {
			return entities.ErrUserNotFound
		}
		user = entities.UserFromRecord(merged)

		doc.ResetTokens = append(doc.ResetTokens[:idx], doc.ResetTokens[idx+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}
