package repository

import (
	"context"

	"github.com/journalkeep/core/internal/domain/entities"
	"github.com/journalkeep/core/internal/infrastructure/store"
	"github.com/journalkeep/core/internal/ports"
)

// UserRepositoryImpl implements the UserRepository interface on top of the
// document store
type UserRepositoryImpl struct {
	store *store.Store
}

// NewUserRepository creates a new user repository
func NewUserRepository(st *store.Store) ports.UserRepository {
	return &UserRepositoryImpl{store: st}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	var created *entities.User

	err := r.store.Update(func(doc *entities.Document) error {
		// Email uniqueness is only checked here, at registration.
		for _, rec := range doc.Users {
			if rec.StringField("email") == user.Email {
				return entities.ErrEmailTaken
			}
		}

		stored := NewAccessor(&doc.Users).Insert(user.ToRecord())
		created = entities.UserFromRecord(stored)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.User, error) {
	var user *entities.User

	err := r.store.View(func(doc *entities.Document) error {
		rec, err := NewAccessor(&doc.Users).FindByID(id)
		if err != nil {
			return entities.ErrUserNotFound
		}
		user = entities.UserFromRecord(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user *entities.User

	err := r.store.View(func(doc *entities.Document) error {
		for _, rec := range doc.Users {
			if rec.StringField("email") == email {
				user = entities.UserFromRecord(rec.Clone())
				return nil
			}
		}
		return entities.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *UserRepositoryImpl) Update(ctx context.Context, id string, partial entities.Record) (*entities.User, error) {
	var updated *entities.User

	err := r.store.Update(func(doc *entities.Document) error {
		merged, err := NewAccessor(&doc.Users).UpdateByID(id, partial)
		if err != nil {
			return entities.ErrUserNotFound
		}
		updated = entities.UserFromRecord(merged)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context) ([]*entities.User, error) {
	var users []*entities.User

	err := r.store.View(func(doc *entities.Document) error {
		for _, rec := range NewAccessor(&doc.Users).List(nil) {
			users = append(users, entities.UserFromRecord(rec))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}
