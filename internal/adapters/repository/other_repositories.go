package repository

import (
	"context"

	"github.com/journalkeep/core/internal/domain/entities"
	"github.com/journalkeep/core/internal/infrastructure/store"
	"github.com/journalkeep/core/internal/ports"
)

// EntryRepositoryImpl implements the EntryRepository interface
type EntryRepositoryImpl struct {
	store *store.Store
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(st *store.Store) ports.EntryRepository {
	return &EntryRepositoryImpl{store: st}
}

func (r *EntryRepositoryImpl) List(ctx context.Context, ownerID string) ([]entities.Record, error) {
	var entries []entities.Record

	err := r.store.View(func(doc *entities.Document) error {
		entries = NewAccessor(&doc.Entries).List(ownerFilter(ownerID))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *EntryRepositoryImpl) Insert(ctx context.Context, rec entities.Record) (entities.Record, error) {
	var stored entities.Record

	err := r.store.Update(func(doc *entities.Document) error {
		stored = NewAccessor(&doc.Entries).Insert(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return stored, nil
}

func (r *EntryRepositoryImpl) Update(ctx context.Context, id string, partial entities.Record) (entities.Record, error) {
	var merged entities.Record

	err := r.store.Update(func(doc *entities.Document) error {
		var err error
		merged, err = NewAccessor(&doc.Entries).UpdateByID(id, partial)
		return err
	})
	if err != nil {
		return nil, err
	}

	return merged, nil
}

func (r *EntryRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.store.Update(func(doc *entities.Document) error {
		return NewAccessor(&doc.Entries).DeleteByID(id)
	})
}

// GoalRepositoryImpl implements the GoalRepository interface. Goals have a
// single write path: the full per-owner replacement below.
type GoalRepositoryImpl struct {
	store *store.Store
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(st *store.Store) ports.GoalRepository {
	return &GoalRepositoryImpl{store: st}
}

func (r *GoalRepositoryImpl) ListForOwner(ctx context.Context, ownerID string) ([]entities.Record, error) {
	var goals []entities.Record

	err := r.store.View(func(doc *entities.Document) error {
		goals = NewAccessor(&doc.Goals).List(ownerFilter(ownerID))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *GoalRepositoryImpl) ReplaceForOwner(ctx context.Context, ownerID string, goals []entities.Record) error {
	if ownerID == "" || goals == nil {
		return entities.ErrInvalidRequest
	}

	// Remove-all plus reinsert happens inside one rewrite, so a reader can
	// never observe the owner's goals half-replaced on disk.
	return r.store.Update(func(doc *entities.Document) error {
		kept := make([]entities.Record, 0, len(doc.Goals)+len(goals))
		for _, rec := range doc.Goals {
			if rec.StringField("userId") != ownerID {
				kept = append(kept, rec)
			}
		}
		for _, rec := range goals {
			kept = append(kept, rec.Clone())
		}
		doc.Goals = kept
		return nil
	})
}

// InvitationRepositoryImpl implements the InvitationRepository interface
type InvitationRepositoryImpl struct {
	store *store.Store
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(st *store.Store) ports.InvitationRepository {
	return &InvitationRepositoryImpl{store: st}
}

func (r *InvitationRepositoryImpl) List(ctx context.Context) ([]entities.Record, error) {
	var invitations []entities.Record

	err := r.store.View(func(doc *entities.Document) error {
		invitations = NewAccessor(&doc.Invitations).List(nil)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return invitations, nil
}

func (r *InvitationRepositoryImpl) Insert(ctx context.Context, rec entities.Record) (entities.Record, error) {
	var stored entities.Record

	err := r.store.Update(func(doc *entities.Document) error {
		stored = NewAccessor(&doc.Invitations).Insert(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return stored, nil
}

func (r *InvitationRepositoryImpl) Update(ctx context.Context, id string, partial entities.Record) (entities.Record, error) {
	var merged entities.Record

	err := r.store.Update(func(doc *entities.Document) error {
		var err error
		merged, err = NewAccessor(&doc.Invitations).UpdateByID(id, partial)
		return err
	})
	if err != nil {
		return nil, err
	}

	return merged, nil
}

func (r *InvitationRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.store.Update(func(doc *entities.Document) error {
		return NewAccessor(&doc.Invitations).DeleteByID(id)
	})
}

// SettingsRepositoryImpl implements the SettingsRepository interface.
// Settings are a single object per user id, not a collection.
type SettingsRepositoryImpl struct {
	store *store.Store
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(st *store.Store) ports.SettingsRepository {
	return &SettingsRepositoryImpl{store: st}
}

func (r *SettingsRepositoryImpl) Get(ctx context.Context, userID string) (entities.Record, error) {
	settings := entities.Record{}

	err := r.store.View(func(doc *entities.Document) error {
		if s, ok := doc.Settings[userID]; ok {
			settings = s.Clone()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return settings, nil
}

func (r *SettingsRepositoryImpl) Put(ctx context.Context, userID string, settings entities.Record) error {
	if userID == "" {
		return entities.ErrInvalidRequest
	}

	return r.store.Update(func(doc *entities.Document) error {
		doc.Settings[userID] = settings.Clone()
		return nil
	})
}

func ownerFilter(ownerID string) func(entities.Record) bool {
	if ownerID == "" {
		return nil
	}
	return func(rec entities.Record) bool {
		return rec.StringField("userId") == ownerID
	}
}
