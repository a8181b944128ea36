package repository

import (
	"github.com/google/uuid"

	"github.com/journalkeep/core/internal/domain/entities"
)

// Accessor applies generic collection semantics to one named record slice
// inside a loaded document. Accessors never persist; the owning repository
// wraps each mutation in a single store rewrite.
type Accessor struct {
	records *[]entities.Record
}

// NewAccessor wraps the given record slice.
func NewAccessor(records *[]entities.Record) *Accessor {
	return &Accessor{records: records}
}

// List returns the records in insertion order, optionally filtered. The
// result holds clones so callers cannot mutate the document in place.
func (a *Accessor) List(pred func(entities.Record) bool) []entities.Record {
	out := []entities.Record{}
	for _, rec := range *a.records {
		if pred == nil || pred(rec) {
			out = append(out, rec.Clone())
		}
	}
	return out
}

// FindByID returns the record with the given id, or ErrNotFound.
func (a *Accessor) FindByID(id string) (entities.Record, error) {
	for _, rec := range *a.records {
		if rec.ID() == id {
			return rec.Clone(), nil
		}
	}
	return nil, entities.ErrNotFound
}

// Insert appends the record, generating a fresh id when none is present.
// Explicit ids are taken as-is; uniqueness there is the caller's problem.
func (a *Accessor) Insert(rec entities.Record) entities.Record {
	stored := rec.Clone()
	if stored.ID() == "" {
		stored["id"] = uuid.NewString()
	}
	*a.records = append(*a.records, stored)
	return stored.Clone()
}

// UpdateByID shallow-merges partial over the record with the given id:
// top-level keys of partial overwrite, every other key is preserved.
func (a *Accessor) UpdateByID(id string, partial entities.Record) (entities.Record, error) {
	for i, rec := range *a.records {
		if rec.ID() == id {
			merged := rec.Merge(partial)
			merged["id"] = id
			(*a.records)[i] = merged
			return merged.Clone(), nil
		}
	}
	return nil, entities.ErrNotFound
}

// DeleteByID removes the record with the given id, or returns ErrNotFound.
func (a *Accessor) DeleteByID(id string) error {
	for i, rec := range *a.records {
		if rec.ID() == id {
			*a.records = append((*a.records)[:i], (*a.records)[i+1:]...)
			return nil
		}
	}
	return entities.ErrNotFound
}
