// Package apptest provides an in-memory applications.Repository for tests.
package apptest

import (
	"context"
	"sync"

	"flux-backend/src/models"
	"flux-backend/src/services/applications"
)

// MemoryRepository enforces the same phone/email uniqueness as the unique
// indexes, under a single lock.
type MemoryRepository struct {
	mu      sync.Mutex
	records []models.Application
	phones  map[string]struct{}
	emails  map[string]struct{}

	// InsertErr, ListErr and PingErr force the next calls to fail.
	InsertErr error
	ListErr   error
	PingErr   error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		phones: map[string]struct{}{},
		emails: map[string]struct{}{},
	}
}

func (r *MemoryRepository) Insert(ctx context.Context, app *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.InsertErr != nil {
		return r.InsertErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := r.phones[app.Phone]; ok {
		return &applications.DuplicateError{Field: "phone"}
	}
	if _, ok := r.emails[app.Email]; ok {
		return &applications.DuplicateError{Field: "email"}
	}

	r.phones[app.Phone] = struct{}{}
	r.emails[app.Email] = struct{}{}
	r.records = append(r.records, *app)
	return nil
}

// List returns records in reverse insertion order, which is newest first.
func (r *MemoryRepository) List(ctx context.Context, limit int64) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ListErr != nil {
		return nil, r.ListErr
	}

	out := make([]models.Application, 0, limit)
	for i := len(r.records) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}

func (r *MemoryRepository) Ping(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.PingErr
}

func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
