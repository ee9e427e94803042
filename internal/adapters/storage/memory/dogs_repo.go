package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"tingrrr/internal/domain/dogs"
)

type dogEntry struct {
	dog dogs.Dog
	seq uint64
}

type dogRepo struct {
	mu   sync.RWMutex
	byID map[string]dogEntry
	seq  uint64
}

func NewDogRepo() dogs.Repository {
	return &dogRepo{
		byID: make(map[string]dogEntry),
	}
}

func (r *dogRepo) Create(ctx context.Context, d dogs.Dog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errIDRequired
	}
	if _, exists := r.byID[d.ID]; exists {
		return errors.New("dog already exists")
	}
	r.seq++
	r.byID[d.ID] = dogEntry{dog: d, seq: r.seq}
	return nil
}

func (r *dogRepo) Update(ctx context.Context, d dogs.Dog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.byID[d.ID]
	if !exists {
		return dogs.ErrNotFound
	}
	e.dog = d
	r.byID[d.ID] = e
	return nil
}

func (r *dogRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return dogs.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *dogRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return dogs.Dog{}, dogs.ErrNotFound
	}
	return e.dog, nil
}

func (r *dogRepo) GetMany(ctx context.Context, ids []string) ([]dogs.Dog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]dogs.Dog, 0, len(ids))
	for _, id := range ids {
		if e, ok := r.byID[id]; ok {
			out = append(out, e.dog)
		}
	}
	return out, nil
}

func (r *dogRepo) List(ctx context.Context, f dogs.ListFilter) ([]dogs.Dog, error) {
	r.mu.RLock()
	entries := make([]dogEntry, 0, len(r.byID))
	for _, e := range r.byID {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	// Orden de catálogo: created_at asc, luego orden de alta.
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.dog.CreatedAt.Equal(b.dog.CreatedAt) {
			return a.dog.CreatedAt.Before(b.dog.CreatedAt)
		}
		return a.seq < b.seq
	})

	if f.Offset >= len(entries) {
		return []dogs.Dog{}, nil
	}
	if f.Offset > 0 {
		entries = entries[f.Offset:]
	}
	if f.Limit > 0 && len(entries) > f.Limit {
		entries = entries[:f.Limit]
	}

	out := make([]dogs.Dog, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.dog)
	}
	return out, nil
}
