package memory

import (
	"context"
	"strings"
	"sync"

	"tingrrr/internal/domain/matching"
	"tingrrr/internal/domain/swipes"
)

type swipeRepo struct {
	mu       sync.RWMutex
	byUser   map[string][]swipes.Swipe // en orden de alta
	profiles map[string]matching.Profile
}

func NewSwipeRepo() swipes.Repository {
	return &swipeRepo{
		byUser:   make(map[string][]swipes.Swipe),
		profiles: make(map[string]matching.Profile),
	}
}

func (r *swipeRepo) Create(ctx context.Context, s swipes.Swipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkNew(s); err != nil {
		return err
	}
	r.byUser[s.UserID] = append(r.byUser[s.UserID], s)
	return nil
}

// CreateWithProfile valida todo antes de tocar los mapas; bajo el mismo lock
// nadie ve el swipe sin su perfil.
func (r *swipeRepo) CreateWithProfile(ctx context.Context, s swipes.Swipe, p matching.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkNew(s); err != nil {
		return err
	}
	if strings.TrimSpace(p.UserID) == "" {
		return errIDRequired
	}
	r.byUser[s.UserID] = append(r.byUser[s.UserID], s)
	// Copia profunda: el repo no comparte punteros con el caller.
	r.profiles[p.UserID] = cloneProfile(p)
	return nil
}

// checkNew se llama con r.mu tomado.
func (r *swipeRepo) checkNew(s swipes.Swipe) error {
	if strings.TrimSpace(s.ID) == "" {
		return errIDRequired
	}
	for _, existing := range r.byUser[s.UserID] {
		if existing.DogID == s.DogID {
			return swipes.ErrAlreadySwiped
		}
	}
	return nil
}

func (r *swipeRepo) Exists(ctx context.Context, userID, dogID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.byUser[userID] {
		if s.DogID == dogID {
			return true, nil
		}
	}
	return false, nil
}

func (r *swipeRepo) ListByUser(ctx context.Context, userID string) ([]swipes.Swipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]swipes.Swipe{}, r.byUser[userID]...), nil
}

func (r *swipeRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byUser[userID]), nil
}

func (r *swipeRepo) GetProfile(ctx context.Context, userID string) (matching.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return matching.Profile{}, swipes.ErrNoPreferences
	}
	return cloneProfile(p), nil
}

func (r *swipeRepo) Reset(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byUser, userID)
	delete(r.profiles, userID)
	return nil
}

func cloneProfile(p matching.Profile) matching.Profile {
	out := p
	out.PreferredSize = clonePtr(p.PreferredSize)
	out.PreferredBreed = clonePtr(p.PreferredBreed)
	out.PreferredCoatLength = clonePtr(p.PreferredCoatLength)
	out.MinAge = clonePtr(p.MinAge)
	out.MaxAge = clonePtr(p.MaxAge)
	out.MinWeight = clonePtr(p.MinWeight)
	out.MaxWeight = clonePtr(p.MaxWeight)
	out.PrefersGoodWithCats = clonePtr(p.PrefersGoodWithCats)
	out.PrefersGoodWithKids = clonePtr(p.PrefersGoodWithKids)
	out.PrefersRescue = clonePtr(p.PrefersRescue)
	return out
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
