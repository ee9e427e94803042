package swipes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tingrrr/internal/domain/dogs"
	"tingrrr/internal/domain/matching"
	"tingrrr/internal/platform/logger"
	"tingrrr/internal/platform/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUserNotFound  = errors.New("user not found")
	ErrDogNotFound   = errors.New("dog not found")
	ErrAlreadySwiped = errors.New("already swiped on this dog")
	ErrNoPreferences = errors.New("no preferences yet")
)

// Con menos swipes que esto las recomendaciones no se consideran personalizadas.
const personalizedThreshold = 3

const (
	msgPersonalized = "Personalized recommendations based on %d swipes."
	msgKeepSwiping  = "Keep swiping! We need a few more likes to personalize results."
)

// DogCatalog es lo que swipes necesita del catálogo (implementado por dogs.Service).
type DogCatalog interface {
	GetByID(ctx context.Context, id string) (dogs.Dog, error)
	GetMany(ctx context.Context, ids []string) ([]dogs.Dog, error)
	ListAll(ctx context.Context) ([]dogs.Dog, error)
}

// UserDirectory evita importar users desde acá (implementado por users.Service).
type UserDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

type Service struct {
	repo    Repository
	catalog DogCatalog
	users   UserDirectory
	locks   *userLocks
	log     logger.Logger
	now     func() time.Time
}

func NewService(repo Repository, catalog DogCatalog, users UserDirectory, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		catalog: catalog,
		users:   users,
		locks:   newUserLocks(),
		log:     log.With(map[string]any{"component": "swipes"}),
		now:     time.Now,
	}
}

// Record guarda el swipe. Un swipe right se guarda junto con el perfil
// recalculado sobre el liked set que lo incluye: o quedan ambos o ninguno.
// Todo el tramo corre bajo el lock del usuario.
func (s *Service) Record(ctx context.Context, userID, dogID string, dir Direction) (Swipe, error) {
	dogID = strings.TrimSpace(dogID)
	if dogID == "" || !dir.Valid() {
		return Swipe{}, ErrInvalidInput
	}
	if err := s.ensureUser(ctx, userID); err != nil {
		return Swipe{}, err
	}
	if _, err := s.catalog.GetByID(ctx, dogID); err != nil {
		if errors.Is(err, dogs.ErrNotFound) {
			return Swipe{}, ErrDogNotFound
		}
		return Swipe{}, err
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	exists, err := s.repo.Exists(ctx, userID, dogID)
	if err != nil {
		return Swipe{}, err
	}
	if exists {
		return Swipe{}, ErrAlreadySwiped
	}

	sw := Swipe{
		ID:        uuid.NewString(),
		UserID:    userID,
		DogID:     dogID,
		Direction: dir,
		CreatedAt: s.now(),
	}

	if dir == DirectionRight {
		err = s.createWithProfile(ctx, sw)
	} else {
		err = s.repo.Create(ctx, sw)
	}
	if err != nil {
		return Swipe{}, err
	}
	metrics.SwipesRecorded.WithLabelValues(string(dir)).Inc()

	s.log.Debug("swipe recorded", map[string]any{
		"user_id":   userID,
		"dog_id":    dogID,
		"direction": dir,
	})
	return sw, nil
}

// Cards devuelve hasta limit perros no swipeados, ordenados por compatibilidad.
func (s *Service) Cards(ctx context.Context, userID string, limit int) ([]Card, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	return s.rank(ctx, userID, limit)
}

// Recommendations es el mismo ranking que Cards más un mensaje según cuántos
// swipes tiene el usuario. Ranking y conteo salen del mismo estado.
func (s *Service) Recommendations(ctx context.Context, userID string, limit int) (Recommendation, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return Recommendation{}, err
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	cards, err := s.rank(ctx, userID, limit)
	if err != nil {
		return Recommendation{}, err
	}
	count, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return Recommendation{}, err
	}

	out := Recommendation{
		Dogs:       make([]dogs.Dog, 0, len(cards)),
		SwipeCount: count,
		Message:    msgKeepSwiping,
	}
	for _, c := range cards {
		out.Dogs = append(out.Dogs, c.Dog)
	}
	if count >= personalizedThreshold {
		out.Message = fmt.Sprintf(msgPersonalized, count)
	}
	return out, nil
}

func (s *Service) Preferences(ctx context.Context, userID string) (matching.Profile, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return matching.Profile{}, err
	}
	return s.repo.GetProfile(ctx, userID)
}

// Reset borra el historial y el perfil del usuario.
func (s *Service) Reset(ctx context.Context, userID string) error {
	if err := s.ensureUser(ctx, userID); err != nil {
		return err
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	if err := s.repo.Reset(ctx, userID); err != nil {
		return err
	}
	metrics.ProfileResets.Inc()
	s.log.Info("swipe history reset", map[string]any{"user_id": userID})
	return nil
}

// rank se llama con el lock del usuario tomado.
func (s *Service) rank(ctx context.Context, userID string, limit int) ([]Card, error) {
	var (
		profile *matching.Profile
		pool    []dogs.Dog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.repo.GetProfile(gctx, userID)
		if errors.Is(err, ErrNoPreferences) {
			return nil
		}
		if err != nil {
			return err
		}
		profile = &p
		return nil
	})
	g.Go(func() error {
		c, err := s.candidates(gctx, userID)
		pool = c
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics.RankedCandidates.Observe(float64(len(pool)))
	return matching.Rank(pool, profile, limit), nil
}

// createWithProfile recalcula el perfil con sw ya incluido en el liked set y
// guarda ambos juntos. Se llama con el lock del usuario tomado.
func (s *Service) createWithProfile(ctx context.Context, sw Swipe) error {
	start := time.Now()

	liked, err := s.likedDogs(ctx, sw.UserID, sw.DogID)
	if err != nil {
		return s.recomputeFailed(sw, err)
	}

	p := matching.Recompute(sw.UserID, liked)
	p.UpdatedAt = sw.CreatedAt
	if err := s.repo.CreateWithProfile(ctx, sw, p); err != nil {
		if errors.Is(err, ErrAlreadySwiped) {
			return err
		}
		return s.recomputeFailed(sw, err)
	}

	metrics.ProfileRecomputes.Inc()
	metrics.ProfileRecomputeDuration.Observe(time.Since(start).Seconds())
	return nil
}

func (s *Service) recomputeFailed(sw Swipe, err error) error {
	s.log.Error("profile recompute failed", map[string]any{
		"user_id": sw.UserID,
		"dog_id":  sw.DogID,
		"err":     err,
	})
	return fmt.Errorf("recompute profile: %w", err)
}

// likedDogs materializa los perros con swipe right en orden de swipe, más
// pending al final. Los que ya no están en el catálogo se omiten.
func (s *Service) likedDogs(ctx context.Context, userID, pending string) ([]dogs.Dog, error) {
	history, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(history)+1)
	for _, sw := range history {
		if sw.Direction == DirectionRight {
			ids = append(ids, sw.DogID)
		}
	}
	ids = append(ids, pending)
	return s.catalog.GetMany(ctx, ids)
}

// candidates son los perros del catálogo sin swipe del usuario, en orden de catálogo.
func (s *Service) candidates(ctx context.Context, userID string) ([]dogs.Dog, error) {
	history, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	swiped := make(map[string]struct{}, len(history))
	for _, sw := range history {
		swiped[sw.DogID] = struct{}{}
	}

	all, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dogs.Dog, 0, len(all))
	for _, d := range all {
		if _, ok := swiped[d.ID]; !ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Service) ensureUser(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrUserNotFound
	}
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}
