package swipes_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"tingrrr/internal/adapters/storage/memory"
	"tingrrr/internal/domain/dogs"
	"tingrrr/internal/domain/matching"
	"tingrrr/internal/domain/swipes"
	"tingrrr/internal/domain/users"
	"tingrrr/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc    *swipes.Service
	dogs   *dogs.Service
	userID string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	return newFixtureWithRepo(t, memory.NewSwipeRepo())
}

func newFixtureWithRepo(t *testing.T, repo swipes.Repository) fixture {
	t.Helper()

	dogsSvc := dogs.NewService(memory.NewDogRepo())
	usersSvc := users.NewService(memory.NewUserRepo())

	u, err := usersSvc.Create(context.Background(), users.CreateInput{Username: "ana", Email: "ana@example.com"})
	require.NoError(t, err)

	return fixture{
		svc:    swipes.NewService(repo, dogsSvc, usersSvc, logger.Nop()),
		dogs:   dogsSvc,
		userID: u.ID,
	}
}

func (f fixture) addDog(t *testing.T, name string, size dogs.Size, age, weight float64, cats bool) dogs.Dog {
	t.Helper()
	d, err := f.dogs.Create(context.Background(), dogs.CreateInput{
		Name:         name,
		Breed:        "Mixed",
		Size:         size,
		AgeYears:     age,
		WeightLbs:    weight,
		Color:        "Brown",
		Sex:          dogs.SexMale,
		CoatLength:   dogs.CoatShort,
		GoodWithCats: cats,
	})
	require.NoError(t, err)
	return d
}

func TestRecord_RightSwipeBuildsProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.addDog(t, "a", dogs.SizeMedium, 2, 40, false)
	b := f.addDog(t, "b", dogs.SizeMedium, 4, 45, false)
	c := f.addDog(t, "c", dogs.SizeLarge, 6, 75, true)

	for _, d := range []dogs.Dog{a, b, c} {
		_, err := f.svc.Record(ctx, f.userID, d.ID, swipes.DirectionRight)
		require.NoError(t, err)
	}

	p, err := f.svc.Preferences(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, dogs.SizeMedium, *p.PreferredSize)
	assert.Equal(t, 2.0, *p.MinAge)
	assert.Equal(t, 6.0, *p.MaxAge)
	assert.Equal(t, 40.0, *p.MinWeight)
	assert.Equal(t, 75.0, *p.MaxWeight)
	assert.False(t, *p.PrefersGoodWithCats)
	assert.False(t, p.UpdatedAt.IsZero())
}

func TestRecord_TieBreakFollowsSwipeOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	small := f.addDog(t, "small", dogs.SizeSmall, 2, 15, false)
	large := f.addDog(t, "large", dogs.SizeLarge, 2, 70, false)

	for _, d := range []dogs.Dog{large, small} {
		_, err := f.svc.Record(ctx, f.userID, d.ID, swipes.DirectionRight)
		require.NoError(t, err)
	}

	p, err := f.svc.Preferences(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, dogs.SizeLarge, *p.PreferredSize)
}

// failingProfileRepo falla las primeras fails escrituras de swipe + perfil.
type failingProfileRepo struct {
	swipes.Repository
	fails int
}

func (r *failingProfileRepo) CreateWithProfile(ctx context.Context, sw swipes.Swipe, p matching.Profile) error {
	if r.fails > 0 {
		r.fails--
		return errors.New("db down")
	}
	return r.Repository.CreateWithProfile(ctx, sw, p)
}

func TestRecord_FailedProfileWriteLeavesNothingBehind(t *testing.T) {
	repo := &failingProfileRepo{Repository: memory.NewSwipeRepo(), fails: 1}
	f := newFixtureWithRepo(t, repo)
	ctx := context.Background()
	d := f.addDog(t, "a", dogs.SizeMedium, 3, 40, true)

	_, err := f.svc.Record(ctx, f.userID, d.ID, swipes.DirectionRight)
	require.Error(t, err)

	n, err := repo.CountByUser(ctx, f.userID)
	require.NoError(t, err)
	assert.Zero(t, n, "el swipe no queda guardado sin su perfil")

	// el reintento no choca con un swipe huérfano
	_, err = f.svc.Record(ctx, f.userID, d.ID, swipes.DirectionRight)
	require.NoError(t, err)

	p, err := f.svc.Preferences(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, dogs.SizeMedium, *p.PreferredSize)
}

// countHookRepo corre onCount dentro de CountByUser.
type countHookRepo struct {
	swipes.Repository
	onCount func()
}

func (r *countHookRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	if r.onCount != nil {
		r.onCount()
	}
	return r.Repository.CountByUser(ctx, userID)
}

func TestRecommendations_CountAndRankingShareTheLock(t *testing.T) {
	repo := &countHookRepo{Repository: memory.NewSwipeRepo()}
	f := newFixtureWithRepo(t, repo)
	ctx := context.Background()
	a := f.addDog(t, "a", dogs.SizeMedium, 3, 40, true)
	f.addDog(t, "b", dogs.SizeLarge, 5, 70, false)

	var (
		blocked bool
		done    = make(chan error, 1)
	)
	repo.onCount = func() {
		repo.onCount = nil
		go func() {
			_, err := f.svc.Record(ctx, f.userID, a.ID, swipes.DirectionRight)
			done <- err
		}()
		select {
		case <-done:
			t.Error("a swipe completed while recommendations were being built")
		case <-time.After(50 * time.Millisecond):
			blocked = true
		}
	}

	rec, err := f.svc.Recommendations(ctx, f.userID, 10)
	require.NoError(t, err)
	assert.True(t, blocked)
	assert.Len(t, rec.Dogs, 2)
	assert.Zero(t, rec.SwipeCount)

	require.NoError(t, <-done)
}

func TestRecord_LeftSwipeDoesNotCreateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.addDog(t, "a", dogs.SizeSmall, 1, 10, false)

	_, err := f.svc.Record(ctx, f.userID, d.ID, swipes.DirectionLeft)
	require.NoError(t, err)

	_, err = f.svc.Preferences(ctx, f.userID)
	assert.ErrorIs(t, err, swipes.ErrNoPreferences)
}

func TestRecord_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.addDog(t, "a", dogs.SizeSmall, 1, 10, false)

	_, err := f.svc.Record(ctx, "ghost", d.ID, swipes.DirectionRight)
	assert.ErrorIs(t, err, swipes.ErrUserNotFound)

	_, err = f.svc.Record(ctx, f.userID, "ghost", swipes.DirectionRight)
	assert.ErrorIs(t, err, swipes.ErrDogNotFound)

	_, err = f.svc.Record(ctx, f.userID, d.ID, "up")
	assert.ErrorIs(t, err, swipes.ErrInvalidInput)

	_, err = f.svc.Record(ctx, f.userID, d.ID, swipes.DirectionLeft)
	require.NoError(t, err)
	_, err = f.svc.Record(ctx, f.userID, d.ID, swipes.DirectionRight)
	assert.ErrorIs(t, err, swipes.ErrAlreadySwiped)
}

func TestCards_WithoutProfileKeepCatalogueOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.addDog(t, "a", dogs.SizeSmall, 1, 10, false)
	b := f.addDog(t, "b", dogs.SizeLarge, 1, 10, false)
	c := f.addDog(t, "c", dogs.SizeSmall, 1, 10, false)

	_, err := f.svc.Record(ctx, f.userID, b.ID, swipes.DirectionLeft)
	require.NoError(t, err)

	cards, err := f.svc.Cards(ctx, f.userID, 10)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, a.ID, cards[0].Dog.ID)
	assert.Equal(t, c.ID, cards[1].Dog.ID)
	assert.Equal(t, 50.0, cards[0].Score)
	assert.Equal(t, 50.0, cards[1].Score)
}

func TestCards_RankedByProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	liked := f.addDog(t, "liked", dogs.SizeLarge, 5, 70, true)
	small := f.addDog(t, "small", dogs.SizeSmall, 1, 10, false)
	large := f.addDog(t, "large", dogs.SizeLarge, 5, 70, true)

	_, err := f.svc.Record(ctx, f.userID, liked.ID, swipes.DirectionRight)
	require.NoError(t, err)

	cards, err := f.svc.Cards(ctx, f.userID, 10)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, large.ID, cards[0].Dog.ID)
	assert.Equal(t, 100.0, cards[0].Score)
	assert.Equal(t, small.ID, cards[1].Dog.ID)
	assert.Less(t, cards[1].Score, cards[0].Score)

	none, err := f.svc.Cards(ctx, f.userID, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecommendations_Message(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var all []dogs.Dog
	for i := 0; i < 5; i++ {
		all = append(all, f.addDog(t, fmt.Sprintf("d%d", i), dogs.SizeMedium, float64(i), 30, false))
	}

	rec, err := f.svc.Recommendations(ctx, f.userID, 10)
	require.NoError(t, err)
	assert.Equal(t, "Keep swiping! We need a few more likes to personalize results.", rec.Message)
	assert.Len(t, rec.Dogs, 5)

	for _, d := range all[:3] {
		_, err := f.svc.Record(ctx, f.userID, d.ID, swipes.DirectionLeft)
		require.NoError(t, err)
	}

	rec, err = f.svc.Recommendations(ctx, f.userID, 10)
	require.NoError(t, err)
	assert.Equal(t, "Personalized recommendations based on 3 swipes.", rec.Message)
	assert.Equal(t, 3, rec.SwipeCount)
	assert.Len(t, rec.Dogs, 2)
}

func TestReset_ClearsHistoryAndProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.addDog(t, "a", dogs.SizeSmall, 1, 10, false)

	_, err := f.svc.Record(ctx, f.userID, d.ID, swipes.DirectionRight)
	require.NoError(t, err)

	require.NoError(t, f.svc.Reset(ctx, f.userID))

	_, err = f.svc.Preferences(ctx, f.userID)
	assert.ErrorIs(t, err, swipes.ErrNoPreferences)

	cards, err := f.svc.Cards(ctx, f.userID, 10)
	require.NoError(t, err)
	assert.Len(t, cards, 1)

	// Tras el reset se puede volver a swipear el mismo perro.
	_, err = f.svc.Record(ctx, f.userID, d.ID, swipes.DirectionRight)
	assert.NoError(t, err)

	assert.ErrorIs(t, f.svc.Reset(ctx, "ghost"), swipes.ErrUserNotFound)
}

func TestDeletedDogLeavesProfileUntilNextRightSwipe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	old := f.addDog(t, "old", dogs.SizeSmall, 10, 10, false)
	next := f.addDog(t, "next", dogs.SizeLarge, 3, 60, false)

	_, err := f.svc.Record(ctx, f.userID, old.ID, swipes.DirectionRight)
	require.NoError(t, err)
	require.NoError(t, f.dogs.Delete(ctx, old.ID))

	p, err := f.svc.Preferences(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, *p.MaxAge)

	_, err = f.svc.Record(ctx, f.userID, next.ID, swipes.DirectionRight)
	require.NoError(t, err)

	p, err = f.svc.Preferences(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 3.0, *p.MinAge)
	assert.Equal(t, 3.0, *p.MaxAge)
	assert.Equal(t, dogs.SizeLarge, *p.PreferredSize)
}

func TestConcurrentRightSwipes_ProfileReflectsFullLikedSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 20
	created := make([]dogs.Dog, 0, n)
	for i := 0; i < n; i++ {
		created = append(created, f.addDog(t, fmt.Sprintf("d%d", i), dogs.SizeMedium, float64(i), float64(10+i), i%2 == 0))
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, d := range created {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			if _, err := f.svc.Record(ctx, f.userID, id, swipes.DirectionRight); err != nil {
				errs <- err
			}
		}(d.ID)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("unexpected err: %v", err)
	}

	p, err := f.svc.Preferences(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, *p.MinAge)
	assert.Equal(t, float64(n-1), *p.MaxAge)
	assert.Equal(t, 10.0, *p.MinWeight)
	assert.Equal(t, float64(10+n-1), *p.MaxWeight)
	// 10 de 20 con gatos: empate, no hay mayoría.
	assert.False(t, *p.PrefersGoodWithCats)
}
