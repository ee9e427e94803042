package seed_test

import (
	"context"
	"testing"

	"tingrrr/internal/adapters/storage/memory"
	"tingrrr/internal/domain/dogs"
	"tingrrr/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_SeedsOnce(t *testing.T) {
	ctx := context.Background()
	dogRepo := memory.NewDogRepo()
	userRepo := memory.NewUserRepo()

	res, err := seed.Run(ctx, dogRepo, userRepo, nil)
	require.NoError(t, err)
	assert.Equal(t, seed.Result{Dogs: 14, Users: 1}, res)

	list, err := dogRepo.List(ctx, dogs.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 14)
	assert.Equal(t, "Millie", list[0].Name)
	assert.Equal(t, "Coco", list[13].Name)

	u, err := userRepo.GetByID(ctx, seed.DemoUserID)
	require.NoError(t, err)
	assert.Equal(t, seed.DemoUsername, u.Username)
	assert.Equal(t, seed.DemoEmail, u.Email)

	again, err := seed.Run(ctx, dogRepo, userRepo, nil)
	require.NoError(t, err)
	assert.True(t, again.Skipped)

	list, err = dogRepo.List(ctx, dogs.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 14)
}

func TestMockDogs_AreValid(t *testing.T) {
	for _, d := range seed.MockDogs() {
		assert.True(t, d.Size.Valid(), d.Name)
		assert.True(t, d.CoatLength.Valid(), d.Name)
		assert.True(t, d.Sex.Valid(), d.Name)
		assert.NotEmpty(t, d.Breed, d.Name)
		assert.Empty(t, d.ID)
	}
}
