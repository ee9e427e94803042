// Package seed carga el catálogo de demo y el usuario demo_user.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tingrrr/internal/domain/dogs"
	"tingrrr/internal/domain/users"
	"tingrrr/internal/platform/logger"

	"github.com/google/uuid"
)

const (
	DemoUsername = "demo_user"
	DemoEmail    = "demo@tingrrr.app"
)

// DemoUserID es estable entre reinicios para que el front pueda hardcodearlo.
var DemoUserID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://tingrrr.app/users/demo_user")).String()

// Result resume lo insertado.
type Result struct {
	Dogs    int
	Users   int
	Skipped bool
}

// Run inserta los perros mock y el usuario demo. Si el catálogo ya tiene
// perros no hace nada. Los created_at son crecientes para que el orden del
// catálogo sea el de MockDogs.
func Run(ctx context.Context, dogRepo dogs.Repository, userRepo users.Repository, log logger.Logger) (Result, error) {
	if log == nil {
		log = logger.Nop()
	}

	existing, err := dogRepo.List(ctx, dogs.ListFilter{Limit: 1})
	if err != nil {
		return Result{}, fmt.Errorf("seed: list dogs: %w", err)
	}
	if len(existing) > 0 {
		log.Info("seed skipped, catalog not empty", nil)
		return Result{Skipped: true}, nil
	}

	now := time.Now().UTC()
	var res Result
	for i, d := range MockDogs() {
		d.ID = uuid.NewString()
		d.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
		d.UpdatedAt = d.CreatedAt
		if err := dogRepo.Create(ctx, d); err != nil {
			return res, fmt.Errorf("seed: create dog %s: %w", d.Name, err)
		}
		res.Dogs++
	}

	err = userRepo.Create(ctx, users.User{
		ID:        DemoUserID,
		Username:  DemoUsername,
		Email:     DemoEmail,
		CreatedAt: now,
	})
	switch {
	case err == nil:
		res.Users++
	case errors.Is(err, users.ErrUsernameTaken), errors.Is(err, users.ErrEmailTaken):
		// ya existe
	default:
		return res, fmt.Errorf("seed: create demo user: %w", err)
	}

	log.Info("seed done", map[string]any{"dogs": res.Dogs, "users": res.Users})
	return res, nil
}

// MockDogs devuelve una copia nueva del catálogo de demo, sin ids.
func MockDogs() []dogs.Dog {
	return []dogs.Dog{
		{
			Name:         "Millie",
			Breed:        "Golden Border Collie Mix",
			Size:         dogs.SizeMedium,
			AgeYears:     7,
			WeightLbs:    40,
			Color:        "Golden",
			Sex:          dogs.SexFemale,
			CoatLength:   dogs.CoatLong,
			Description:  "Flirty girl, makes direct eye contact. Very smart and affectionate. Loves to cuddle and play fetch.",
			ImageURL:     "/dogs/dog-01.jpg",
			IsRescue:     true,
			GoodWithCats: false,
			GoodWithKids: false,
		},
		{
			Name:         "Luna",
			Breed:        "German Shepherd",
			Size:         dogs.SizeLarge,
			AgeYears:     2,
			WeightLbs:    65,
			Color:        "Black and Tan",
			Sex:          dogs.SexFemale,
			CoatLength:   dogs.CoatMedium,
			Description:  "Smart and protective. Great guard dog.",
			ImageURL:     "/dogs/dog-02.jpg",
			IsRescue:     false,
			GoodWithCats: false,
			GoodWithKids: true,
		},
		{
			Name:         "Max",
			Breed:        "French Bulldog",
			Size:         dogs.SizeSmall,
			AgeYears:     1.5,
			WeightLbs:    25,
			Color:        "Brindle",
			Sex:          dogs.SexMale,
			CoatLength:   dogs.CoatShort,
			Description:  "Playful couch potato. Snores like a freight train.",
			ImageURL:     "/dogs/dog-03.jpg",
			IsRescue:     true,
			GoodWithCats: true,
			GoodWithKids: true,
		},
		{
			Name:         "Bella",
			Breed:        "Labrador Retriever",
			Size:         dogs.SizeLarge,
			AgeYears:     4,
			WeightLbs:    75,
			Color:        "Chocolate",
			Sex:          dogs.SexFemale,
			CoatLength:   dogs.CoatShort,
			Description:  "Energetic swimmer. Will eat anything.",
			ImageURL:     "/dogs/dog-04.jpg",
			IsRescue:     true,
			GoodWithCats: true,
			GoodWithKids: true,
		},
		{
			Name:         "Charlie",
			Breed:        "Beagle",
			Size:         dogs.SizeMedium,
			AgeYears:     5,
			WeightLbs:    30,
			Color:        "Tricolor",
			Sex:          dogs.SexMale,
			CoatLength:   dogs.CoatShort,
			Description:  "Nose-driven explorer. Howls at squirrels.",
			ImageURL:     "/dogs/dog-05.jpg",
			IsRescue:     false,
			GoodWithCats: false,
			GoodWithKids: true,
		},
		{
			Name:         "Daisy",
			Breed:        "Poodle",
			Size:         dogs.SizeMedium,
			AgeYears:     2,
			WeightLbs:    45,
			Color:        "White",
			Sex:          dogs.SexFemale,
			CoatLength:   dogs.CoatLong,
			Description:  "Hypoallergenic and elegant. Loves agility courses.",
			ImageURL:     "/dogs/dog-06.jpg",
			IsRescue:     false,
			GoodWithCats: true,
			GoodWithKids: true,
		},
		{
			Name:         "Rocky",
			Breed:        "Rottweiler",
			Size:         dogs.SizeExtraLarge,
			AgeYears:     6,
			WeightLbs:    110,
			Color:        "Black and Mahogany",
			Sex:          dogs.SexMale,
			CoatLength:   dogs.CoatShort,
			Description:  "Gentle giant. Thinks he's a lap dog.",
			ImageURL:     "/dogs/dog-07.jpg",
			IsRescue:     true,
			GoodWithCats: false,
			GoodWithKids: false,
		},
		{
			Name:         "Sadie",
			Breed:        "Australian Shepherd",
			Size:         dogs.SizeMedium,
			AgeYears:     1,
			WeightLbs:    50,
			Color:        "Blue Merle",
			Sex:          dogs.SexFemale,
			CoatLength:   dogs.CoatLong,
			Description:  "Herds everything including the roomba.",
			ImageURL:     "/dogs/dog-08.jpg",
			IsRescue:     true,
			GoodWithCats: true,
			GoodWithKids: true,
		},
		{
			Name:         "Duke",
			Breed:        "Boxer",
			Size:         dogs.SizeLarge,
			AgeYears:     3,
			WeightLbs:    65,
			Color:        "Fawn",
			Sex:          dogs.SexMale,
			CoatLength:   dogs.CoatShort,
			Description:  "Bouncy and goofy. Face says grumpy but heart says love.",
			ImageURL:     "/dogs/dog-09.jpg",
			IsRescue:     false,
			GoodWithCats: false,
			GoodWithKids: true,
		},
		{
			Name:         "Molly",
			Breed:        "Yorkshire Terrier",
			Size:         dogs.SizeSmall,
			AgeYears:     7,
			WeightLbs:    7,
			Color:        "Blue and Tan",
			Sex:          dogs.SexFemale,
			CoatLength:   dogs.CoatLong,
			Description:  "Tiny but fierce. Rules the house.",
			ImageURL:     "/dogs/dog-10.jpg",
			IsRescue:     true,
			GoodWithCats: true,
			GoodWithKids: false,
		},
		{
			Name:         "Tucker",
			Breed:        "Siberian Husky",
			Size:         dogs.SizeLarge,
			AgeYears:     2,
			WeightLbs:    55,
			Color:        "Gray and White",
			Sex:          dogs.SexMale,
			CoatLength:   dogs.CoatLong,
			Description:  "Talks more than barks. Escape artist.",
			ImageURL:     "/dogs/dog-11.jpg",
			IsRescue:     false,
			GoodWithCats: false,
			GoodWithKids: true,
		},
		{
			Name:         "Penny",
			Breed:        "Dachshund",
			Size:         dogs.SizeSmall,
			AgeYears:     4,
			WeightLbs:    11,
			Color:        "Red",
			Sex:          dogs.SexFemale,
			CoatLength:   dogs.CoatShort,
			Description:  "Long and low. Burrows under every blanket.",
			ImageURL:     "/dogs/dog-12.jpg",
			IsRescue:     true,
			GoodWithCats: true,
			GoodWithKids: true,
		},
		{
			Name:         "Bear",
			Breed:        "Bernese Mountain Dog",
			Size:         dogs.SizeExtraLarge,
			AgeYears:     3,
			WeightLbs:    100,
			Color:        "Tricolor",
			Sex:          dogs.SexMale,
			CoatLength:   dogs.CoatLong,
			Description:  "Fluffy cloud of love. Drools with affection.",
			ImageURL:     "/dogs/dog-13.jpg",
			IsRescue:     false,
			GoodWithCats: true,
			GoodWithKids: true,
		},
		{
			Name:         "Coco",
			Breed:        "Shih Tzu",
			Size:         dogs.SizeSmall,
			AgeYears:     6,
			WeightLbs:    14,
			Color:        "Gold and White",
			Sex:          dogs.SexFemale,
			CoatLength:   dogs.CoatLong,
			Description:  "Professional cuddler. Expert at giving puppy eyes.",
			ImageURL:     "/dogs/dog-14.jpg",
			IsRescue:     true,
			GoodWithCats: true,
			GoodWithKids: true,
		},
	}
}
