package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"tingrrr/internal/domain/dogs"
	"tingrrr/internal/domain/matching"
	"tingrrr/internal/domain/swipes"
)

type SwipesRepo struct {
	s *Store
}

func NewSwipesRepo(s *Store) *SwipesRepo {
	return &SwipesRepo{s: s}
}

var _ swipes.Repository = (*SwipesRepo)(nil)

func (r *SwipesRepo) Create(ctx context.Context, sw swipes.Swipe) error {
	return r.insert(ctx, r.s.db, sw)
}

// CreateWithProfile inserta el swipe y hace upsert del perfil en la misma
// transacción.
func (r *SwipesRepo) CreateWithProfile(ctx context.Context, sw swipes.Swipe, p matching.Profile) error {
	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		if err := r.insert(ctx, tx, sw); err != nil {
			return err
		}
		return r.saveProfile(ctx, tx, p)
	})
}

func (r *SwipesRepo) insert(ctx context.Context, q execer, sw swipes.Swipe) error {
	_, err := r.s.exec(ctx, q, `
		INSERT INTO swipes (id, user_id, dog_id, direction, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, sw.ID, sw.UserID, sw.DogID, string(sw.Direction), sw.CreatedAt.UTC())
	if isUniqueViolation(err) {
		return swipes.ErrAlreadySwiped
	}
	return err
}

func (r *SwipesRepo) Exists(ctx context.Context, userID, dogID string) (bool, error) {
	var n int
	err := r.s.queryRow(ctx, r.s.db, `
		SELECT COUNT(*) FROM swipes WHERE user_id = $1 AND dog_id = $2
	`, userID, dogID).Scan(&n)
	return n > 0, err
}

func (r *SwipesRepo) ListByUser(ctx context.Context, userID string) ([]swipes.Swipe, error) {
	rows, err := r.s.query(ctx, r.s.db, `
		SELECT id, user_id, dog_id, direction, created_at
		FROM swipes
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]swipes.Swipe, 0)
	for rows.Next() {
		var (
			sw  swipes.Swipe
			dir string
		)
		if err := rows.Scan(&sw.ID, &sw.UserID, &sw.DogID, &dir, scanTime(&sw.CreatedAt)); err != nil {
			return nil, err
		}
		sw.Direction = swipes.Direction(dir)
		out = append(out, sw)
	}
	return out, rows.Err()
}

func (r *SwipesRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.s.queryRow(ctx, r.s.db, `SELECT COUNT(*) FROM swipes WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *SwipesRepo) GetProfile(ctx context.Context, userID string) (matching.Profile, error) {
	var (
		size, breed, coat    sql.NullString
		minAge, maxAge       sql.NullFloat64
		minWeight, maxWeight sql.NullFloat64
		cats, kids, rescue   sql.NullBool
	)
	p := matching.Profile{UserID: userID}
	err := r.s.queryRow(ctx, r.s.db, `
		SELECT
			preferred_size, preferred_breed, preferred_coat_length,
			min_age, max_age, min_weight, max_weight,
			prefers_good_with_cats, prefers_good_with_kids, prefers_rescue,
			updated_at
		FROM user_preferences
		WHERE user_id = $1
	`, userID).Scan(
		&size, &breed, &coat,
		&minAge, &maxAge, &minWeight, &maxWeight,
		&cats, &kids, &rescue,
		scanTime(&p.UpdatedAt),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return matching.Profile{}, swipes.ErrNoPreferences
		}
		return matching.Profile{}, err
	}

	if size.Valid {
		v := dogs.Size(size.String)
		p.PreferredSize = &v
	}
	if coat.Valid {
		v := dogs.CoatLength(coat.String)
		p.PreferredCoatLength = &v
	}
	p.PreferredBreed = fromNull(breed.String, breed.Valid)
	p.MinAge = fromNull(minAge.Float64, minAge.Valid)
	p.MaxAge = fromNull(maxAge.Float64, maxAge.Valid)
	p.MinWeight = fromNull(minWeight.Float64, minWeight.Valid)
	p.MaxWeight = fromNull(maxWeight.Float64, maxWeight.Valid)
	p.PrefersGoodWithCats = fromNull(cats.Bool, cats.Valid)
	p.PrefersGoodWithKids = fromNull(kids.Bool, kids.Valid)
	p.PrefersRescue = fromNull(rescue.Bool, rescue.Valid)
	return p, nil
}

// saveProfile reemplaza la fila completa; nunca mezcla valores viejos y nuevos.
func (r *SwipesRepo) saveProfile(ctx context.Context, q execer, p matching.Profile) error {
	var size, coat *string
	if p.PreferredSize != nil {
		v := string(*p.PreferredSize)
		size = &v
	}
	if p.PreferredCoatLength != nil {
		v := string(*p.PreferredCoatLength)
		coat = &v
	}

	_, err := r.s.exec(ctx, q, `
		INSERT INTO user_preferences (
			user_id,
			preferred_size, preferred_breed, preferred_coat_length,
			min_age, max_age, min_weight, max_weight,
			prefers_good_with_cats, prefers_good_with_kids, prefers_rescue,
			updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (user_id) DO UPDATE SET
			preferred_size = excluded.preferred_size,
			preferred_breed = excluded.preferred_breed,
			preferred_coat_length = excluded.preferred_coat_length,
			min_age = excluded.min_age,
			max_age = excluded.max_age,
			min_weight = excluded.min_weight,
			max_weight = excluded.max_weight,
			prefers_good_with_cats = excluded.prefers_good_with_cats,
			prefers_good_with_kids = excluded.prefers_good_with_kids,
			prefers_rescue = excluded.prefers_rescue,
			updated_at = excluded.updated_at
	`,
		p.UserID,
		toNull(size), toNull(p.PreferredBreed), toNull(coat),
		toNull(p.MinAge), toNull(p.MaxAge), toNull(p.MinWeight), toNull(p.MaxWeight),
		toNull(p.PrefersGoodWithCats), toNull(p.PrefersGoodWithKids), toNull(p.PrefersRescue),
		p.UpdatedAt.UTC(),
	)
	return err
}

// Reset borra swipes y perfil en la misma transacción.
func (r *SwipesRepo) Reset(ctx context.Context, userID string) error {
	return r.s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := r.s.exec(ctx, tx, `DELETE FROM swipes WHERE user_id = $1`, userID); err != nil {
			return err
		}
		_, err := r.s.exec(ctx, tx, `DELETE FROM user_preferences WHERE user_id = $1`, userID)
		return err
	})
}

// toNull: nil => NULL.
func toNull[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func fromNull[T any](v T, valid bool) *T {
	if !valid {
		return nil
	}
	return &v
}
