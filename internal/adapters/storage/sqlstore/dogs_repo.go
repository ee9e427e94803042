package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tingrrr/internal/domain/dogs"
)

type DogsRepo struct {
	s *Store
}

func NewDogsRepo(s *Store) *DogsRepo {
	return &DogsRepo{s: s}
}

var _ dogs.Repository = (*DogsRepo)(nil)

const dogColumns = `
	id, name, breed, size, age_years, weight_lbs, color, sex, coat_length,
	description, image_url, is_rescue, good_with_cats, good_with_kids,
	created_at, updated_at`

func (r *DogsRepo) Create(ctx context.Context, d dogs.Dog) error {
	_, err := r.s.exec(ctx, r.s.db, `
		INSERT INTO dogs (`+dogColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		d.ID,
		d.Name,
		d.Breed,
		string(d.Size),
		d.AgeYears,
		d.WeightLbs,
		d.Color,
		string(d.Sex),
		string(d.CoatLength),
		d.Description,
		d.ImageURL,
		d.IsRescue,
		d.GoodWithCats,
		d.GoodWithKids,
		d.CreatedAt.UTC(),
		d.UpdatedAt.UTC(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("dog %s already exists", d.ID)
	}
	return err
}

func (r *DogsRepo) Update(ctx context.Context, d dogs.Dog) error {
	res, err := r.s.exec(ctx, r.s.db, `
		UPDATE dogs
		SET
			name = $2,
			breed = $3,
			size = $4,
			age_years = $5,
			weight_lbs = $6,
			color = $7,
			sex = $8,
			coat_length = $9,
			description = $10,
			image_url = $11,
			is_rescue = $12,
			good_with_cats = $13,
			good_with_kids = $14,
			updated_at = $15
		WHERE id = $1
	`,
		d.ID,
		d.Name,
		d.Breed,
		string(d.Size),
		d.AgeYears,
		d.WeightLbs,
		d.Color,
		string(d.Sex),
		string(d.CoatLength),
		d.Description,
		d.ImageURL,
		d.IsRescue,
		d.GoodWithCats,
		d.GoodWithKids,
		d.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

// Delete borra el perro; los swipes asociados caen por ON DELETE CASCADE.
func (r *DogsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.s.exec(ctx, r.s.db, `DELETE FROM dogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dogs.ErrNotFound
	}
	return nil
}

func (r *DogsRepo) GetByID(ctx context.Context, id string) (dogs.Dog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return dogs.Dog{}, dogs.ErrNotFound
	}

	row := r.s.queryRow(ctx, r.s.db, `SELECT `+dogColumns+` FROM dogs WHERE id = $1`, id)
	d, err := scanDog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dogs.Dog{}, dogs.ErrNotFound
		}
		return dogs.Dog{}, err
	}
	return d, nil
}

// GetMany ignora ids inexistentes y devuelve en el orden de ids.
func (r *DogsRepo) GetMany(ctx context.Context, ids []string) ([]dogs.Dog, error) {
	if len(ids) == 0 {
		return []dogs.Dog{}, nil
	}

	ph := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		ph[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	rows, err := r.s.query(ctx, r.s.db, `
		SELECT `+dogColumns+`
		FROM dogs
		WHERE id IN (`+strings.Join(ph, ",")+`)
	`, args...)
	if err != nil {
		return nil, err
	}
	found, err := collectDogs(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]dogs.Dog, len(found))
	for _, d := range found {
		byID[d.ID] = d
	}
	out := make([]dogs.Dog, 0, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *DogsRepo) List(ctx context.Context, f dogs.ListFilter) ([]dogs.Dog, error) {
	q := `SELECT ` + dogColumns + ` FROM dogs ORDER BY created_at ASC, id ASC`

	var args []any
	switch {
	case f.Limit > 0:
		q += ` LIMIT $1 OFFSET $2`
		args = append(args, f.Limit, max(f.Offset, 0))
	case f.Offset > 0 && r.s.driver == DriverSQLite:
		q += ` LIMIT -1 OFFSET $1`
		args = append(args, f.Offset)
	case f.Offset > 0:
		q += ` OFFSET $1`
		args = append(args, f.Offset)
	}

	rows, err := r.s.query(ctx, r.s.db, q, args...)
	if err != nil {
		return nil, err
	}
	return collectDogs(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDog(row rowScanner) (dogs.Dog, error) {
	var (
		d                     dogs.Dog
		size, sex, coatLength string
	)
	if err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Breed,
		&size,
		&d.AgeYears,
		&d.WeightLbs,
		&d.Color,
		&sex,
		&coatLength,
		&d.Description,
		&d.ImageURL,
		&d.IsRescue,
		&d.GoodWithCats,
		&d.GoodWithKids,
		scanTime(&d.CreatedAt),
		scanTime(&d.UpdatedAt),
	); err != nil {
		return dogs.Dog{}, err
	}
	d.Size = dogs.Size(size)
	d.Sex = dogs.Sex(sex)
	d.CoatLength = dogs.CoatLength(coatLength)
	return d, nil
}

func collectDogs(rows *sql.Rows) ([]dogs.Dog, error) {
	defer rows.Close()

	out := make([]dogs.Dog, 0)
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
