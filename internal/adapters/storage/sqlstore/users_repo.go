package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"tingrrr/internal/domain/users"
)

type UsersRepo struct {
	s *Store
}

func NewUsersRepo(s *Store) *UsersRepo {
	return &UsersRepo{s: s}
}

var _ users.Repository = (*UsersRepo)(nil)

// Create traduce las violaciones de unicidad a los errores del dominio.
func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.s.exec(ctx, r.s.db, `
		INSERT INTO users (id, username, email, created_at)
		VALUES ($1, $2, $3, $4)
	`, u.ID, u.Username, u.Email, u.CreatedAt.UTC())
	if isUniqueViolation(err) {
		msg := strings.ToLower(err.Error())
		switch {
		case strings.Contains(msg, "email"):
			return users.ErrEmailTaken
		case strings.Contains(msg, "username"):
			return users.ErrUsernameTaken
		}
	}
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.one(ctx, `WHERE id = $1`, id)
}

func (r *UsersRepo) FindByUsername(ctx context.Context, username string) (users.User, error) {
	return r.one(ctx, `WHERE username = $1`, username)
}

func (r *UsersRepo) FindByEmail(ctx context.Context, email string) (users.User, error) {
	return r.one(ctx, `WHERE email = $1`, email)
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.s.query(ctx, r.s.db, `
		SELECT id, username, email, created_at
		FROM users
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		var u users.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, scanTime(&u.CreatedAt)); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UsersRepo) one(ctx context.Context, where string, arg string) (users.User, error) {
	var u users.User
	err := r.s.queryRow(ctx, r.s.db, `
		SELECT id, username, email, created_at
		FROM users
		`+where, arg).Scan(&u.ID, &u.Username, &u.Email, scanTime(&u.CreatedAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}
