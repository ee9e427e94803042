package users

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type testRepo struct {
	items []User
}

func (r *testRepo) Create(_ context.Context, u User) error {
	r.items = append(r.items, u)
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (User, error) {
	for _, u := range r.items {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *testRepo) FindByUsername(_ context.Context, username string) (User, error) {
	for _, u := range r.items {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *testRepo) FindByEmail(_ context.Context, email string) (User, error) {
	for _, u := range r.items {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *testRepo) List(_ context.Context) ([]User, error) {
	return append([]User(nil), r.items...), nil
}

func TestCreate_OK(t *testing.T) {
	svc := NewService(&testRepo{})
	fixed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	u, err := svc.Create(context.Background(), CreateInput{Username: " ana ", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.ID == "" || u.Username != "ana" || !u.CreatedAt.Equal(fixed) {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestCreate_Conflicts(t *testing.T) {
	svc := NewService(&testRepo{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{Username: "ana", Email: "ana@example.com"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	_, err := svc.Create(ctx, CreateInput{Username: "ana", Email: "other@example.com"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	_, err = svc.Create(ctx, CreateInput{Username: "bob", Email: "ana@example.com"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(&testRepo{})
	ctx := context.Background()

	bad := []CreateInput{
		{Username: "", Email: "a@example.com"},
		{Username: strings.Repeat("x", 51), Email: "a@example.com"},
		{Username: "ana", Email: "not-an-email"},
		{Username: "ana", Email: strings.Repeat("x", 95) + "@example.com"},
	}
	for i, in := range bad {
		if _, err := svc.Create(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestExists(t *testing.T) {
	svc := NewService(&testRepo{})
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateInput{Username: "ana", Email: "ana@example.com"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	ok, err := svc.Exists(ctx, u.ID)
	if err != nil || !ok {
		t.Fatalf("expected user to exist, ok=%v err=%v", ok, err)
	}
	ok, err = svc.Exists(ctx, "nope")
	if err != nil || ok {
		t.Fatalf("expected missing user, ok=%v err=%v", ok, err)
	}
}
