package repos

import (
	"context"
	"errors"

	"jewelbox/internal/domain"
)

// ErrDuplicate is returned when a unique key (e.g. user email) already exists.
var ErrDuplicate = errors.New("duplicate key")

type UserRepo struct{ DB *DB }

func NewUserRepo(db *DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with an already hashed password.
func (r *UserRepo) Create(ctx context.Context, email, hash, name string) (*domain.User, error) {
	res, err := r.DB.ExecContext(ctx, `INSERT INTO users(email, password, name) VALUES(?, ?, ?)`, email, hash, name)
	if err != nil {
		if r.DB.dialect.isUnique(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.User{ID: id, Email: email, Name: name, Hash: hash}, nil
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, `
		SELECT id, email, name, password, COALESCE(created_at, '') AS created_at
		FROM users WHERE LOWER(email) = LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, `
		SELECT id, email, name, password, COALESCE(created_at, '') AS created_at
		FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
