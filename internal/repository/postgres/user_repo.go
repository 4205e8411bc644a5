package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"experano/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, name, user_preferences, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	u := &domain.User{}
	var prefs sql.NullString
	err := r.DB.QueryRowContext(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.Name, &prefs, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if prefs.Valid {
		u.Preferences = prefs.String
	}
	return u, nil
}

func (r *userRepository) UpsertPreferences(ctx context.Context, email, preferences string) (*domain.User, error) {
	query := `
		INSERT INTO users (email, user_preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (email)
		DO UPDATE SET user_preferences = EXCLUDED.user_preferences, updated_at = EXCLUDED.updated_at
		RETURNING id, email, name, user_preferences, created_at, updated_at
	`
	u := &domain.User{}
	var prefs sql.NullString
	err := r.DB.QueryRowContext(ctx, query, email, preferences, time.Now()).
		Scan(&u.ID, &u.Email, &u.Name, &prefs, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if prefs.Valid {
		u.Preferences = prefs.String
	}
	return u, nil
}
