package users

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password,
	// so login responses don't leak which one it was.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`

	passwordHash string
}

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Create(ctx context.Context, email, fullName, passwordHash string) (User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, full_name)
		VALUES ($1, $2, $3)
		RETURNING id, email, full_name, created_at`,
		email, passwordHash, fullName,
	).Scan(&u.ID, &u.Email, &u.FullName, &u.CreatedAt)
	if isUniqueViolation(err) {
		return User{}, ErrEmailTaken
	}
	return u, err
}

func (r *Repo) Get(ctx context.Context, id int64) (User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `
		SELECT id, email, full_name, created_at FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Email, &u.FullName, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// Authenticate looks the user up by email and compares the bcrypt hash.
func (r *Repo) Authenticate(ctx context.Context, email, password string) (User, error) {
	var u User
	err := r.DB.QueryRow(ctx, `
		SELECT id, email, full_name, password_hash, created_at
		FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Email, &u.FullName, &u.passwordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}
	if !CheckPassword(u.passwordHash, password) {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
