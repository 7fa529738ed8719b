package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var ErrNotFound = errors.New("admin user not found")

type AdminUser struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Password keeps the bcrypt hash next to the plaintext it came from so the
// plaintext never travels further than the store call.
type Password struct {
	text *string
	Hash []byte
}

func (p *Password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.text = &text
	p.Hash = hash
	return nil
}

func (p *Password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.Hash, []byte(text))
}

type Store interface {
	Create(ctx context.Context, u *AdminUser) error
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
	GetByID(ctx context.Context, id int64) (*AdminUser, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, u *AdminUser) error {
	if u.Role == "" {
		u.Role = "admin"
	}

	query := `
		INSERT INTO admin_users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query, u.Email, u.Password.Hash, u.Role).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	return nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*AdminUser, error) {
	query := `SELECT id, email, password_hash, role, created_at, updated_at
		FROM admin_users WHERE email = $1;`

	u := &AdminUser{}
	err := r.db.QueryRow(ctx, query, email).
		Scan(&u.ID, &u.Email, &u.Password.Hash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin user by email: %w", err)
	}
	return u, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*AdminUser, error) {
	query := `SELECT id, email, password_hash, role, created_at, updated_at
		FROM admin_users WHERE id = $1;`

	u := &AdminUser{}
	err := r.db.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Email, &u.Password.Hash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get admin user by id: %w", err)
	}
	return u, nil
}
