package support

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContactMessage struct {
	ID        int64     `json:"id"`
	Reference string    `json:"reference"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type Store interface {
	CreateMessage(ctx context.Context, m *ContactMessage) (*ContactMessage, error)
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

// CreateMessage stores a contact-form submission under a fresh reference
// code the customer can quote in follow-ups.
func (r *Repository) CreateMessage(ctx context.Context, m *ContactMessage) (*ContactMessage, error) {
	m.Reference = uuid.NewString()

	query := `
		INSERT INTO contact_messages (reference, name, email, subject, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, reference, name, email, subject, body, created_at;
	`

	created := &ContactMessage{}
	row := r.db.QueryRow(ctx, query, m.Reference, m.Name, m.Email, m.Subject, m.Body)
	if err := row.Scan(&created.ID, &created.Reference, &created.Name, &created.Email,
		&created.Subject, &created.Body, &created.CreatedAt); err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}
	return created, nil
}
