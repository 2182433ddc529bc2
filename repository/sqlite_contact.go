package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/selimakt/prodstore/database"
	"github.com/selimakt/prodstore/models"
	"github.com/selimakt/prodstore/pkg"
)

// sqliteContactRepo, ContactRepository'nin SQLite implementasyonu.
type sqliteContactRepo struct {
	db database.TxQuerier
}

// NewSQLiteContactRepo, constructor.
func NewSQLiteContactRepo(db database.TxQuerier) ContactRepository {
	return &sqliteContactRepo{db: db}
}

const contactColumns = `id, name, email, subject, body, is_read, created_at`

func (r *sqliteContactRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, subject, body)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		msg.Name, msg.Email, msg.Subject, msg.Body,
	).Scan(&msg.ID, &msg.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	return nil
}

func (r *sqliteContactRepo) GetByID(ctx context.Context, id string) (*models.ContactMessage, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_messages WHERE id = ?`

	msg := &models.ContactMessage{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Body, &msg.IsRead, &msg.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact message: %w", err)
	}

	return msg, nil
}

func (r *sqliteContactRepo) GetAll(ctx context.Context) ([]models.ContactMessage, error) {
	query := `SELECT ` + contactColumns + ` FROM contact_messages ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get contact messages: %w", err)
	}
	defer rows.Close()

	var messages []models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.IsRead, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan contact row: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contact rows: %w", err)
	}

	return messages, nil
}

func (r *sqliteContactRepo) MarkRead(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE contact_messages SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to mark contact message read: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteContactRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}
