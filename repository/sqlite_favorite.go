package repository

import (
	"context"
	"fmt"

	"github.com/selimakt/prodstore/database"
	"github.com/selimakt/prodstore/models"
	"github.com/selimakt/prodstore/pkg"
)

// sqliteFavoriteRepo, FavoriteRepository'nin SQLite implementasyonu.
type sqliteFavoriteRepo struct {
	db database.TxQuerier
}

// NewSQLiteFavoriteRepo, constructor.
func NewSQLiteFavoriteRepo(db database.TxQuerier) FavoriteRepository {
	return &sqliteFavoriteRepo{db: db}
}

func (r *sqliteFavoriteRepo) Add(ctx context.Context, userID, productionID string) error {
	query := `INSERT INTO favorites (user_id, production_id) VALUES (?, ?)`

	_, err := r.db.ExecContext(ctx, query, userID, productionID)
	if err != nil {
		// PRIMARY KEY (user_id, production_id) → çift kayıt denemesi
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: production already in favorites", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	return nil
}

func (r *sqliteFavoriteRepo) Remove(ctx context.Context, userID, productionID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND production_id = ?`,
		userID, productionID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
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

func (r *sqliteFavoriteRepo) ListByUser(ctx context.Context, userID string) ([]models.Production, error) {
	// JOIN ile doğrudan production satırları dönülür — frontend'in
	// favori listesi için ikinci bir istek atması gerekmez.
	query := `
		SELECT p.id, p.title, p.description, p.artist, p.genre, p.price,
		       p.cover_url, p.audio_url, p.created_at, p.updated_at
		FROM favorites f
		JOIN productions p ON p.id = f.production_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var productions []models.Production
	for rows.Next() {
		var p models.Production
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Artist, &p.Genre,
			&p.Price, &p.CoverURL, &p.AudioURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		productions = append(productions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorite rows: %w", err)
	}

	return productions, nil
}
