package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/selimakt/prodstore/database"
	"github.com/selimakt/prodstore/models"
	"github.com/selimakt/prodstore/pkg"
)

// sqliteProductionRepo, ProductionRepository'nin SQLite implementasyonu.
//
// TxQuerier aldığı için hem *sql.DB hem *sql.Tx ile çalışır —
// ProductionService, update/delete akışında WithTx içinde tx-scoped
// bir instance oluşturur.
type sqliteProductionRepo struct {
	db database.TxQuerier
}

// NewSQLiteProductionRepo, constructor.
func NewSQLiteProductionRepo(db database.TxQuerier) ProductionRepository {
	return &sqliteProductionRepo{db: db}
}

const productionColumns = `id, title, description, artist, genre, price, cover_url, audio_url, created_at, updated_at`

// escapeLike, kullanıcı girdisindeki LIKE joker karakterlerini etkisizleştirir.
// "100%" araması literal "100%" bulmalı, "100 ile başlayan her şey" değil.
// Sorgudaki ESCAPE '\' cümlesi ile birlikte çalışır.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

func (r *sqliteProductionRepo) Create(ctx context.Context, p *models.Production) error {
	query := `
		INSERT INTO productions (id, title, description, artist, genre, price, cover_url, audio_url)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		p.Title, p.Description, p.Artist, p.Genre, p.Price, p.CoverURL, p.AudioURL,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create production: %w", err)
	}

	return nil
}

func (r *sqliteProductionRepo) GetByID(ctx context.Context, id string) (*models.Production, error) {
	query := `SELECT ` + productionColumns + ` FROM productions WHERE id = ?`

	p := &models.Production{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Artist, &p.Genre,
		&p.Price, &p.CoverURL, &p.AudioURL, &p.CreatedAt, &p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get production by id: %w", err)
	}

	return p, nil
}

// List, filtre kombinasyonunu tek bir WHERE cümlesine çevirir.
//
// Filtre SQL eşlemesi:
//   - search → title/description/artist/genre üzerinde LOWER + LIKE
//   - genre  → genre üzerinde LOWER + LIKE (substring match)
//   - price  → "0-20" | "20-50" | "50+" bucket'ları [alt, üst) aralığıdır
//   - date   → created_at >= datetime('now', '-N days')
//
// Aynı WHERE hem COUNT hem sayfa sorgusunda kullanılır — toplam ile
// sayfa içeriği aynı filtreyi görür.
func (r *sqliteProductionRepo) List(ctx context.Context, filter *models.ProductionFilter, pageSize int) (*models.ProductionPage, error) {
	var conditions []string
	var args []any

	if filter.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Search)) + "%"
		conditions = append(conditions,
			`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' OR LOWER(artist) LIKE ? ESCAPE '\' OR LOWER(genre) LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern, pattern)
	}

	if filter.Genre != "" {
		conditions = append(conditions, `LOWER(genre) LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(strings.ToLower(filter.Genre))+"%")
	}

	switch filter.PriceRange {
	case models.PriceRangeLow:
		conditions = append(conditions, `price >= 0 AND price < 20`)
	case models.PriceRangeMid:
		conditions = append(conditions, `price >= 20 AND price < 50`)
	case models.PriceRangeHigh:
		conditions = append(conditions, `price >= 50`)
	}

	switch filter.DateRange {
	case models.DateRangeWeek:
		conditions = append(conditions, `created_at >= datetime('now', '-7 days')`)
	case models.DateRangeMonth:
		conditions = append(conditions, `created_at >= datetime('now', '-1 month')`)
	case models.DateRangeYear:
		conditions = append(conditions, `created_at >= datetime('now', '-1 year')`)
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	// Önce toplam — sayfalama bilgisi için
	var total int
	countQuery := `SELECT COUNT(*) FROM productions` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count productions: %w", err)
	}

	offset := (filter.Page - 1) * pageSize
	pageQuery := `SELECT ` + productionColumns + ` FROM productions` + where +
		` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	pageArgs := append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to list productions: %w", err)
	}
	defer rows.Close()

	var productions []models.Production
	for rows.Next() {
		var p models.Production
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Artist, &p.Genre,
			&p.Price, &p.CoverURL, &p.AudioURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan production row: %w", err)
		}
		productions = append(productions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating production rows: %w", err)
	}

	return &models.ProductionPage{
		Productions: productions,
		Total:       total,
		Page:        filter.Page,
		PageSize:    pageSize,
	}, nil
}

func (r *sqliteProductionRepo) Update(ctx context.Context, p *models.Production) error {
	query := `
		UPDATE productions
		SET title = ?, description = ?, artist = ?, genre = ?, price = ?,
		    cover_url = ?, audio_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		p.Title, p.Description, p.Artist, p.Genre, p.Price,
		p.CoverURL, p.AudioURL, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update production: %w", err)
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

func (r *sqliteProductionRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM productions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete production: %w", err)
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
