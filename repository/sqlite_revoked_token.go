package repository

import (
	"context"
	"fmt"

	"github.com/selimakt/prodstore/database"
	"github.com/selimakt/prodstore/models"
	"github.com/selimakt/prodstore/pkg"
)

// sqliteRevokedTokenRepo, RevokedTokenRepository'nin SQLite implementasyonu.
type sqliteRevokedTokenRepo struct {
	db database.TxQuerier
}

// NewSQLiteRevokedTokenRepo, constructor.
func NewSQLiteRevokedTokenRepo(db database.TxQuerier) RevokedTokenRepository {
	return &sqliteRevokedTokenRepo{db: db}
}

func (r *sqliteRevokedTokenRepo) Create(ctx context.Context, rt *models.RevokedToken) error {
	query := `
		INSERT INTO revoked_tokens (jti, user_id, reason, expires_at)
		VALUES (?, ?, ?, ?)
		RETURNING revoked_at`

	// expires_at metin olarak saklanır ve DeleteExpired'da UTC üreten
	// CURRENT_TIMESTAMP ile karşılaştırılır. Lokal zone'lu bir time.Time
	// olduğu gibi bağlanırsa karşılaştırma saat dilimi kadar kayar —
	// UTC normalizasyonu bu sınırda yapılır.
	err := r.db.QueryRowContext(ctx, query,
		rt.JTI, rt.UserID, rt.Reason, rt.ExpiresAt.UTC(),
	).Scan(&rt.RevokedAt)

	if err != nil {
		// jti PRIMARY KEY → aynı token iki kez revoke edilmiş
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: token already revoked", pkg.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create revocation record: %w", err)
	}

	return nil
}

func (r *sqliteRevokedTokenRepo) Exists(ctx context.Context, jti string) (bool, error) {
	// EXISTS subquery — satırı okumaya gerek yok, varlık bilgisi yeter.
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = ?)`, jti,
	).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("failed to check revocation: %w", err)
	}

	return exists, nil
}

func (r *sqliteRevokedTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE expires_at <= CURRENT_TIMESTAMP`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired revocations: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return affected, nil
}
