package repository

import (
	"context"

	"github.com/selimakt/prodstore/models"
)

// RevokedTokenRepository, token revocation list (revoked_tokens) için interface.
//
// Liste jti üzerinden çalışır: revoke edilen token'ın jti'si yazılır,
// auth middleware her korumalı istekte Exists ile bakar. expires_at
// geçmiş satırlar periyodik sweep ile silinir — süresi dolan token
// imza kontrolünden zaten geçemeyeceği için kayıt artık gereksizdir.
type RevokedTokenRepository interface {
	// Create, revocation kaydı ekler. Aynı jti ikinci kez yazılırsa
	// ErrAlreadyExists döner — caller (logout) bunu sessizce yutar.
	Create(ctx context.Context, rt *models.RevokedToken) error
	Exists(ctx context.Context, jti string) (bool, error)
	// DeleteExpired, expires_at'i geçmiş tüm satırları siler ve
	// silinen satır sayısını döner (sweep log'u için).
	DeleteExpired(ctx context.Context) (int64, error)
}
