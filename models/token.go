package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims, oturum token'ının (JWT) payload'ı.
//
// RegisteredClaims.ID alanı jti (JWT ID) taşır — her token'a issue
// sırasında üretilen benzersiz kimlik. Revocation list jti üzerinden
// çalışır: logout edilen token'ın jti'si revoked_tokens tablosuna yazılır,
// middleware her istekte bu tabloya bakar.
//
// Bu struct models paketinde tanımlanır çünkü birden fazla katman
// (services, middleware) tarafından kullanılır — circular dependency'yi
// önler, her katman models'e bağımlı olabilir.
type TokenClaims struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// Token revoke nedenleri — revoked_tokens.reason kolonuna yazılır.
const (
	RevokeReasonLogout = "logout"
	RevokeReasonBanned = "banned"
)

// RevokedToken, revocation list'teki tek bir kaydı temsil eder.
//
// ExpiresAt token'ın kendi exp claim'idir. Bu an geçtikten sonra token
// imza kontrolünden zaten geçemez — kayıt artık hiçbir şeyi korumaz ve
// periyodik sweep tarafından silinir. Liste bu sayede sınırlı kalır:
// en fazla "token ömrü içinde revoke edilen token sayısı" kadar satır olur.
type RevokedToken struct {
	JTI       string    `json:"jti"`
	UserID    string    `json:"user_id"`
	Reason    string    `json:"reason"`
	RevokedAt time.Time `json:"revoked_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
