// Package services, business logic katmanını barındırır.
//
// Service Layer Pattern: Handler (HTTP) ile Repository (DB) arasında
// oturan katmandır. Tüm iş kuralları burada yaşar — şifre hash'leme,
// token oluşturma/revoke etme, yetki kontrolleri.
//
// Service ASLA http.Request/Response bilmez — sadece domain modelleri alır/verir.
// Service ASLA doğrudan SQL çalıştırmaz — Repository interface'i kullanır.
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/selimakt/prodstore/models"
	"github.com/selimakt/prodstore/pkg"
	"github.com/selimakt/prodstore/repository"
)

// AuthService interface'i — dışarıya açık API.
// Handler ve middleware bu interface'e bağımlıdır, concrete struct'a değil.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req *models.LoginRequest) (*AuthResult, error)
	// Logout, sunulan token'ı revoke eder. Revocation kaydı yazılamasa
	// bile hata dönmez — client açısından logout her zaman başarılıdır.
	Logout(ctx context.Context, tokenString string)
	// ValidateToken, imza + expiry kontrolü yapar. Süresi dolmuş token
	// ile geçersiz token farklı mesajla ayrılır (ikisi de 401).
	ValidateToken(tokenString string) (*models.TokenClaims, error)
	// IsRevoked, jti'nin revocation list'te olup olmadığına bakar.
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// RevokeToken, token'ı imza DOĞRULAMADAN decode edip jti + exp
	// çıkarır ve revocation kaydı yazar. Caller token'ı zaten elinde
	// tutuyor — imzayı tekrar kontrol etmenin anlamı yok (süresi dolmuş
	// bir token'ı revoke etmek de geçerli bir istek olmalı).
	// Dönen bool kaydın yazılıp yazılmadığını söyler; hata fırlatmaz.
	RevokeToken(ctx context.Context, tokenString, reason string) bool
}

// AuthResult, login/register sonrası dönen token + kullanıcı çifti.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// authService, AuthService interface'inin implementasyonu.
type authService struct {
	userRepo    repository.UserRepository
	revokedRepo repository.RevokedTokenRepository
	jwtSecret   []byte
	tokenExp    time.Duration
}

// NewAuthService, constructor.
// expiryDays: token geçerlilik süresi — tek, uzun ömürlü oturum token'ı
// kullanılır (refresh token çifti yok); erken sonlandırma revocation
// list üzerinden yapılır.
func NewAuthService(
	userRepo repository.UserRepository,
	revokedRepo repository.RevokedTokenRepository,
	jwtSecret string,
	expiryDays int,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		revokedRepo: revokedRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenExp:    time.Duration(expiryDays) * 24 * time.Hour,
	}
}

// Register, yeni kullanıcı kaydı oluşturur ve token döner.
//
// İlk kayıt olan kullanıcı otomatik olarak admin olur — ayrı bir
// bootstrap script'ine gerek kalmaz. Sonraki herkes normal kullanıcıdır.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*AuthResult, error) {
	// 1. Validation
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	// 2. Bcrypt hash (cost=12)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// 3. Rol belirle — ilk kullanıcı admin
	role := models.RoleUser
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		role = models.RoleAdmin
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err // ErrAlreadyExists olabilir (username/email çakışması)
	}

	// 4. Token issue
	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Login, kullanıcı girişi yapar.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*AuthResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			// Hangi alanın yanlış olduğunu söyleme — user enumeration koruması
			return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", pkg.ErrUnauthorized)
	}

	if user.IsBanned {
		return nil, fmt.Errorf("%w: account is banned", pkg.ErrForbidden)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", pkg.ErrUnauthorized)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Logout, sunulan token'ı revoke eder.
func (s *authService) Logout(ctx context.Context, tokenString string) {
	s.RevokeToken(ctx, tokenString, models.RevokeReasonLogout)
}

// ValidateToken, JWT'yi doğrular ve claims'i döner.
func (s *authService) ValidateToken(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		// Expiry ayrı mesaj alır — client "oturum doldu, tekrar gir"
		// gösterebilsin. İkisi de 401'dir.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: session expired", pkg.ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: invalid token", pkg.ErrUnauthorized)
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", pkg.ErrUnauthorized)
	}

	return claims, nil
}

// IsRevoked, jti'nin revocation list'te olup olmadığına bakar.
func (s *authService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.revokedRepo.Exists(ctx, jti)
}

// RevokeToken, token'ı unverified decode edip revocation kaydı yazar.
//
// Hata fırlatmaz: duplicate kayıt (token zaten revoke edilmiş) veya DB
// hatası log'lanır ve false döner. Logout akışı bu sayede client'a her
// zaman başarı döner — revoke edilememiş bir token en kötü ihtimalle
// kendi exp süresine kadar yaşar.
func (s *authService) RevokeToken(ctx context.Context, tokenString, reason string) bool {
	claims := &models.TokenClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		log.Printf("[auth] revoke failed: cannot decode token: %v", err)
		return false
	}

	if claims.ID == "" || claims.ExpiresAt == nil {
		log.Printf("[auth] revoke failed: token has no jti or exp")
		return false
	}

	rt := &models.RevokedToken{
		JTI:       claims.ID,
		UserID:    claims.UserID,
		Reason:    reason,
		ExpiresAt: claims.ExpiresAt.Time,
	}

	if err := s.revokedRepo.Create(ctx, rt); err != nil {
		if errors.Is(err, pkg.ErrAlreadyExists) {
			// Idempotent durum — token zaten listede, iş bitmiş sayılır
			return true
		}
		log.Printf("[auth] revoke failed for jti=%s: %v", claims.ID, err)
		return false
	}

	return true
}

// ─── Private Helpers ───

// issueToken, kullanıcı için imzalı oturum token'ı üretir.
// jti (RegisteredClaims.ID) her token'a özgü UUID'dir — revocation
// list bu kimlik üzerinden çalışır.
func (s *authService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "prodstore",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
