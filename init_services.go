// Package main — Service katmanı başlatma.
//
// initServices, tüm service'leri repository interface'leri ve config
// ile oluşturur. Katalog cache'i de burada oluşturulup sahibi olan
// ProductionService'e enjekte edilir.
package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/selimakt/prodstore/config"
	"github.com/selimakt/prodstore/pkg/cache"
	"github.com/selimakt/prodstore/pkg/email"
	"github.com/selimakt/prodstore/pkg/ratelimit"
	"github.com/selimakt/prodstore/services"
)

// Katalog cache parametreleri. 5 dakikalık TTL katalog gibi nadiren
// değişen veri için yeterli; yazmalar zaten cache'i anında boşaltır.
const (
	catalogCacheTTL     = 5 * time.Minute
	catalogCacheCleanup = time.Minute
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth       services.AuthService
	Production services.ProductionService
	Upload     services.UploadService
	Favorite   services.FavoriteService
	Contact    services.ContactService
	User       services.UserService

	// CatalogCache, shutdown'da Close edilebilsin diye dışarıya açılır.
	CatalogCache *cache.TTLCache[string, any]
}

// RateLimiters, rate limiter instance'larını tutan container struct.
//
//	Global: tüm API'yi saran IP bütçesi (middleware olarak mux'u sarar)
//	Login:  brute-force koruması — dar pencere, az deneme
type RateLimiters struct {
	Global *ratelimit.Limiter
	Login  *ratelimit.Limiter
}

// Login limiter sabitleri — 15 dakikada 10 deneme.
// Başarılı login sayacı sıfırladığı için meşru kullanıcıyı etkilemez.
const (
	loginMaxAttempts = 10
	loginWindow      = 15 * time.Minute
)

// initRateLimiters, limiter'ları config'ten oluşturur.
func initRateLimiters(cfg *config.Config) *RateLimiters {
	return &RateLimiters{
		Global: ratelimit.New(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second),
		Login:  ratelimit.New(loginMaxAttempts, loginWindow),
	}
}

// initServices, tüm service'leri oluşturur.
func initServices(conn *sql.DB, repos *Repositories, cfg *config.Config) (*Services, error) {
	uploadService, err := services.NewUploadService(cfg.Upload.Dir, cfg.Upload.MaxCoverSize, cfg.Upload.MaxAudioSize)
	if err != nil {
		return nil, fmt.Errorf("failed to init upload service: %w", err)
	}

	catalogCache := cache.New[string, any](catalogCacheTTL, catalogCacheCleanup)

	// Email bildirimi opsiyoneldir — üç config alanı da doluysa aktif.
	var sender email.EmailSender
	if cfg.Email.ResendAPIKey != "" && cfg.Email.FromEmail != "" && cfg.Email.AdminEmail != "" {
		sender = email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.FromEmail, cfg.Email.AdminEmail)
	}

	return &Services{
		Auth:         services.NewAuthService(repos.User, repos.RevokedToken, cfg.JWT.Secret, cfg.JWT.ExpiryDays),
		Production:   services.NewProductionService(conn, repos.Production, uploadService, catalogCache),
		Upload:       uploadService,
		Favorite:     services.NewFavoriteService(repos.Favorite, repos.Production),
		Contact:      services.NewContactService(repos.Contact, sender),
		User:         services.NewUserService(repos.User),
		CatalogCache: catalogCache,
	}, nil
}
