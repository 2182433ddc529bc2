// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Her yerde ayrı ayrı os.Getenv() çağırmak yerine tek bir Config nesnesi
// oluşturulup constructor injection ile taşınır.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — her struct tek bir concern'ü temsil eder.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Upload    UploadConfig
	CORS      CORSConfig
	Email     EmailConfig
	RateLimit RateLimitConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig, SQLite database ayarları.
type DatabaseConfig struct {
	Path string // SQLite dosya yolu (ör: ./data/prodstore.db)
}

// JWTConfig, oturum token ayarları.
type JWTConfig struct {
	Secret     string // Token imzalama anahtarı — GİZLİ TUTULMALI
	ExpiryDays int    // Token geçerlilik süresi, gün cinsinden (varsayılan: 7)
}

// UploadConfig, kapak görseli ve ses dosyası yükleme ayarları.
//
// Dir iki env değişkeninden çözülür: UPLOAD_VOLUME_PATH (mount edilmiş
// volume, production deploy) öncelikli, yoksa UPLOAD_DIR (lokal geliştirme).
type UploadConfig struct {
	Dir          string // Dosyaların kaydedileceği dizin
	MaxCoverSize int64  // Kapak görseli için max boyut (byte)
	MaxAudioSize int64  // Ses dosyası için max boyut (byte)
}

// CORSConfig, izin verilen origin listesi.
type CORSConfig struct {
	AllowedOrigins []string
}

// EmailConfig, contact form bildirimi için Resend ayarları.
// Üç alan da doluysa email bildirimi aktif olur; aksi halde sessizce kapalı.
type EmailConfig struct {
	ResendAPIKey string
	FromEmail    string // Gönderici adres (Resend'de doğrulanmış domain)
	AdminEmail   string // Contact form bildirimlerinin gideceği adres
}

// RateLimitConfig, IP başına global istek bütçesi.
type RateLimitConfig struct {
	MaxRequests   int // Pencere başına izin verilen istek sayısı
	WindowSeconds int // Pencere süresi (saniye)
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler (development kolaylığı için).
func Load() (*Config, error) {
	// .env dosyası yoksa hata vermez, sessizce devam eder.
	// Production'da bu dosya olmaz, gerçek env variable'lar kullanılır.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	expiryDays, err := strconv.Atoi(getEnv("JWT_EXPIRY_DAYS", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_DAYS: %w", err)
	}

	maxCover, err := strconv.ParseInt(getEnv("UPLOAD_MAX_COVER_SIZE", "5242880"), 10, 64) // 5MB
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_COVER_SIZE: %w", err)
	}

	maxAudio, err := strconv.ParseInt(getEnv("UPLOAD_MAX_AUDIO_SIZE", "52428800"), 10, 64) // 50MB
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_AUDIO_SIZE: %w", err)
	}

	maxRequests, err := strconv.Atoi(getEnv("RATE_LIMIT_MAX_REQUESTS", "300"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_MAX_REQUESTS: %w", err)
	}

	windowSeconds, err := strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECONDS", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW_SECONDS: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	// Kısa secret brute-force'a açıktır — uygulamayı durdurmayız ama uyarırız.
	if len(jwtSecret) < 32 {
		log.Printf("[config] WARNING: JWT_SECRET is shorter than 32 bytes, use a longer random secret")
	}

	// Upload dizini: mount edilmiş volume varsa onu kullan.
	uploadDir := getEnv("UPLOAD_VOLUME_PATH", "")
	if uploadDir == "" {
		uploadDir = getEnv("UPLOAD_DIR", "./data/uploads")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/prodstore.db"),
		},
		JWT: JWTConfig{
			Secret:     jwtSecret,
			ExpiryDays: expiryDays,
		},
		Upload: UploadConfig{
			Dir:          uploadDir,
			MaxCoverSize: maxCover,
			MaxAudioSize: maxAudio,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitOrigins(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromEmail:    getEnv("RESEND_FROM", ""),
			AdminEmail:   getEnv("CONTACT_ADMIN_EMAIL", ""),
		},
		RateLimit: RateLimitConfig{
			MaxRequests:   maxRequests,
			WindowSeconds: windowSeconds,
		},
	}

	return cfg, nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:8080").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// splitOrigins, virgülle ayrılmış origin listesini parse eder.
// Boş parçalar ve baştaki/sondaki boşluklar atılır.
func splitOrigins(raw string) []string {
	var origins []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			origins = append(origins, part)
		}
	}
	return origins
}
