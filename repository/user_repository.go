// Package repository, veritabanı erişim katmanını tanımlar.
//
// Repository Pattern: veritabanı işlemlerini (CRUD) soyutlayan tasarım
// kalıbı. Service katmanı doğrudan SQL yazmaz — repository interface'i
// üzerinden çalışır.
//
// Neden interface?
//  1. Test: mock repository yazarak DB olmadan test edebilirsin
//  2. Esneklik: SQLite'tan PostgreSQL'e geçiş sadece yeni implementasyon
//  3. Dependency Inversion: service concrete struct'a değil interface'e bağımlı
//
// Go'da interface implicit'tir — struct, interface'deki tüm method'ları
// implement ediyorsa otomatik olarak o interface'i sağlar.
package repository

import (
	"context"

	"github.com/selimakt/prodstore/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	// SetBanned, ban/unban işlemi. Ban mevcut token'ları proaktif olarak
	// revoke ETMEZ — middleware, banlı kullanıcının token'ını bir sonraki
	// istekte reaktif olarak revoke eder.
	SetBanned(ctx context.Context, userID string, banned bool) error
	SetActive(ctx context.Context, userID string, active bool) error
	Count(ctx context.Context) (int, error)
}
