// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository bir SQL.DB bağlantısı alır ve interface döner.
// main.go'daki wire-up'ı modülerleştirmek için bu dosyaya taşındı.
package main

import (
	"database/sql"

	"github.com/selimakt/prodstore/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
//
// Neden struct? Ayrı ayrı değişkenler yerine tek struct kullanmak:
// 1. Fonksiyon imzalarını temiz tutar
// 2. Yeni repository eklendiğinde sadece struct + initRepositories güncellenir
// 3. IDE auto-complete ile kolay erişim (repos.User, repos.Production, vb.)
type Repositories struct {
	User         repository.UserRepository
	Production   repository.ProductionRepository
	Favorite     repository.FavoriteRepository
	Contact      repository.ContactRepository
	RevokedToken repository.RevokedTokenRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
//
// Her NewSQLite* fonksiyonu aynı *sql.DB'yi alır — Go'nun sql.DB'si
// thread-safe connection pool'dur, paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:         repository.NewSQLiteUserRepo(conn),
		Production:   repository.NewSQLiteProductionRepo(conn),
		Favorite:     repository.NewSQLiteFavoriteRepo(conn),
		Contact:      repository.NewSQLiteContactRepo(conn),
		RevokedToken: repository.NewSQLiteRevokedTokenRepo(conn),
	}
}
