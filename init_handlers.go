// Package main — Handler katmanı başlatma.
//
// initHandlers, tüm HTTP handler'larını oluşturur.
// Her handler, ihtiyaç duyduğu service interface'lerini constructor'dan alır.
// Handler'lar "thin" dir — sadece HTTP parse + service call + response write.
package main

import (
	"database/sql"

	"github.com/selimakt/prodstore/handlers"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth       *handlers.AuthHandler
	Production *handlers.ProductionHandler
	Favorite   *handlers.FavoriteHandler
	Contact    *handlers.ContactHandler
	User       *handlers.UserHandler
	Health     *handlers.HealthHandler
}

// initHandlers, tüm handler'ları service ve rate limiter dependency'leri ile oluşturur.
func initHandlers(svcs *Services, limiters *RateLimiters, conn *sql.DB) *Handlers {
	return &Handlers{
		Auth:       handlers.NewAuthHandler(svcs.Auth, limiters.Login),
		Production: handlers.NewProductionHandler(svcs.Production),
		Favorite:   handlers.NewFavoriteHandler(svcs.Favorite),
		Contact:    handlers.NewContactHandler(svcs.Contact),
		User:       handlers.NewUserHandler(svcs.User),
		Health:     handlers.NewHealthHandler(conn),
	}
}
