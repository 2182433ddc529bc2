// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// Middleware chain helper'ları burada tanımlıdır:
//   - auth:      JWT doğrulaması + revocation + hesap durumu kontrolü
//   - authAdmin: auth + admin rol kontrolü
package main

import (
	"net/http"
	"strings"

	"github.com/selimakt/prodstore/config"
	"github.com/selimakt/prodstore/middleware"
	"github.com/selimakt/prodstore/repository"
	"github.com/selimakt/prodstore/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// Route sıralama kuralı: Literal path'ler parametrik path'lerden ÖNCE
// tanımlanmalı — Go 1.22 router'ı spesifik pattern'i önceler ama okunabilirlik
// için yine de bu sırayı koruyoruz.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
	cfg *config.Config,
) {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, userRepo)

	auth := authMw.RequireAuth
	authAdmin := authMw.RequireAdmin

	// ─── Health ───
	mux.HandleFunc("GET /api/health", h.Health.Check)

	// ─── Auth — public ───
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)

	// Logout korumalıdır — revoke edilecek geçerli bir token gerekir
	mux.HandleFunc("POST /api/auth/logout", auth(h.Auth.Logout))
	mux.HandleFunc("GET /api/auth/me", auth(h.Auth.Me))

	// ─── Catalog — public okunur, admin yazar ───
	mux.HandleFunc("GET /api/productions", h.Production.List)
	mux.HandleFunc("GET /api/productions/{id}", h.Production.Get)
	mux.HandleFunc("POST /api/productions", authAdmin(h.Production.Create))
	mux.HandleFunc("PUT /api/productions/{id}", authAdmin(h.Production.Update))
	mux.HandleFunc("DELETE /api/productions/{id}", authAdmin(h.Production.Delete))

	// ─── Favorites — kullanıcıya özel ───
	mux.HandleFunc("GET /api/favorites", auth(h.Favorite.List))
	mux.HandleFunc("POST /api/favorites", auth(h.Favorite.Add))
	mux.HandleFunc("DELETE /api/favorites/{productionId}", auth(h.Favorite.Remove))

	// ─── Contact — form public, yönetim admin ───
	mux.HandleFunc("POST /api/contact", h.Contact.Submit)
	mux.HandleFunc("GET /api/admin/messages", authAdmin(h.Contact.List))
	mux.HandleFunc("GET /api/admin/messages/{id}", authAdmin(h.Contact.Get))
	mux.HandleFunc("PUT /api/admin/messages/{id}/read", authAdmin(h.Contact.MarkRead))
	mux.HandleFunc("DELETE /api/admin/messages/{id}", authAdmin(h.Contact.Delete))

	// ─── Users ───
	// Rol-scoped listeleme: admin herkesi, kullanıcı kendini görür
	mux.HandleFunc("GET /api/users", auth(h.User.List))

	// Admin kullanıcı yönetimi
	mux.HandleFunc("GET /api/admin/users/{id}", authAdmin(h.User.Get))
	mux.HandleFunc("PUT /api/admin/users/{id}/ban", authAdmin(h.User.SetBanned(true)))
	mux.HandleFunc("PUT /api/admin/users/{id}/unban", authAdmin(h.User.SetBanned(false)))
	mux.HandleFunc("PUT /api/admin/users/{id}/activate", authAdmin(h.User.SetActive(true)))
	mux.HandleFunc("PUT /api/admin/users/{id}/deactivate", authAdmin(h.User.SetActive(false)))

	// ─── Static file serving — yüklenen dosyalara erişim ───
	//
	// http.StripPrefix: URL'den "/uploads/" kısmını çıkarır.
	// http.FileServer: Kalan path'i upload dizininde dosya olarak arar.
	// Örnek: GET /uploads/abc123_cover.jpg → ./data/uploads/abc123_cover.jpg
	//
	// Path traversal koruması:
	// http.FileServer zaten ".." path'lerini reddeder.
	// Ek güvenlik için sadece düz dosya isimlerini kabul edip subdirectory'leri reddediyoruz.
	uploadsHandler := http.StripPrefix("/uploads/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/") || strings.Contains(r.URL.Path, "\\") {
			http.NotFound(w, r)
			return
		}
		http.FileServer(http.Dir(cfg.Upload.Dir)).ServeHTTP(w, r)
	}))
	mux.Handle("GET /uploads/", uploadsHandler)
}
