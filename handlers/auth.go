// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler'ın görevi çok basit ve "ince" (thin) olmalı:
// 1. Request body'yi parse et (JSON / multipart → struct)
// 2. Service katmanını çağır
// 3. Sonucu HTTP response olarak döndür
//
// Handler ASLA iş mantığı (business logic) içermez.
// Handler ASLA doğrudan DB'ye erişmez.
// Tüm akıl service'de, handler sadece köprü.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/selimakt/prodstore/middleware"
	"github.com/selimakt/prodstore/models"
	"github.com/selimakt/prodstore/pkg"
	"github.com/selimakt/prodstore/pkg/ratelimit"
	"github.com/selimakt/prodstore/services"
)

// AuthHandler, auth endpoint'lerini yöneten struct.
// Service interface'i ve login rate limiter constructor'dan alınır (DI).
type AuthHandler struct {
	authService  services.AuthService
	loginLimiter *ratelimit.Limiter
}

// NewAuthHandler, constructor.
// loginLimiter: Login brute-force koruması. nil ise devre dışı kalır.
func NewAuthHandler(authService services.AuthService, loginLimiter *ratelimit.Limiter) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		loginLimiter: loginLimiter,
	}
}

// Register godoc
// POST /api/auth/register
// İlk kayıt olan kullanıcı otomatik olarak admin olur.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, result)
}

// Login godoc
// POST /api/auth/login
//
// Rate limiting: IP bazlı brute-force koruması.
// Limit aşıldığında 429 döner; başarılı login sayacı sıfırlar.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		retryAfter := h.loginLimiter.RetryAfterSeconds(ip)
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
		pkg.ErrorWithMessage(w, http.StatusTooManyRequests,
			fmt.Sprintf("too many login attempts, please try again in %s",
				ratelimit.FormatRetryMessage(retryAfter)))
		return
	}

	var req models.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	// Başarılı login — sayacı sıfırla, meşru kullanıcı bloke olmasın
	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}

	pkg.JSON(w, http.StatusOK, result)
}

// Logout godoc
// POST /api/auth/logout
// Auth middleware gerektirir — sunulan Bearer token revoke edilir.
//
// Her zaman 200 döner: revocation kaydı yazılamasa bile client oturumu
// kapatmış sayılır; token en kötü ihtimalle kendi exp süresine kadar yaşar.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	h.authService.Logout(r.Context(), token)

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// meResponse, GET /api/auth/me yanıtının şekli.
// is_admin türetilmiş alandır — Identity'de method olarak yaşadığı için
// serialize edilmez, burada açıkça yazılır.
type meResponse struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     models.Role `json:"role"`
	IsAdmin  bool        `json:"is_admin"`
}

// Me godoc
// GET /api/auth/me
// Auth middleware gerektirir — context'teki kimliği döner.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	pkg.JSON(w, http.StatusOK, meResponse{
		ID:       identity.UserID,
		Username: identity.Username,
		Email:    identity.Email,
		Role:     identity.Role,
		IsAdmin:  identity.IsAdmin(),
	})
}
