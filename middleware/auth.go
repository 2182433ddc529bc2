// Package middleware, HTTP isteklerini handler'a ulaşmadan önce kesen
// katmanları barındırır.
//
// Middleware zinciri (dıştan içe):
//
//	rate limit → CORS → auth → (admin) → handler
//
// Auth middleware'i her korumalı istekte tam bir durum makinesi çalıştırır:
//
//	header yok        → 401 authorization header required
//	format bozuk      → 401 invalid authorization header format
//	süre dolmuş       → 401 session expired
//	imza geçersiz     → 401 invalid token
//	revoke edilmiş    → 401 token has been revoked
//	kullanıcı silinmiş→ 401 user no longer exists
//	banlı             → sunulan token revoke edilir + 403 account is banned
//	deaktif           → 401 account is deactivated
//	hepsi geçti       → Identity context'e yazılır, handler çalışır
//
// Ban reaktiftir: ban anında mevcut token'lar dokunulmadan kalır; banlı
// kullanıcı bir istek attığında token'ı burada revoke edilir. Böylece
// ban işlemi için kullanıcının tüm aktif token'larını bilmek gerekmez.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/selimakt/prodstore/models"
	"github.com/selimakt/prodstore/pkg"
	"github.com/selimakt/prodstore/repository"
	"github.com/selimakt/prodstore/services"
)

// contextKey, context value çakışmalarını önlemek için özel tip.
// String kullanılsaydı başka bir paket aynı key'i ezebilirdi.
type contextKey string

const identityKey contextKey = "identity"

// AuthMiddleware, korumalı route'ları saran kimlik doğrulama katmanı.
type AuthMiddleware struct {
	authService services.AuthService
	userRepo    repository.UserRepository
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{authService: authService, userRepo: userRepo}
}

// RequireAuth, handler'ı auth kontrolü ile sarar.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// 1. Header çıkarma
		header := r.Header.Get("Authorization")
		if header == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid authorization header format")
			return
		}
		tokenString := parts[1]

		// 2. İmza + expiry doğrulama (expired ve invalid ayrı mesaj alır)
		claims, err := m.authService.ValidateToken(tokenString)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		// 3. Revocation list kontrolü
		revoked, err := m.authService.IsRevoked(r.Context(), claims.ID)
		if err != nil {
			pkg.Error(w, err)
			return
		}
		if revoked {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "token has been revoked")
			return
		}

		// 4. Kullanıcı durumu — token geçerli olsa bile hesap durumu
		// her istekte taze kontrol edilir
		user, err := m.userRepo.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, pkg.ErrNotFound) {
				pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user no longer exists")
				return
			}
			pkg.Error(w, err)
			return
		}

		if user.IsBanned {
			// Reaktif revoke — bu token bir daha bu noktaya gelemez
			m.authService.RevokeToken(r.Context(), tokenString, models.RevokeReasonBanned)
			pkg.ErrorWithMessage(w, http.StatusForbidden, "account is banned")
			return
		}

		if !user.IsActive {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "account is deactivated")
			return
		}

		// 5. Identity'yi context'e yaz — rol DB'deki güncel değerdir,
		// token'daki claim değil (rol değişimi token yenilenmeden etki eder)
		identity := &models.Identity{
			UserID:   user.ID,
			Username: user.Username,
			Email:    user.Email,
			Role:     user.Role,
			JTI:      claims.ID,
		}

		next(w, r.WithContext(WithIdentity(r.Context(), identity)))
	}
}

// RequireAdmin, RequireAuth'un üzerine admin rol kontrolü ekler.
// Auth'tan geçmiş ama admin olmayan kullanıcı 403 alır.
func (m *AuthMiddleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())
		if identity == nil || !identity.IsAdmin() {
			pkg.ErrorWithMessage(w, http.StatusForbidden, "admin access required")
			return
		}
		next(w, r)
	})
}

// WithIdentity, kimliği context'e yazar. RequireAuth bunu kullanır;
// handler testleri de middleware'i kurmadan kimlik enjekte edebilir.
func WithIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext, auth middleware'inin yazdığı kimliği okur.
// Korumalı olmayan bir route'tan çağrılırsa nil döner.
func IdentityFromContext(ctx context.Context) *models.Identity {
	identity, ok := ctx.Value(identityKey).(*models.Identity)
	if !ok {
		return nil
	}
	return identity
}

// BearerToken, Authorization header'ından ham token'ı çıkarır.
// Logout handler'ı revoke için token string'in kendisine ihtiyaç duyar.
// Korumalı route'ta çağrıldığı için header'ın formatı zaten doğrulanmıştır.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}
