package handlers

import (
	"net/http"

	"github.com/selimakt/prodstore/middleware"
	"github.com/selimakt/prodstore/pkg"
	"github.com/selimakt/prodstore/services"
)

// UserHandler, kullanıcı listeleme + admin yönetim endpoint'leri.
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler, constructor.
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List godoc
// GET /api/users
// Auth gerektirir. Rol-scoped: admin tüm kullanıcıları görür, normal
// kullanıcı sadece kendini — endpoint tek, davranış role göre değişir.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	users, err := h.userService.ListVisible(r.Context(), identity)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, users)
}

// Get godoc
// GET /api/admin/users/{id}
// Admin only.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, user)
}

// SetBanned godoc
// PUT /api/admin/users/{id}/ban — banlar
// PUT /api/admin/users/{id}/unban — banı kaldırır
//
// Ban reaktif çalışır: mevcut token'lar o an revoke edilmez, banlı
// kullanıcının bir sonraki isteğinde auth middleware token'ı revoke eder.
func (h *UserHandler) SetBanned(banned bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
			return
		}

		targetID := r.PathValue("id")

		if err := h.userService.SetBanned(r.Context(), identity.UserID, targetID, banned); err != nil {
			pkg.Error(w, err)
			return
		}

		msg := "user banned"
		if !banned {
			msg = "user unbanned"
		}
		pkg.JSON(w, http.StatusOK, map[string]string{"message": msg})
	}
}

// SetActive godoc
// PUT /api/admin/users/{id}/activate — aktifleştirir
// PUT /api/admin/users/{id}/deactivate — deaktive eder
func (h *UserHandler) SetActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := middleware.IdentityFromContext(r.Context())
		if identity == nil {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
			return
		}

		targetID := r.PathValue("id")

		if err := h.userService.SetActive(r.Context(), identity.UserID, targetID, active); err != nil {
			pkg.Error(w, err)
			return
		}

		msg := "user activated"
		if !active {
			msg = "user deactivated"
		}
		pkg.JSON(w, http.StatusOK, map[string]string{"message": msg})
	}
}
