package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/selimakt/prodstore/middleware"
	"github.com/selimakt/prodstore/models"
	"github.com/selimakt/prodstore/pkg"
	"github.com/selimakt/prodstore/services"
)

// FavoriteHandler, favori endpoint'lerini yöneten struct.
// Tüm endpoint'ler auth gerektirir — userID her zaman token'dan gelir,
// client'ın gönderdiği bir userID asla kabul edilmez.
type FavoriteHandler struct {
	favoriteService services.FavoriteService
}

// NewFavoriteHandler, constructor.
func NewFavoriteHandler(favoriteService services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// List godoc
// GET /api/favorites
// Kullanıcının favorilediği production'ları tam kayıt olarak döner.
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	productions, err := h.favoriteService.List(r.Context(), identity.UserID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	// Boş favori listesi null değil [] dönsün
	if productions == nil {
		productions = []models.Production{}
	}

	pkg.JSON(w, http.StatusOK, productions)
}

// Add godoc
// POST /api/favorites
// Body: { "production_id": "..." }
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.favoriteService.Add(r.Context(), identity.UserID, req.ProductionID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, map[string]string{"message": "added to favorites"})
}

// Remove godoc
// DELETE /api/favorites/{productionId}
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	productionID := r.PathValue("productionId")

	if err := h.favoriteService.Remove(r.Context(), identity.UserID, productionID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "removed from favorites"})
}
