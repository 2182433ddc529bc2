package models

import "time"

// Favorite, bir kullanıcının bir production'ı favorilemesini temsil eder.
// (user_id, production_id) çifti unique'tir — aynı parça iki kez favorilenemez.
type Favorite struct {
	UserID       string    `json:"user_id"`
	ProductionID string    `json:"production_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// AddFavoriteRequest, POST /api/favorites body'si.
type AddFavoriteRequest struct {
	ProductionID string `json:"production_id"`
}
