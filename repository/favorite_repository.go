package repository

import (
	"context"

	"github.com/selimakt/prodstore/models"
)

// FavoriteRepository, favoriler (favorites tablosu) için interface.
type FavoriteRepository interface {
	// Add, favori ekler. Aynı çift ikinci kez eklenirse ErrAlreadyExists döner.
	Add(ctx context.Context, userID, productionID string) error
	// Remove, favori siler. Kayıt yoksa ErrNotFound döner.
	Remove(ctx context.Context, userID, productionID string) error
	// ListByUser, kullanıcının favorilediği production'ları
	// favorileme tarihine göre (yeniden eskiye) döner.
	ListByUser(ctx context.Context, userID string) ([]models.Production, error)
}
