package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/selimakt/prodstore/models"
	"github.com/selimakt/prodstore/pkg"
	"github.com/selimakt/prodstore/repository"
)

// FavoriteService, kullanıcı favorileri iş mantığı.
//
// Favoriler tamamen kullanıcıya özeldir — her operasyon token'dan gelen
// userID ile scope'lanır, bir kullanıcı başkasının favorilerini göremez
// ve değiştiremez.
type FavoriteService interface {
	// Add, production'ı favorilere ekler. Production yoksa ErrNotFound,
	// zaten favorideyse ErrAlreadyExists döner.
	Add(ctx context.Context, userID, productionID string) error
	Remove(ctx context.Context, userID, productionID string) error
	// List, favorilenen production'ları tam kayıt olarak döner
	// (sadece ID listesi değil — client tek istekle render edebilsin).
	List(ctx context.Context, userID string) ([]models.Production, error)
}

type favoriteService struct {
	favRepo  repository.FavoriteRepository
	prodRepo repository.ProductionRepository
}

// NewFavoriteService, constructor.
func NewFavoriteService(favRepo repository.FavoriteRepository, prodRepo repository.ProductionRepository) FavoriteService {
	return &favoriteService{favRepo: favRepo, prodRepo: prodRepo}
}

func (s *favoriteService) Add(ctx context.Context, userID, productionID string) error {
	if productionID == "" {
		return fmt.Errorf("%w: production_id is required", pkg.ErrBadRequest)
	}

	// Önce production'ın varlığını doğrula — FK ihlali yerine anlamlı
	// bir 404 dönsün
	if _, err := s.prodRepo.GetByID(ctx, productionID); err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return fmt.Errorf("%w: production not found", pkg.ErrNotFound)
		}
		return err
	}

	return s.favRepo.Add(ctx, userID, productionID)
}

func (s *favoriteService) Remove(ctx context.Context, userID, productionID string) error {
	if productionID == "" {
		return fmt.Errorf("%w: production_id is required", pkg.ErrBadRequest)
	}
	return s.favRepo.Remove(ctx, userID, productionID)
}

func (s *favoriteService) List(ctx context.Context, userID string) ([]models.Production, error) {
	return s.favRepo.ListByUser(ctx, userID)
}
