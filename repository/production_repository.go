package repository

import (
	"context"

	"github.com/selimakt/prodstore/models"
)

// ProductionRepository, katalog (productions tablosu) işlemleri için interface.
type ProductionRepository interface {
	Create(ctx context.Context, p *models.Production) error
	GetByID(ctx context.Context, id string) (*models.Production, error)
	// List, filtre + sayfalama ile katalog sayfası döner.
	// pageSize service tarafından belirlenir — repository sayfa politikası bilmez.
	List(ctx context.Context, filter *models.ProductionFilter, pageSize int) (*models.ProductionPage, error)
	Update(ctx context.Context, p *models.Production) error
	Delete(ctx context.Context, id string) error
}
