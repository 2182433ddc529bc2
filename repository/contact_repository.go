package repository

import (
	"context"

	"github.com/selimakt/prodstore/models"
)

// ContactRepository, iletişim mesajları için interface.
type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	GetByID(ctx context.Context, id string) (*models.ContactMessage, error)
	GetAll(ctx context.Context) ([]models.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
