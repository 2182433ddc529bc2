package services

import (
	"context"
	"fmt"

	"github.com/selimakt/prodstore/models"
	"github.com/selimakt/prodstore/pkg"
	"github.com/selimakt/prodstore/repository"
)

// UserService, kullanıcı yönetimi iş mantığı.
//
// Listeleme rol-scoped'tur: admin tüm kullanıcıları görür, normal
// kullanıcı sadece kendini. Ban/aktiflik değişiklikleri admin'e aittir
// ve admin kendi hesabına uygulayamaz.
type UserService interface {
	// ListVisible, istek sahibinin görebileceği kullanıcıları döner.
	ListVisible(ctx context.Context, requester *models.Identity) ([]models.PublicUser, error)
	Get(ctx context.Context, id string) (*models.PublicUser, error)
	// SetBanned, ban/unban. Mevcut token'lar proaktif revoke EDİLMEZ —
	// auth middleware banlı kullanıcının token'ını bir sonraki istekte
	// reaktif olarak revoke eder. Admin kendini banlayamaz.
	SetBanned(ctx context.Context, actorID, targetID string, banned bool) error
	// SetActive, hesap aktifliği. Admin kendi hesabını deaktive edemez.
	SetActive(ctx context.Context, actorID, targetID string, active bool) error
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService, constructor.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) ListVisible(ctx context.Context, requester *models.Identity) ([]models.PublicUser, error) {
	if requester.IsAdmin() {
		users, err := s.userRepo.GetAll(ctx)
		if err != nil {
			return nil, err
		}

		public := make([]models.PublicUser, 0, len(users))
		for i := range users {
			public = append(public, users[i].Public())
		}
		return public, nil
	}

	// Normal kullanıcı sadece kendi kaydını görür
	self, err := s.userRepo.GetByID(ctx, requester.UserID)
	if err != nil {
		return nil, err
	}
	return []models.PublicUser{self.Public()}, nil
}

func (s *userService) Get(ctx context.Context, id string) (*models.PublicUser, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	public := user.Public()
	return &public, nil
}

func (s *userService) SetBanned(ctx context.Context, actorID, targetID string, banned bool) error {
	if actorID == targetID {
		return fmt.Errorf("%w: cannot change ban status of your own account", pkg.ErrForbidden)
	}

	// Hedefin varlığını doğrula — 404 ile 200 ayrımı net olsun
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	return s.userRepo.SetBanned(ctx, targetID, banned)
}

func (s *userService) SetActive(ctx context.Context, actorID, targetID string, active bool) error {
	if actorID == targetID {
		return fmt.Errorf("%w: cannot change active status of your own account", pkg.ErrForbidden)
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}

	return s.userRepo.SetActive(ctx, targetID, active)
}
