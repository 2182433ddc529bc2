package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/selimakt/prodstore/models"
	"github.com/selimakt/prodstore/pkg"
	"github.com/selimakt/prodstore/pkg/email"
	"github.com/selimakt/prodstore/repository"
)

// ContactService, iletişim formu iş mantığı.
//
// Submit public endpoint'tir (auth gerektirmez); listeleme ve yönetim
// admin'e aittir.
type ContactService interface {
	// Submit, mesajı kaydeder ve admin'e email bildirimi gönderir.
	// Email gönderimi best-effort'tur: başarısızlık log'lanır, mesaj
	// yine de kaydedilmiş sayılır — client hata görmez.
	Submit(ctx context.Context, req *models.CreateContactRequest) (*models.ContactMessage, error)
	GetAll(ctx context.Context) ([]models.ContactMessage, error)
	Get(ctx context.Context, id string) (*models.ContactMessage, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type contactService struct {
	contactRepo repository.ContactRepository

	// sender nil olabilir — RESEND_API_KEY tanımlı değilse email
	// bildirimi devre dışıdır, form yine çalışır.
	sender email.EmailSender
}

// NewContactService, constructor. sender nil geçilebilir.
func NewContactService(contactRepo repository.ContactRepository, sender email.EmailSender) ContactService {
	return &contactService{contactRepo: contactRepo, sender: sender}
}

func (s *contactService) Submit(ctx context.Context, req *models.CreateContactRequest) (*models.ContactMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	}

	if err := s.contactRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	// Bildirim arka planda gider — HTTP yanıtı email sağlayıcısını beklemez.
	// Request context'i yanıtla birlikte iptal olacağından bağımsız bir
	// context kullanılır.
	if s.sender != nil {
		go func(m models.ContactMessage) {
			sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			if err := s.sender.SendContactNotification(sendCtx, m.Name, m.Email, m.Subject, m.Body); err != nil {
				log.Printf("[contact] notification email failed for message %s: %v", m.ID, err)
			}
		}(*msg)
	}

	return msg, nil
}

func (s *contactService) GetAll(ctx context.Context) ([]models.ContactMessage, error) {
	return s.contactRepo.GetAll(ctx)
}

func (s *contactService) Get(ctx context.Context, id string) (*models.ContactMessage, error) {
	return s.contactRepo.GetByID(ctx, id)
}

func (s *contactService) MarkRead(ctx context.Context, id string) error {
	return s.contactRepo.MarkRead(ctx, id)
}

func (s *contactService) Delete(ctx context.Context, id string) error {
	return s.contactRepo.Delete(ctx, id)
}
