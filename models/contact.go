package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ContactMessage, iletişim formundan gelen bir mesajı temsil eder.
// Public endpoint'ten oluşturulur, sadece admin okur/yönetir.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateContactRequest, POST /api/contact body'si.
type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"message"`
}

// Validate, CreateContactRequest'in geçerli olup olmadığını kontrol eder.
// Public bir endpoint olduğu için limitler sıkı tutulur — spam koruması
// rate limiter'da, boyut koruması burada.
func (r *CreateContactRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(r.Name) > 100 {
		return fmt.Errorf("name must be at most 100 characters")
	}

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}

	r.Subject = strings.TrimSpace(r.Subject)
	if utf8.RuneCountInString(r.Subject) > 200 {
		return fmt.Errorf("subject must be at most 200 characters")
	}

	r.Body = strings.TrimSpace(r.Body)
	if r.Body == "" {
		return fmt.Errorf("message is required")
	}
	if utf8.RuneCountInString(r.Body) > 5000 {
		return fmt.Errorf("message must be at most 5000 characters")
	}

	return nil
}
