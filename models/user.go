// Package models, uygulamanın domain modellerini (veri yapıları) tanımlar.
//
// Model, veritabanındaki bir tablonun Go karşılığıdır; aynı zamanda
// API'den gelen/giden verilerin şeklini belirler. `json:"username"` gibi
// tag'ler struct field'larının JSON'a nasıl serialize edileceğini söyler.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Role, kullanıcının yetki seviyesini temsil eder.
//
// Tek doğruluk kaynağı bu alandır — ayrıca bir is_admin kolonu YOKTUR.
// Admin olup olmadığı her zaman Role üzerinden türetilir (IsAdmin metodu).
// İki ayrı temsil taşımak (role string + is_admin boolean) senkron
// tutulması gereken kopya veri demektir; burada bilinçli olarak tek
// temsil seçildi.
type Role string

// İzin verilen Role değerleri. Go'da enum yoktur, typed constant kullanılır.
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User, bir kullanıcıyı temsil eder.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // json:"-" → API response'a DAHİL ETME
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	IsBanned     bool      `json:"is_banned"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin, kullanıcının admin olup olmadığını Role'den türetir.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicUser, API response'larında dönen kullanıcı görünümü.
// is_admin türetilmiş bir alandır — DB'de karşılığı yoktur.
type PublicUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IsAdmin   bool      `json:"is_admin"`
	IsActive  bool      `json:"is_active"`
	IsBanned  bool      `json:"is_banned"`
	CreatedAt time.Time `json:"created_at"`
}

// Public, User'dan API'ye dönecek görünümü üretir.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsAdmin:   u.IsAdmin(),
		IsActive:  u.IsActive,
		IsBanned:  u.IsBanned,
		CreatedAt: u.CreatedAt,
	}
}

// Identity, auth middleware'ın request context'ine eklediği kimlik bilgisi.
// Tam User yerine sadece handler'ların ihtiyaç duyduğu alanlar taşınır;
// JTI, logout'ta sunulan token'ı revoke edebilmek için gereklidir.
type Identity struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	JTI      string `json:"-"` // token kimliği API response'a sızmaz
}

// IsAdmin, Identity için türetilmiş admin kontrolü.
func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// emailRegex, basit ama pratik bir email format kontrolü.
// Tam RFC 5322 validation'ı niyet değil — gerçek doğrulama mail atınca olur.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterRequest, kayıt olurken frontend'den gelen veri.
// PasswordHash yerine Password alırız — hash'leme service katmanında yapılır.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, RegisterRequest'in geçerli olup olmadığını kontrol eder.
// Kurallar:
//   - Username: 3-32 karakter, alfanumerik + alt çizgi
//   - Email: format kontrolü
//   - Password: minimum 8 karakter
func (r *RegisterRequest) Validate() error {
	r.Username = strings.TrimSpace(r.Username)
	usernameLen := utf8.RuneCountInString(r.Username)
	if usernameLen < 3 || usernameLen > 32 {
		return fmt.Errorf("username must be between 3 and 32 characters")
	}

	for _, ch := range r.Username {
		if !isValidUsernameChar(ch) {
			return fmt.Errorf("username can only contain letters, numbers, and underscores")
		}
	}

	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if !emailRegex.MatchString(r.Email) {
		return fmt.Errorf("invalid email format")
	}

	if utf8.RuneCountInString(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	return nil
}

// LoginRequest, giriş yaparken frontend'den gelen veri.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate, LoginRequest'in geçerli olup olmadığını kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// isValidUsernameChar, username'de izin verilen karakterleri kontrol eder.
func isValidUsernameChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_'
}
