package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Production, satıştaki bir parçayı (track) temsil eder.
//
// CoverURL ve AudioURL public URL path'leridir ("/uploads/<dosya>") —
// DB'de bu şekilde saklanır, API'ye olduğu gibi döner. Diskteki gerçek
// dosya adı URL'in son segmentidir (path.Base).
type Production struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Artist      string    `json:"artist"`
	Genre       string    `json:"genre"`
	Price       float64   `json:"price"`
	CoverURL    *string   `json:"cover_url"`
	AudioURL    *string   `json:"audio_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductionInput, create/update isteklerinde multipart form'dan okunan
// metin alanları. Dosya part'ları (cover, audio) handler'da ayrı işlenir.
type ProductionInput struct {
	Title       string
	Description string
	Artist      string
	Genre       string
	Price       float64
}

// Validate, ProductionInput'un geçerli olup olmadığını kontrol eder.
func (p *ProductionInput) Validate() error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(p.Title) > 200 {
		return fmt.Errorf("title must be at most 200 characters")
	}

	p.Artist = strings.TrimSpace(p.Artist)
	if p.Artist == "" {
		return fmt.Errorf("artist is required")
	}

	p.Genre = strings.TrimSpace(p.Genre)
	p.Description = strings.TrimSpace(p.Description)

	if p.Price < 0 {
		return fmt.Errorf("price cannot be negative")
	}

	return nil
}

// Fiyat aralığı bucket'ları — katalog listesinde price query parametresi.
const (
	PriceRangeLow  = "0-20"
	PriceRangeMid  = "20-50"
	PriceRangeHigh = "50+"
)

// Tarih aralığı bucket'ları — date query parametresi, "son X" filtreleri.
const (
	DateRangeWeek  = "week"
	DateRangeMonth = "month"
	DateRangeYear  = "year"
)

// ProductionFilter, katalog listesi için filtre parametreleri.
// Tüm alanlar opsiyoneldir; boş string "filtre yok" demektir.
type ProductionFilter struct {
	Genre      string // Genre alanında case-insensitive substring
	Search     string // title/description/artist/genre üzerinde case-insensitive substring
	PriceRange string // "0-20" | "20-50" | "50+"
	DateRange  string // "week" | "month" | "year"
	Page       int    // 1 tabanlı sayfa numarası
}

// Normalize, filtre değerlerini temizler ve doğrular.
// Geçersiz bucket değeri hata döner — sessizce yoksaymak yerine 400,
// çünkü yazım hatalı bir filtre "tüm katalog" dönerse kullanıcı fark etmez.
func (f *ProductionFilter) Normalize() error {
	f.Genre = strings.TrimSpace(f.Genre)
	f.Search = strings.TrimSpace(f.Search)
	f.PriceRange = strings.TrimSpace(f.PriceRange)
	f.DateRange = strings.TrimSpace(f.DateRange)

	switch f.PriceRange {
	case "", PriceRangeLow, PriceRangeMid, PriceRangeHigh:
	default:
		return fmt.Errorf("invalid price range: %s", f.PriceRange)
	}

	switch f.DateRange {
	case "", DateRangeWeek, DateRangeMonth, DateRangeYear:
	default:
		return fmt.Errorf("invalid date range: %s", f.DateRange)
	}

	if f.Page < 1 {
		f.Page = 1
	}

	return nil
}

// CacheKey, filtre kombinasyonunu cache anahtarına çevirir.
// Aynı parametreler → aynı key → cache hit.
func (f *ProductionFilter) CacheKey() string {
	return fmt.Sprintf("list|g=%s|s=%s|p=%s|d=%s|page=%d",
		strings.ToLower(f.Genre), strings.ToLower(f.Search), f.PriceRange, f.DateRange, f.Page)
}

// ProductionPage, sayfalanmış katalog sonucu.
type ProductionPage struct {
	Productions []Production `json:"productions"`
	Total       int          `json:"total"`
	Page        int          `json:"page"`
	PageSize    int          `json:"page_size"`
}
