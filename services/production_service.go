package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/selimakt/prodstore/database"
	"github.com/selimakt/prodstore/models"
	"github.com/selimakt/prodstore/pkg"
	"github.com/selimakt/prodstore/pkg/cache"
	"github.com/selimakt/prodstore/repository"
)

// pageSize, katalog sayfası başına production sayısı.
// Sayfalama politikası service'e aittir — repository sadece limit/offset alır.
const pageSize = 12

// UploadedFile, handler'ın multipart form'dan çıkarıp service'e taşıdığı
// dosya çifti. Her iki alan da nil olabilir (dosya gönderilmemiş).
type UploadedFile struct {
	File   multipart.File
	Header *multipart.FileHeader
}

// ProductionService, katalog iş mantığı.
type ProductionService interface {
	// List, filtreli katalog sayfası döner. Okuma yolu TTL cache
	// üzerinden gider — aynı filtre kombinasyonu cache süresi boyunca
	// DB'ye inmez.
	List(ctx context.Context, filter *models.ProductionFilter) (*models.ProductionPage, error)
	Get(ctx context.Context, id string) (*models.Production, error)
	Create(ctx context.Context, input *models.ProductionInput, cover, audio *UploadedFile) (*models.Production, error)
	// Update, metadata ve/veya dosyaları günceller. Dosya değişiminde
	// satır mutasyonu transaction içinde yapılır; eski dosya ancak
	// COMMIT başarılı olursa diskten silinir. Tx başarısız olursa yeni
	// yazılan dosyalar temizlenir — disk ile DB tutarlı kalır.
	Update(ctx context.Context, id string, input *models.ProductionInput, cover, audio *UploadedFile) (*models.Production, error)
	// Delete, kaydı siler; dosyalar commit sonrası best-effort silinir.
	// Dosyası olmayan bir kaydı silmek hata değildir.
	Delete(ctx context.Context, id string) error
}

type productionService struct {
	db            *sql.DB
	prodRepo      repository.ProductionRepository
	uploadService UploadService

	// cache, okuma yolunu hızlandırır. Herhangi bir yazma (create/
	// update/delete) cache'i topluca boşaltır — invalidation sorumluluğu
	// bu service'tedir, cache'i kimseyle paylaşmaz.
	cache *cache.TTLCache[string, any]
}

// NewProductionService, constructor.
// db, transaction açmak için ham bağlantıdır; normal okuma/yazmalar
// prodRepo üzerinden gider.
func NewProductionService(
	db *sql.DB,
	prodRepo repository.ProductionRepository,
	uploadService UploadService,
	c *cache.TTLCache[string, any],
) ProductionService {
	return &productionService{
		db:            db,
		prodRepo:      prodRepo,
		uploadService: uploadService,
		cache:         c,
	}
}

func (s *productionService) List(ctx context.Context, filter *models.ProductionFilter) (*models.ProductionPage, error) {
	if err := filter.Normalize(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	key := filter.CacheKey()
	if cached, ok := s.cache.Get(key); ok {
		if page, ok := cached.(*models.ProductionPage); ok {
			return page, nil
		}
	}

	page, err := s.prodRepo.List(ctx, filter, pageSize)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, page)
	return page, nil
}

func (s *productionService) Get(ctx context.Context, id string) (*models.Production, error) {
	key := "id|" + id
	if cached, ok := s.cache.Get(key); ok {
		if p, ok := cached.(*models.Production); ok {
			return p, nil
		}
	}

	p, err := s.prodRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, p)
	return p, nil
}

func (s *productionService) Create(ctx context.Context, input *models.ProductionInput, cover, audio *UploadedFile) (*models.Production, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	p := &models.Production{
		Title:       input.Title,
		Description: input.Description,
		Artist:      input.Artist,
		Genre:       input.Genre,
		Price:       input.Price,
	}

	// Dosyalar önce diske yazılır; DB insert başarısız olursa geri silinir.
	savedFiles, err := s.saveFiles(cover, audio, p)
	if err != nil {
		return nil, err
	}

	if err := s.prodRepo.Create(ctx, p); err != nil {
		s.removeFiles(savedFiles)
		return nil, err
	}

	s.cache.Clear()
	return p, nil
}

func (s *productionService) Update(ctx context.Context, id string, input *models.ProductionInput, cover, audio *UploadedFile) (*models.Production, error) {
	if err := input.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", pkg.ErrBadRequest, err.Error())
	}

	existing, err := s.prodRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := &models.Production{
		ID:          existing.ID,
		Title:       input.Title,
		Description: input.Description,
		Artist:      input.Artist,
		Genre:       input.Genre,
		Price:       input.Price,
		CoverURL:    existing.CoverURL,
		AudioURL:    existing.AudioURL,
	}

	// Yeni dosyalar önce diske — başarısızlıkta DB'ye hiç dokunulmamış olur
	savedFiles, err := s.saveFiles(cover, audio, updated)
	if err != nil {
		return nil, err
	}

	// Değişen dosyaların ESKİ kopyaları — commit sonrası silinecek
	var staleFiles []string
	if cover != nil && existing.CoverURL != nil {
		staleFiles = append(staleFiles, *existing.CoverURL)
	}
	if audio != nil && existing.AudioURL != nil {
		staleFiles = append(staleFiles, *existing.AudioURL)
	}

	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		txRepo := repository.NewSQLiteProductionRepo(tx)
		return txRepo.Update(ctx, updated)
	})
	if err != nil {
		// Rollback oldu — yeni dosyalar artık sahipsiz, temizle
		s.removeFiles(savedFiles)
		return nil, err
	}

	// COMMIT başarılı — eski dosyalar artık hiçbir satırdan referans
	// edilmiyor, güvenle silinebilir
	s.removeFiles(staleFiles)

	refreshed, err := s.prodRepo.GetByID(ctx, id)
	if err != nil {
		// Satır az önce yazıldı; okuma hatası updated_at'in eski
		// görünmesinden öte bir şey kaybettirmez
		log.Printf("[production] re-read after update failed for id=%s: %v", id, err)
		refreshed = updated
	}

	s.cache.Clear()
	return refreshed, nil
}

func (s *productionService) Delete(ctx context.Context, id string) error {
	existing, err := s.prodRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		txRepo := repository.NewSQLiteProductionRepo(tx)
		return txRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	// Satır gitti — dosyalar best-effort silinir. nil URL = dosya yok,
	// sessizce atlanır.
	if existing.CoverURL != nil {
		s.uploadService.Remove(*existing.CoverURL)
	}
	if existing.AudioURL != nil {
		s.uploadService.Remove(*existing.AudioURL)
	}

	s.cache.Clear()
	return nil
}

// ─── Private Helpers ───

// saveFiles, gönderilen dosyaları diske yazar ve p'nin URL alanlarını
// günceller. Dönen slice, hata durumunda temizlik için yazılan URL'leri
// içerir. Audio yazması başarısız olursa az önce yazılan cover da silinir.
func (s *productionService) saveFiles(cover, audio *UploadedFile, p *models.Production) ([]string, error) {
	var saved []string

	if cover != nil {
		url, err := s.uploadService.SaveCover(cover.File, cover.Header)
		if err != nil {
			return nil, err
		}
		saved = append(saved, url)
		p.CoverURL = &url
	}

	if audio != nil {
		url, err := s.uploadService.SaveAudio(audio.File, audio.Header)
		if err != nil {
			s.removeFiles(saved)
			return nil, err
		}
		saved = append(saved, url)
		p.AudioURL = &url
	}

	return saved, nil
}

func (s *productionService) removeFiles(urls []string) {
	for _, u := range urls {
		s.uploadService.Remove(u)
	}
}
