package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/selimakt/prodstore/models"
	"github.com/selimakt/prodstore/pkg"
	"github.com/selimakt/prodstore/services"
)

// maxMultipartMemory, multipart form parse ederken bellekte tutulacak
// üst sınır — kalanı geçici dosyaya taşar. Ses dosyaları büyük olduğu
// için agresif bir değer seçilmez.
const maxMultipartMemory = 10 << 20 // 10 MB

// ProductionHandler, katalog endpoint'lerini yöneten struct.
type ProductionHandler struct {
	productionService services.ProductionService
}

// NewProductionHandler, constructor.
func NewProductionHandler(productionService services.ProductionService) *ProductionHandler {
	return &ProductionHandler{productionService: productionService}
}

// List godoc
// GET /api/productions?search=&genre=&price=&date=&page=
// Public endpoint — auth gerektirmez.
func (h *ProductionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if p := q.Get("page"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid page number")
			return
		}
		page = parsed
	}

	filter := &models.ProductionFilter{
		Search:     q.Get("search"),
		Genre:      q.Get("genre"),
		PriceRange: q.Get("price"),
		DateRange:  q.Get("date"),
		Page:       page,
	}

	result, err := h.productionService.List(r.Context(), filter)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, result)
}

// Get godoc
// GET /api/productions/{id}
// Public endpoint.
func (h *ProductionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	production, err := h.productionService.Get(r.Context(), id)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, production)
}

// Create godoc
// POST /api/productions
// Admin only. multipart/form-data:
//
//	title, description, artist, genre, price — metin alanları
//	cover — görsel dosyası (opsiyonel)
//	audio — ses dosyası (opsiyonel)
func (h *ProductionHandler) Create(w http.ResponseWriter, r *http.Request) {
	input, cover, audio, err := parseProductionForm(r)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	defer closeUploads(cover, audio)

	production, err := h.productionService.Create(r.Context(), input, cover, audio)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, production)
}

// Update godoc
// PUT /api/productions/{id}
// Admin only. Create ile aynı form yapısı — dosya part'ı gönderilmezse
// mevcut dosya korunur.
func (h *ProductionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	input, cover, audio, err := parseProductionForm(r)
	if err != nil {
		pkg.Error(w, err)
		return
	}
	defer closeUploads(cover, audio)

	production, err := h.productionService.Update(r.Context(), id, input, cover, audio)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, production)
}

// Delete godoc
// DELETE /api/productions/{id}
// Admin only.
func (h *ProductionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.productionService.Delete(r.Context(), id); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "production deleted"})
}

// ─── Private Helpers ───

// parseProductionForm, multipart form'dan metin alanlarını ve dosya
// part'larını çıkarır. Dosya part'ları opsiyoneldir — yoksa nil döner.
func parseProductionForm(r *http.Request) (*models.ProductionInput, *services.UploadedFile, *services.UploadedFile, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: invalid multipart form", pkg.ErrBadRequest)
	}

	input := &models.ProductionInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Artist:      r.FormValue("artist"),
		Genre:       r.FormValue("genre"),
	}

	if priceStr := strings.TrimSpace(r.FormValue("price")); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("%w: invalid price value", pkg.ErrBadRequest)
		}
		input.Price = price
	}

	cover, err := formFile(r, "cover")
	if err != nil {
		return nil, nil, nil, err
	}

	audio, err := formFile(r, "audio")
	if err != nil {
		if cover != nil {
			cover.File.Close()
		}
		return nil, nil, nil, err
	}

	return input, cover, audio, nil
}

// formFile, opsiyonel bir dosya part'ını açar. Part yoksa (nil, nil).
func formFile(r *http.Request, field string) (*services.UploadedFile, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s file", pkg.ErrBadRequest, field)
	}
	return &services.UploadedFile{File: file, Header: header}, nil
}

func closeUploads(files ...*services.UploadedFile) {
	for _, f := range files {
		if f != nil {
			f.File.Close()
		}
	}
}
