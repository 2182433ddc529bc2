package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/selimakt/prodstore/pkg"
)

// UploadService, production dosyalarının (kapak görseli + ses dosyası)
// disk üzerinde saklanmasını yönetir.
//
// Dönen değer her zaman public URL path'idir ("/uploads/<dosya>") —
// DB'de bu path saklanır, static file handler aynı path'ten servis eder.
// Disk yolu bilgisi bu service'in dışına sızmaz.
type UploadService interface {
	// SaveCover, kapak görselini kaydeder. İzin verilen tipler: jpeg,
	// png, webp, gif. Boyut limiti config'ten gelir (varsayılan 5 MB).
	SaveCover(file multipart.File, header *multipart.FileHeader) (string, error)
	// SaveAudio, ses dosyasını kaydeder. İzin verilen tipler: mp3, wav,
	// ogg, flac, m4a. Boyut limiti config'ten gelir (varsayılan 50 MB).
	SaveAudio(file multipart.File, header *multipart.FileHeader) (string, error)
	// Remove, daha önce kaydedilmiş bir dosyayı URL path'i üzerinden
	// siler. Best-effort: dosya yoksa veya silinemezse log'lanır, hata
	// dönmez — row mutation commit edildikten SONRA çağrılır, bu noktada
	// geri alınacak bir şey kalmamıştır.
	Remove(fileURL string)
}

// İzin verilen MIME tipleri. Content-Type header'ı client beyanıdır ama
// yanlış beyan en kötü ihtimalle oynatılamayan bir dosya üretir — server
// dosyayı asla execute etmez.
var allowedCoverTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var allowedAudioTypes = map[string]bool{
	"audio/mpeg":  true,
	"audio/mp3":   true,
	"audio/wav":   true,
	"audio/x-wav": true,
	"audio/ogg":   true,
	"audio/flac":  true,
	"audio/mp4":   true,
	"audio/x-m4a": true,
}

type uploadService struct {
	uploadDir    string
	maxCoverSize int64
	maxAudioSize int64
}

// NewUploadService, constructor. Upload dizini yoksa oluşturur.
func NewUploadService(uploadDir string, maxCoverSize, maxAudioSize int64) (UploadService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &uploadService{
		uploadDir:    uploadDir,
		maxCoverSize: maxCoverSize,
		maxAudioSize: maxAudioSize,
	}, nil
}

func (s *uploadService) SaveCover(file multipart.File, header *multipart.FileHeader) (string, error) {
	return s.save(file, header, allowedCoverTypes, s.maxCoverSize, "cover")
}

func (s *uploadService) SaveAudio(file multipart.File, header *multipart.FileHeader) (string, error) {
	return s.save(file, header, allowedAudioTypes, s.maxAudioSize, "audio")
}

func (s *uploadService) Remove(fileURL string) {
	if fileURL == "" {
		return
	}

	// URL path'ten disk adına: "/uploads/abc123_track.mp3" → "abc123_track.mp3"
	// path.Base traversal denemelerini de etkisiz kılar ("../../etc" → "etc").
	name := path.Base(fileURL)
	if name == "." || name == "/" {
		return
	}

	fullPath := filepath.Join(s.uploadDir, name)
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		log.Printf("[upload] failed to remove %s: %v", name, err)
	}
}

// save, ortak kayıt akışı: tip kontrolü → boyut kontrolü → benzersiz
// isimle diske yazma.
func (s *uploadService) save(
	file multipart.File,
	header *multipart.FileHeader,
	allowedTypes map[string]bool,
	maxSize int64,
	kind string,
) (string, error) {
	contentType := header.Header.Get("Content-Type")
	if !allowedTypes[contentType] {
		return "", fmt.Errorf("%w: unsupported %s file type: %s", pkg.ErrBadRequest, kind, contentType)
	}

	if header.Size > maxSize {
		return "", fmt.Errorf("%w: %s file too large (max %d MB)", pkg.ErrBadRequest, kind, maxSize/(1024*1024))
	}

	// Benzersiz isim: rastgele hex prefix + sanitize edilmiş orijinal ad.
	// Aynı isimli iki upload birbirini ezemez.
	prefix := make([]byte, 8)
	if _, err := rand.Read(prefix); err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}
	diskName := hex.EncodeToString(prefix) + "_" + sanitizeFilename(header.Filename)

	fullPath := filepath.Join(s.uploadDir, diskName)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s file: %w", kind, err)
	}
	defer dst.Close()

	// MaxBytesReader yok burada — boyut header'dan kontrol edildi ama
	// header client beyanı olduğundan kopyayı da limitle kes.
	written, err := io.Copy(dst, io.LimitReader(file, maxSize+1))
	if err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write %s file: %w", kind, err)
	}
	if written > maxSize {
		os.Remove(fullPath)
		return "", fmt.Errorf("%w: %s file too large (max %d MB)", pkg.ErrBadRequest, kind, maxSize/(1024*1024))
	}

	return "/uploads/" + diskName, nil
}

// sanitizeFilename, dosya adını path separator'lardan ve tuhaf
// karakterlerden arındırır. Uzantı korunur.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := b.String()
	if out == "" || out == "." || out == ".." {
		return "file"
	}
	// Aşırı uzun isimler dosya sistemini zorlamasın
	if len(out) > 120 {
		out = out[len(out)-120:]
	}
	return out
}
