// Package ratelimit — IP bazlı sliding-window rate limiting.
//
// İki kullanım noktası var:
//  1. Global limiter: tüm API'yi saran middleware — IP başına sabit
//     istek bütçesi (ör. 60 saniyede 300 istek). Route handler'lardan
//     ÖNCE çalışır.
//  2. Login limiter: brute-force koruması — daha dar pencere, daha az
//     deneme; başarılı login Reset() ile sayacı temizler.
//
// Neden in-memory?
// - SQLite'a her istekte yazmak gereksiz I/O + contention yaratır.
// - Tek instance deploy'da Redis bağımlılığına gerek yok.
// - sync.Mutex ile thread-safe.
//
// Neden ayrı paket?
// Limiter hiçbir proje içi pakete bağımlı değildir (leaf dependency) —
// handlers ve main her ikisi de güvenle import edebilir.
package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"
)

// bucket, bir IP adresi için istek sayacı ve pencere başlangıcı tutar.
//
// Sliding window:
// - İlk istekte windowStart = now, count = 1.
// - Pencere süresi dolmamışsa count++; dolmuşsa pencere sıfırlanır.
type bucket struct {
	count       int
	windowStart time.Time
}

// Limiter, IP bazlı istek sınırlayıcı.
//
//	limiter := ratelimit.New(300, time.Minute)
//	if !limiter.Allow(ip) { // 429 dön }
type Limiter struct {
	mu          sync.Mutex
	buckets     map[string]*bucket
	maxRequests int
	window      time.Duration
	stopCleanup chan struct{}
}

// New, yeni bir Limiter oluşturur ve arka plan temizleme goroutine'ini
// başlatır. Temizleme her dakika çalışır ve penceresi geçmiş bucket'ları
// siler — uzun süre çalışan sunucuda bellek sızıntısını önler.
func New(maxRequests int, window time.Duration) *Limiter {
	rl := &Limiter{
		buckets:     make(map[string]*bucket),
		maxRequests: maxRequests,
		window:      window,
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Allow, verilen IP'nin isteğine izin verilip verilmediğini kontrol eder.
// Her çağrı sayacı artırır. false → caller 429 dönmeli.
func (rl *Limiter) Allow(ip string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[ip]
	if !exists {
		rl.buckets[ip] = &bucket{count: 1, windowStart: now}
		return true
	}

	if now.Sub(b.windowStart) > rl.window {
		// Yeni pencere — eski sayaç sıfırlanır
		b.count = 1
		b.windowStart = now
		return true
	}

	b.count++
	return b.count <= rl.maxRequests
}

// Reset, IP sayacını sıfırlar.
// Login limiter'da başarılı giriş sonrası çağrılır — meşru kullanıcı
// sonraki oturumlarında bloke olmaz.
func (rl *Limiter) Reset(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.buckets, ip)
}

// RetryAfterSeconds, limit aşıldığında kalan bekleme süresini saniye
// cinsinden döner. HTTP Retry-After header değeri olarak kullanılır.
func (rl *Limiter) RetryAfterSeconds(ip string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, exists := rl.buckets[ip]
	if !exists {
		return 0
	}

	remaining := rl.window - time.Since(b.windowStart)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1 // +1 yuvarlama — client tam süreyi beklesin
}

// Middleware, Limiter'ı tüm mux'u saran global bir katman olarak döner.
// Limit aşılırsa 429 + Retry-After ile keser, handler'a hiç inilmez.
func (rl *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := ExtractIP(r)
		if !rl.Allow(ip) {
			retryAfter := rl.RetryAfterSeconds(ip)
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			fmt.Fprintf(w, `{"success":false,"error":"too many requests, please try again in %s"}`,
				FormatRetryMessage(retryAfter))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// cleanupLoop, arka planda süresi dolmuş bucket'ları temizler.
func (rl *Limiter) cleanupLoop() {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

// Close, temizleme goroutine'ini durdurur.
func (rl *Limiter) Close() {
	close(rl.stopCleanup)
}

func (rl *Limiter) cleanup() {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, b := range rl.buckets {
		if now.Sub(b.windowStart) > rl.window {
			delete(rl.buckets, ip)
		}
	}
}

// ExtractIP, HTTP request'ten client IP adresini çıkarır.
//
// Öncelik: X-Forwarded-For (reverse proxy, ilk IP) → X-Real-IP →
// RemoteAddr. Production'da uygulama genellikle nginx/Caddy arkasındadır;
// RemoteAddr o durumda hep proxy'nin IP'sidir.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// "client, proxy1, proxy2" — ilk değer gerçek client
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// FormatRetryMessage, kalan süreyi okunabilir formata çevirir.
// Örn: 120 → "2 minute(s)", 45 → "45 second(s)"
func FormatRetryMessage(seconds int) string {
	if seconds >= 60 {
		return fmt.Sprintf("%d minute(s)", seconds/60)
	}
	return fmt.Sprintf("%d second(s)", seconds)
}
