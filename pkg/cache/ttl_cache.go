// Package cache — Generic in-memory TTL cache.
//
// TTLCache, belirli bir süre sonra süresi dolan kayıtları tutan
// thread-safe, generic bir cache yapısıdır.
//
// Bu projede katalog okuma yolunu hızlandırır: production listesi ve
// detayı DB yerine cache'ten servis edilir; herhangi bir katalog yazması
// (create/update/delete) cache'i topluca boşaltır (Clear). Cache global
// bir modül değişkeni DEĞİLDİR — sahibi olan service'e constructor ile
// enjekte edilir, invalidation sorumluluğu da onda kalır.
//
// TTL (Time To Live): her entry bir son kullanma zamanı taşır. Zaman
// geçtikten sonra entry okunamaz — cache miss olur. Fiziksel silme
// periyodik cleanup goroutine'inde yapılır; bu sayede Get hızlı kalır
// (RLock yeterli) ve map sınırsız büyümez.
//
// Thread safety: sync.RWMutex — birden fazla goroutine aynı anda
// okuyabilir, yazma sırasında tüm erişim bloklanır.
package cache

import (
	"sync"
	"time"
)

// entry, cache'teki tek bir kayıttır.
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache, generic in-memory TTL cache.
//
//	c := cache.New[string, int](5*time.Minute, time.Minute)
//	c.Set("key", 42)
//	val, ok := c.Get("key")
type TTLCache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]entry[V]
	ttl     time.Duration

	// stopCleanup: periyodik temizleme goroutine'ini durdurmak için.
	// Close() çağrıldığında bu channel kapatılır.
	stopCleanup chan struct{}
}

// New, yeni bir TTLCache oluşturur ve periyodik temizleme goroutine'ini
// başlatır. cleanupInterval, ttl'den küçük tutulmalıdır — aksi halde
// map gereksiz büyür.
func New[K comparable, V any](ttl, cleanupInterval time.Duration) *TTLCache[K, V] {
	c := &TTLCache[K, V]{
		entries:     make(map[K]entry[V]),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.evictExpired()
			case <-c.stopCleanup:
				return
			}
		}
	}()

	return c
}

// Get, cache'ten bir değer okur.
// (value, true) → key var ve süresi dolmamış; (zero, false) → miss.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set, cache'e bir değer yazar (TTL ile).
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Delete, belirli bir key'i cache'ten siler.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear, tüm cache'i boşaltır.
// Katalog yazmalarında wholesale invalidation için kullanılır —
// hangi filtre kombinasyonlarının etkilendiğini hesaplamak yerine
// hepsi atılır; katalog küçük, yeniden doldurmak ucuz.
func (c *TTLCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]entry[V])
}

// Len, cache'teki toplam entry sayısını döner (süresi dolmuşlar dahil).
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Close, periyodik temizleme goroutine'ini durdurur.
// Cache artık kullanılmayacaksa çağrılmalıdır (goroutine leak önleme).
func (c *TTLCache[K, V]) Close() {
	close(c.stopCleanup)
}

// evictExpired, süresi dolan entry'leri map'ten fiziksel olarak siler.
func (c *TTLCache[K, V]) evictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
