package services

import (
	"context"
	"log"
	"time"

	"github.com/selimakt/prodstore/repository"
)

// TokenSweeper, süresi dolmuş revocation kayıtlarını periyodik olarak
// temizleyen arka plan görevi.
//
// Revocation kaydının expires_at'i token'ın kendi exp claim'idir —
// o an geçtikten sonra token imza kontrolünden zaten geçemez, kayıt
// hiçbir şeyi korumaz. Sweep saf housekeeping'dir: başarısız olursa
// log'lanır, asla yukarıya taşınmaz; bir sonraki tick tekrar dener.
type TokenSweeper struct {
	revokedRepo repository.RevokedTokenRepository
	interval    time.Duration
	stop        chan struct{}
}

// NewTokenSweeper, constructor. interval tipik olarak 1 saattir.
func NewTokenSweeper(revokedRepo repository.RevokedTokenRepository, interval time.Duration) *TokenSweeper {
	return &TokenSweeper{
		revokedRepo: revokedRepo,
		interval:    interval,
		stop:        make(chan struct{}),
	}
}

// Start, sweep goroutine'ini başlatır.
// İlk sweep hemen çalışır — sunucu uzun süre kapalı kaldıysa birikmiş
// kayıtlar başlangıçta temizlenir, bir saat beklenmez.
func (t *TokenSweeper) Start() {
	go func() {
		t.sweep()

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				t.sweep()
			case <-t.stop:
				return
			}
		}
	}()
}

// Stop, sweep goroutine'ini durdurur. Graceful shutdown'da çağrılır.
func (t *TokenSweeper) Stop() {
	close(t.stop)
}

// sweep, tek bir temizlik turu çalıştırır.
func (t *TokenSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := t.revokedRepo.DeleteExpired(ctx)
	if err != nil {
		log.Printf("[sweeper] failed to delete expired revocations: %v", err)
		return
	}

	if deleted > 0 {
		log.Printf("[sweeper] removed %d expired revocation record(s)", deleted)
	}
}
