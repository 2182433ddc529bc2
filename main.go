// Package main, prodstore backend uygulamasının giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Database'i başlat (embedded migration'lar ile)
//  3. Repository'leri oluştur (DB bağlantısı ile)
//  4. Rate limiter'ları oluştur
//  5. Service'leri oluştur (repository'ler + config ile)
//  6. Token sweeper'ı başlat
//  7. Handler'ları oluştur (service'ler ile)
//  8. HTTP router'ı kur, route'ları bağla
//  9. CORS yapılandır
//  10. HTTP Server'ı başlat
//  11. Graceful shutdown
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/selimakt/prodstore/config"
	"github.com/selimakt/prodstore/database"
	"github.com/selimakt/prodstore/services"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] prodstore server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d)", cfg.Server.Port)

	// ─── 2. Database ───
	// Migration'lar binary'ye gömülüdür (embed.FS) — deploy edilen tek
	// dosya binary'nin kendisidir, yanında migration dizini taşınmaz.
	db, err := database.New(cfg.Database.Path, database.Migrations())
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 3. Repository Layer ───
	repos := initRepositories(db.Conn)

	// ─── 4. Rate Limiters ───
	limiters := initRateLimiters(cfg)
	defer limiters.Global.Close()
	defer limiters.Login.Close()

	// ─── 5. Service Layer ───
	svcs, err := initServices(db.Conn, repos, cfg)
	if err != nil {
		log.Fatalf("[main] failed to initialize services: %v", err)
	}
	defer svcs.CatalogCache.Close()

	// ─── 6. Token Sweeper ───
	// Süresi dolmuş revocation kayıtlarını saatte bir temizler.
	sweeper := services.NewTokenSweeper(repos.RevokedToken, time.Hour)
	sweeper.Start()
	defer sweeper.Stop()

	// ─── 7. Handler Layer ───
	h := initHandlers(svcs, limiters, db.Conn)

	// ─── 8. HTTP Router ───
	mux := http.NewServeMux()
	initRoutes(mux, h, svcs.Auth, repos.User, cfg)

	// ─── 9. CORS + Global Rate Limit ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	// Rate limiter en dış katman — limit aşan istek CORS/route işlemeye
	// bile girmez
	handler := limiters.Global.Middleware(corsHandler.Handler(mux))

	// ─── 10. HTTP Server ───
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second, // ses dosyası upload'ları için geniş
		IdleTimeout:  60 * time.Second,
	}

	// ─── 11. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("[main] forced shutdown: %v", err)
	}

	log.Println("[main] server stopped gracefully")
}
