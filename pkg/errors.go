// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir. errors.New() ile sabit error
// değişkenleri tanımlarız; böylece karşılaştırma string içeriği yerine
// errors.Is ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Controller'ın error mesajında substring araması yapması kırılgandır —
// mesaj metni değişince status code eşlemesi sessizce bozulur.
// Sentinel error'lar bu eşlemeyi tek bir yerde, tip güvenli hale getirir.
package pkg

import "errors"

// Domain-level error'lar.
// Service katmanı bunları %w ile sarıp döner, handler pkg.Error ile
// HTTP status code'una çevirir.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)
