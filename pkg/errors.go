// Package pkg, projede paylaşılan utility'leri barındırır.
// Bu dosya client tarafı domain error tanımlarını içerir.
//
// Go'da error'lar basit değerlerdir (string taşıyan struct'lar).
// errors.New() ile sabit error değişkenleri tanımlarız.
// Böylece error karşılaştırması string yerine referans ile yapılır:
//
//	if errors.Is(err, pkg.ErrUnauthenticated) { ... }
//
// Bu, typo'ya açık string karşılaştırmasından çok daha güvenlidir.
package pkg

import "errors"

// Client tarafı hata taksonomisi.
// api katmanı HTTP status code'larını bu error'lara map'ler,
// UI katmanı errors.Is ile yakalayıp kullanıcıya uygun mesajı gösterir.
var (
	// ErrUnauthenticated: Oturum yokken oturum gerektiren bir işlem denendi.
	// Network çağrısı yapılmadan ÖNCE döner — kullanıcıya login prompt'u gösterilir.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound: Backend 404 döndü.
	ErrNotFound = errors.New("not found")

	// ErrForbidden: Backend 403 döndü.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation: Zorunlu alan boş — network çağrısı yapılmadan reddedilir.
	ErrValidation = errors.New("validation failed")

	// ErrTransport: İstek gönderilemedi, non-2xx yanıt geldi veya
	// bağlantı handshake'i başarısız oldu.
	// Reaction tarafında optimistic rollback bu error'la tetiklenir.
	ErrTransport = errors.New("transport failure")

	// ErrMalformed: Yanıt body'si parse edilemedi — partial state commit edilmez.
	ErrMalformed = errors.New("malformed response")

	// ErrRateLimited: Yerel deneme limiti aşıldı (login brute-force koruması).
	ErrRateLimited = errors.New("rate limited")
)
