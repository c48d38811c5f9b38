// Package ratelimit — AttemptLimiter: ardışık başarısız login denemelerine
// karşı yerel (client tarafı) sliding-window limiti.
//
// Backend'in kendi brute-force koruması var; buradaki limiter kullanıcıyı
// backend'e gereksiz istek yağdırmaktan alıkoyan bir UI affordance'ıdır.
//
// Tasarım:
// - Her key (username) için sliding window ile deneme sayısı takip edilir.
// - Window süresi içinde maxAttempts aşılırsa deneme yerel olarak reddedilir.
// - Başarılı login sonrası Reset() ile sayaç sıfırlanır.
// - Background goroutine ile süresi dolmuş bucket'lar temizlenir (memory leak engeli).
//
// pkg/ratelimit hiçbir proje içi pakete bağımlı değildir (leaf dependency).
package ratelimit

import (
	"sync"
	"time"
)

// bucket, bir key için deneme sayacı ve window başlangıç zamanı tutar.
//
// Sliding window algoritması:
// - İlk deneme geldiğinde windowStart = now, count = 1.
// - Sonraki denemeler: windowStart + window süresi geçmemişse count++.
// - Süre geçmişse window sıfırlanır (yeni pencere başlar).
type bucket struct {
	count       int
	windowStart time.Time
}

// AttemptLimiter, key bazlı deneme limiti.
//
// Kullanım:
//
//	limiter := ratelimit.NewAttemptLimiter(5, 2*time.Minute)
//	if !limiter.Allow(username) { /* yerel reject */ }
//	// Başarılı login'de:
//	limiter.Reset(username)
type AttemptLimiter struct {
	mu          sync.RWMutex
	buckets     map[string]*bucket
	maxAttempts int
	window      time.Duration
	stopCleanup chan struct{}
}

// NewAttemptLimiter, yeni limiter oluşturur ve arka plan temizleme
// goroutine'ini başlatır.
func NewAttemptLimiter(maxAttempts int, window time.Duration) *AttemptLimiter {
	l := &AttemptLimiter{
		buckets:     make(map[string]*bucket),
		maxAttempts: maxAttempts,
		window:      window,
		stopCleanup: make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(window)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				l.evictExpired()
			case <-l.stopCleanup:
				return
			}
		}
	}()

	return l
}

// Allow, key için yeni bir denemeye izin verilip verilmediğini döner
// ve izin veriliyorsa sayacı artırır.
func (l *AttemptLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[key]
	if !ok || now.Sub(b.windowStart) > l.window {
		l.buckets[key] = &bucket{count: 1, windowStart: now}
		return true
	}

	if b.count >= l.maxAttempts {
		return false
	}
	b.count++
	return true
}

// Reset, key'in sayacını sıfırlar (başarılı login sonrası).
func (l *AttemptLimiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.buckets, key)
}

// Close, arka plan temizleme goroutine'ini durdurur.
func (l *AttemptLimiter) Close() {
	close(l.stopCleanup)
}

// evictExpired, window'u geçmiş bucket'ları siler.
func (l *AttemptLimiter) evictExpired() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for key, b := range l.buckets {
		if now.Sub(b.windowStart) > l.window {
			delete(l.buckets, key)
		}
	}
}
