// Package reaction — Synchronizer: optimistic update + rollback efekt katmanı.
//
// Akış (her toggle için):
//  1. Oturum kontrolü — yoksa ErrUnauthenticated, hiçbir state değişmez
//  2. Önceki state'in snapshot'ı alınır
//  3. ApplyToggle ile yeni state hesaplanır ve network'ten ÖNCE uygulanır
//  4. SelectVerb'ün seçtiği tek remote çağrı yapılır (insert/update/delete)
//  5. Başarı → server'ın authoritative sayıları yerel state'in üzerine yazılır
//  6. Hata → state snapshot'a bit-for-bit geri döner, recoverable error döner
//
// Eşzamanlılık: aynı içerik için üst üste toggle'lar kuyruklanmaz —
// "last response wins" kabul edilmiş bir sınırlamadır. UI zaten istek
// uçuştayken butonu devre dışı bırakır; burada explicit lock modellenmez.
package reaction

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/neighbus/neighbus/models"
	"github.com/neighbus/neighbus/pkg"
	"github.com/neighbus/neighbus/pkg/cache"
	"github.com/neighbus/neighbus/pkg/logger"
)

// State cache ayarları: detay ekranı kapandıktan sonra state'in en fazla
// ne kadar hatırlanacağı. Ekran Forget çağırırsa anında düşer.
const (
	stateTTL        = 10 * time.Minute
	cleanupInterval = time.Minute
)

// API, Synchronizer'ın ihtiyaç duyduğu backend çağrıları.
// api.Client bu interface'i karşılar; testlerde fake ile değiştirilir.
type API interface {
	InsertReaction(ctx context.Context, contentID string, kind models.ReactionKind) (*models.ReactionState, error)
	UpdateReaction(ctx context.Context, contentID string, kind models.ReactionKind) (*models.ReactionState, error)
	DeleteReaction(ctx context.Context, contentID string) (*models.ReactionState, error)
}

// SessionSource, toggle precondition'ı için oturum kontrolü sağlar.
// session.Manager bu interface'i karşılar.
type SessionSource interface {
	Require() (models.Session, error)
}

// Observer, state her değiştiğinde (optimistic apply, commit, rollback)
// çağrılan callback. UI bu callback ile ekranı yeniler.
// nil verilebilir — o zaman sadece cache güncellenir.
type Observer func(contentID string, state models.ReactionState)

// Synchronizer, içerik bazlı ReactionState'leri yönetir.
type Synchronizer struct {
	api      API
	sessions SessionSource
	states   *cache.TTLCache[string, models.ReactionState]

	obsMu    sync.RWMutex
	observer Observer
}

// NewSynchronizer, constructor.
func NewSynchronizer(api API, sessions SessionSource, observer Observer) *Synchronizer {
	return &Synchronizer{
		api:      api,
		sessions: sessions,
		states:   cache.New[string, models.ReactionState](stateTTL, cleanupInterval),
		observer: observer,
	}
}

// SetObserver, observer'ı sonradan bağlar.
// UI, Synchronizer'dan sonra oluşturulur — main.go wire-up sırası gereği.
func (s *Synchronizer) SetObserver(obs Observer) {
	s.obsMu.Lock()
	s.observer = obs
	s.obsMu.Unlock()
}

// Seed, detay ekranı yüklendiğinde backend'den gelen başlangıç state'ini kaydeder.
func (s *Synchronizer) Seed(contentID string, state models.ReactionState) {
	s.states.Set(contentID, state)
}

// State, içeriğin bilinen state'ini döner.
func (s *Synchronizer) State(contentID string) (models.ReactionState, bool) {
	return s.states.Get(contentID)
}

// Forget, detay ekranı kapanınca içeriğin state'ini düşürür.
// State persist edilmez — ekran yeniden açılınca backend'den taze yüklenir.
func (s *Synchronizer) Forget(contentID string) {
	s.states.Delete(contentID)
}

// Close, cache'in arka plan temizleme goroutine'ini durdurur.
func (s *Synchronizer) Close() {
	s.states.Close()
}

// Toggle, kullanıcının like/dislike butonuna basmasını işler.
//
// Garanti: UI hiçbir zaman kullanıcının istemediği bir state göstermez;
// hata durumunda state toggle öncesi değerlere AYNEN döner — sayaç kayması olmaz.
func (s *Synchronizer) Toggle(ctx context.Context, contentID string, kind models.ReactionKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: invalid reaction kind %q", pkg.ErrValidation, kind)
	}

	// Precondition: oturum şart — yoksa network'e çıkmadan reddet.
	if _, err := s.sessions.Require(); err != nil {
		return err
	}

	// 1. Snapshot — rollback bu değere bit-for-bit döner.
	snapshot, ok := s.states.Get(contentID)
	if !ok {
		// Seed edilmemiş içerik: sıfır state'ten başla (ilk oy senaryosu).
		snapshot = models.ReactionState{}
	}

	// 2-3. Yeni state'i hesapla ve network'ten ÖNCE uygula (optimistic).
	optimistic := ApplyToggle(snapshot, kind)
	s.publish(contentID, optimistic)

	// 4. Verb'ü AYNI durum analiziyle seç ve tek remote çağrı yap.
	verb := SelectVerb(snapshot.UserReaction, kind)

	var (
		authoritative *models.ReactionState
		err           error
	)
	switch verb {
	case VerbDelete:
		authoritative, err = s.api.DeleteReaction(ctx, contentID)
	case VerbUpdate:
		authoritative, err = s.api.UpdateReaction(ctx, contentID, kind)
	case VerbInsert:
		authoritative, err = s.api.InsertReaction(ctx, contentID, kind)
	}

	// 6. Hata → snapshot'a geri dön.
	if err != nil {
		logger.L.Warnf("[reaction] %s %s failed, rolling back: %v", verb, contentID, err)
		s.publish(contentID, snapshot)
		return err
	}

	// 5. Başarı → server wins: authoritative değerler yerel state'i ezer.
	s.publish(contentID, *authoritative)
	logger.L.Debugf("[reaction] %s %s committed (likes=%d dislikes=%d)",
		verb, contentID, authoritative.LikeCount, authoritative.DislikeCount)

	return nil
}

// publish, cache'i günceller ve observer'ı bilgilendirir.
func (s *Synchronizer) publish(contentID string, state models.ReactionState) {
	s.states.Set(contentID, state)

	s.obsMu.RLock()
	obs := s.observer
	s.obsMu.RUnlock()
	if obs != nil {
		obs(contentID, state)
	}
}
