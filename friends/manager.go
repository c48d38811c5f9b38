// Package friends — roster (arkadaşlar + bekleyen istekler) state yönetimi.
//
// Tasarım: her mutasyon (istek gönder, kabul, reddet, sil) tek bir remote
// çağrıdır; başarıda incremental merge YAPILMAZ, roster komple yeniden
// fetch edilir. Mutasyonun başarısı ile refetch'in tamamlanması arasında
// UI kısa süre stale veri gösterir — kabul edilmiş bir sadeleştirmedir.
//
// Hata politikası: network hatası olduğu gibi döner, retry yapılmaz;
// UI generic bir bildirim gösterir.
package friends

import (
	"context"
	"sync"

	"github.com/neighbus/neighbus/models"
	"github.com/neighbus/neighbus/pkg/logger"
)

// API, Manager'ın ihtiyaç duyduğu backend çağrıları.
// api.Client bu interface'i karşılar; testlerde fake ile değiştirilir.
type API interface {
	ListFriends(ctx context.Context) (*models.Roster, error)
	SendFriendRequest(ctx context.Context, req *models.SendFriendRequestRequest) error
	AcceptFriendRequest(ctx context.Context, requestID string) error
	RefuseFriendRequest(ctx context.Context, requestID string) error
	DeleteFriend(ctx context.Context, friendshipID string) error
}

// Observer, roster her yenilendiğinde çağrılan callback (UI refresh).
// nil verilebilir.
type Observer func(roster models.Roster)

// Manager, roster state'ini tutar.
type Manager struct {
	mu       sync.RWMutex
	roster   models.Roster
	api      API
	obsMu    sync.RWMutex
	observer Observer
}

// NewManager, constructor.
func NewManager(api API, observer Observer) *Manager {
	return &Manager{api: api, observer: observer}
}

// SetObserver, observer'ı sonradan bağlar.
// UI, Manager'dan sonra oluşturulduğu için wire-up sırası bunu gerektiriyor.
func (m *Manager) SetObserver(obs Observer) {
	m.obsMu.Lock()
	m.observer = obs
	m.obsMu.Unlock()
}

// Roster, son bilinen roster'ın kopyasını döner.
// Slice'lar kopyalanır, çağıran Manager'ın iç state'ini mutate edemez.
func (m *Manager) Roster() models.Roster {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return models.Roster{
		Friends:  append([]models.FriendEntry(nil), m.roster.Friends...),
		Incoming: append([]models.FriendRequestEntry(nil), m.roster.Incoming...),
		Outgoing: append([]models.FriendRequestEntry(nil), m.roster.Outgoing...),
	}
}

// Refresh, roster'ı backend'den komple yeniden yükler.
func (m *Manager) Refresh(ctx context.Context) error {
	roster, err := m.api.ListFriends(ctx)
	if err != nil {
		logger.L.Warnf("[friends] refresh failed: %v", err)
		return err
	}

	m.mu.Lock()
	m.roster = *roster
	m.mu.Unlock()

	m.obsMu.RLock()
	obs := m.observer
	m.obsMu.RUnlock()
	if obs != nil {
		obs(m.Roster())
	}

	logger.L.Debugf("[friends] roster refreshed: %d friends, %d incoming, %d outgoing",
		len(roster.Friends), len(roster.Incoming), len(roster.Outgoing))
	return nil
}

// SendRequest, username'e arkadaşlık isteği gönderir ve roster'ı yeniler.
// Boş hedef api katmanında yerel olarak reddedilir (ErrValidation) —
// o durumda refetch de yapılmaz.
func (m *Manager) SendRequest(ctx context.Context, username string) error {
	req := models.SendFriendRequestRequest{Username: username}
	if err := m.api.SendFriendRequest(ctx, &req); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

// AcceptRequest, gelen isteği kabul eder ve roster'ı yeniler.
func (m *Manager) AcceptRequest(ctx context.Context, requestID string) error {
	if err := m.api.AcceptFriendRequest(ctx, requestID); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

// RejectRequest, gelen isteği reddeder ve roster'ı yeniler.
func (m *Manager) RejectRequest(ctx context.Context, requestID string) error {
	if err := m.api.RefuseFriendRequest(ctx, requestID); err != nil {
		return err
	}
	return m.Refresh(ctx)
}

// RemoveFriend, arkadaşlığı siler ve roster'ı yeniler.
func (m *Manager) RemoveFriend(ctx context.Context, friendshipID string) error {
	if err := m.api.DeleteFriend(ctx, friendshipID); err != nil {
		return err
	}
	return m.Refresh(ctx)
}
