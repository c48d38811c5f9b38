// Package ws — ChatSession: aktif odanın mesaj listesi ve gönderim yüzeyi.
//
// Aynı anda en fazla BİR aktif ChatSession vardır (tek aktif oda).
// Ekran kapanırken Close() çağrılır — yeni oda açmak önce eskisini kapatır.
//
// Mesaj listesi append-only'dir ve varış/gönderim sırasına göre dizilir.
// IsOwn her zaman frame'deki gönderen kimliği ile oturumdaki kullanıcı
// kimliğinin karşılaştırılmasıyla türetilir — kendi mesajımızın broker
// echo'su ancak böyle güvenilir ayırt edilir.
package ws

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/neighbus/neighbus/database"
	"github.com/neighbus/neighbus/models"
	"github.com/neighbus/neighbus/pkg/logger"
)

// historyPreload, oda açılışında cache'ten yüklenen maksimum mesaj sayısı.
const historyPreload = 100

// ChatSession, tek bir açık sohbet odasını temsil eder.
type ChatSession struct {
	roomID    string
	recipient string // Karşı tarafın username'i — giden zarfa yazılır

	user    models.Session
	conn    *Conn
	history database.HistoryStore

	mu       sync.RWMutex
	messages []models.ChatMessage

	// onAppend: listeye her mesaj eklendiğinde çağrılır (UI scroll-to-end).
	onAppend func(models.ChatMessage)
}

// NewChatSession, constructor. Bağlantı Open çağrılana kadar kurulmaz.
//
// user: aktif oturum — IsOwn türetimi ve giden zarf bunun kimliğini kullanır.
// history: nil olabilir (testlerde) — o zaman mesajlar sadece bellekte tutulur.
// onState/onAppend: UI callback'leri, nil olabilir.
func NewChatSession(
	roomID, recipient string,
	user models.Session,
	history database.HistoryStore,
	onAppend func(models.ChatMessage),
	onState func(State),
) *ChatSession {
	s := &ChatSession{
		roomID:    roomID,
		recipient: recipient,
		user:      user,
		history:   history,
		onAppend:  onAppend,
	}
	s.conn = NewConn(roomID, s.handleInbound, onState)
	return s
}

// Open, varsa cache'lenmiş geçmişi yükler ve broker bağlantısını kurar.
// Bağlantı hatası error olarak döner; geçmiş yükleme hatası sadece loglanır —
// cache görsel süreklilik içindir, bağlantıyı engellemez.
func (s *ChatSession) Open(ctx context.Context, brokerURL string) error {
	if s.history != nil {
		cached, err := s.history.Recent(ctx, s.roomID, historyPreload)
		if err != nil {
			logger.L.Warnf("[chat] room %s history preload failed: %v", s.roomID, err)
		} else {
			s.mu.Lock()
			for _, m := range cached {
				// IsOwn cache'te saklanmaz — her yüklemede oturuma göre türetilir.
				m.IsOwn = m.SenderID == s.user.UserID
				s.messages = append(s.messages, m)
			}
			s.mu.Unlock()
		}
	}

	return s.conn.Open(ctx, brokerURL, s.user.AuthToken, s.user.UserID)
}

// State, bağlantı durumunu döner.
func (s *ChatSession) State() State {
	return s.conn.State()
}

// RoomID, odanın kimliğini döner.
func (s *ChatSession) RoomID() string {
	return s.roomID
}

// Messages, mesaj listesinin kopyasını döner.
func (s *ChatSession) Messages() []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ChatMessage(nil), s.messages...)
}

// Send, mesaj gönderir.
//
// Precondition: bağlantı Connected ve body trim sonrası boş değil —
// aksi halde çağrı SESSİZ no-op'tur (hata değil): frame gitmez, liste değişmez.
// "Boşluğa gönderme" engellenir; henüz hazır olmayan bağlantıya yapılan
// gönderimin kullanıcıya görünmemesi bu sözleşmenin bilinen ters yüzüdür.
//
// Gönderilen mesaj transport onayı beklenmeden listeye eklenir (optimistic);
// yazılan metnin input'tan temizlenmesi de UI'da aynı anda, onaysız yapılır.
func (s *ChatSession) Send(body string) {
	body = strings.TrimSpace(body)
	if body == "" || s.conn.State() != StateConnected {
		return
	}

	msg := models.ChatMessage{
		ID:         uuid.New().String(),
		RoomID:     s.roomID,
		SenderID:   s.user.UserID,
		SenderName: s.user.Nickname,
		Body:       body,
		SentAt:     time.Now(),
		IsOwn:      true,
	}

	err := s.conn.Publish(PublishPayload{
		MessageID:         msg.ID,
		RoomID:            s.roomID,
		Sender:            s.user.UserID,
		SenderName:        s.user.Nickname,
		Message:           body,
		MessageType:       "TALK",
		RecipientUsername: s.recipient,
	})
	if err != nil {
		// Send sözleşmesi sessizdir — hata kullanıcıya yansıtılmaz, loglanır.
		logger.L.Warnf("[chat] room %s publish failed: %v", s.roomID, err)
		return
	}

	s.append(msg)
}

// Close, bağlantıyı koşulsuz bırakır. Her çıkış yolundan çağrılabilir, idempotent.
func (s *ChatSession) Close() {
	s.conn.Close()
}

// handleInbound, broker'dan gelen mesaj frame'ini display modeline çevirir.
func (s *ChatSession) handleInbound(payload MessagePayload) {
	// Kendi publish'imizin echo'su — optimistic append zaten yaptı, yinelenmesin.
	if payload.MessageID != "" && s.contains(payload.MessageID) {
		return
	}

	// Timestamp fallback: broker zaman damgası göndermediyse alınış zamanı.
	sentAt := time.Now()
	if payload.Timestamp != nil {
		sentAt = *payload.Timestamp
	}

	id := payload.MessageID
	if id == "" {
		id = uuid.New().String()
	}

	msg := models.ChatMessage{
		ID:         id,
		RoomID:     s.roomID,
		SenderID:   payload.Sender,
		SenderName: payload.SenderName,
		Body:       payload.Message,
		SentAt:     sentAt,
		// IsOwn, gönderen kimliği ile oturum kimliğinin karşılaştırmasından gelir —
		// bağlantıya özel bir flag'den DEĞİL. Bağlantı durumundan bağımsızdır.
		IsOwn: payload.Sender == s.user.UserID,
	}

	s.append(msg)
}

// append, mesajı listeye (varış sırasıyla) ekler, cache'e yazar ve UI'ı bilgilendirir.
func (s *ChatSession) append(msg models.ChatMessage) {
	s.mu.Lock()
	s.messages = append(s.messages, msg)
	s.mu.Unlock()

	if s.history != nil {
		if err := s.history.Append(context.Background(), msg); err != nil {
			logger.L.Warnf("[chat] room %s history append failed: %v", s.roomID, err)
		}
	}

	if s.onAppend != nil {
		s.onAppend(msg)
	}
}

// contains, verilen ID'li mesajın listede olup olmadığını döner.
func (s *ChatSession) contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].ID == id {
			return true
		}
	}
	return false
}
