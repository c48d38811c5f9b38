// Package ws — Conn: tek bir odaya bağlı broker bağlantısının yaşam döngüsü.
//
// Explicit state machine (render'lar arası paylaşılan mutable bağlantı
// objesi yerine):
//
//	Disconnected ──Open()──▶ Connecting ──connect_ack──▶ Connected
//	     ▲                        │                          │
//	     │                        │ error frame / dial hatası│ error frame
//	     │                        ▼                          ▼
//	     └────Close()──────────Failed◀───────────────────────┘
//
// Close() HER çıkış yolunda güvenlidir ve idempotent'tir: aboneliği ve
// socket'i koşulsuz bırakır, state'i Disconnected yapar.
// Failed terminal'dir — otomatik retry YOKTUR; kullanıcı odayı kapatıp
// yeniden açarak yeni bir Conn oluşturur.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/neighbus/neighbus/pkg/logger"
)

// Bağlantı sabitleri
const (
	// writeWait: bir frame'i yazmak için maksimum bekleme süresi.
	// Aşılırsa yazma hata verir — yazma mutex'ini sonsuza dek kilitlememek için.
	writeWait = 10 * time.Second
)

// State, bağlantının yaşam döngüsü durumunu temsil eder.
type State int32

const (
	StateDisconnected State = iota // Başlangıç — aktif oda yok
	StateConnecting                // Oda seçildi, handshake başlatıldı
	StateConnected                 // Handshake tamam, topic aboneliği aktif
	StateFailed                    // Handshake veya protokol hatası — terminal, retry yok
)

// String, log ve UI etiketleri için okunabilir durum adı döner.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Conn, tek bir broker bağlantısını temsil eder.
//
// gorilla/websocket aynı anda tek okuma ve tek yazma destekler:
// okuma tek goroutine'de (readLoop), yazmalar writeMu ile serialize edilir.
type Conn struct {
	roomID string

	mu    sync.RWMutex // state + ws alanlarını korur
	state State
	ws    *websocket.Conn

	writeMu   sync.Mutex // ws yazmalarını serialize eder
	closeOnce sync.Once

	// onMessage: abone olunan topic'ten gelen her mesaj frame'inde çağrılır.
	// onState: her durum geçişinde çağrılır (UI status etiketi).
	onMessage func(MessagePayload)
	onState   func(State)
}

// NewConn, constructor. Open çağrılana kadar bağlantı Disconnected'tır.
// Callback'ler nil olabilir.
func NewConn(roomID string, onMessage func(MessagePayload), onState func(State)) *Conn {
	return &Conn{
		roomID:    roomID,
		state:     StateDisconnected,
		onMessage: onMessage,
		onState:   onState,
	}
}

// State, mevcut bağlantı durumunu döner.
func (c *Conn) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Open, broker'a bağlanır ve odanın topic'ine abone olur.
//
// Adımlar: dial (bearer token header'da) → connect frame → connect_ack
// bekle → subscribe frame → Connected. Herhangi bir adım başarısız olursa
// state Failed olur ve error döner — Conn artık kullanılamaz, yeni oda
// açılışı yeni bir Conn oluşturur.
func (c *Conn) Open(ctx context.Context, brokerURL, token, userID string) error {
	c.setState(StateConnecting)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	wsConn, _, err := websocket.DefaultDialer.DialContext(ctx, brokerURL, header)
	if err != nil {
		c.setState(StateFailed)
		return fmt.Errorf("broker dial: %w", err)
	}

	c.mu.Lock()
	c.ws = wsConn
	c.mu.Unlock()

	// Handshake: connect gönder, connect_ack bekle.
	if err := c.writeFrame(OpConnect, ConnectPayload{UserID: userID}); err != nil {
		c.teardown()
		c.setState(StateFailed)
		return fmt.Errorf("connect frame: %w", err)
	}

	if err := c.awaitConnectAck(); err != nil {
		c.teardown()
		c.setState(StateFailed)
		return err
	}

	// Abonelik: odanın topic'i.
	if err := c.writeFrame(OpSubscribe, SubscribePayload{Topic: RoomTopic(c.roomID)}); err != nil {
		c.teardown()
		c.setState(StateFailed)
		return fmt.Errorf("subscribe frame: %w", err)
	}

	c.setState(StateConnected)
	logger.L.Infof("[ws] connected to room %s", c.roomID)

	go c.readLoop()
	return nil
}

// awaitConnectAck, handshake yanıtını bekler.
// connect_ack → nil, error frame → hata, başka op'lar atlanır.
func (c *Conn) awaitConnectAck() error {
	for {
		frame, err := c.readFrame()
		if err != nil {
			return fmt.Errorf("handshake read: %w", err)
		}

		switch frame.Op {
		case OpConnectAck:
			return nil
		case OpError:
			return fmt.Errorf("handshake rejected: %s", decodeErrorPayload(frame.Data))
		default:
			// Handshake tamamlanmadan gelen diğer frame'ler yok sayılır
			logger.L.Debugf("[ws] ignoring %q frame during handshake", frame.Op)
		}
	}
}

// Publish, giden mesaj zarfını sabit send destination'a yazar.
// Acknowledgment beklenmez — bir sonraki Send için yanıt şartı yoktur.
// Precondition kontrolü (Connected + boş olmayan body) çağıranın
// sorumluluğudur (ChatSession.Send).
func (c *Conn) Publish(payload PublishPayload) error {
	payload.Destination = SendDestination
	return c.writeFrame(OpPublish, payload)
}

// Close, aboneliği ve bağlantıyı koşulsuz bırakır.
// Her çıkış yolundan (geri navigasyon, ekran kapanışı, hata sonrası temizlik)
// çağrılabilir; idempotent'tir.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		c.teardown()
		c.setState(StateDisconnected)
		logger.L.Infof("[ws] room %s closed", c.roomID)
	})
}

// readLoop, broker'dan gelen frame'leri işler. Bağlantı kapanana kadar
// kendi goroutine'inde döner.
func (c *Conn) readLoop() {
	for {
		frame, err := c.readFrame()
		if err != nil {
			// Close() bizim tarafımızdan çağrıldıysa state zaten Disconnected —
			// onu Failed ile ezme. Aksi halde transport koptu demektir.
			if c.State() == StateConnected {
				logger.L.Warnf("[ws] room %s read error: %v", c.roomID, err)
				c.teardown()
				c.setState(StateFailed)
			}
			return
		}

		switch frame.Op {
		case OpMessage:
			var payload MessagePayload
			if err := json.Unmarshal(frame.Data, &payload); err != nil {
				logger.L.Warnf("[ws] room %s malformed message frame: %v", c.roomID, err)
				continue
			}
			if c.onMessage != nil {
				c.onMessage(payload)
			}
		case OpError:
			// Protokol seviyesi hata: logla, Failed'e geç, retry YOK.
			logger.L.Errorf("[ws] room %s protocol error: %s", c.roomID, decodeErrorPayload(frame.Data))
			c.teardown()
			c.setState(StateFailed)
			return
		default:
			logger.L.Debugf("[ws] room %s ignoring %q frame", c.roomID, frame.Op)
		}
	}
}

// ─── Alt seviye yardımcılar ───

// writeFrame, tek bir frame'i serialize edip yazar. Yazmalar writeMu ile
// serialize edilir; her yazmaya writeWait deadline'ı uygulanır.
func (c *Conn) writeFrame(op string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", op, err)
	}

	c.mu.RLock()
	wsConn := c.ws
	c.mu.RUnlock()
	if wsConn == nil {
		return fmt.Errorf("connection not open")
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := wsConn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}
	if err := wsConn.WriteJSON(Frame{Op: op, Data: data}); err != nil {
		return fmt.Errorf("write %s frame: %w", op, err)
	}
	return nil
}

// readFrame, tek bir frame okur ve parse eder.
func (c *Conn) readFrame() (*Frame, error) {
	c.mu.RLock()
	wsConn := c.ws
	c.mu.RUnlock()
	if wsConn == nil {
		return nil, fmt.Errorf("connection not open")
	}

	_, raw, err := wsConn.ReadMessage()
	if err != nil {
		return nil, err
	}

	var frame Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}
	return &frame, nil
}

// teardown, socket'i kapatır. State'e DOKUNMAZ — geçiş kararı çağırana aittir
// (Close → Disconnected, hata yolları → Failed).
func (c *Conn) teardown() {
	c.mu.Lock()
	wsConn := c.ws
	c.ws = nil
	c.mu.Unlock()

	if wsConn != nil {
		// Karşı tarafa nazik kapanış bildir — başarısız olsa da socket kapanacak.
		_ = wsConn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		_ = wsConn.Close()
	}
}

// setState, durumu günceller ve onState callback'ini tetikler.
func (c *Conn) setState(next State) {
	c.mu.Lock()
	if c.state == next {
		c.mu.Unlock()
		return
	}
	c.state = next
	cb := c.onState
	c.mu.Unlock()

	logger.L.Debugf("[ws] room %s state → %s", c.roomID, next)
	if cb != nil {
		cb(next)
	}
}

// decodeErrorPayload, error frame'inin mesajını çıkarır.
func decodeErrorPayload(data json.RawMessage) string {
	var payload ErrorPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.Message == "" {
		return string(data)
	}
	return payload.Message
}
