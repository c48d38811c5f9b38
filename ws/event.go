// Package ws, NEIGHBUS mesaj broker'ına giden gerçek zamanlı bağlantıyı yönetir.
//
// Mimari:
// - Frame: broker ile iletilen mesaj formatı (bu dosya)
// - Conn: tek bir odaya bağlı bağlantının yaşam döngüsü state machine'i (conn.go)
// - ChatSession: mesaj listesi + gelen/giden mesaj eşlemesi (session.go)
//
// Protokol akışı:
//  1. WebSocket dial — bearer token Authorization header'ında
//  2. Client "connect" frame'i gönderir
//  3. Broker "connect_ack" ile yanıtlar → bağlantı kuruldu
//  4. Client odanın topic'ine "subscribe" frame'i gönderir
//  5. Mesajlar: client sabit send destination'a "publish" eder,
//     broker topic'e gelenleri "message" frame'i olarak iletir
//  6. Protokol hatasında broker "error" frame'i gönderir → bağlantı Failed
package ws

import (
	"encoding/json"
	"time"
)

// Frame, broker ile iletilen tek bir mesajı temsil eder.
//
// Op (operation): frame türü — "publish", "message" vb.
// Data: frame'e özgü payload. json.RawMessage olarak tutulur,
// concrete tip op'a göre çözülür.
type Frame struct {
	Op   string          `json:"op"`
	Data json.RawMessage `json:"d,omitempty"`
}

// Client → Broker operasyonları
const (
	OpConnect   = "connect"   // Handshake başlangıcı
	OpSubscribe = "subscribe" // Oda topic aboneliği
	OpPublish   = "publish"   // Mesaj gönderimi
)

// Broker → Client operasyonları
const (
	OpConnectAck = "connect_ack" // Handshake onayı — bağlantı kullanılabilir
	OpMessage    = "message"     // Abone olunan topic'e yeni mesaj geldi
	OpError      = "error"       // Protokol seviyesi hata — bağlantı Failed'e geçer
)

// SendDestination, tüm publish'lerin gittiği sabit hedef.
// Oda ayrımı payload'daki roomId ile yapılır — hedef değişmez.
const SendDestination = "/app/chat.send"

// RoomTopic, odanın mesaj topic'ini döner.
func RoomTopic(roomID string) string {
	return "/topic/room." + roomID
}

// ConnectPayload, handshake frame'inin payload'ı.
// Token dial sırasında header'da gider; buradaki alanlar tanıtım amaçlıdır.
type ConnectPayload struct {
	UserID string `json:"userId"`
}

// SubscribePayload, topic aboneliği payload'ı.
type SubscribePayload struct {
	Topic string `json:"topic"`
}

// PublishPayload, giden mesaj zarfı.
// Backend kontratı: {roomId, sender, message, messageType, recipientUsername}.
// MessageID client'ta üretilir — broker echo'sunu optimistic append'den
// ayırt etmek (dedup) için kullanılır.
type PublishPayload struct {
	Destination       string `json:"destination"`
	MessageID         string `json:"messageId"`
	RoomID            string `json:"roomId"`
	Sender            string `json:"sender"`
	SenderName        string `json:"senderName"`
	Message           string `json:"message"`
	MessageType       string `json:"messageType"`
	RecipientUsername string `json:"recipientUsername"`
}

// MessagePayload, gelen mesaj frame'inin payload'ı.
//
// Timestamp broker'dan gelmeyebilir (*time.Time, nil olabilir) —
// o durumda client alınış zamanını kullanır. Offline gönderilip sonradan
// iletilen mesajlarda bu "alınış zamanı yalanı" bilinen bir kısıttır.
type MessagePayload struct {
	MessageID  string     `json:"messageId"`
	RoomID     string     `json:"roomId"`
	Sender     string     `json:"sender"` // Gönderen kullanıcı kimliği — isOwn bununla türetilir
	SenderName string     `json:"senderName"`
	Message    string     `json:"message"`
	Timestamp  *time.Time `json:"timestamp"`
}

// ErrorPayload, broker'ın error frame'i.
type ErrorPayload struct {
	Message string `json:"message"`
}
