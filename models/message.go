// Package models — ChatMessage: sohbet ekranında gösterilen mesaj modeli.
package models

import "time"

// ChatMessage, mesaj listesindeki tek bir satırı temsil eder.
//
// Liste append-only'dir ve varış/gönderim sırasına göre dizilir —
// sequence number veya yeniden sıralama yoktur; transport sırayı bozarsa
// liste de bozuk sırayı yansıtır (kabul edilmiş kısıt).
//
// IsOwn, frame'deki gönderen kimliği ile oturumdaki kullanıcı kimliği
// karşılaştırılarak türetilir — bağlantıya özel bir flag ile DEĞİL.
// Kendi mesajımızın broker'dan echo'lanması ancak bu şekilde güvenilir ayırt edilir.
type ChatMessage struct {
	ID         string    `json:"id"`
	RoomID     string    `json:"room_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Body       string    `json:"body"`
	SentAt     time.Time `json:"sent_at"`
	IsOwn      bool      `json:"is_own"`
}

// ClockLabel, mesajın saat:dakika etiketini döner.
// Server timestamp'i yoksa SentAt zaten yerel alınış zamanıdır —
// offline gönderilip sonradan iletilen mesajlarda bu etiket alınış
// zamanını gösterir (bilinen, belgelenmiş bir yanılgı).
func (m ChatMessage) ClockLabel() string {
	return m.SentAt.Format("15:04")
}
