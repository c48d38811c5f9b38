// Package database — HistoryStore: oda bazlı chat mesaj cache'i.
//
// Broker geçmiş mesaj sunmaz; oda yeniden açıldığında boş ekran yerine
// son görülen mesajları göstermek için inbound/outbound mesajlar yerel
// store'a da yazılır. Cache authoritative değildir — sadece görsel süreklilik.
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/neighbus/neighbus/models"
)

// HistoryStore, chat mesaj cache'ine erişim interface'i.
type HistoryStore interface {
	// Append, bir mesajı cache'e ekler. Aynı ID tekrar gelirse sessizce atlanır
	// (kendi mesajımızın broker echo'su ikinci kez kaydedilmesin).
	Append(ctx context.Context, msg models.ChatMessage) error

	// Recent, odanın son limit mesajını gönderim sırasıyla (eski → yeni) döner.
	Recent(ctx context.Context, roomID string, limit int) ([]models.ChatMessage, error)

	// Clear, tüm cache'i boşaltır (logout'ta çağrılır — oturumlar arası sızıntı olmasın).
	Clear(ctx context.Context) error
}

// sqliteHistoryStore, HistoryStore'un SQLite implementasyonu.
type sqliteHistoryStore struct {
	db *sql.DB
}

// NewHistoryStore, constructor — interface döner.
func NewHistoryStore(db *DB) HistoryStore {
	return &sqliteHistoryStore{db: db.Conn}
}

// Append, mesajı cache'e yazar.
// INSERT OR IGNORE: PRIMARY KEY çakışmasında (echo duplicate) hata yerine no-op.
func (s *sqliteHistoryStore) Append(ctx context.Context, msg models.ChatMessage) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO chat_history (id, room_id, sender_id, sender_name, body, sent_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.RoomID, msg.SenderID, msg.SenderName, msg.Body, msg.SentAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("history append: %w", err)
	}
	return nil
}

// Recent, odanın son mesajlarını döner.
//
// Sorgu DESC + LIMIT ile son N mesajı alır, sonra slice ters çevrilir —
// böylece dönen dizi ekrana direkt basılabilecek eski→yeni sıradadır.
func (s *sqliteHistoryStore) Recent(ctx context.Context, roomID string, limit int) ([]models.ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, room_id, sender_id, sender_name, body, sent_at
		FROM chat_history
		WHERE room_id = ?
		ORDER BY sent_at DESC
		LIMIT ?`,
		roomID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history recent: %w", err)
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.SenderName, &m.Body, &m.SentAt); err != nil {
			return nil, fmt.Errorf("history scan: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history rows: %w", err)
	}

	// DESC geldi — eski→yeni olacak şekilde ters çevir
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// Clear, tüm chat cache'ini siler.
func (s *sqliteHistoryStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM chat_history"); err != nil {
		return fmt.Errorf("history clear: %w", err)
	}
	return nil
}
