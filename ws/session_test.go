package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/neighbus/neighbus/models"
)

func testSession() models.Session {
	return models.Session{UserID: "42", Username: "tester", Nickname: "Tester"}
}

func TestSendNoopWhenNotConnected(t *testing.T) {
	s := NewChatSession("room-1", "friend", testSession(), nil, nil, nil)

	s.Send("hello")

	if got := len(s.Messages()); got != 0 {
		t.Fatalf("expected no messages while disconnected, got %d", got)
	}
}

func TestSendNoopOnBlankBody(t *testing.T) {
	published := make(chan Frame, 4)
	url := startBroker(t, func(c *websocket.Conn, _ *http.Request) {
		acceptHandshake(t, c, "room-1")
		for {
			_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
			var frame Frame
			if err := c.ReadJSON(&frame); err != nil {
				return
			}
			published <- frame
		}
	})

	s := NewChatSession("room-1", "friend", testSession(), nil, nil, nil)
	if err := s.Open(context.Background(), url); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer s.Close()

	s.Send("   \t ")

	select {
	case frame := <-published:
		t.Fatalf("blank body must not publish, broker got %q frame", frame.Op)
	case <-time.After(200 * time.Millisecond):
	}
	if got := len(s.Messages()); got != 0 {
		t.Fatalf("expected no messages after blank send, got %d", got)
	}
}

func TestHandleInboundOwnDerivation(t *testing.T) {
	s := NewChatSession("room-1", "friend", testSession(), nil, nil, nil)

	s.handleInbound(MessagePayload{MessageID: "m1", Sender: "42", SenderName: "Tester", Message: "mine"})
	s.handleInbound(MessagePayload{MessageID: "m2", Sender: "7", SenderName: "Other", Message: "theirs"})

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if !msgs[0].IsOwn {
		t.Fatalf("sender 42 must be own: %+v", msgs[0])
	}
	if msgs[1].IsOwn {
		t.Fatalf("sender 7 must not be own: %+v", msgs[1])
	}
}

func TestHandleInboundEchoDeduplicated(t *testing.T) {
	s := NewChatSession("room-1", "friend", testSession(), nil, nil, nil)

	s.append(models.ChatMessage{ID: "m1", RoomID: "room-1", SenderID: "42", Body: "hi", IsOwn: true})
	s.handleInbound(MessagePayload{MessageID: "m1", Sender: "42", Message: "hi"})

	if got := len(s.Messages()); got != 1 {
		t.Fatalf("echo must be deduplicated, got %d messages", got)
	}
}

func TestHandleInboundTimestampFallback(t *testing.T) {
	s := NewChatSession("room-1", "friend", testSession(), nil, nil, nil)

	sent := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	before := time.Now()
	s.handleInbound(MessagePayload{MessageID: "m1", Sender: "7", Message: "stamped", Timestamp: &sent})
	s.handleInbound(MessagePayload{MessageID: "m2", Sender: "7", Message: "unstamped"})
	after := time.Now()

	msgs := s.Messages()
	if !msgs[0].SentAt.Equal(sent) {
		t.Fatalf("broker timestamp must win: got %v", msgs[0].SentAt)
	}
	if msgs[1].SentAt.Before(before) || msgs[1].SentAt.After(after) {
		t.Fatalf("missing timestamp must fall back to receipt time: got %v", msgs[1].SentAt)
	}
}

// Uçtan uca akış: gönder, broker echo'lar, karşı taraftan mesaj gelir.
func TestChatSessionRoundTrip(t *testing.T) {
	appended := make(chan models.ChatMessage, 8)

	url := startBroker(t, func(c *websocket.Conn, _ *http.Request) {
		acceptHandshake(t, c, "room-1")

		// Client'ın publish'ini oku, aynı messageId ile echo'la
		frame := readTestFrame(t, c)
		if frame.Op != OpPublish {
			t.Errorf("expected publish frame, got %q", frame.Op)
			return
		}
		var pub PublishPayload
		if err := json.Unmarshal(frame.Data, &pub); err != nil {
			t.Errorf("malformed publish payload: %v", err)
			return
		}
		if pub.Destination != SendDestination {
			t.Errorf("expected destination %q, got %q", SendDestination, pub.Destination)
		}
		if pub.Sender != "42" || pub.Message != "hello" || pub.RecipientUsername != "friend" {
			t.Errorf("unexpected publish payload: %+v", pub)
		}

		writeTestFrame(t, c, OpMessage, MessagePayload{
			MessageID: pub.MessageID, RoomID: "room-1",
			Sender: "42", SenderName: "Tester", Message: pub.Message,
		})
		writeTestFrame(t, c, OpMessage, MessagePayload{
			MessageID: "peer-1", RoomID: "room-1",
			Sender: "7", SenderName: "Friend", Message: "hey back",
		})

		_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, _, _ = c.ReadMessage()
	})

	s := NewChatSession("room-1", "friend", testSession(), nil,
		func(m models.ChatMessage) { appended <- m }, nil)
	if err := s.Open(context.Background(), url); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer s.Close()

	s.Send("hello")

	// İlk append optimistic olan, ikincisi karşı tarafın mesajı —
	// echo üçüncü bir append üretmemeli
	first := waitMessage(t, appended)
	if !first.IsOwn || first.Body != "hello" {
		t.Fatalf("expected own optimistic message first, got %+v", first)
	}
	second := waitMessage(t, appended)
	if second.IsOwn || second.Body != "hey back" || second.SenderID != "7" {
		t.Fatalf("expected peer message second, got %+v", second)
	}

	select {
	case m := <-appended:
		t.Fatalf("unexpected extra append (echo leak?): %+v", m)
	case <-time.After(200 * time.Millisecond):
	}

	if got := len(s.Messages()); got != 2 {
		t.Fatalf("expected 2 messages, got %d", got)
	}
}

func waitMessage(t *testing.T, ch chan models.ChatMessage) models.ChatMessage {
	t.Helper()
	select {
	case m := <-ch:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message append")
		return models.ChatMessage{}
	}
}
