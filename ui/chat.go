package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/neighbus/neighbus/models"
	"github.com/neighbus/neighbus/pkg/logger"
	"github.com/neighbus/neighbus/ws"
)

// openChat seçilen arkadaşla sohbet ekranını açar ve broker bağlantısını kurar
func (a *App) openChat(ctx context.Context, friend models.FriendEntry) {
	sess, err := a.deps.Sessions.Require()
	if err != nil {
		logger.L.WithError(err).Warn("[ui] chat without session")
		return
	}

	loc := a.deps.Loc

	name := friend.Nickname
	if name == "" {
		name = friend.Username
	}

	chatView := tview.NewTextView()
	chatView.SetBorder(true)
	chatView.SetBorderColor(ColorBorder)
	chatView.SetBackgroundColor(ColorBg)
	chatView.SetTitle(fmt.Sprintf(" %s — %s ", name, loc.T("chat.connecting")))
	chatView.SetTitleColor(ColorTitle)
	chatView.SetTextColor(ColorFg)
	chatView.SetDynamicColors(true)
	chatView.SetScrollable(true)
	chatView.ScrollToEnd()

	input := tview.NewInputField()
	input.SetLabel("> ")
	input.SetPlaceholder(loc.T("chat.inputPlaceholder"))
	input.SetFieldWidth(0)
	input.SetBackgroundColor(ColorBg)
	input.SetFieldBackgroundColor(ColorField)
	input.SetFieldTextColor(ColorFg)
	input.SetLabelColor(ColorHighlight)
	input.SetBorder(true)
	input.SetBorderColor(ColorBorder)

	bar := statusBar(" " + loc.T("chat.sendHint") + " ")

	// onAppend mesaj okuma goroutine'inden gelir, çizim UI thread'ine taşınır
	onAppend := func(msg models.ChatMessage) {
		a.app.QueueUpdateDraw(func() {
			fmt.Fprint(chatView, formatMessage(msg))
			chatView.ScrollToEnd()
		})
	}
	onState := func(state ws.State) {
		a.app.QueueUpdateDraw(func() {
			chatView.SetTitle(fmt.Sprintf(" %s — %s ", name, a.stateLabel(state)))
		})
	}

	chat := ws.NewChatSession(friend.RoomID, friend.Username, sess, a.deps.History, onAppend, onState)

	a.mu.Lock()
	a.chat = chat
	a.mu.Unlock()

	input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		// Input iyimser temizlenir; Send bağlı değilken sessiz no-op
		text := input.GetText()
		input.SetText("")
		chat.Send(text)
	})

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(chatView, 0, 1, false).
		AddItem(input, 3, 0, true).
		AddItem(bar, 1, 0, false)
	layout.SetBackgroundColor(ColorBg)

	layout.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			a.leaveChat()
			return nil
		}
		return event
	})

	a.pages.AddPage(pageChat, layout, true, true)
	a.pages.SwitchToPage(pageChat)
	a.app.SetFocus(input)

	go func() {
		if err := chat.Open(ctx, a.deps.Config.Broker.URL); err != nil {
			logger.L.WithError(err).Warnf("[ui] chat open failed for room %s", friend.RoomID)
		}
		// Önyüklenen geçmiş Open dönünce hazır; tek seferde basılır
		a.app.QueueUpdateDraw(func() {
			chatView.Clear()
			var b strings.Builder
			for _, msg := range chat.Messages() {
				b.WriteString(formatMessage(msg))
			}
			fmt.Fprint(chatView, b.String())
			chatView.ScrollToEnd()
		})
	}()
}

// leaveChat aktif sohbeti kapatıp ana ekrana döner
func (a *App) leaveChat() {
	a.closeChat()
	a.pages.RemovePage(pageChat)
	a.pages.SwitchToPage(pageRoster)
	a.app.SetFocus(a.rosterList)
}

// stateLabel bağlantı durumunu kullanıcı diline çevirir
func (a *App) stateLabel(state ws.State) string {
	loc := a.deps.Loc
	switch state {
	case ws.StateConnecting:
		return loc.T("chat.connecting")
	case ws.StateConnected:
		return loc.T("chat.connected")
	case ws.StateFailed:
		return loc.T("chat.failed")
	default:
		return loc.T("chat.disconnected")
	}
}

// formatMessage tek mesajı renkli satıra çevirir
func formatMessage(msg models.ChatMessage) string {
	color := "[#00ffff]"
	if msg.IsOwn {
		color = "[#ffd666]"
	}
	return fmt.Sprintf("%s[%s] %s:[-] %s\n",
		color, msg.ClockLabel(), tview.Escape(msg.SenderName), tview.Escape(msg.Body))
}
