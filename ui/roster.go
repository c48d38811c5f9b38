package ui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/neighbus/neighbus/models"
	"github.com/neighbus/neighbus/pkg/logger"
)

// showRoster ana ekranı kurar: solda arkadaş listesi, sağda bekleyen istekler
func (a *App) showRoster(ctx context.Context) {
	loc := a.deps.Loc

	a.rosterList = tview.NewList()
	styleList(a.rosterList, " "+loc.T("friends.title")+" ")

	a.requestList = tview.NewList()
	styleList(a.requestList, " "+loc.T("friends.requests")+" ")

	bar := statusBar(" Enter:Chat | n:Add | d:Remove | Tab:Requests | b:Boards | c:Clubs | F5:Refresh | q:Quit ")

	a.rosterList.SetSelectedFunc(func(index int, _ string, _ string, _ rune) {
		a.mu.Lock()
		friendsSnap := a.roster.Friends
		a.mu.Unlock()
		if index >= 0 && index < len(friendsSnap) {
			a.openChat(ctx, friendsSnap[index])
		}
	})

	layout := tview.NewFlex().
		AddItem(a.rosterList, 0, 2, true).
		AddItem(a.requestList, 0, 1, false)
	full := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(layout, 0, 1, true).
		AddItem(bar, 1, 0, false)
	full.SetBackgroundColor(ColorBg)

	full.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyTab:
			if a.app.GetFocus() == a.rosterList {
				a.app.SetFocus(a.requestList)
				bar.SetText(" a:Accept | r:Reject | Tab:Friends | F5:Refresh | q:Quit ")
			} else {
				a.app.SetFocus(a.rosterList)
				bar.SetText(" Enter:Chat | n:Add | d:Remove | Tab:Requests | b:Boards | c:Clubs | F5:Refresh | q:Quit ")
			}
			return nil
		case tcell.KeyF5:
			a.refreshRoster(ctx)
			return nil
		}
		switch event.Rune() {
		case 'q':
			a.quit(ctx)
			return nil
		case 'n':
			a.showAddFriend(ctx)
			return nil
		case 'd':
			a.removeSelectedFriend(ctx)
			return nil
		case 'a':
			a.answerSelectedRequest(ctx, true)
			return nil
		case 'r':
			a.answerSelectedRequest(ctx, false)
			return nil
		case 'b':
			a.showBoards(ctx)
			return nil
		case 'c':
			a.showClubs(ctx)
			return nil
		}
		return event
	})

	a.pages.AddPage(pageRoster, full, true, true)
	a.pages.SwitchToPage(pageRoster)
	a.app.SetFocus(a.rosterList)

	a.renderRoster(a.deps.Friends.Roster())
	a.refreshRoster(ctx)
}

// refreshRoster roster'ı arka planda backend'den yeniler.
// Sonuç observer üzerinden ekrana düşer.
func (a *App) refreshRoster(ctx context.Context) {
	go func() {
		if err := a.deps.Friends.Refresh(ctx); err != nil {
			logger.L.WithError(err).Warn("[ui] roster refresh failed")
		}
	}()
}

// renderRoster listeleri verilen snapshot ile yeniden doldurur.
// Sadece UI goroutine'inden çağrılmalı.
func (a *App) renderRoster(roster models.Roster) {
	a.mu.Lock()
	a.roster = roster
	a.mu.Unlock()

	if a.rosterList == nil {
		return
	}

	loc := a.deps.Loc

	a.rosterList.Clear()
	if len(roster.Friends) == 0 {
		a.rosterList.AddItem(loc.T("friends.empty"), "", 0, nil)
	}
	for _, f := range roster.Friends {
		name := f.Nickname
		if name == "" {
			name = f.Username
		}
		a.rosterList.AddItem(name, "@"+f.Username, 0, nil)
	}

	a.requestList.Clear()
	for _, r := range roster.Incoming {
		a.requestList.AddItem("← "+r.Username, loc.T("friends.incoming"), 0, nil)
	}
	for _, r := range roster.Outgoing {
		a.requestList.AddItem("→ "+r.Username, loc.T("friends.outgoing"), 0, nil)
	}
}

// showAddFriend kullanıcı adıyla istek gönderme diyaloğu
func (a *App) showAddFriend(ctx context.Context) {
	loc := a.deps.Loc

	form := tview.NewForm()
	styleForm(form, " "+loc.T("friends.sendRequest")+" ")

	status := tview.NewTextView()
	status.SetBackgroundColor(ColorBg)
	status.SetTextColor(ColorError)
	status.SetTextAlign(tview.AlignCenter)

	target := tview.NewInputField()
	target.SetLabel(loc.T("auth.username") + ": ")
	target.SetFieldWidth(30)
	form.AddFormItem(target)

	const dialog = "add-friend"
	closeDialog := func() {
		a.pages.RemovePage(dialog)
		a.app.SetFocus(a.rosterList)
	}

	form.AddButton(loc.T("friends.sendRequest"), func() {
		username := target.GetText()
		go func() {
			err := a.deps.Friends.SendRequest(ctx, username)
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					logger.L.WithError(err).Info("[ui] friend request failed")
					status.SetText(loc.T("common.error"))
					return
				}
				closeDialog()
			})
		}()
	})
	form.AddButton(loc.T("common.back"), closeDialog)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(status, 1, 0, false)
	layout.SetBackgroundColor(ColorBg)

	a.pages.AddPage(dialog, center(layout, 46, 10), true, true)
	a.app.SetFocus(form)
}

// removeSelectedFriend seçili arkadaşı siler ve roster'ı yeniler
func (a *App) removeSelectedFriend(ctx context.Context) {
	index := a.rosterList.GetCurrentItem()

	a.mu.Lock()
	friendsSnap := a.roster.Friends
	a.mu.Unlock()
	if index < 0 || index >= len(friendsSnap) {
		return
	}
	friend := friendsSnap[index]

	go func() {
		if err := a.deps.Friends.RemoveFriend(ctx, friend.ID); err != nil {
			logger.L.WithError(err).Warn("[ui] remove friend failed")
		}
	}()
}

// answerSelectedRequest gelen isteği kabul ya da reddeder.
// Liste önce incoming sonra outgoing sıralandığı için index incoming
// aralığındaysa işlem yapılır, outgoing satırları pasiftir.
func (a *App) answerSelectedRequest(ctx context.Context, accept bool) {
	index := a.requestList.GetCurrentItem()

	a.mu.Lock()
	incoming := a.roster.Incoming
	a.mu.Unlock()
	if index < 0 || index >= len(incoming) {
		return
	}
	req := incoming[index]

	go func() {
		var err error
		if accept {
			err = a.deps.Friends.AcceptRequest(ctx, req.ID)
		} else {
			err = a.deps.Friends.RejectRequest(ctx, req.ID)
		}
		if err != nil {
			logger.L.WithError(err).Warn(fmt.Sprintf("[ui] request answer failed (accept=%v)", accept))
		}
	}()
}
