package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/neighbus/neighbus/models"
	"github.com/neighbus/neighbus/pkg/logger"
)

// showClubs kulüp listesini açar
func (a *App) showClubs(ctx context.Context) {
	loc := a.deps.Loc

	list := tview.NewList()
	styleList(list, " "+loc.T("club.title")+" ")

	bar := statusBar(" Enter:Meetings | j:Join | l:Leave | F5:Refresh | Esc:Back ")

	var clubs []models.Club

	render := func(items []models.Club) {
		clubs = items
		list.Clear()
		for _, c := range items {
			mark := "  "
			if c.IsMember {
				mark = "● "
			}
			secondary := loc.TWithParams("club.members", map[string]string{
				"count": fmt.Sprintf("%d", c.MemberCount),
			})
			list.AddItem(mark+tview.Escape(c.Name), secondary+" · "+tview.Escape(c.Description), 0, nil)
		}
	}

	load := func() {
		go func() {
			items, err := a.deps.API.ListClubs(ctx)
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					logger.L.WithError(err).Warn("[ui] clubs load failed")
					list.Clear()
					list.AddItem(loc.T("common.error"), "", 0, nil)
					clubs = nil
					return
				}
				render(items)
			})
		}()
	}

	// membership üyelik değişikliğini yapar ve listeyi tazeler
	membership := func(join bool) {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(clubs) {
			return
		}
		club := clubs[index]
		go func() {
			var err error
			if join {
				err = a.deps.API.JoinClub(ctx, club.ID)
			} else {
				err = a.deps.API.LeaveClub(ctx, club.ID)
			}
			if err != nil {
				logger.L.WithError(err).Warnf("[ui] club membership change failed (join=%v)", join)
				return
			}
			a.app.QueueUpdateDraw(load)
		}()
	}

	list.SetSelectedFunc(func(index int, _ string, _ string, _ rune) {
		if index >= 0 && index < len(clubs) {
			a.showMeetings(ctx, clubs[index])
		}
	})

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(list, 0, 1, true).
		AddItem(bar, 1, 0, false)
	layout.SetBackgroundColor(ColorBg)

	layout.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc:
			a.pages.RemovePage(pageClubs)
			a.pages.SwitchToPage(pageRoster)
			a.app.SetFocus(a.rosterList)
			return nil
		case tcell.KeyF5:
			load()
			return nil
		}
		switch event.Rune() {
		case 'j':
			membership(true)
			return nil
		case 'l':
			membership(false)
			return nil
		}
		return event
	})

	a.pages.AddPage(pageClubs, layout, true, true)
	a.pages.SwitchToPage(pageClubs)
	a.app.SetFocus(list)
	load()
}

// showMeetings bir kulübün buluşma takvimini açar
func (a *App) showMeetings(ctx context.Context, club models.Club) {
	loc := a.deps.Loc

	list := tview.NewList()
	styleList(list, " "+tview.Escape(club.Name)+" — "+loc.T("schedule.title")+" ")

	bar := statusBar(" n:" + loc.T("schedule.create") + " | F5:Refresh | Esc:" + loc.T("common.back") + " ")

	render := func(items []models.Meeting) {
		list.Clear()
		for _, m := range items {
			secondary := fmt.Sprintf("%s: %s · %s: %s · %d",
				loc.T("schedule.when"), m.StartsAt.Format("2006-01-02 15:04"),
				loc.T("schedule.where"), tview.Escape(m.Place),
				m.AttendeeCount)
			list.AddItem(tview.Escape(m.Title), secondary, 0, nil)
		}
	}

	load := func() {
		go func() {
			items, err := a.deps.API.ListMeetings(ctx, club.ID)
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					logger.L.WithError(err).Warnf("[ui] meetings load failed for club %s", club.ID)
					list.Clear()
					list.AddItem(loc.T("common.error"), "", 0, nil)
					return
				}
				render(items)
			})
		}()
	}

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(list, 0, 1, true).
		AddItem(bar, 1, 0, false)
	layout.SetBackgroundColor(ColorBg)

	layout.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc:
			a.pages.RemovePage(pageMeeting)
			a.pages.SwitchToPage(pageClubs)
			return nil
		case tcell.KeyF5:
			load()
			return nil
		}
		if event.Rune() == 'n' {
			a.showCreateMeeting(ctx, club, load)
			return nil
		}
		return event
	})

	a.pages.AddPage(pageMeeting, layout, true, true)
	a.pages.SwitchToPage(pageMeeting)
	a.app.SetFocus(list)
	load()
}

// showCreateMeeting yeni buluşma formu. onCreated başarılı kayıttan sonra
// takvimi tazelemek için çağrılır.
func (a *App) showCreateMeeting(ctx context.Context, club models.Club, onCreated func()) {
	loc := a.deps.Loc

	form := tview.NewForm()
	styleForm(form, " "+loc.T("schedule.create")+" ")

	status := tview.NewTextView()
	status.SetBackgroundColor(ColorBg)
	status.SetTextColor(ColorError)
	status.SetTextAlign(tview.AlignCenter)

	title := tview.NewInputField()
	title.SetLabel(loc.T("schedule.titleField") + ": ")
	title.SetFieldWidth(32)

	place := tview.NewInputField()
	place.SetLabel(loc.T("schedule.where") + ": ")
	place.SetFieldWidth(32)

	when := tview.NewInputField()
	when.SetLabel(loc.T("schedule.when") + " (2006-01-02 15:04): ")
	when.SetFieldWidth(20)

	form.AddFormItem(title)
	form.AddFormItem(place)
	form.AddFormItem(when)

	const dialog = "create-meeting"
	closeDialog := func() {
		a.pages.RemovePage(dialog)
	}

	form.AddButton(loc.T("schedule.create"), func() {
		startsAt, err := time.ParseInLocation("2006-01-02 15:04", when.GetText(), time.Local)
		if err != nil {
			status.SetText(loc.T("schedule.badTime"))
			return
		}
		req := &models.CreateMeetingRequest{
			ClubID:   club.ID,
			Title:    title.GetText(),
			Place:    place.GetText(),
			StartsAt: startsAt,
		}
		if err := req.Validate(); err != nil {
			status.SetText(loc.T("auth.fieldRequired"))
			return
		}
		go func() {
			_, err := a.deps.API.CreateMeeting(ctx, req)
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					logger.L.WithError(err).Warn("[ui] meeting create failed")
					status.SetText(loc.T("common.error"))
					return
				}
				closeDialog()
				onCreated()
			})
		}()
	})
	form.AddButton(loc.T("common.back"), closeDialog)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(status, 1, 0, false)
	layout.SetBackgroundColor(ColorBg)

	a.pages.AddPage(dialog, center(layout, 60, 13), true, true)
	a.app.SetFocus(form)
}
