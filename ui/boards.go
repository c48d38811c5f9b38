package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/neighbus/neighbus/models"
	"github.com/neighbus/neighbus/pkg/logger"
)

// showBoards pano ekranını açar. Tab galeri ile serbest pano arasında geçer.
func (a *App) showBoards(ctx context.Context) {
	loc := a.deps.Loc

	list := tview.NewList()
	styleList(list, " "+loc.T("board.gallery")+" ")

	bar := statusBar(" Enter:Open | Tab:Board | F5:Refresh | Esc:Back ")

	kind := models.BoardGallery
	var posts []models.PostSummary

	render := func(items []models.PostSummary) {
		posts = items
		list.Clear()
		for _, p := range items {
			secondary := fmt.Sprintf("%s · ♥%d · %d comments",
				p.AuthorName, p.LikeCount, p.CommentCount)
			list.AddItem(tview.Escape(p.Title), secondary, 0, nil)
		}
	}

	load := func() {
		current := kind
		go func() {
			items, err := a.deps.API.ListPosts(ctx, current)
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					logger.L.WithError(err).Warnf("[ui] board %s load failed", current)
					list.Clear()
					list.AddItem(loc.T("board.loadFailed"), "", 0, nil)
					posts = nil
					return
				}
				render(items)
			})
		}()
	}

	list.SetSelectedFunc(func(index int, _ string, _ string, _ rune) {
		if index >= 0 && index < len(posts) {
			a.showPost(ctx, posts[index].ID)
		}
	})

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(list, 0, 1, true).
		AddItem(bar, 1, 0, false)
	layout.SetBackgroundColor(ColorBg)

	layout.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEsc:
			a.pages.RemovePage(pageBoard)
			a.pages.SwitchToPage(pageRoster)
			a.app.SetFocus(a.rosterList)
			return nil
		case tcell.KeyTab:
			if kind == models.BoardGallery {
				kind = models.BoardFree
				list.SetTitle(" " + loc.T("board.free") + " ")
			} else {
				kind = models.BoardGallery
				list.SetTitle(" " + loc.T("board.gallery") + " ")
			}
			load()
			return nil
		case tcell.KeyF5:
			load()
			return nil
		}
		return event
	})

	a.pages.AddPage(pageBoard, layout, true, true)
	a.pages.SwitchToPage(pageBoard)
	a.app.SetFocus(list)
	load()
}

// showPost gönderi detayını açar ve tepki tuşlarını senkronizöre bağlar
func (a *App) showPost(ctx context.Context, postID string) {
	loc := a.deps.Loc

	view := tview.NewTextView()
	view.SetBorder(true)
	view.SetBorderColor(ColorBorder)
	view.SetBackgroundColor(ColorBg)
	view.SetTitleColor(ColorTitle)
	view.SetTextColor(ColorFg)
	view.SetDynamicColors(true)
	view.SetScrollable(true)
	view.SetText(loc.T("common.loading"))

	bar := statusBar(" l:" + loc.T("board.like") + " | d:" + loc.T("board.dislike") + " | Esc:" + loc.T("common.back") + " ")

	a.postMu.Lock()
	a.currentPost = postID
	a.postView = view
	a.postDetail = nil
	a.postMu.Unlock()

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(view, 0, 1, true).
		AddItem(bar, 1, 0, false)
	layout.SetBackgroundColor(ColorBg)

	layout.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc {
			a.postMu.Lock()
			a.currentPost = ""
			a.postView = nil
			a.postDetail = nil
			a.postMu.Unlock()
			a.deps.Reactions.Forget(postID)
			a.pages.RemovePage(pagePost)
			a.pages.SwitchToPage(pageBoard)
			return nil
		}
		switch event.Rune() {
		case 'l':
			a.toggleReaction(ctx, postID, models.ReactionLike)
			return nil
		case 'd':
			a.toggleReaction(ctx, postID, models.ReactionDislike)
			return nil
		}
		return event
	})

	a.pages.AddPage(pagePost, layout, true, true)
	a.pages.SwitchToPage(pagePost)
	a.app.SetFocus(view)

	go func() {
		detail, err := a.deps.API.GetPost(ctx, postID)
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				logger.L.WithError(err).Warnf("[ui] post %s load failed", postID)
				view.SetText(loc.T("board.loadFailed"))
				return
			}

			// Detaydan gelen sayaçlar senkronizörün başlangıç durumu olur
			a.deps.Reactions.Seed(postID, detail.Reactions)

			a.postMu.Lock()
			stillOpen := a.currentPost == postID
			if stillOpen {
				a.postDetail = detail
			}
			a.postMu.Unlock()
			if stillOpen {
				a.renderPost(view, detail, detail.Reactions)
			}
		})
	}()
}

// toggleReaction iyimser toggle'ı başlatır; görsel güncelleme observer'dan gelir
func (a *App) toggleReaction(ctx context.Context, postID string, kind models.ReactionKind) {
	go func() {
		if err := a.deps.Reactions.Toggle(ctx, postID, kind); err != nil {
			logger.L.WithError(err).Infof("[ui] reaction toggle failed for %s", postID)
		}
	}()
}

// renderReactions açık gönderi buysa sayaç satırını tazeler.
// Synchronizer observer'ı iyimser güncellemede, geri almada ve sunucu
// onayında aynı yoldan buraya düşer.
func (a *App) renderReactions(contentID string, state models.ReactionState) {
	a.postMu.Lock()
	view := a.postView
	detail := a.postDetail
	open := a.currentPost == contentID
	a.postMu.Unlock()

	if !open || view == nil || detail == nil {
		return
	}
	a.renderPost(view, detail, state)
}

// renderPost detay metnini verilen tepki durumuyla basar
func (a *App) renderPost(view *tview.TextView, detail *models.PostDetail, reactions models.ReactionState) {
	var b strings.Builder

	fmt.Fprintf(&b, "[::b]%s[-:-:-]\n", tview.Escape(detail.Title))
	author := detail.Author.Nickname
	if author == "" {
		author = detail.Author.Username
	}
	fmt.Fprintf(&b, "[#78dca0]%s[-] · %s\n\n", tview.Escape(author), detail.CreatedAt.Format("2006-01-02 15:04"))

	if len(detail.ImageURLs) > 0 {
		for _, u := range detail.ImageURLs {
			fmt.Fprintf(&b, "[#5aaab4][img] %s[-]\n", tview.Escape(u))
		}
		b.WriteString("\n")
	}

	b.WriteString(tview.Escape(detail.Body))
	b.WriteString("\n\n")

	likeMark, dislikeMark := " ", " "
	switch reactions.UserReaction {
	case models.ReactionLike:
		likeMark = "*"
	case models.ReactionDislike:
		dislikeMark = "*"
	}
	fmt.Fprintf(&b, "[#ffd666]%s♥ %d[-]  [#ff6b6b]%s✖ %d[-]\n",
		likeMark, reactions.LikeCount, dislikeMark, reactions.DislikeCount)

	view.SetTitle(" " + tview.Escape(detail.Title) + " ")
	view.SetText(b.String())
}
