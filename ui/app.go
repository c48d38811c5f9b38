package ui

import (
	"context"
	"sync"

	"github.com/rivo/tview"

	"github.com/neighbus/neighbus/api"
	"github.com/neighbus/neighbus/config"
	"github.com/neighbus/neighbus/database"
	"github.com/neighbus/neighbus/friends"
	"github.com/neighbus/neighbus/models"
	"github.com/neighbus/neighbus/pkg/i18n"
	"github.com/neighbus/neighbus/pkg/logger"
	"github.com/neighbus/neighbus/pkg/ratelimit"
	"github.com/neighbus/neighbus/reaction"
	"github.com/neighbus/neighbus/session"
	"github.com/neighbus/neighbus/ws"
)

// Sayfa adları
const (
	pageAuth    = "auth"
	pageRoster  = "roster"
	pageChat    = "chat"
	pageBoard   = "board"
	pagePost    = "post"
	pageClubs   = "clubs"
	pageMeeting = "meetings"
)

// Deps uygulamanın ihtiyaç duyduğu servisleri taşır, main.go'da kurulur
type Deps struct {
	Config       *config.Config
	Loc          *i18n.Localizer
	API          *api.Client
	Sessions     *session.Manager
	Friends      *friends.Manager
	Reactions    *reaction.Synchronizer
	History      database.HistoryStore
	LoginLimiter *ratelimit.AttemptLimiter
}

// App terminal arayüzünü yönetir
type App struct {
	deps  Deps
	app   *tview.Application
	pages *tview.Pages

	mu     sync.Mutex
	chat   *ws.ChatSession // aktif sohbet, kapalıyken nil
	roster models.Roster   // son render edilen roster snapshot'ı

	rosterList  *tview.List
	requestList *tview.List

	// açık gönderi detayı, tepki observer'ı bu alanları günceller
	postMu      sync.Mutex
	currentPost string
	postView    *tview.TextView
	postDetail  *models.PostDetail
}

// New yeni bir uygulama örneği oluşturur
func New(deps Deps) *App {
	return &App{deps: deps}
}

// Run arayüzü başlatır, çıkışta aktif sohbeti kapatır
func (a *App) Run(ctx context.Context) error {
	a.app = tview.NewApplication()
	a.pages = tview.NewPages()

	background := tview.NewBox()
	background.SetBackgroundColor(ColorBg)
	a.pages.AddPage("background", background, true, true)

	// Tepki observer'ı: senkronizörden gelen her durum (iyimser, geri alma
	// veya sunucu onayı) açık gönderi görünümüne yansıtılır
	a.deps.Reactions.SetObserver(func(contentID string, state models.ReactionState) {
		a.app.QueueUpdateDraw(func() {
			a.renderReactions(contentID, state)
		})
	})

	a.deps.Friends.SetObserver(func(roster models.Roster) {
		a.app.QueueUpdateDraw(func() {
			a.renderRoster(roster)
		})
	})

	if _, ok := a.deps.Sessions.Current(); ok {
		a.showRoster(ctx)
	} else {
		a.showAuth(ctx)
	}

	err := a.app.SetRoot(a.pages, true).EnableMouse(false).Run()
	a.closeChat()
	return err
}

// closeChat aktif sohbet oturumunu varsa kapatır
func (a *App) closeChat() {
	a.mu.Lock()
	c := a.chat
	a.chat = nil
	a.mu.Unlock()
	if c != nil {
		c.Close()
	}
}

// quit oturumu sunucuda sonlandırmayı dener ve uygulamadan çıkar
func (a *App) quit(ctx context.Context) {
	a.closeChat()
	if _, ok := a.deps.Sessions.Current(); ok {
		if err := a.deps.API.Logout(ctx); err != nil {
			logger.L.WithError(err).Warn("[ui] logout request failed")
		}
		if err := a.deps.Sessions.Clear(ctx); err != nil {
			logger.L.WithError(err).Warn("[ui] session clear failed")
		}
		// Sohbet cache'i oturuma aittir — sonraki kullanıcıya sızmasın
		if err := a.deps.History.Clear(ctx); err != nil {
			logger.L.WithError(err).Warn("[ui] history clear failed")
		}
	}
	a.app.Stop()
}

// statusBar alt bilgi çubuğu için ortak görünüm üretir
func statusBar(text string) *tview.TextView {
	bar := tview.NewTextView()
	bar.SetBackgroundColor(ColorField)
	bar.SetTextColor(ColorTitle)
	bar.SetTextAlign(tview.AlignCenter)
	bar.SetText(text)
	return bar
}

// styleForm formlara ortak temayı uygular
func styleForm(form *tview.Form, title string) {
	form.SetBackgroundColor(ColorBg)
	form.SetFieldBackgroundColor(ColorField)
	form.SetFieldTextColor(ColorFg)
	form.SetLabelColor(ColorHighlight)
	form.SetButtonBackgroundColor(ColorField)
	form.SetButtonTextColor(ColorTitle)
	form.SetBorder(true)
	form.SetBorderColor(ColorBorder)
	form.SetTitle(title)
	form.SetTitleColor(ColorTitle)
}

// styleList listelere ortak temayı uygular
func styleList(list *tview.List, title string) {
	list.SetBackgroundColor(ColorBg)
	list.SetMainTextColor(ColorFg)
	list.SetSecondaryTextColor(ColorMuted)
	list.SetSelectedBackgroundColor(ColorField)
	list.SetSelectedTextColor(ColorHighlight)
	list.SetBorder(true)
	list.SetBorderColor(ColorBorder)
	list.SetTitle(title)
	list.SetTitleColor(ColorTitle)
	list.ShowSecondaryText(true)
}

// center bir bileşeni ekranın ortasına yerleştirir
func center(p tview.Primitive, width, height int) tview.Primitive {
	return tview.NewFlex().
		AddItem(tview.NewBox().SetBackgroundColor(ColorBg), 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(tview.NewBox().SetBackgroundColor(ColorBg), 0, 1, false).
			AddItem(p, height, 0, true).
			AddItem(tview.NewBox().SetBackgroundColor(ColorBg), 0, 1, false), width, 0, true).
		AddItem(tview.NewBox().SetBackgroundColor(ColorBg), 0, 1, false)
}
