package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/rivo/tview"

	"github.com/neighbus/neighbus/models"
	"github.com/neighbus/neighbus/pkg"
	"github.com/neighbus/neighbus/pkg/logger"
)

// showAuth giriş/kayıt ekranını gösterir
func (a *App) showAuth(ctx context.Context) {
	loc := a.deps.Loc

	form := tview.NewForm()
	styleForm(form, " "+loc.T("auth.title")+" ")

	status := tview.NewTextView()
	status.SetBackgroundColor(ColorBg)
	status.SetTextColor(ColorError)
	status.SetTextAlign(tview.AlignCenter)
	status.SetDynamicColors(true)

	username := tview.NewInputField()
	username.SetLabel(loc.T("auth.username") + ": ")
	username.SetFieldWidth(30)

	password := tview.NewInputField()
	password.SetLabel(loc.T("auth.password") + ": ")
	password.SetFieldWidth(30)
	password.SetMaskCharacter('*')

	nickname := tview.NewInputField()
	nickname.SetLabel(loc.T("auth.nickname") + ": ")
	nickname.SetFieldWidth(30)

	form.AddFormItem(username)
	form.AddFormItem(password)
	form.AddFormItem(nickname)

	form.AddButton(loc.T("auth.login"), func() {
		a.doLogin(ctx, username.GetText(), password.GetText(), status)
	})
	form.AddButton(loc.T("auth.signup"), func() {
		a.doSignup(ctx, username.GetText(), password.GetText(), nickname.GetText(), status)
	})
	form.AddButton(loc.T("auth.quit"), func() {
		a.app.Stop()
	})

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(status, 1, 0, false)
	layout.SetBackgroundColor(ColorBg)

	a.pages.AddPage(pageAuth, center(layout, 50, 15), true, true)
	a.pages.SwitchToPage(pageAuth)
	a.app.SetFocus(form)
}

// doLogin kimlik doğrulamayı yürütür. Başarısız denemeler client tarafında
// da sınırlanır ki yazım hatası döngüsü backend'e istek yağdırmasın.
func (a *App) doLogin(ctx context.Context, username, password string, status *tview.TextView) {
	loc := a.deps.Loc

	req := models.LoginRequest{Username: username, Password: password}
	if err := req.Validate(); err != nil {
		status.SetText(loc.T("auth.fieldRequired"))
		return
	}

	if !a.deps.LoginLimiter.Allow(username) {
		status.SetText(loc.T("auth.tooManyAttempts"))
		return
	}

	status.SetText(loc.T("common.loading"))
	go func() {
		resp, err := a.deps.API.Login(ctx, &req)
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				logger.L.WithError(err).Info("[ui] login failed")
				if errors.Is(err, pkg.ErrUnauthenticated) {
					status.SetText(loc.T("auth.invalidCredentials"))
				} else {
					status.SetText(loc.T("common.networkError"))
				}
				return
			}
			a.completeAuth(ctx, resp, status)
		})
	}()
}

// doSignup yeni hesap oluşturur, başarılıysa doğrudan oturum açar
func (a *App) doSignup(ctx context.Context, username, password, nickname string, status *tview.TextView) {
	loc := a.deps.Loc

	req := models.SignupRequest{Username: username, Password: password, Nickname: nickname}
	if err := req.Validate(); err != nil {
		status.SetText(loc.T("auth.fieldRequired"))
		return
	}

	status.SetText(loc.T("common.loading"))
	go func() {
		resp, err := a.deps.API.Signup(ctx, &req)
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				logger.L.WithError(err).Info("[ui] signup failed")
				if errors.Is(err, pkg.ErrValidation) {
					status.SetText(loc.T("auth.signupRejected"))
				} else {
					status.SetText(loc.T("common.networkError"))
				}
				return
			}
			a.completeAuth(ctx, resp, status)
		})
	}()
}

// completeAuth başarılı auth cevabını kalıcı oturuma çevirir
func (a *App) completeAuth(ctx context.Context, resp *models.AuthResponse, status *tview.TextView) {
	sess := models.Session{
		UserID:    resp.User.ID,
		Username:  resp.User.Username,
		Nickname:  resp.User.Nickname,
		AuthToken: resp.Token,
	}
	if err := a.deps.Sessions.Establish(ctx, sess); err != nil {
		logger.L.WithError(err).Error("[ui] session persist failed")
		status.SetText(a.deps.Loc.T("common.storageError"))
		return
	}
	a.deps.LoginLimiter.Reset(sess.Username)
	logger.L.WithField("user_id", sess.UserID).Info("[ui] authenticated")

	a.pages.RemovePage(pageAuth)
	a.showRoster(ctx)
}

// sessionLabel üst başlıklarda kullanılan kullanıcı etiketi
func (a *App) sessionLabel() string {
	sess, ok := a.deps.Sessions.Current()
	if !ok {
		return ""
	}
	name := sess.Nickname
	if name == "" {
		name = sess.Username
	}
	return fmt.Sprintf(" NEIGHBUS — %s ", name)
}
