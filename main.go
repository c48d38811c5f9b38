// Package main, NEIGHBUS terminal istemcisinin giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. Logger'ı kur
//  3. Lokal database'i başlat (kv + sohbet geçmişi cache'i)
//  4. i18n çevirilerini yükle
//  5. Store'ları oluştur (DB bağlantısı ile)
//  6. Session Manager'ı kur, kayıtlı oturumu restore et
//  7. API client'ı oluştur (token kaynağı session manager)
//  8. Friend Manager + Reaction Synchronizer'ı kur
//  9. Login rate limiter
// 10. UI'ı başlat
// 11. Temizlik
//
// Global değişken YOK — her şey bu fonksiyonda oluşturulup birbirine bağlanıyor.
package main

import (
	"context"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/neighbus/neighbus/api"
	"github.com/neighbus/neighbus/config"
	"github.com/neighbus/neighbus/database"
	"github.com/neighbus/neighbus/friends"
	"github.com/neighbus/neighbus/pkg/i18n"
	"github.com/neighbus/neighbus/pkg/logger"
	"github.com/neighbus/neighbus/pkg/ratelimit"
	"github.com/neighbus/neighbus/reaction"
	"github.com/neighbus/neighbus/session"
	"github.com/neighbus/neighbus/ui"
)

const (
	loginMaxAttempts = 5
	loginWindow      = 5 * time.Minute
)

func main() {
	ctx := context.Background()

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		logger.L.Fatalf("[main] failed to load config: %v", err)
	}

	// ─── 2. Logger ───
	// Terminal uygulamasında stderr tview'in çizimini bozar; log dosyaya
	// yazılır, dosya yoksa loglar sessizce yutulur.
	var logOut io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err == nil {
			defer f.Close()
			logOut = f
		}
	}
	logger.Setup(cfg.Log.Level, cfg.Log.Format, logOut)
	logger.L.Info("[main] neighbus client starting...")

	// ─── 3. Database ───
	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	if err != nil {
		logger.L.Fatalf("[main] embedded migrations missing: %v", err)
	}
	db, err := database.New(cfg.Storage.Path, migrationsFS)
	if err != nil {
		logger.L.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	// ─── 4. i18n (Çoklu Dil Desteği) ───
	localesFS, err := fs.Sub(i18n.EmbeddedLocales, "locales")
	if err != nil {
		logger.L.Fatalf("[main] embedded locales missing: %v", err)
	}
	if err := i18n.Load(localesFS); err != nil {
		logger.L.Fatalf("[main] failed to load i18n translations: %v", err)
	}
	lang := i18n.DetectLanguage(cfg.UI.Language, os.Getenv("LANG"))
	loc := i18n.NewLocalizer(lang)
	logger.L.Infof("[main] language: %s", lang)

	// ─── 5. Store Layer ───
	kv := database.NewKVStore(db)
	history := database.NewHistoryStore(db)

	// ─── 6. Session Manager ───
	sessions, err := session.NewManager(ctx, kv, cfg.Crypto.Passphrase)
	if err != nil {
		logger.L.Fatalf("[main] failed to initialize session store: %v", err)
	}
	restored, err := sessions.Restore(ctx)
	if err != nil {
		logger.L.Warnf("[main] session restore failed: %v", err)
	} else if restored {
		logger.L.Info("[main] previous session restored")
	}

	// ─── 7. API Client ───
	apiClient := api.New(cfg.API.BaseURL, cfg.API.Timeout, sessions)

	// ─── 8. Domain Managers ───
	// Observer'lar nil başlar; UI kurulunca SetObserver ile bağlanır.
	friendManager := friends.NewManager(apiClient, nil)
	reactions := reaction.NewSynchronizer(apiClient, sessions, nil)
	defer reactions.Close()

	// ─── 9. Login Rate Limiter ───
	loginLimiter := ratelimit.NewAttemptLimiter(loginMaxAttempts, loginWindow)
	defer loginLimiter.Close()

	// ─── 10. UI ───
	app := ui.New(ui.Deps{
		Config:       cfg,
		Loc:          loc,
		API:          apiClient,
		Sessions:     sessions,
		Friends:      friendManager,
		Reactions:    reactions,
		History:      history,
		LoginLimiter: loginLimiter,
	})
	if err := app.Run(ctx); err != nil {
		logger.L.Fatalf("[main] ui terminated: %v", err)
	}

	logger.L.Info("[main] neighbus client stopped")
}
