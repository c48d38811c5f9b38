// Package i18n, terminal arayüzünde çoklu dil desteği sağlar.
//
// Ekran etiketleri ve kullanıcıya gösterilen hata mesajları seçilen dile
// göre döner. Dil bilgisi şu sırayla belirlenir:
//  1. UI_LANGUAGE konfigürasyonu (.env / env)
//  2. İşletim sisteminin LANG değişkeni (ör: "ko_KR.UTF-8")
//  3. Varsayılan dil (en)
//
// Kullanım:
//
//	localizer := i18n.NewLocalizer("ko")
//	msg := localizer.T("auth.invalidCredentials")
package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/neighbus/neighbus/pkg/logger"
)

// SupportedLanguages — desteklenen dil kodları.
// NEIGHBUS'un ana kitlesi Korece; en fallback dilidir.
var SupportedLanguages = []string{"en", "ko", "tr"}

// DefaultLanguage — varsayılan dil.
const DefaultLanguage = "en"

// translations, tüm dil çevirilerini bellekte tutan harita.
// map[lang]map[key]value formatında.
// Uygulama başlangıcında yüklenir, sonra sadece okunur — thread-safe.
var (
	translations map[string]map[string]string
	loadOnce     sync.Once
)

// Load, çeviri dosyalarını fs.FS'ten yükler.
// Her dil için bir JSON dosyası beklenir: en.json, ko.json, tr.json
//
// sync.Once nedir?
// Bir fonksiyonun programın ömrü boyunca sadece BİR KERE çalışmasını garanti eder.
// Birden fazla goroutine aynı anda çağırsa bile sadece biri çalışır, diğerleri bekler.
func Load(localesFS fs.FS) error {
	var loadErr error

	loadOnce.Do(func() {
		translations = make(map[string]map[string]string)

		for _, lang := range SupportedLanguages {
			fileName := lang + ".json"

			data, err := fs.ReadFile(localesFS, fileName)
			if err != nil {
				loadErr = fmt.Errorf("failed to read translation file %s: %w", fileName, err)
				return
			}

			// Nested JSON'u flat key'lere dönüştür: {"auth": {"login": "..."}} → "auth.login"
			var nested map[string]any
			if err := json.Unmarshal(data, &nested); err != nil {
				loadErr = fmt.Errorf("failed to parse translation file %s: %w", fileName, err)
				return
			}

			flat := make(map[string]string)
			flattenMap("", nested, flat)
			translations[lang] = flat

			logger.L.Infof("[i18n] loaded %d keys for language: %s", len(flat), lang)
		}
	})

	return loadErr
}

// Localizer, belirli bir dil için çeviri yapan struct.
type Localizer struct {
	lang string
}

// NewLocalizer, belirli bir dil için Localizer oluşturur.
// Desteklenmeyen dil verilirse varsayılana düşer.
func NewLocalizer(lang string) *Localizer {
	if !isSupported(lang) {
		lang = DefaultLanguage
	}
	return &Localizer{lang: lang}
}

// Lang, localizer'ın aktif dil kodunu döner.
func (l *Localizer) Lang() string {
	return l.lang
}

// T, çeviri anahtarına karşılık gelen metni döner.
// Anahtar bulunamazsa → İngilizce'ye düşer.
// İngilizce'de de yoksa → anahtarın kendisini döner.
func (l *Localizer) T(key string) string {
	if msg, ok := translations[l.lang][key]; ok {
		return msg
	}
	if msg, ok := translations[DefaultLanguage][key]; ok {
		return msg
	}
	return key
}

// TWithParams, parametreli çeviri yapar.
// Çeviri metnindeki {{param}} yer tutucularını değerlerle değiştirir.
//
// Örnek:
//
//	localizer.TWithParams("friends.requestFrom", map[string]string{"user": "mina"})
//	→ "mina sent you a friend request"
func (l *Localizer) TWithParams(key string, params map[string]string) string {
	msg := l.T(key)
	for k, v := range params {
		msg = strings.ReplaceAll(msg, "{{"+k+"}}", v)
	}
	return msg
}

// DetectLanguage, konfig değeri boşsa OS locale string'inden dil belirler.
// Girdi formatı: "ko_KR.UTF-8", "ko-KR", "ko" hepsi kabul edilir.
func DetectLanguage(configured, osLocale string) string {
	for _, candidate := range []string{configured, osLocale} {
		if candidate == "" {
			continue
		}
		lang := strings.ToLower(strings.TrimSpace(candidate))
		// "ko_KR.UTF-8" → "ko"
		lang = strings.Split(lang, ".")[0]
		lang = strings.Split(lang, "_")[0]
		lang = strings.Split(lang, "-")[0]

		if isSupported(lang) {
			return lang
		}
	}

	return DefaultLanguage
}

// ─── Helpers ───

func isSupported(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// flattenMap, nested JSON'u "dot notation" key'lere dönüştürür.
// {"auth": {"login": "Login"}} → {"auth.login": "Login"}
func flattenMap(prefix string, src map[string]any, dst map[string]string) {
	for k, v := range src {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			dst[key] = val
		case map[string]any:
			flattenMap(key, val, dst)
		}
	}
}
