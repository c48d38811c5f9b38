package i18n

import (
	"io/fs"
	"testing"
)

func loadEmbedded(t *testing.T) {
	t.Helper()
	locales, err := fs.Sub(EmbeddedLocales, "locales")
	if err != nil {
		t.Fatalf("embedded locales: %v", err)
	}
	if err := Load(locales); err != nil {
		t.Fatalf("load: %v", err)
	}
}

func TestLocalizerTranslates(t *testing.T) {
	loadEmbedded(t)

	ko := NewLocalizer("ko")
	if got := ko.T("auth.login"); got != "로그인" {
		t.Fatalf("ko auth.login: %q", got)
	}

	tr := NewLocalizer("tr")
	if got := tr.T("friends.title"); got != "Arkadaşlar" {
		t.Fatalf("tr friends.title: %q", got)
	}
}

func TestUnknownKeyFallsBack(t *testing.T) {
	loadEmbedded(t)

	l := NewLocalizer("ko")
	if got := l.T("no.such.key"); got != "no.such.key" {
		t.Fatalf("missing key must return the key itself, got %q", got)
	}
}

func TestUnsupportedLanguageFallsBackToDefault(t *testing.T) {
	loadEmbedded(t)

	l := NewLocalizer("fr")
	if l.Lang() != DefaultLanguage {
		t.Fatalf("expected default language, got %q", l.Lang())
	}
}

func TestTWithParams(t *testing.T) {
	loadEmbedded(t)

	l := NewLocalizer("en")
	got := l.TWithParams("friends.requestFrom", map[string]string{"user": "mina"})
	if got != "mina sent you a friend request" {
		t.Fatalf("params not substituted: %q", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		configured string
		osLocale   string
		want       string
	}{
		{"ko", "", "ko"},
		{"", "ko_KR.UTF-8", "ko"},
		{"", "tr-TR", "tr"},
		{"", "fr_FR.UTF-8", "en"},
		{"tr", "ko_KR.UTF-8", "tr"},
		{"", "", "en"},
		{"KO", "", "ko"},
	}
	for i, c := range cases {
		if got := DetectLanguage(c.configured, c.osLocale); got != c.want {
			t.Fatalf("case %d (%q, %q): got %q, want %q", i, c.configured, c.osLocale, got, c.want)
		}
	}
}
