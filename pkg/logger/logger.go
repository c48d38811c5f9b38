// Package logger, uygulama genelinde kullanılan logrus logger'ını yapılandırır.
//
// Tek bir paylaşılan *logrus.Logger instance'ı vardır — her paket kendi
// logger'ını oluşturmaz, DI ile bu instance taşınmaz; logrus zaten
// thread-safe'dir ve log çıktısı global bir concern'dür.
//
// Log mesajları "[component] message" formatını takip eder:
//
//	logger.L.Infof("[ws] connected to room %s", roomID)
//
// Format env üzerinden seçilir:
//   - LOG_FORMAT=json → JSONFormatter (log toplayıcılar için)
//   - aksi halde      → TextFormatter (terminalde okunaklı)
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// L, paylaşılan logger instance'ı.
var L = logrus.New()

// Setup, logger'ı env değerlerine göre yapılandırır.
// TUI çalışırken stdout'a log basmak ekranı bozar — out parametresi ile
// çıktı bir dosyaya yönlendirilebilir (main.go bunu yapar).
func Setup(level, format string, out io.Writer) {
	if out == nil {
		out = os.Stderr
	}
	L.SetOutput(out)

	if strings.EqualFold(format, "json") {
		L.SetFormatter(&logrus.JSONFormatter{})
	} else {
		L.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	L.SetLevel(parsed)
}
