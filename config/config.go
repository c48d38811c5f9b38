// Package config, uygulamanın tüm konfigürasyonunu merkezi olarak yönetir.
// Environment variable'lardan okur, .env dosyasını da destekler.
//
// Config struct'ı tüm ayarları tek bir yerde toplar, böylece
// her yerde ayrı ayrı os.Getenv() çağırmak yerine tek bir Config nesnesi taşırız.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm ayrı bir struct — Single Responsibility: her struct tek bir concern'ü temsil eder.
type Config struct {
	API     APIConfig
	Broker  BrokerConfig
	Storage StorageConfig
	Crypto  CryptoConfig
	UI      UIConfig
	Log     LogConfig
}

// APIConfig, NEIGHBUS REST backend ayarları.
type APIConfig struct {
	BaseURL string        // ör: https://api.neighbus.app
	Timeout time.Duration // HTTP istek timeout'u
}

// BrokerConfig, gerçek zamanlı mesaj broker'ı ayarları.
type BrokerConfig struct {
	URL string // WebSocket endpoint (ör: wss://broker.neighbus.app/ws)
}

// StorageConfig, cihaz üzerindeki SQLite store ayarları.
type StorageConfig struct {
	Path string // SQLite dosya yolu (ör: ~/.neighbus/neighbus.db)
}

// CryptoConfig, oturum verisinin at-rest şifreleme ayarları.
type CryptoConfig struct {
	Passphrase string // scrypt key derivation girdisi — GİZLİ TUTULMALI
}

// UIConfig, terminal arayüzü ayarları.
type UIConfig struct {
	Language string // "en", "ko", "tr" — boşsa OS locale'inden belirlenir
}

// LogConfig, log seviyesi ve formatı.
type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // text | json
	File   string // boş değilse log bu dosyaya yazılır (TUI ekranını bozmamak için)
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası varsa önce onu yükler (development kolaylığı için).
func Load() (*Config, error) {
	// .env dosyasını yükle — dosya yoksa hata vermez, sessizce devam eder.
	_ = godotenv.Load()

	timeoutSec, err := strconv.Atoi(getEnv("API_TIMEOUT_SECONDS", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_TIMEOUT_SECONDS: %w", err)
	}

	passphrase := getEnv("STORAGE_PASSPHRASE", "")
	if passphrase == "" {
		return nil, fmt.Errorf("STORAGE_PASSPHRASE environment variable is required")
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", "https://api.neighbus.app"),
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
		Broker: BrokerConfig{
			URL: getEnv("BROKER_URL", "wss://api.neighbus.app/ws/chat"),
		},
		Storage: StorageConfig{
			Path: getEnv("STORAGE_PATH", defaultStoragePath()),
		},
		Crypto: CryptoConfig{
			Passphrase: passphrase,
		},
		UI: UIConfig{
			Language: getEnv("UI_LANGUAGE", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
			File:   getEnv("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

// defaultStoragePath, kullanıcının home dizini altında varsayılan DB yolunu döner.
// Home dizini belirlenemezse working directory'ye düşer.
func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./neighbus.db"
	}
	return filepath.Join(home, ".neighbus", "neighbus.db")
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
