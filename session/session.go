// Package session, process genelinde TEK olan kullanıcı oturumunu yönetir.
//
// Tasarım: global mutable state YOK. Manager main.go'da bir kez oluşturulur
// ve ona ihtiyaç duyan her component'e explicit olarak inject edilir.
// Mutation yüzeyi dardır: Establish (login/signup akışı) ve Clear (logout).
// Diğer tüm component'ler oturumu sadece okur (Current / Token).
//
// Persistence: oturum JSON'u AES-256-GCM ile şifrelenip yerel store'un
// kv tablosuna yazılır. Şifreleme anahtarı, konfigdeki passphrase'den
// scrypt ile türetilir; salt ilk çalıştırmada üretilip kv'de saklanır
// (salt gizli değildir).
//
// Restore: uygulama açılışında kayıt çözülür ve token'ın exp claim'ine
// bakılır — süresi geçmiş veya bozuk token'la "yarı açık" oturum taşımak
// yerine kayıt silinir ve kullanıcı login ekranına düşer.
package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/neighbus/neighbus/database"
	"github.com/neighbus/neighbus/models"
	"github.com/neighbus/neighbus/pkg"
	"github.com/neighbus/neighbus/pkg/crypto"
	"github.com/neighbus/neighbus/pkg/logger"
)

// kv anahtarları.
const (
	kvKeySession = "session"
	kvKeySalt    = "session_salt"
)

// Manager, aktif oturumu tutan ve persist eden yapı.
// Tüm metodlar thread-safe'dir — UI goroutine'i ile ws/api goroutine'leri
// aynı anda okuyabilir.
type Manager struct {
	mu      sync.RWMutex
	current *models.Session

	kv  database.KVStore
	key []byte // scrypt ile türetilmiş AES-256 anahtarı
}

// NewManager, constructor. Salt'ı yükler (yoksa üretip kaydeder) ve
// şifreleme anahtarını türetir. Oturum restore ETMEZ — onu main.go
// açılış sırasında Restore() ile ayrıca yapar.
func NewManager(ctx context.Context, kv database.KVStore, passphrase string) (*Manager, error) {
	salt, err := loadOrCreateSalt(ctx, kv)
	if err != nil {
		return nil, err
	}

	key, err := crypto.DeriveKey(passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("session key derivation: %w", err)
	}

	return &Manager{kv: kv, key: key}, nil
}

// Establish, login/signup başarısında oturumu kurar ve persist eder.
// Var olan oturumun üzerine yazar (yeniden login senaryosu).
func (m *Manager) Establish(ctx context.Context, s models.Session) error {
	data, err := json.Marshal(&s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	encrypted, err := crypto.Encrypt(string(data), m.key)
	if err != nil {
		return fmt.Errorf("encrypt session: %w", err)
	}

	if err := m.kv.Set(ctx, kvKeySession, encrypted); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()

	logger.L.Infof("[session] established for user %s", s.Username)
	return nil
}

// Clear, oturumu bellekten ve store'dan siler (logout).
// Kayıt yoksa da başarılıdır — idempotent.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.kv.Delete(ctx, kvKeySession); err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	logger.L.Info("[session] cleared")
	return nil
}

// Restore, persist edilmiş oturumu açılışta geri yükler.
// Dönen bool oturumun geri yüklenip yüklenmediğini söyler:
// kayıt yok, çözülemedi veya token süresi geçmiş → (false, nil) + stale kayıt silinir.
// Yalnızca store erişim hataları error olarak döner.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	encrypted, err := m.kv.Get(ctx, kvKeySession)
	if errors.Is(err, database.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read persisted session: %w", err)
	}

	plaintext, err := crypto.Decrypt(encrypted, m.key)
	if err != nil {
		// Passphrase değişmiş veya kayıt bozulmuş — stale kaydı taşıma.
		logger.L.Warnf("[session] discarding undecryptable session record: %v", err)
		return false, m.kv.Delete(ctx, kvKeySession)
	}

	var s models.Session
	if err := json.Unmarshal([]byte(plaintext), &s); err != nil {
		logger.L.Warnf("[session] discarding unparsable session record: %v", err)
		return false, m.kv.Delete(ctx, kvKeySession)
	}

	if expired, reason := tokenExpired(s.AuthToken); expired {
		logger.L.Infof("[session] discarding stale session for %s: %s", s.Username, reason)
		return false, m.kv.Delete(ctx, kvKeySession)
	}

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()

	logger.L.Infof("[session] restored for user %s", s.Username)
	return true, nil
}

// Current, aktif oturumun kopyasını döner.
// Kopya döner — çağıranlar Manager'ın iç state'ini mutate edemez.
func (m *Manager) Current() (models.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return models.Session{}, false
	}
	return *m.current, true
}

// Token, api.TokenSource implementasyonu — her HTTP isteğine eklenen bearer token.
// Oturum yoksa boş string döner; api katmanı o zaman Authorization header'ı eklemez.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return ""
	}
	return m.current.AuthToken
}

// Require, oturum gerektiren işlemlerin ortak precondition kontrolü.
// Oturum yoksa ErrUnauthenticated — network çağrısı yapılmadan önce döner.
func (m *Manager) Require() (models.Session, error) {
	s, ok := m.Current()
	if !ok {
		return models.Session{}, pkg.ErrUnauthenticated
	}
	return s, nil
}

// tokenExpired, JWT'nin exp claim'ini İMZA DOĞRULAMADAN okur.
// İmza doğrulaması backend'in işidir (secret client'ta yoktur) —
// buradaki kontrol sadece süresi geçmiş token'la açılış yapmamak için.
func tokenExpired(token string) (bool, string) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true, fmt.Sprintf("malformed token: %v", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true, fmt.Sprintf("bad exp claim: %v", err)
	}
	if exp == nil {
		// exp claim'i olmayan token süresiz kabul edilir
		return false, ""
	}

	if time.Now().After(exp.Time) {
		return true, "token expired at " + exp.Time.Format(time.RFC3339)
	}
	return false, ""
}

// loadOrCreateSalt, scrypt salt'ını kv'den okur; ilk çalıştırmada üretip kaydeder.
func loadOrCreateSalt(ctx context.Context, kv database.KVStore) ([]byte, error) {
	encoded, err := kv.Get(ctx, kvKeySalt)
	if err == nil {
		salt, decodeErr := base64.StdEncoding.DecodeString(encoded)
		if decodeErr != nil {
			return nil, fmt.Errorf("decode stored salt: %w", decodeErr)
		}
		return salt, nil
	}
	if !errors.Is(err, database.ErrKeyNotFound) {
		return nil, fmt.Errorf("read salt: %w", err)
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return nil, err
	}
	if err := kv.Set(ctx, kvKeySalt, base64.StdEncoding.EncodeToString(salt)); err != nil {
		return nil, fmt.Errorf("persist salt: %w", err)
	}
	return salt, nil
}
