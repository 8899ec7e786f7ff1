package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"wanderstay/internal/models"
)

const CookieName = "session_id"

// Flash is a one-time notification surfaced on the next rendered page.
type Flash struct {
	Kind    string `json:"kind"` // "success" or "error"
	Message string `json:"message"`
}

// Manager keeps login state, flash messages and the captured intended
// destination in Redis, one key set per session id. Anonymous visitors get
// a session too (user id 0) so that flashes work before login.
type Manager struct {
	rdb      *redis.Client
	secret   []byte
	lifetime time.Duration
}

func NewManager(rdb *redis.Client, secret string, lifetime time.Duration) *Manager {
	return &Manager{rdb: rdb, secret: []byte(secret), lifetime: lifetime}
}

func sessionKey(sid string) string  { return fmt.Sprintf("session:%s", sid) }
func flashKey(sid string) string    { return fmt.Sprintf("flash:%s", sid) }
func redirectKey(sid string) string { return fmt.Sprintf("redirect:%s", sid) }

// Create opens a new session for the given user id; 0 means anonymous.
func (m *Manager) Create(ctx context.Context, userID int) (string, error) {
	sid := uuid.New().String()
	if err := m.rdb.Set(ctx, sessionKey(sid), userID, m.lifetime).Err(); err != nil {
		return "", fmt.Errorf("session: create: %w", err)
	}
	return sid, nil
}

// UserID resolves a session id to the logged-in user, or 0 for anonymous.
func (m *Manager) UserID(ctx context.Context, sid string) (int, error) {
	val, err := m.rdb.Get(ctx, sessionKey(sid)).Result()
	if err == redis.Nil {
		return 0, models.ErrNoSession
	}
	if err != nil {
		return 0, fmt.Errorf("session: lookup: %w", err)
	}
	uid, err := strconv.Atoi(val)
	if err != nil {
		return 0, models.ErrNoSession
	}
	return uid, nil
}

// Elevate replaces an anonymous session with an authenticated one. The
// session id is rotated; pending flashes and the captured destination move
// to the new id.
func (m *Manager) Elevate(ctx context.Context, oldSID string, userID int) (string, error) {
	sid, err := m.Create(ctx, userID)
	if err != nil {
		return "", err
	}
	if oldSID != "" {
		// Best effort: RENAME fails when the source key does not exist.
		m.rdb.Rename(ctx, flashKey(oldSID), flashKey(sid))
		m.rdb.Rename(ctx, redirectKey(oldSID), redirectKey(sid))
		m.rdb.Del(ctx, sessionKey(oldSID))
	}
	return sid, nil
}

// Destroy terminates a session and everything attached to it. Destroying a
// session that is already gone is not an error.
func (m *Manager) Destroy(ctx context.Context, sid string) error {
	return m.rdb.Del(ctx, sessionKey(sid), flashKey(sid), redirectKey(sid)).Err()
}

// AddFlash queues a one-time message for the next rendered page.
func (m *Manager) AddFlash(ctx context.Context, sid, kind, message string) error {
	data, err := encodeFlash(Flash{Kind: kind, Message: message})
	if err != nil {
		return err
	}
	pipe := m.rdb.TxPipeline()
	pipe.RPush(ctx, flashKey(sid), data)
	pipe.Expire(ctx, flashKey(sid), m.lifetime)
	_, err = pipe.Exec(ctx)
	return err
}

// PopFlashes returns queued flashes and clears them.
func (m *Manager) PopFlashes(ctx context.Context, sid string) ([]Flash, error) {
	vals, err := m.rdb.LRange(ctx, flashKey(sid), 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	m.rdb.Del(ctx, flashKey(sid))
	return decodeFlashes(vals), nil
}

// SetRedirect captures the destination a visitor was heading to before
// being bounced to the login page.
func (m *Manager) SetRedirect(ctx context.Context, sid, path string) error {
	return m.rdb.Set(ctx, redirectKey(sid), path, m.lifetime).Err()
}

// PopRedirect returns the captured destination (empty when none) and
// clears it.
func (m *Manager) PopRedirect(ctx context.Context, sid string) (string, error) {
	val, err := m.rdb.GetDel(ctx, redirectKey(sid)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func encodeFlash(f Flash) (string, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeFlashes(vals []string) []Flash {
	flashes := []Flash{}
	for _, v := range vals {
		var f Flash
		if err := json.Unmarshal([]byte(v), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes
}

// ----------------------------
// Cookie handling
// ----------------------------

// Sign produces the cookie value "sid.signature" so a tampered id never
// reaches Redis.
func (m *Manager) Sign(sid string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(sid))
	return sid + "." + hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a cookie value and returns the embedded session id.
func (m *Manager) Verify(value string) (string, bool) {
	i := strings.LastIndex(value, ".")
	if i <= 0 {
		return "", false
	}
	sid := value[:i]
	if !hmac.Equal([]byte(m.Sign(sid)), []byte(value)) {
		return "", false
	}
	return sid, true
}

// WriteCookie sets the signed session cookie.
func (m *Manager) WriteCookie(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    m.Sign(sid),
		Path:     "/",
		MaxAge:   int(m.lifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
