package session

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestManager() *Manager {
	return NewManager(nil, "test-secret-key", 24*time.Hour)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	m := newTestManager()
	sid := "0b5c9f3e-8a1d-4f6b-9c2e-7d4a1b3c5e6f"

	value := m.Sign(sid)
	if !strings.HasPrefix(value, sid+".") {
		t.Fatalf("signed value does not embed the session id: %q", value)
	}
	got, ok := m.Verify(value)
	if !ok {
		t.Fatal("verification failed for a freshly signed value")
	}
	if got != sid {
		t.Fatalf("expected sid %q, got %q", sid, got)
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	m := newTestManager()
	value := m.Sign("0b5c9f3e-8a1d-4f6b-9c2e-7d4a1b3c5e6f")

	tests := []struct {
		name  string
		value string
	}{
		{"swapped id", "deadbeef-0000-0000-0000-000000000000" + value[strings.LastIndex(value, "."):]},
		{"clipped signature", value[:len(value)-2]},
		{"no separator", strings.ReplaceAll(value, ".", "")},
		{"empty", ""},
		{"bare dot", "."},
	}
	for _, tt := range tests {
		if _, ok := m.Verify(tt.value); ok {
			t.Errorf("%s: tampered value verified", tt.name)
		}
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	ours := newTestManager()
	theirs := NewManager(nil, "another-secret", 24*time.Hour)

	value := theirs.Sign("0b5c9f3e-8a1d-4f6b-9c2e-7d4a1b3c5e6f")
	if _, ok := ours.Verify(value); ok {
		t.Fatal("value signed with a different secret verified")
	}
}

func TestFlashEncodeDecodeRoundTrip(t *testing.T) {
	in := []Flash{
		{Kind: "success", Message: "Welcome back!"},
		{Kind: "error", Message: "Cannot find that listing"},
	}
	encoded := make([]string, 0, len(in))
	for _, f := range in {
		s, err := encodeFlash(f)
		if err != nil {
			t.Fatalf("encodeFlash: %v", err)
		}
		encoded = append(encoded, s)
	}

	out := decodeFlashes(encoded)
	if len(out) != len(in) {
		t.Fatalf("expected %d flashes, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("flash %d: got %+v, want %+v", i, out[i], in[i])
		}
	}
}

func TestDecodeFlashesSkipsGarbage(t *testing.T) {
	good, err := encodeFlash(Flash{Kind: "success", Message: "ok"})
	if err != nil {
		t.Fatalf("encodeFlash: %v", err)
	}
	out := decodeFlashes([]string{"not json", good, "{broken"})
	if len(out) != 1 {
		t.Fatalf("expected 1 decodable flash, got %d", len(out))
	}
	if out[0].Message != "ok" {
		t.Fatalf("wrong flash survived: %+v", out[0])
	}
}

func TestWriteCookieAttributes(t *testing.T) {
	m := newTestManager()
	w := httptest.NewRecorder()
	m.WriteCookie(w, "0b5c9f3e-8a1d-4f6b-9c2e-7d4a1b3c5e6f")

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName {
		t.Errorf("cookie name %q", c.Name)
	}
	if !c.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
	if c.Path != "/" {
		t.Errorf("cookie path %q", c.Path)
	}
	if c.MaxAge != int((24 * time.Hour).Seconds()) {
		t.Errorf("cookie max age %d", c.MaxAge)
	}
	if _, ok := m.Verify(c.Value); !ok {
		t.Error("cookie value does not verify")
	}
}

func TestClearCookieExpires(t *testing.T) {
	m := newTestManager()
	w := httptest.NewRecorder()
	m.ClearCookie(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Fatalf("expected negative max age, got %d", cookies[0].MaxAge)
	}
}
