package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeVerifier struct {
	live bool
	err  error
}

func (f *fakeVerifier) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return f.live, f.err
}

func issueTestCookie(t *testing.T, auth *SessionAuth, playerID, sessionID uuid.UUID) *http.Cookie {
	t.Helper()

	rr := httptest.NewRecorder()
	if err := auth.IssueCookie(rr, playerID, sessionID); err != nil {
		t.Fatalf("Failed to issue cookie: %v", err)
	}

	cookies := rr.Result().Cookies()
	for _, c := range cookies {
		if c.Name == SessionCookie {
			return c
		}
	}
	t.Fatal("Session cookie not set")
	return nil
}

func TestSessionAuth_CookieRoundTrip(t *testing.T) {
	auth := NewSessionAuth("test-secret", &fakeVerifier{live: true}, time.Hour)
	playerID := uuid.New()
	sessionID := uuid.New()

	cookie := issueTestCookie(t, auth, playerID, sessionID)
	if !cookie.HttpOnly {
		t.Error("Session cookie must be HttpOnly")
	}

	var gotPlayer, gotSession uuid.UUID
	handler := auth.RequirePage(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPlayer = GetPlayerID(r.Context())
		gotSession = GetSessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if gotPlayer != playerID {
		t.Errorf("Expected player id %s in context, got %s", playerID, gotPlayer)
	}
	if gotSession != sessionID {
		t.Errorf("Expected session id %s in context, got %s", sessionID, gotSession)
	}
}

func TestSessionAuth_RequirePage_RedirectsWithoutCookie(t *testing.T) {
	auth := NewSessionAuth("test-secret", &fakeVerifier{live: true}, time.Hour)

	handler := auth.RequirePage(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not run without a session")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("Expected redirect, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "/login" {
		t.Errorf("Expected redirect to /login, got %q", loc)
	}
}

func TestSessionAuth_DestroyedSessionInvalidatesCookie(t *testing.T) {
	verifier := &fakeVerifier{live: false}
	auth := NewSessionAuth("test-secret", verifier, time.Hour)

	cookie := issueTestCookie(t, auth, uuid.New(), uuid.New())

	handler := auth.RequireJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not run for a destroyed session")
	}))

	req := httptest.NewRequest(http.MethodPost, "/check_answer", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", rr.Code)
	}
}

func TestSessionAuth_RejectsForgedToken(t *testing.T) {
	issuer := NewSessionAuth("secret-one", &fakeVerifier{live: true}, time.Hour)
	verifier := NewSessionAuth("secret-two", &fakeVerifier{live: true}, time.Hour)

	cookie := issueTestCookie(t, issuer, uuid.New(), uuid.New())

	handler := verifier.RequirePage(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler should not run for a token signed with another secret")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("Expected redirect for forged token, got %d", rr.Code)
	}
}
