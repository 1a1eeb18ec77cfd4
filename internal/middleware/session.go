package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const (
	PlayerIDKey  contextKey = "player_id"
	SessionIDKey contextKey = "session_id"
)

const SessionCookie = "flashquest_session"

// SessionVerifier checks that a session id still exists in the session
// store, so logging out invalidates the cookie immediately.
type SessionVerifier interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// SessionAuth issues and validates the session cookie: an HS256 JWT carrying
// the player id and an opaque session id.
type SessionAuth struct {
	secret   []byte
	sessions SessionVerifier
	ttl      time.Duration
}

func NewSessionAuth(secret string, sessions SessionVerifier, ttl time.Duration) *SessionAuth {
	return &SessionAuth{secret: []byte(secret), sessions: sessions, ttl: ttl}
}

// IssueCookie sets the session cookie after signup or login.
func (a *SessionAuth) IssueCookie(w http.ResponseWriter, playerID, sessionID uuid.UUID) error {
	claims := jwt.MapClaims{
		"player_id":  playerID.String(),
		"session_id": sessionID.String(),
		"exp":        time.Now().Add(a.ttl).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(a.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the session cookie at logout.
func (a *SessionAuth) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *SessionAuth) authenticate(r *http.Request) (playerID, sessionID uuid.UUID, ok bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}

	token, err := jwt.Parse(cookie.Value, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, uuid.Nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}

	playerStr, _ := claims["player_id"].(string)
	sessionStr, _ := claims["session_id"].(string)

	playerID, err = uuid.Parse(playerStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	sessionID, err = uuid.Parse(sessionStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}

	live, err := a.sessions.Exists(r.Context(), sessionID)
	if err != nil || !live {
		return uuid.Nil, uuid.Nil, false
	}

	return playerID, sessionID, true
}

// RequirePage guards HTML routes; unauthenticated visitors are redirected to
// the login page.
func (a *SessionAuth) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID, sessionID, ok := a.authenticate(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), playerID, sessionID)))
	})
}

// RequireJSON guards the JSON endpoints with a 401 body instead of a
// redirect.
func (a *SessionAuth) RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID, sessionID, ok := a.authenticate(r)
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{
					"code":    "UNAUTHORIZED",
					"message": "Please log in.",
				},
			})
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), playerID, sessionID)))
	})
}

func withSession(ctx context.Context, playerID, sessionID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, PlayerIDKey, playerID)
	return context.WithValue(ctx, SessionIDKey, sessionID)
}

// GetPlayerID extracts the authenticated player id from the request context.
func GetPlayerID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(PlayerIDKey).(uuid.UUID)
	return id
}

// GetSessionID extracts the session id from the request context.
func GetSessionID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(SessionIDKey).(uuid.UUID)
	return id
}
