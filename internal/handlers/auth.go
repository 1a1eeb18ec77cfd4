package handlers

import (
	"errors"
	"log"
	"net/http"

	"flashquest-backend/internal/middleware"
	"flashquest-backend/internal/models"
	"flashquest-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	sessions    *services.SessionStore
	cookies     *middleware.SessionAuth
	renderer    *Renderer
}

func NewAuthHandler(authService *services.AuthService, sessions *services.SessionStore, cookies *middleware.SessionAuth, renderer *Renderer) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		cookies:     cookies,
		renderer:    renderer,
	}
}

type authPageData struct {
	Error string
}

func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, "signup.html", authPageData{})
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, "signup.html", authPageData{Error: "Invalid form submission."})
		return
	}

	req := models.SignupRequest{
		Email:    r.FormValue("email"),
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	player, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		h.renderer.Render(w, "signup.html", authPageData{Error: userMessage(err)})
		return
	}

	h.establishSession(w, r, player)
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, "login.html", authPageData{})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, "login.html", authPageData{Error: "Invalid form submission."})
		return
	}

	req := models.LoginRequest{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	player, err := h.authService.Login(r.Context(), req)
	if err != nil {
		var unauthorized *services.UnauthorizedError
		if errors.As(err, &unauthorized) {
			h.renderer.Render(w, "login.html", authPageData{Error: unauthorized.Message})
			return
		}
		h.renderer.Render(w, "login.html", authPageData{Error: "Something went wrong. Please try again."})
		return
	}

	h.establishSession(w, r, player)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	if err := h.sessions.Destroy(r.Context(), sessionID); err != nil {
		log.Printf("failed to destroy session %s: %v", sessionID, err)
	}
	h.cookies.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) establishSession(w http.ResponseWriter, r *http.Request, player *models.Player) {
	sessionID, err := h.sessions.Create(r.Context(), player.ID)
	if err != nil {
		log.Printf("failed to create session for %s: %v", player.ID, err)
		h.renderer.Render(w, "login.html", authPageData{Error: "Something went wrong. Please try again."})
		return
	}

	if err := h.cookies.IssueCookie(w, player.ID, sessionID); err != nil {
		log.Printf("failed to issue session cookie: %v", err)
		h.renderer.Render(w, "login.html", authPageData{Error: "Something went wrong. Please try again."})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// userMessage keeps validation and conflict messages user-visible and hides
// everything else behind a generic line.
func userMessage(err error) string {
	var validation *services.ValidationError
	if errors.As(err, &validation) {
		return validation.Message
	}
	var conflict *services.ConflictError
	if errors.As(err, &conflict) {
		return conflict.Message
	}
	return "Something went wrong. Please try again."
}
