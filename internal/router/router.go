package router

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"flashquest-backend/internal/handlers"
	"flashquest-backend/internal/middleware"
)

func New(
	sessionAuth *middleware.SessionAuth,
	authHandler *handlers.AuthHandler,
	flashcardHandler *handlers.FlashcardHandler,
	answerHandler *handlers.AnswerHandler,
	pageHandler *handlers.PageHandler,
	webDir string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Static assets
	staticDir := filepath.Join(webDir, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	// ──── Public routes ────
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)
	r.Get("/signup", authHandler.SignupPage)
	r.Post("/signup", authHandler.Signup)

	// ──── Authenticated pages ────
	r.Group(func(r chi.Router) {
		r.Use(sessionAuth.RequirePage)
		r.Get("/", flashcardHandler.Home)
		r.Post("/", flashcardHandler.Home)
		r.Get("/upload_pdf", flashcardHandler.UploadPage)
		r.Post("/upload_pdf", flashcardHandler.UploadPDF)
		r.Get("/leaderboard", pageHandler.Leaderboard)
		r.Get("/brainbreak", pageHandler.Brainbreak)
		r.Get("/logout", authHandler.Logout)
	})

	// ──── Authenticated JSON endpoints ────
	r.Group(func(r chi.Router) {
		r.Use(sessionAuth.RequireJSON)
		r.Post("/check_answer", answerHandler.CheckAnswer)
		r.Post("/ask_question", answerHandler.AskQuestion)
	})

	return r
}
