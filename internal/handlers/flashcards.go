package handlers

import (
	"encoding/json"
	"html/template"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"flashquest-backend/internal/middleware"
	"flashquest-backend/internal/models"
	"flashquest-backend/internal/repository"
	"flashquest-backend/internal/services"
)

type FlashcardHandler struct {
	playerRepo *repository.PlayerRepo
	flashcards *services.FlashcardService
	sessions   *services.SessionStore
	renderer   *Renderer
	maxUpload  int64
}

func NewFlashcardHandler(playerRepo *repository.PlayerRepo, flashcards *services.FlashcardService, sessions *services.SessionStore, renderer *Renderer, maxUploadMB int) *FlashcardHandler {
	return &FlashcardHandler{
		playerRepo: playerRepo,
		flashcards: flashcards,
		sessions:   sessions,
		renderer:   renderer,
		maxUpload:  int64(maxUploadMB) << 20,
	}
}

type homePageData struct {
	Player    *models.Player
	Grades    []int
	Cards     []models.Flashcard
	CardsJSON template.JS
	Total     int
	Score     int
}

type uploadPageData struct {
	Error string
}

// Home renders the generator form and, on POST, a fresh deck. The streak
// rule runs on every load for the logged-in player.
func (h *FlashcardHandler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	playerID := middleware.GetPlayerID(ctx)

	player, err := h.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	var lastActive time.Time
	if player.LastActive != nil {
		lastActive = *player.LastActive
	}
	if streak, last, changed := services.AdvanceStreak(player.Streak, lastActive, time.Now()); changed {
		if err := h.playerRepo.SetStreak(ctx, playerID, streak, last); err != nil {
			log.Printf("failed to update streak for %s: %v", playerID, err)
		} else {
			player.Streak = streak
			player.LastActive = &last
		}
	}

	data := homePageData{Player: player, Grades: gradeLevels()}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err == nil {
			num, err := strconv.Atoi(r.FormValue("num_flashcards"))
			if err != nil {
				num = services.DefaultCardCount
			}
			grade, err := strconv.Atoi(r.FormValue("grade_level"))
			if err != nil || grade < 1 || grade > 12 {
				grade = 1
			}
			topic := strings.TrimSpace(r.FormValue("prompt"))

			if topic != "" {
				cards := h.flashcards.GenerateFromTopic(ctx, num, topic, grade)
				h.startRound(r, strconv.Itoa(grade), len(cards))
				data.Cards = cards
				data.Total = len(cards)
			}
		}
	}

	data.CardsJSON = cardsJSON(data.Cards)
	h.renderer.Render(w, "index.html", data)
}

func (h *FlashcardHandler) UploadPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, "upload_pdf.html", uploadPageData{})
}

// UploadPDF builds a fixed five-card deck at the PDF grade level from the
// uploaded document's leading text.
func (h *FlashcardHandler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		h.renderer.Render(w, "upload_pdf.html", uploadPageData{Error: "Upload failed. The file may be too large."})
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		h.renderer.Render(w, "upload_pdf.html", uploadPageData{Error: "Please choose a PDF file."})
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		h.renderer.Render(w, "upload_pdf.html", uploadPageData{Error: "Only .pdf files are supported."})
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		h.renderer.Render(w, "upload_pdf.html", uploadPageData{Error: "Could not read that file."})
		return
	}

	cards, err := h.flashcards.GenerateFromPDF(ctx, raw)
	if err != nil {
		log.Printf("pdf extraction failed: %v", err)
		h.renderer.Render(w, "upload_pdf.html", uploadPageData{Error: "Could not extract text from that PDF."})
		return
	}

	h.startRound(r, strconv.Itoa(services.PDFGrade), len(cards))

	player, err := h.playerRepo.GetByID(ctx, middleware.GetPlayerID(ctx))
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	data := homePageData{
		Player:    player,
		Grades:    gradeLevels(),
		Cards:     cards,
		CardsJSON: cardsJSON(cards),
		Total:     len(cards),
	}
	h.renderer.Render(w, "index.html", data)
}

func (h *FlashcardHandler) startRound(r *http.Request, grade string, total int) {
	sessionID := middleware.GetSessionID(r.Context())
	if err := h.sessions.StartRound(r.Context(), sessionID, grade, total); err != nil {
		log.Printf("failed to start round for session %s: %v", sessionID, err)
	}
}

func gradeLevels() []int {
	grades := make([]int, 0, 12)
	for g := 1; g <= 12; g++ {
		grades = append(grades, g)
	}
	return grades
}

func cardsJSON(cards []models.Flashcard) template.JS {
	if cards == nil {
		cards = []models.Flashcard{}
	}
	b, err := json.Marshal(cards)
	if err != nil {
		return template.JS("[]")
	}
	return template.JS(b)
}
