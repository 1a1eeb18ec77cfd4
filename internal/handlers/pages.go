package handlers

import (
	"log"
	"net/http"

	"flashquest-backend/internal/models"
	"flashquest-backend/internal/repository"
)

type PageHandler struct {
	playerRepo *repository.PlayerRepo
	renderer   *Renderer
}

func NewPageHandler(playerRepo *repository.PlayerRepo, renderer *Renderer) *PageHandler {
	return &PageHandler{playerRepo: playerRepo, renderer: renderer}
}

type leaderboardEntry struct {
	Rank   int
	Player models.Player
}

type leaderboardPageData struct {
	Entries []leaderboardEntry
}

func (h *PageHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerRepo.ListByPoints(r.Context())
	if err != nil {
		log.Printf("failed to load leaderboard: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	entries := make([]leaderboardEntry, 0, len(players))
	for i, p := range players {
		entries = append(entries, leaderboardEntry{Rank: i + 1, Player: p})
	}

	h.renderer.Render(w, "leaderboard.html", leaderboardPageData{Entries: entries})
}

func (h *PageHandler) Brainbreak(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, "brainbreak.html", nil)
}
