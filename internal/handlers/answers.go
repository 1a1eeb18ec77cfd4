package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"flashquest-backend/internal/middleware"
	"flashquest-backend/internal/models"
	"flashquest-backend/internal/repository"
	"flashquest-backend/internal/services"
)

const tutorFallbackReply = "Couldn't make an answer now."

type AnswerHandler struct {
	grader     *services.Grader
	assistant  services.Assistant
	sessions   *services.SessionStore
	playerRepo *repository.PlayerRepo
}

func NewAnswerHandler(grader *services.Grader, assistant services.Assistant, sessions *services.SessionStore, playerRepo *repository.PlayerRepo) *AnswerHandler {
	return &AnswerHandler{
		grader:     grader,
		assistant:  assistant,
		sessions:   sessions,
		playerRepo: playerRepo,
	}
}

// CheckAnswer grades one answer. A correct answer awards points equal to the
// round's grade level and bumps the session score.
func (h *AnswerHandler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	var req models.CheckAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body"))
		return
	}

	ctx := r.Context()
	correct := h.grader.IsCorrect(ctx, req.UserAnswer, req.CorrectAnswer)

	if correct {
		sessionID := middleware.GetSessionID(ctx)
		playerID := middleware.GetPlayerID(ctx)

		grade := "1"
		if sess, err := h.sessions.Get(ctx, sessionID); err == nil {
			grade = sess.Grade
		}

		if err := h.playerRepo.AddPoints(ctx, playerID, services.PointsForGrade(grade)); err != nil {
			log.Printf("failed to award points to %s: %v", playerID, err)
		}
		if err := h.sessions.RecordCorrect(ctx, sessionID); err != nil {
			log.Printf("failed to record score for session %s: %v", sessionID, err)
		}
	}

	writeJSON(w, http.StatusOK, models.CheckAnswerResponse{Correct: correct})
}

// AskQuestion returns a free-form tutoring reply about the current card. AI
// failures degrade to a placeholder reply.
func (h *AnswerHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.AskQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body"))
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeJSON(w, http.StatusOK, models.AskQuestionResponse{Answer: tutorFallbackReply})
		return
	}

	reply, err := h.assistant.Tutor(r.Context(), question, req.Flashcard.Question, req.Flashcard.Answer)
	if err != nil || reply == "" {
		reply = tutorFallbackReply
	}

	writeJSON(w, http.StatusOK, models.AskQuestionResponse{Answer: reply})
}
