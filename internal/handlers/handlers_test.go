package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flashquest-backend/internal/models"
)

// ─── Wire format tests ───

func TestCheckAnswerRequest_Decoding(t *testing.T) {
	body := `{"user_answer": "chlorophyll", "correct_answer": "Chlorophyll"}`

	var req models.CheckAnswerRequest
	if err := json.NewDecoder(strings.NewReader(body)).Decode(&req); err != nil {
		t.Fatalf("Failed to decode request body: %v", err)
	}

	if req.UserAnswer != "chlorophyll" {
		t.Errorf("Expected user_answer 'chlorophyll', got %q", req.UserAnswer)
	}
	if req.CorrectAnswer != "Chlorophyll" {
		t.Errorf("Expected correct_answer 'Chlorophyll', got %q", req.CorrectAnswer)
	}
}

func TestAskQuestionRequest_Decoding(t *testing.T) {
	// The client posts the whole card; the server reads q and a.
	body := `{"question": "why?", "flashcard": {"q": "What is ATP?", "a": "Energy currency", "hint": "x", "grade": 7}}`

	var req models.AskQuestionRequest
	if err := json.NewDecoder(strings.NewReader(body)).Decode(&req); err != nil {
		t.Fatalf("Failed to decode request body: %v", err)
	}

	if req.Question != "why?" {
		t.Errorf("Expected question 'why?', got %q", req.Question)
	}
	if req.Flashcard.Question != "What is ATP?" || req.Flashcard.Answer != "Energy currency" {
		t.Errorf("Flashcard fields not decoded: %+v", req.Flashcard)
	}
}

func TestFlashcard_WireKeys(t *testing.T) {
	card := models.Flashcard{Question: "Q?", Answer: "A", Hint: "H", Grade: 3}

	b, err := json.Marshal(card)
	if err != nil {
		t.Fatalf("Failed to marshal card: %v", err)
	}

	var raw map[string]interface{}
	json.Unmarshal(b, &raw)

	for _, key := range []string{"q", "a", "hint", "grade"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Expected wire key %q in %s", key, b)
		}
	}
}

// ─── Helper tests ───

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusOK, models.CheckAnswerResponse{Correct: true})

	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", rr.Header().Get("Content-Type"))
	}

	var resp models.CheckAnswerResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Correct {
		t.Error("Expected correct=true in response")
	}
}

func TestErrorResp_Envelope(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body"))

	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("Expected code VALIDATION_ERROR, got %q", resp.Error.Code)
	}
}

func TestGradeLevels(t *testing.T) {
	grades := gradeLevels()

	if len(grades) != 12 {
		t.Fatalf("Expected 12 grade levels, got %d", len(grades))
	}
	if grades[0] != 1 || grades[11] != 12 {
		t.Errorf("Expected grades 1..12, got %v", grades)
	}
}

func TestCardsJSON(t *testing.T) {
	cards := []models.Flashcard{{Question: "Q?", Answer: "A", Hint: "H", Grade: 2}}

	js := string(cardsJSON(cards))

	var parsed []models.Flashcard
	if err := json.NewDecoder(bytes.NewReader([]byte(js))).Decode(&parsed); err != nil {
		t.Fatalf("cardsJSON did not produce valid JSON: %v", err)
	}
	if len(parsed) != 1 || parsed[0].Question != "Q?" {
		t.Errorf("Round trip lost data: %v", parsed)
	}

	if got := string(cardsJSON(nil)); got != "[]" {
		t.Errorf("Expected empty deck to serialize as [], got %q", got)
	}
}
