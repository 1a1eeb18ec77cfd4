package services

import (
	"context"
	"log"

	"flashquest-backend/internal/models"
)

const (
	// DefaultCardCount is used when the requested count is not a valid
	// positive integer.
	DefaultCardCount = 5

	// PDFGrade is the fixed grade level for cards generated from an
	// uploaded document.
	PDFGrade = 10

	// PDFExcerptRunes caps how much extracted text goes into the prompt.
	PDFExcerptRunes = 3000

	fallbackHint = "Think carefully!"
)

// FlashcardService runs the generation flow: one completion call for the
// deck, then one hint call per parsed card. AI failures never reach the
// caller; a failed generation simply yields zero cards.
type FlashcardService struct {
	assistant Assistant
	extract   *FileExtractService
}

func NewFlashcardService(assistant Assistant, extract *FileExtractService) *FlashcardService {
	return &FlashcardService{assistant: assistant, extract: extract}
}

func (s *FlashcardService) GenerateFromTopic(ctx context.Context, num int, topic string, grade int) []models.Flashcard {
	if num <= 0 {
		num = DefaultCardCount
	}

	raw, err := s.assistant.GenerateCards(ctx, num, topic, grade)
	if err != nil {
		log.Printf("flashcard generation failed: %v", err)
		raw = ""
	}

	return ParseFlashcards(raw, grade, s.hintFor(ctx))
}

// GenerateFromPDF extracts text from an uploaded PDF and generates a fixed
// five-card deck at the PDF grade level from the leading excerpt.
func (s *FlashcardService) GenerateFromPDF(ctx context.Context, data []byte) ([]models.Flashcard, error) {
	text, err := s.extract.ExtractPDF(data)
	if err != nil {
		return nil, err
	}

	return s.GenerateFromTopic(ctx, DefaultCardCount, truncateRunes(text, PDFExcerptRunes), PDFGrade), nil
}

func (s *FlashcardService) hintFor(ctx context.Context) HintFunc {
	return func(question, answer string) string {
		hint, err := s.assistant.GenerateHint(ctx, question, answer)
		if err != nil || hint == "" {
			return fallbackHint
		}
		return hint
	}
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
