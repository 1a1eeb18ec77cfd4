package services

import (
	"regexp"
	"strings"

	"flashquest-backend/internal/models"
)

// HintFunc supplies the hint for a finalized question/answer pair. It is
// called synchronously once per card, in source order.
type HintFunc func(question, answer string) string

var (
	questionPattern = regexp.MustCompile(`(?i)^question\s*:`)
	answerPattern   = regexp.MustCompile(`(?i)^answer\s*:`)
)

// ParseFlashcards converts raw model output into cards. The expected shape is
// repeated "Question: ..." / "Answer: ..." blocks. A stray line extends the
// question while no answer text has arrived, or the answer while no question
// is pending; anything else, including trailing text after a complete pair,
// is dropped. A pair is finalized only when both question and answer are
// non-empty, so dangling halves yield no card.
func ParseFlashcards(raw string, grade int, hint HintFunc) []models.Flashcard {
	cards := []models.Flashcard{}
	if strings.TrimSpace(raw) == "" {
		return cards
	}

	var question, answer string
	finalize := func() {
		cards = append(cards, models.Flashcard{
			Question: question,
			Answer:   answer,
			Hint:     hint(question, answer),
			Grade:    grade,
		})
	}

	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case questionPattern.MatchString(line):
			if question != "" && answer != "" {
				finalize()
			}
			question = afterColon(line)
			answer = ""
		case answerPattern.MatchString(line):
			answer = afterColon(line)
		default:
			if question != "" && answer == "" {
				question += " " + line
			} else if answer != "" && question == "" {
				answer += " " + line
			}
		}
	}

	if question != "" && answer != "" {
		finalize()
	}

	return cards
}

func afterColon(line string) string {
	_, rest, _ := strings.Cut(line, ":")
	return strings.TrimSpace(rest)
}
