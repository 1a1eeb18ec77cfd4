package services

import (
	"context"
	"strconv"
	"strings"
)

// Grader checks a free-text answer against the expected one. Cheap
// deterministic checks run first; the language model is consulted only for
// ambiguous free text, and a failed consultation counts as incorrect.
type Grader struct {
	assistant Assistant
}

func NewGrader(assistant Assistant) *Grader {
	return &Grader{assistant: assistant}
}

func (g *Grader) IsCorrect(ctx context.Context, userAnswer, expected string) bool {
	trimmed := strings.TrimSpace(userAnswer)
	if trimmed == "" {
		return false
	}

	if strings.EqualFold(trimmed, strings.TrimSpace(expected)) {
		return true
	}

	same, err := g.assistant.JudgeEquivalence(ctx, userAnswer, expected)
	if err != nil {
		return false
	}
	return same
}

// PointsForGrade maps a stored grade level to a point award. Round state only
// ever stores grades clamped to 1-12, so anything unparseable or below 1
// normalizes to one point instead of a zero or negative award.
func PointsForGrade(grade string) int {
	n, err := strconv.Atoi(strings.TrimSpace(grade))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
