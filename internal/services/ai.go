package services

import (
	"context"
	"fmt"
	"strings"
)

// Assistant is the narrow surface the app needs from a language model. It
// exists so handlers and services can run against a deterministic fake in
// tests.
type Assistant interface {
	// GenerateCards returns the raw flashcard text for a topic.
	GenerateCards(ctx context.Context, num int, topic string, grade int) (string, error)
	// GenerateHint returns a short hint that does not reveal the answer.
	GenerateHint(ctx context.Context, question, answer string) (string, error)
	// JudgeEquivalence reports whether a free-text answer means the same
	// thing as the expected answer.
	JudgeEquivalence(ctx context.Context, userAnswer, expected string) (bool, error)
	// Tutor answers a student's follow-up question about a card.
	Tutor(ctx context.Context, question, cardQuestion, cardAnswer string) (string, error)
}

// completer is the single provider-specific operation: one blocking prompt,
// one text response. No retry, no timeout beyond the request context.
type completer interface {
	complete(ctx context.Context, prompt string) (string, error)
}

type languageModel struct {
	c completer
}

// NewAssistant builds the configured provider. The prompts are shared; only
// the transport differs.
func NewAssistant(provider, openAIKey, openAIModel, geminiKey string) (Assistant, error) {
	switch provider {
	case "openai":
		c, err := newOpenAICompleter(openAIKey, openAIModel)
		if err != nil {
			return nil, err
		}
		return &languageModel{c: c}, nil
	case "gemini":
		c, err := newGeminiCompleter(geminiKey)
		if err != nil {
			return nil, err
		}
		return &languageModel{c: c}, nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", provider)
	}
}

func (m *languageModel) GenerateCards(ctx context.Context, num int, topic string, grade int) (string, error) {
	raw, err := m.c.complete(ctx, buildCardsPrompt(num, topic, grade))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func (m *languageModel) GenerateHint(ctx context.Context, question, answer string) (string, error) {
	raw, err := m.c.complete(ctx, buildHintPrompt(question, answer))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func (m *languageModel) JudgeEquivalence(ctx context.Context, userAnswer, expected string) (bool, error) {
	raw, err := m.c.complete(ctx, buildEquivalencePrompt(userAnswer, expected))
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(raw)), "yes"), nil
}

func (m *languageModel) Tutor(ctx context.Context, question, cardQuestion, cardAnswer string) (string, error) {
	raw, err := m.c.complete(ctx, buildTutorPrompt(question, cardQuestion, cardAnswer))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

func buildCardsPrompt(num int, topic string, grade int) string {
	return fmt.Sprintf(
		"Make %d flashcards about '%s' for grade %d. "+
			"Format exactly like this:\nQuestion: <question>\nAnswer: <answer>\n\n"+
			"No extra text or numbering.",
		num, topic, grade,
	)
}

func buildHintPrompt(question, answer string) string {
	return fmt.Sprintf(
		"Give a short hint for the question '%s' with answer '%s' without giving it away.",
		question, answer,
	)
}

func buildEquivalencePrompt(userAnswer, expected string) string {
	return fmt.Sprintf("Is '%s' basically the same as '%s'? Answer yes or no.", userAnswer, expected)
}

func buildTutorPrompt(question, cardQuestion, cardAnswer string) string {
	return fmt.Sprintf(
		"Answer the student's question '%s' based on flashcard '%s' = '%s'",
		question, cardQuestion, cardAnswer,
	)
}
