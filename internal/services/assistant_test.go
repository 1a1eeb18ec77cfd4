package services

import (
	"context"
	"errors"
)

// fakeAssistant is the deterministic stand-in for the language model used
// across the service tests.
type fakeAssistant struct {
	cardsText  string
	cardsErr   error
	hintText   string
	hintErr    error
	judgeSame  bool
	judgeErr   error
	tutorReply string
	tutorErr   error

	generateCalls int
	lastNum       int
	lastTopic     string
	lastGrade     int
	hintCalls     int
	judgeCalls    int
	tutorCalls    int
}

var errFakeDown = errors.New("model unavailable")

func (f *fakeAssistant) GenerateCards(ctx context.Context, num int, topic string, grade int) (string, error) {
	f.generateCalls++
	f.lastNum = num
	f.lastTopic = topic
	f.lastGrade = grade
	return f.cardsText, f.cardsErr
}

func (f *fakeAssistant) GenerateHint(ctx context.Context, question, answer string) (string, error) {
	f.hintCalls++
	return f.hintText, f.hintErr
}

func (f *fakeAssistant) JudgeEquivalence(ctx context.Context, userAnswer, expected string) (bool, error) {
	f.judgeCalls++
	return f.judgeSame, f.judgeErr
}

func (f *fakeAssistant) Tutor(ctx context.Context, question, cardQuestion, cardAnswer string) (string, error) {
	f.tutorCalls++
	return f.tutorReply, f.tutorErr
}
