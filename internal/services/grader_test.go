package services

import (
	"context"
	"testing"
)

func TestGrader_DeterministicTiers(t *testing.T) {
	testCases := []struct {
		name          string
		userAnswer    string
		expected      string
		judgeSame     bool
		judgeErr      error
		wantCorrect   bool
		wantJudgeCall bool
	}{
		{"empty answer is incorrect", "", "Paris", true, nil, false, false},
		{"whitespace-only answer is incorrect", "   \t ", "Paris", true, nil, false, false},
		{"exact match", "Paris", "Paris", false, nil, true, false},
		{"case-insensitive match", "pArIs", "Paris", false, nil, true, false},
		{"surrounding whitespace ignored", "  Paris  ", " Paris\n", false, nil, true, false},
		{"model says equivalent", "the capital of France", "Paris", true, nil, true, true},
		{"model says different", "London", "Paris", false, nil, false, true},
		{"model failure defaults to incorrect", "the city of light", "Paris", true, errFakeDown, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeAssistant{judgeSame: tc.judgeSame, judgeErr: tc.judgeErr}
			grader := NewGrader(fake)

			correct := grader.IsCorrect(context.Background(), tc.userAnswer, tc.expected)

			if correct != tc.wantCorrect {
				t.Errorf("Expected correct=%v, got %v", tc.wantCorrect, correct)
			}

			wantCalls := 0
			if tc.wantJudgeCall {
				wantCalls = 1
			}
			if fake.judgeCalls != wantCalls {
				t.Errorf("Expected %d judge calls, got %d", wantCalls, fake.judgeCalls)
			}
		})
	}
}

func TestPointsForGrade(t *testing.T) {
	testCases := []struct {
		grade    string
		expected int
	}{
		{"5", 5},
		{"12", 12},
		{" 7 ", 7},
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-3", 1},
	}

	for _, tc := range testCases {
		if got := PointsForGrade(tc.grade); got != tc.expected {
			t.Errorf("PointsForGrade(%q): expected %d, got %d", tc.grade, tc.expected, got)
		}
	}
}
