package services

import "testing"

func TestNormalizeExtractedText(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims lines", "  hello  \n  world  ", "hello\nworld"},
		{"collapses repeated blank lines", "a\n\n\n\nb", "a\n\nb"},
		{"normalizes carriage returns", "a\r\nb\rc", "a\nb\nc"},
		{"empty input", "   \n \n ", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeExtractedText(tc.input)
			if got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestExtractPDF_RejectsGarbage(t *testing.T) {
	svc := NewFileExtractService()

	if _, err := svc.ExtractPDF([]byte("this is not a pdf")); err == nil {
		t.Error("Expected an error for non-PDF bytes")
	}
}
