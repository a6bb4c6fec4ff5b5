package importer

import (
	"errors"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantCards   int
		wantSkipped int
		wantErrors  int
	}{
		{
			name:      "plain rows",
			input:     "apple,사과\nbanana,바나나\n",
			wantCards: 2,
		},
		{
			name:      "header skipped",
			input:     "front,back\napple,사과\n",
			wantCards: 1,
		},
		{
			name:        "missing back reported",
			input:       "apple,사과\nbanana\n",
			wantCards:   1,
			wantSkipped: 1,
			wantErrors:  1,
		},
		{
			name:        "blank rows ignored",
			input:       "apple,사과\n,\n",
			wantCards:   1,
			wantSkipped: 1,
		},
		{
			name:      "whitespace trimmed",
			input:     "  apple , 사과 \n",
			wantCards: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseCSV(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ParseCSV() error = %v", err)
			}
			if len(result.Cards) != tt.wantCards {
				t.Errorf("cards = %d, want %d", len(result.Cards), tt.wantCards)
			}
			if result.Skipped != tt.wantSkipped {
				t.Errorf("skipped = %d, want %d", result.Skipped, tt.wantSkipped)
			}
			if len(result.Errors) != tt.wantErrors {
				t.Errorf("errors = %v, want %d entries", result.Errors, tt.wantErrors)
			}
		})
	}
}

func TestParseCSVContent(t *testing.T) {
	result, err := ParseCSV(strings.NewReader("run,달리다\n"))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if len(result.Cards) != 1 {
		t.Fatalf("cards = %d, want 1", len(result.Cards))
	}
	if result.Cards[0].FrontText != "run" || result.Cards[0].BackText != "달리다" {
		t.Errorf("card = %+v, want run/달리다", result.Cards[0])
	}
}

func TestParseUnsupportedExtension(t *testing.T) {
	_, err := Parse("words.pdf", strings.NewReader(""))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Parse() error = %v, want ErrUnsupportedFormat", err)
	}
}
