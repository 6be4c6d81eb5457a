package errors

import (
	"strings"
	"testing"
)

func TestValidateWordList(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		wantErr bool
		wantMsg string
	}{
		{"single word", []string{"cat"}, false, ""},
		{"five words", []string{"a", "b", "c", "d", "e"}, false, ""},
		{"max length", []string{strings.Repeat("a", MaxWordLength)}, false, ""},
		{"unicode counts runes", []string{strings.Repeat("é", MaxWordLength)}, false, ""},

		{"empty list", nil, true, "No words provided!"},
		{"six words", []string{"a", "b", "c", "d", "e", "f"}, true, "Too many words! (maximum of 5)"},
		{"too long", []string{"cat", strings.Repeat("a", MaxWordLength+1)}, true, "Words too long! (max length 20)"},
		{"empty word", []string{"cat", ""}, true, "word cannot be empty"},
		{"space in word", []string{"ice cream"}, true, `word "ice cream" contains whitespace or control characters`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWordList(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateWordList(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !Is(err, ErrCodeBadRequest) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeBadRequest)
			}
			if got := UserMessage(err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestValidateWordListCountBeforeLength(t *testing.T) {
	words := []string{"a", "b", "c", "d", "e", strings.Repeat("x", 50)}
	err := ValidateWordList(words)
	if got := UserMessage(err); !strings.HasPrefix(got, "Too many words!") {
		t.Errorf("UserMessage() = %q, want word-count failure first", got)
	}
}

func TestValidateWordText(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"crossword", false},
		{"Ñandú", false},
		{"", true},
		{"   ", true},
		{"tab\tbed", true},
		{"null\x00", true},
	}

	for _, tt := range tests {
		err := ValidateWordText(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateWordText(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidWord) {
			t.Errorf("ValidateWordText(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidWord)
		}
	}
}
