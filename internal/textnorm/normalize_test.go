package textnorm

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "Chest PAIN", "chest pain"},
		{"hungarian diacritics", "Fejfájás és szédülés", "fejfajas es szedules"},
		{"long vowels", "tüdőgyógyászat", "tudogyogyaszat"},
		{"already normalized", "mellkasi fajdalom", "mellkasi fajdalom"},
		{"empty", "", ""},
		{"whitespace preserved", "  two  words  ", "  two  words  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	input := "Légszomj és MELLKASI fájdalom"
	once := Normalize(input)
	twice := Normalize(once)

	if once != twice {
		t.Errorf("Normalize not idempotent: %q vs %q", once, twice)
	}
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"simple", "unknown xyz", []string{"unknown", "xyz"}},
		{"punctuation", "heart-attack, now!", []string{"heart", "attack", "now"}},
		{"diacritics", "Kardiológus / szívgyógyász", []string{"kardiologus", "szivgyogyasz"}},
		{"digits kept", "run 5 km", []string{"run", "5", "km"}},
		{"empty", "", nil},
		{"only separators", "?!--", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokens(tt.input)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Tokens(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
