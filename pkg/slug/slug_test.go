package slug

import "testing"

// TestNormalize exercises the slug generator with typical titles, special
// characters, Cyrillic transliteration, and boundary conditions.
func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// --- Normal titles ---
		{
			name:  "simple two words",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "title with year",
			input: "Launch Day 2026",
			want:  "launch-day-2026",
		},
		{
			name:  "already lowercase",
			input: "already lowercase",
			want:  "already-lowercase",
		},
		{
			name:  "single word",
			input: "News",
			want:  "news",
		},

		// --- Special characters ---
		{
			name:  "punctuation marks",
			input: "Hello, World! How's it going?",
			want:  "hello-world-hows-it-going",
		},
		{
			name:  "ampersand and at sign",
			input: "Rock & Roll @ the Arena",
			want:  "rock-roll-the-arena",
		},
		{
			name:  "underscores become hyphens",
			input: "snake_case_title",
			want:  "snake-case-title",
		},
		{
			name:  "leading and trailing junk",
			input: "  --Trimmed--  ",
			want:  "trimmed",
		},
		{
			name:  "consecutive separators collapse",
			input: "a  -  b",
			want:  "a-b",
		},

		// --- Cyrillic ---
		{
			name:  "russian title",
			input: "Новости",
			want:  "novosti",
		},
		{
			name:  "russian sentence",
			input: "Запуск, день первый",
			want:  "zapusk-den-pervyj",
		},
		{
			name:  "soft and hard signs dropped",
			input: "объявление",
			want:  "obyavlenie",
		},
		{
			name:  "multi-letter transliterations",
			input: "ёж и щука",
			want:  "yozh-i-shchuka",
		},
		{
			name:  "mixed scripts",
			input: "Go для начинающих",
			want:  "go-dlya-nachinayushchih",
		},

		// --- Edge cases ---
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only punctuation",
			input: "!!! ??? ...",
			want:  "",
		},
		{
			name:  "only hyphens",
			input: "---",
			want:  "",
		},
		{
			name:  "numbers only",
			input: "2026",
			want:  "2026",
		},
		{
			name:  "other scripts dropped",
			input: "日本語 title",
			want:  "title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestNormalizeDeterministic verifies that repeated runs over the same
// input yield identical tokens. The allocator depends on this.
func TestNormalizeDeterministic(t *testing.T) {
	inputs := []string{"Hello World", "Запуск, день первый", "a--b__c"}
	for _, in := range inputs {
		first := Normalize(in)
		for i := 0; i < 5; i++ {
			if got := Normalize(in); got != first {
				t.Fatalf("Normalize(%q) unstable: %q then %q", in, first, got)
			}
		}
	}
}
