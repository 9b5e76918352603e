package detector

import "testing"

func TestDetect(t *testing.T) {
	d := NewLanguageDetector()

	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "english",
			text:   "Machine learning is a field of study in artificial intelligence concerned with statistical algorithms that learn from data.",
			want:   "en",
			wantOK: true,
		},
		{
			name:   "german",
			text:   "Maschinelles Lernen ist ein Oberbegriff für die künstliche Generierung von Wissen aus Erfahrung durch ein künstliches System.",
			want:   "de",
			wantOK: true,
		},
		{
			name:   "too short",
			text:   "Cats",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := d.Detect(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Detect() ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsEnglish(t *testing.T) {
	d := NewLanguageDetector()

	if !d.IsEnglish("short") {
		t.Error("undetermined text should be kept")
	}
	if d.IsEnglish("L'apprentissage automatique est un champ d'étude de l'intelligence artificielle qui se fonde sur des approches mathématiques et statistiques.") {
		t.Error("French text should not pass the English filter")
	}
}
