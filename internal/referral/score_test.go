package referral

import "testing"

func TestScoreSpecialty(t *testing.T) {
	cardiology := AliasesFor("Cardiology")

	tests := []struct {
		name      string
		candidate string
		aliases   []string
		want      int
	}{
		{"exact match", "Cardiology", cardiology, 100},
		{"exact match ignores case and accents", "KARDIOLÓGIA", cardiology, 100},
		{"substring containment", "Cardiologist", cardiology, 80},
		{"clinic label containing alias", "Heart Clinic Budapest", cardiology, 80},
		{"no relation", "General Practice", cardiology, 0},
		{"empty candidate", "", cardiology, 0},
		{"token overlap", "sports clinic", []string{"sports medicine rehab"}, 50},
		{"two token overlap", "sports medicine unit", []string{"sports medicine rehab"}, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreSpecialty(tt.candidate, tt.aliases); got != tt.want {
				t.Errorf("ScoreSpecialty(%q) = %d, want %d", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestScoreSpecialtyKeepsMaxOverAliases(t *testing.T) {
	aliases := []string{"nonsense", "cardiology"}
	if got := ScoreSpecialty("cardiology", aliases); got != 100 {
		t.Errorf("ScoreSpecialty = %d, want max over aliases 100", got)
	}
}

func TestScoreSpecialtyOrdering(t *testing.T) {
	aliases := AliasesFor("Cardiology")

	exact := ScoreSpecialty("Cardiology", aliases)
	substring := ScoreSpecialty("Cardiologist", aliases)
	overlap := ScoreSpecialty("heart", []string{"weak heart care"})

	if !(exact > substring && substring > overlap && overlap >= AcceptanceFloor) {
		t.Errorf("score ordering broken: exact=%d substring=%d overlap=%d", exact, substring, overlap)
	}
}
