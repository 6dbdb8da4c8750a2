package triage

import "testing"

func TestClassifyRisk(t *testing.T) {
	tests := []struct {
		name string
		text string
		want RiskLevel
	}{
		{"high keyword", "I have chest pain since this morning", RiskHigh},
		{"high keyword any case", "SEVERE BLEEDING after the accident", RiskHigh},
		{"high keyword hungarian accented", "Erős mellkasi fájdalom", RiskHigh},
		{"high wins over moderate", "fever and shortness of breath", RiskHigh},
		{"moderate keyword", "I have had a fever for two days", RiskModerate},
		{"moderate hungarian", "Állandó szédülés reggel", RiskModerate},
		{"moderate hungarian rash", "Kiütés jelent meg a karomon", RiskModerate},
		{"help intent maps to moderate", "I need help with something", RiskModerate},
		{"help intent hungarian", "Kérlek segíts", RiskModerate},
		{"no keywords", "I feel great after my morning run", RiskLow},
		{"empty text", "", RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyRisk(tt.text); got != tt.want {
				t.Errorf("ClassifyRisk(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifyRiskHelpIntentNeverHigh(t *testing.T) {
	// generic help-seeking without symptom keywords stays moderate
	for _, text := range []string{"help", "medical problem", "orvos kell"} {
		if got := ClassifyRisk(text); got != RiskModerate {
			t.Errorf("ClassifyRisk(%q) = %s, want moderate", text, got)
		}
	}
}

func TestClassifyRiskDeterministic(t *testing.T) {
	text := "fever and joint pain"
	first := ClassifyRisk(text)
	for i := 0; i < 5; i++ {
		if got := ClassifyRisk(text); got != first {
			t.Fatalf("ClassifyRisk not deterministic: %s then %s", first, got)
		}
	}
}

func TestClassifySpecialty(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"cardiology", "pain in my chest and high blood pressure", "Cardiology"},
		{"pulmonology", "bad cough and asthma attacks", "Pulmonology"},
		{"neurology", "migraine with dizzy spells", "Neurology"},
		{"dermatology", "itchy rash on my skin", "Dermatology"},
		{"gastroenterology", "nausea and reflux after meals", "Gastroenterology"},
		{"orthopedics hungarian", "terdfajas es izuleti merevseg", "Orthopedics"},
		{"endocrinology", "thyroid and insulin issues", "Endocrinology"},
		{"psychiatry", "anxiety and insomnia", "Psychiatry"},
		{"gynecology", "irregular period and pelvic pain", "Gynecology"},
		{"ent", "blocked sinus and sore throat", "ENT"},
		{"no match", "I want to improve my lifestyle", GeneralMedicine},
		{"empty", "", GeneralMedicine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifySpecialty(tt.text); got != tt.want {
				t.Errorf("ClassifySpecialty(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassifySpecialtyLongKeywordsWeighMore(t *testing.T) {
	// "palpitation" (>= 8 chars, 3 points) outweighs two short Pulmonology-free
	// mentions; one long keyword beats one short one from another specialty.
	got := ClassifySpecialty("palpitation and a bit of cough")
	if got != "Cardiology" {
		t.Errorf("ClassifySpecialty = %s, want Cardiology from the longer keyword", got)
	}
}

func TestClassifySpecialtyTieKeepsEarliest(t *testing.T) {
	// "heart" (Cardiology) and "cough" (Pulmonology) both score 2; the
	// earlier-declared specialty wins.
	got := ClassifySpecialty("heart and cough")
	if got != "Cardiology" {
		t.Errorf("ClassifySpecialty = %s, want earliest specialty on tie", got)
	}
}

func TestFallbackTriage(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		wantRisk      RiskLevel
		wantDoctor    bool
		wantSpecialty string
	}{
		{"high risk", "sudden chest pain", RiskHigh, true, "Cardiology"},
		{"moderate risk", "recurring migraine", RiskModerate, true, "Neurology"},
		{"low risk", "just tracking my habits", RiskLow, false, GeneralMedicine},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := fallbackTriage(tt.text)

			if result.Risk.RiskLevel != tt.wantRisk {
				t.Errorf("risk = %s, want %s", result.Risk.RiskLevel, tt.wantRisk)
			}
			if result.Risk.ShouldSeeDoctor != tt.wantDoctor {
				t.Errorf("shouldSeeDoctor = %v, want %v", result.Risk.ShouldSeeDoctor, tt.wantDoctor)
			}
			if result.RecommendedSpecialty != tt.wantSpecialty {
				t.Errorf("specialty = %s, want %s", result.RecommendedSpecialty, tt.wantSpecialty)
			}
			if result.Summary == "" {
				t.Error("summary must never be empty")
			}
		})
	}
}

func TestFallbackSummaryPerLevel(t *testing.T) {
	seen := map[string]bool{}
	for _, level := range []RiskLevel{RiskLow, RiskModerate, RiskHigh} {
		summary := fallbackSummary(level)
		if summary == "" {
			t.Fatalf("empty summary for %s", level)
		}
		if seen[summary] {
			t.Errorf("summary for %s duplicates another level", level)
		}
		seen[summary] = true
	}
}

func TestParseRiskLevel(t *testing.T) {
	for _, valid := range []string{"low", "moderate", "high"} {
		if _, ok := ParseRiskLevel(valid); !ok {
			t.Errorf("ParseRiskLevel(%q) rejected a valid level", valid)
		}
	}
	for _, invalid := range []string{"", "HIGH", "critical", "medium"} {
		if _, ok := ParseRiskLevel(invalid); ok {
			t.Errorf("ParseRiskLevel(%q) accepted an invalid level", invalid)
		}
	}
}
