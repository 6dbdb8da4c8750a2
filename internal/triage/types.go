package triage

// RiskLevel represents the estimated severity of described symptoms
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
)

// ParseRiskLevel validates a raw string against the known levels
func ParseRiskLevel(s string) (RiskLevel, bool) {
	switch RiskLevel(s) {
	case RiskLow, RiskModerate, RiskHigh:
		return RiskLevel(s), true
	}
	return "", false
}

// GeneralMedicine is the fallback specialty when nothing else matches
const GeneralMedicine = "General Medicine"

// RiskAssessment pairs a risk level with the referral decision.
// On the fallback path ShouldSeeDoctor is true exactly when the level is
// not low; an AI-sourced value may override that.
type RiskAssessment struct {
	RiskLevel       RiskLevel `json:"riskLevel"`
	ShouldSeeDoctor bool      `json:"shouldSeeDoctor"`
}

// Result is the complete outcome of one triage request
type Result struct {
	Summary              string         `json:"summary"`
	Risk                 RiskAssessment `json:"risk"`
	RecommendedSpecialty string         `json:"recommendedSpecialty"`
}
