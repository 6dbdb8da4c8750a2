package triage

import (
	"strings"

	"github.com/pannonhealth/lifeline/internal/textnorm"
)

// ClassifyRisk scans normalized text against the keyword tiers. Evaluation
// order is high, moderate, help-intent, then low; the first tier with a
// match wins and a match is never downgraded. Pure function.
func ClassifyRisk(text string) RiskLevel {
	normalized := textnorm.Normalize(text)

	if containsAny(normalized, highRiskKeywords) {
		return RiskHigh
	}
	if containsAny(normalized, moderateRiskKeywords) {
		return RiskModerate
	}
	if containsAny(normalized, helpIntentKeywords) {
		return RiskModerate
	}

	return RiskLow
}

// ClassifySpecialty scores each curated specialty's keyword list against the
// normalized text. Longer keywords are stronger evidence: length >= 8 counts
// 3 points, >= 5 counts 2, shorter counts 1. The strictly highest total
// wins; ties keep the earliest-declared specialty. Zero total means
// General Medicine.
func ClassifySpecialty(text string) string {
	normalized := textnorm.Normalize(text)

	bestSpecialty := GeneralMedicine
	bestScore := 0

	for _, matcher := range specialtyMatchers {
		score := 0
		for _, keyword := range matcher.Keywords {
			if !strings.Contains(normalized, keyword) {
				continue
			}
			switch {
			case len(keyword) >= 8:
				score += 3
			case len(keyword) >= 5:
				score += 2
			default:
				score++
			}
		}

		if score > bestScore {
			bestScore = score
			bestSpecialty = matcher.Specialty
		}
	}

	return bestSpecialty
}

// fallbackSummary returns the canned summary sentence for a risk level
func fallbackSummary(level RiskLevel) string {
	switch level {
	case RiskHigh:
		return "Your symptoms may require urgent evaluation. Please seek medical care as soon as possible."
	case RiskModerate:
		return "Your symptoms suggest a non-urgent but meaningful health concern. A specialist visit is recommended."
	default:
		return "Your symptoms appear lower risk at the moment. Continue monitoring and follow up if they worsen."
	}
}

// fallbackTriage composes the fully deterministic result used whenever the
// model path is unavailable or invalid.
func fallbackTriage(text string) Result {
	riskLevel := ClassifyRisk(text)

	return Result{
		Summary: fallbackSummary(riskLevel),
		Risk: RiskAssessment{
			RiskLevel:       riskLevel,
			ShouldSeeDoctor: riskLevel != RiskLow,
		},
		RecommendedSpecialty: ClassifySpecialty(text),
	}
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
