package referral

import (
	"strings"

	"github.com/pannonhealth/lifeline/internal/textnorm"
)

// ScoreSpecialty rates how well a candidate's stored specialty text matches
// an alias set. Exact normalized equality scores 100, substring containment
// 80, token overlap 40 plus 10 per overlapping token; the maximum over all
// aliases is kept. Empty candidate text scores 0.
func ScoreSpecialty(candidateSpecialty string, aliases []string) int {
	normalizedCandidate := textnorm.Normalize(candidateSpecialty)
	if normalizedCandidate == "" {
		return 0
	}

	score := 0
	for _, alias := range aliases {
		normalizedAlias := textnorm.Normalize(alias)
		if normalizedAlias == "" {
			continue
		}

		if normalizedCandidate == normalizedAlias {
			score = max(score, 100)
			continue
		}

		if strings.Contains(normalizedCandidate, normalizedAlias) {
			score = max(score, 80)
			continue
		}

		overlap := 0
		for _, token := range textnorm.Tokens(normalizedAlias) {
			if strings.Contains(normalizedCandidate, token) {
				overlap++
			}
		}
		if overlap > 0 {
			score = max(score, 40+overlap*10)
		}
	}

	return score
}
