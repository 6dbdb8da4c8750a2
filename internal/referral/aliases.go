package referral

import (
	"strings"

	"github.com/pannonhealth/lifeline/internal/textnorm"
)

type aliasEntry struct {
	Key     string
	Aliases []string
}

// Curated alias sets, ordered: the first matching entry wins. Aliases cover
// English and Hungarian synonyms and are pre-normalized ASCII. Specialties
// outside this table degrade to tokenization of the input itself.
var aliasTable = []aliasEntry{
	{"cardiology", []string{"cardiology", "cardiologist", "kardiologia", "kardiologus", "heart"}},
	{"pulmonology", []string{"pulmonology", "pulmonologist", "tudogyogyaszat", "tudogyogyasz", "respiratory"}},
	{"neurology", []string{"neurology", "neurologist", "neurologia", "neurologus"}},
	{"dermatology", []string{"dermatology", "dermatologist", "borgyogyaszat", "borgyogyasz"}},
	{"gastroenterology", []string{"gastroenterology", "gastroenterologist", "gasztroenterologia", "gasztroenterologus"}},
	{"orthopedics", []string{"orthopedics", "orthopedic", "ortopedia", "ortoped", "mozgasszerv"}},
	{"endocrinology", []string{"endocrinology", "endocrinologist", "endokrinologia", "endokrinologus"}},
	{"psychiatry", []string{"psychiatry", "psychiatrist", "pszichiatria", "pszichiater", "mental health"}},
	{"gynecology", []string{"gynecology", "gynaecology", "gynecologist", "nogyogyaszat", "nogyogyasz"}},
	{"ent", []string{"ent", "otorhinolaryngology", "fulegeszet", "orrgegeszet"}},
	{"general medicine", []string{"general medicine", "internal medicine", "family medicine", "haziorvos", "belgyogyaszat"}},
}

// AliasesFor expands a specialty label into its alias keyword set. The
// normalized label is matched against each curated key and alias by
// substring; no curated hit falls back to the label's own tokens, or the
// whole normalized label when tokenization yields nothing.
func AliasesFor(specialty string) []string {
	normalized := textnorm.Normalize(specialty)

	for _, entry := range aliasTable {
		if strings.Contains(normalized, entry.Key) {
			return entry.Aliases
		}
		for _, alias := range entry.Aliases {
			if strings.Contains(normalized, alias) {
				return entry.Aliases
			}
		}
	}

	tokens := textnorm.Tokens(normalized)
	if len(tokens) > 0 {
		return tokens
	}
	return []string{normalized}
}
