package referral

import (
	"context"
	"log"

	"github.com/pannonhealth/lifeline/internal/shared/metrics"
)

// AcceptanceFloor is the minimum match score required before a doctor
// recommendation is returned instead of nil.
const AcceptanceFloor = 40

// fetchLimit bounds how many candidate rows one source query may return
const fetchLimit = 100

// Source is one collection of doctor records. A source read failure is
// treated as zero candidates from that source, never as a fatal error.
type Source interface {
	Name() string
	FetchActive(ctx context.Context, limit int) ([]DoctorRecord, error)
	FetchAll(ctx context.Context, limit int) ([]DoctorRecord, error)
}

// Matcher scores doctor records from all configured sources against a
// requested specialty and returns the single best match above the floor.
type Matcher struct {
	sources []Source
}

// NewMatcher creates a matcher over the given record sources
func NewMatcher(sources ...Source) *Matcher {
	return &Matcher{sources: sources}
}

// FindMatch returns the best-scoring doctor for the specialty, or nil when
// no candidate reaches the acceptance floor. Absence is a normal outcome.
// Active-flagged rows are preferred per source; a source with no active
// rows contributes all of its rows instead. The floor is applied only
// after every source has been folded in, so source order cannot change
// whether a match is returned.
func (m *Matcher) FindMatch(ctx context.Context, specialty string) *DoctorRecord {
	aliases := AliasesFor(specialty)

	var bestMatch *DoctorRecord
	bestScore := 0

	for _, source := range m.sources {
		for _, row := range m.fetch(ctx, source) {
			score := ScoreSpecialty(row.Specialty, aliases)
			if score > bestScore {
				bestScore = score
				candidate := row
				bestMatch = &candidate
			}
		}
	}

	if bestScore < AcceptanceFloor {
		metrics.RecordDoctorMatch(false)
		return nil
	}

	metrics.RecordDoctorMatch(true)
	return bestMatch
}

// fetch applies the per-source "prefer active, else all" rule
func (m *Matcher) fetch(ctx context.Context, source Source) []DoctorRecord {
	rows, err := source.FetchActive(ctx, fetchLimit)
	if err != nil {
		log.Printf("referral: active fetch from %s failed: %v", source.Name(), err)
		rows = nil
	}
	if len(rows) > 0 {
		return rows
	}

	rows, err = source.FetchAll(ctx, fetchLimit)
	if err != nil {
		log.Printf("referral: fetch from %s failed: %v", source.Name(), err)
		return nil
	}
	return rows
}
