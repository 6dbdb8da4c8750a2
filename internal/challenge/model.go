package challenge

import "strings"

// Frequency is how often a challenge task repeats
type Frequency string

const (
	Daily  Frequency = "Daily"
	Weekly Frequency = "Weekly"
)

// CoerceFrequency normalizes an arbitrary frequency label. Anything that is
// not Weekly (case-insensitive) becomes Daily.
func CoerceFrequency(raw string) Frequency {
	if strings.EqualFold(strings.TrimSpace(raw), string(Weekly)) {
		return Weekly
	}
	return Daily
}

// Challenge is one coaching task in a generated plan
type Challenge struct {
	Title     string    `json:"title"`
	Frequency Frequency `json:"frequency"`
}

// OnboardingAnswers carries the lifestyle questionnaire a plan is
// personalized from. All fields are free text as entered by the user;
// missing answers are empty strings.
type OnboardingAnswers struct {
	WorkType       string `json:"workType"`
	WeeklyExercise string `json:"weeklyExercise"`
	DailySteps     string `json:"dailySteps"`
	ExerciseType   string `json:"exerciseType"`
	AvailableTime  string `json:"availableTime"`
	StressLevel    string `json:"stressLevel"`
	MainReason     string `json:"mainReason"`
	Readiness      string `json:"readiness"`
}

// maxPlanSize caps every returned plan
const maxPlanSize = 6

// sanitizeChallenges trims titles, drops empty entries, coerces frequencies
// and caps the plan size. Order is preserved.
func sanitizeChallenges(items []Challenge) []Challenge {
	out := make([]Challenge, 0, len(items))
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		out = append(out, Challenge{
			Title:     title,
			Frequency: CoerceFrequency(string(item.Frequency)),
		})
		if len(out) == maxPlanSize {
			break
		}
	}
	return out
}
