package challenge

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pannonhealth/lifeline/internal/ai"
	"github.com/pannonhealth/lifeline/internal/shared/metrics"
	"github.com/pannonhealth/lifeline/internal/textnorm"
)

const planSystemPrompt = `You are a lifestyle coach. Return ONLY valid JSON array with 4-6 items.
Each item must have: title (string), frequency ('Daily' or 'Weekly').
Personalize from onboarding answers and include progressive overload (gradually harder over weeks).
Include at least three week-labeled tasks exactly in this style: 'Week 1: ...', 'Week 2: ...', 'Week 3: ...'.
Keep tasks safe for beginners, concrete, and short.`

// weekLabel matches titles of the form "Week <n>: ..."
var weekLabel = regexp.MustCompile(`(?i)^week\s*\d+\s*:`)

// Generator produces personalized weekly challenge plans. The model path is
// optional; a nil client always yields the deterministic plan.
type Generator struct {
	client  *ai.Client
	timeout time.Duration
}

// NewGenerator creates a challenge plan generator
func NewGenerator(client *ai.Client, timeout time.Duration) *Generator {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Generator{client: client, timeout: timeout}
}

// Plan builds a challenge plan for the given onboarding answers. The result
// always has between one and six items and at least three week-labeled
// progressive tasks; Plan never returns an error.
func (g *Generator) Plan(ctx context.Context, answers OnboardingAnswers) []Challenge {
	if g.client != nil {
		if plan, ok := g.generateWithAI(ctx, answers); ok {
			metrics.RecordChallengePlan("ai")
			return EnsureProgressiveWeeks(plan)
		}
	}

	metrics.RecordChallengePlan("fallback")
	return EnsureProgressiveWeeks(fallbackPlan(answers))
}

func (g *Generator) generateWithAI(ctx context.Context, answers OnboardingAnswers) ([]Challenge, bool) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	raw, err := g.client.Complete(callCtx, ai.ChatRequest{
		System:      planSystemPrompt,
		User:        describeAnswers(answers),
		Temperature: 0.4,
		MaxTokens:   400,
	})
	if err != nil {
		return nil, false
	}

	items, ok := ai.ExtractArray(raw)
	if !ok {
		return nil, false
	}

	var plan []Challenge
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		title, _ := obj["title"].(string)
		frequency, _ := obj["frequency"].(string)
		plan = append(plan, Challenge{Title: title, Frequency: Frequency(frequency)})
	}

	plan = sanitizeChallenges(plan)
	if len(plan) == 0 {
		return nil, false
	}
	return plan, true
}

func describeAnswers(answers OnboardingAnswers) string {
	return fmt.Sprintf(
		"Onboarding answers:\nwork type: %s\nweekly exercise: %s\ndaily steps: %s\nexercise type: %s\navailable time per session (minutes): %s\nstress level (1-10): %s\nmain reason: %s\nreadiness: %s",
		answers.WorkType, answers.WeeklyExercise, answers.DailySteps, answers.ExerciseType,
		answers.AvailableTime, answers.StressLevel, answers.MainReason, answers.Readiness,
	)
}

// fallbackPlan is the deterministic decision tree over the onboarding
// answers. Branches are checked in order; the first one that applies wins.
func fallbackPlan(answers OnboardingAnswers) []Challenge {
	sedentary := isSedentary(answers.WorkType)
	lowExercise := isLowExercise(answers.WeeklyExercise)

	switch {
	case sedentary && lowExercise:
		return []Challenge{
			{Title: "Week 1: Walk briskly for 20 minutes", Frequency: Daily},
			{Title: "Week 2: Run 1 km at easy pace", Frequency: Weekly},
			{Title: "Week 3: Run 1.5 km at easy pace", Frequency: Weekly},
			{Title: "Week 4: Run 2 km at easy pace", Frequency: Weekly},
			{Title: "Do 5 minutes mobility after work", Frequency: Daily},
		}
	case isLowTime(answers.AvailableTime):
		return []Challenge{
			{Title: "Take a 10-minute power walk", Frequency: Daily},
			{Title: "Do a 12-minute bodyweight circuit", Frequency: Weekly},
			{Title: "Increase one workout by +5 minutes this week", Frequency: Weekly},
			{Title: "Stand and stretch every 90 minutes", Frequency: Daily},
		}
	case isHighStress(answers.StressLevel):
		return []Challenge{
			{Title: "Practice 6 minutes of breathing", Frequency: Daily},
			{Title: "Take a 20-minute low-intensity walk", Frequency: Daily},
			{Title: "Add one longer session (+10 minutes) weekly", Frequency: Weekly},
			{Title: "No-screen wind-down for 20 minutes", Frequency: Daily},
		}
	default:
		return []Challenge{
			{Title: "Walk 7000+ steps", Frequency: Daily},
			{Title: "Complete 2 cardio sessions", Frequency: Weekly},
			{Title: "Complete 2 strength sessions", Frequency: Weekly},
			{Title: "Progressive overload: increase duration by 10% this week", Frequency: Weekly},
		}
	}
}

func isSedentary(workType string) bool {
	normalized := textnorm.Normalize(workType)
	for _, marker := range []string{"sitting", "desk", "office", "ulo", "iroda"} {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}

func isLowExercise(weeklyExercise string) bool {
	normalized := textnorm.Normalize(weeklyExercise)
	for _, marker := range []string{"almost never", "never", "1-2", "alig", "soha"} {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}

func isLowTime(availableTime string) bool {
	minutes, err := strconv.Atoi(strings.TrimSpace(availableTime))
	if err != nil {
		return false
	}
	return minutes > 0 && minutes <= 20
}

func isHighStress(stressLevel string) bool {
	level, err := strconv.Atoi(strings.TrimSpace(stressLevel))
	if err != nil {
		return false
	}
	return level >= 7
}

const defaultBaseTask = "Brisk walk for 20 minutes"

// EnsureProgressiveWeeks guarantees at least three week-labeled tasks. Plans
// that already carry a week label pass through unchanged. Otherwise three
// progressive weeks are synthesized from the first task's title and the plan
// is rebuilt around them, still capped at six items.
func EnsureProgressiveWeeks(plan []Challenge) []Challenge {
	for _, item := range plan {
		if weekLabel.MatchString(item.Title) {
			return plan
		}
	}

	base := defaultBaseTask
	if len(plan) > 0 {
		base = plan[0].Title
	}

	// Week 1 is a daily habit, the harder follow-ups are weekly regardless
	// of the base task's own frequency.
	out := []Challenge{
		{Title: "Week 1: " + base, Frequency: Daily},
		{Title: "Week 2: " + base + " +10%", Frequency: Weekly},
		{Title: "Week 3: " + base + " +20%", Frequency: Weekly},
	}

	for _, item := range plan[min(1, len(plan)):min(4, len(plan))] {
		if len(out) == maxPlanSize {
			break
		}
		out = append(out, item)
	}

	return out
}
