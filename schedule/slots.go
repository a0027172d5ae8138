package schedule

import (
	"time"

	"github.com/matchdaylab/finalday/models"
)

// SlotTiming holds the per-kind match duration and the gap before the next
// kickoff.
type SlotTiming struct {
	BracketDuration  time.Duration
	BracketInterval  time.Duration
	TrainingDuration time.Duration
	TrainingInterval time.Duration
}

// SlotPlan is one computed time slot at a venue.
type SlotPlan struct {
	Kickoff  time.Time
	Duration time.Duration
	Training bool
}

// ComputeSlots plans total back-to-back slots starting at start. The first
// bracketCount slots use bracket spacing, the rest training spacing. Slot i
// kicks off where slot i-1's duration and interval end; there are no gaps.
func ComputeSlots(start time.Time, bracketCount, total int, t SlotTiming) []SlotPlan {
	plans := make([]SlotPlan, 0, total)
	at := start
	for i := 0; i < total; i++ {
		if i < bracketCount {
			plans = append(plans, SlotPlan{Kickoff: at, Duration: t.BracketDuration})
			at = at.Add(t.BracketDuration + t.BracketInterval)
		} else {
			plans = append(plans, SlotPlan{Kickoff: at, Duration: t.TrainingDuration, Training: true})
			at = at.Add(t.TrainingDuration + t.TrainingInterval)
		}
	}
	return plans
}

// ApplySlots writes the plan onto the venue's matches in order. When a match
// moves across the bracket/training boundary after a regeneration its stage
// is retagged to match the slot, except that a match already holding the
// final or third-place stage is never downgraded.
func ApplySlots(matches []*models.Match, plans []SlotPlan) {
	n := len(matches)
	if len(plans) < n {
		n = len(plans)
	}
	for i := 0; i < n; i++ {
		m, p := matches[i], plans[i]
		m.Kickoff = p.Kickoff
		m.Duration = p.Duration

		switch {
		case m.Stage == models.StageFinal || m.Stage == models.StageThirdPlace:
			// keep
		case p.Training && m.Stage != models.StageTraining:
			m.Stage = models.StageTraining
		case !p.Training && m.Stage == models.StageTraining:
			m.Stage = models.StageSemifinal
		}
	}
}
