package schedule

import (
	"testing"
	"time"

	"github.com/matchdaylab/finalday/models"
)

func testTiming() SlotTiming {
	return SlotTiming{
		BracketDuration:  60 * time.Minute,
		BracketInterval:  20 * time.Minute,
		TrainingDuration: 50 * time.Minute,
		TrainingInterval: 15 * time.Minute,
	}
}

func TestComputeSlots(t *testing.T) {
	t.Run("mixed venue switches spacing after the bracket count", func(t *testing.T) {
		plans := ComputeSlots(mustClock("09:00"), 2, 4, testTiming())
		want := []struct {
			kickoff  string
			training bool
		}{
			{"09:00", false},
			{"10:20", false},
			{"11:40", true},
			{"12:45", true},
		}
		if len(plans) != len(want) {
			t.Fatalf("got %d slots, want %d", len(plans), len(want))
		}
		for i, w := range want {
			if got := plans[i].Kickoff.Format("15:04"); got != w.kickoff {
				t.Errorf("slot %d kickoff = %s, want %s", i, got, w.kickoff)
			}
			if plans[i].Training != w.training {
				t.Errorf("slot %d training = %v, want %v", i, plans[i].Training, w.training)
			}
		}
	})

	t.Run("pure training venue uses training spacing throughout", func(t *testing.T) {
		plans := ComputeSlots(mustClock("10:00"), 0, 3, testTiming())
		want := []string{"10:00", "11:05", "12:10"}
		for i, w := range want {
			if got := plans[i].Kickoff.Format("15:04"); got != w {
				t.Errorf("slot %d kickoff = %s, want %s", i, got, w)
			}
			if plans[i].Duration != 50*time.Minute {
				t.Errorf("slot %d duration = %s, want 50m", i, plans[i].Duration)
			}
		}
	})

	t.Run("zero slots", func(t *testing.T) {
		if plans := ComputeSlots(mustClock("09:00"), 2, 0, testTiming()); len(plans) != 0 {
			t.Errorf("got %d slots, want 0", len(plans))
		}
	})
}

func TestApplySlots(t *testing.T) {
	t.Run("writes kickoff and duration in order", func(t *testing.T) {
		matches := []*models.Match{
			{Stage: models.StageSemifinal},
			{Stage: models.StageTraining},
		}
		plans := ComputeSlots(mustClock("09:00"), 1, 2, testTiming())
		ApplySlots(matches, plans)

		if got := matches[0].Kickoff.Format("15:04"); got != "09:00" {
			t.Errorf("first kickoff = %s, want 09:00", got)
		}
		if got := matches[1].Kickoff.Format("15:04"); got != "10:20" {
			t.Errorf("second kickoff = %s, want 10:20", got)
		}
		if matches[0].Duration != 60*time.Minute || matches[1].Duration != 50*time.Minute {
			t.Errorf("durations = %s, %s", matches[0].Duration, matches[1].Duration)
		}
	})

	t.Run("retags matches crossing the boundary", func(t *testing.T) {
		matches := []*models.Match{
			{Stage: models.StageTraining},  // now in a bracket slot
			{Stage: models.StageSemifinal}, // now in a training slot
		}
		plans := ComputeSlots(mustClock("09:00"), 1, 2, testTiming())
		ApplySlots(matches, plans)

		if matches[0].Stage != models.StageSemifinal {
			t.Errorf("first stage = %s, want semifinal", matches[0].Stage)
		}
		if matches[1].Stage != models.StageTraining {
			t.Errorf("second stage = %s, want training", matches[1].Stage)
		}
	})

	t.Run("never downgrades final or third place", func(t *testing.T) {
		matches := []*models.Match{
			{Stage: models.StageFinal},
			{Stage: models.StageThirdPlace},
		}
		plans := ComputeSlots(mustClock("09:00"), 0, 2, testTiming())
		ApplySlots(matches, plans)

		if matches[0].Stage != models.StageFinal {
			t.Errorf("final retagged to %s", matches[0].Stage)
		}
		if matches[1].Stage != models.StageThirdPlace {
			t.Errorf("third place retagged to %s", matches[1].Stage)
		}
	})
}
