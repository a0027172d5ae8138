package schedule

import (
	"errors"
	"testing"

	"github.com/matchdaylab/finalday/models"
)

func TestSelectQualifiers(t *testing.T) {
	t.Run("group based picks the group winners in group order", func(t *testing.T) {
		standings := []*models.TeamStanding{
			standing(team(1, "B", "", 0, models.TeamClassInvited), 1),
			standing(team(2, "A", "", 0, models.TeamClassInvited), 1),
			standing(team(3, "A", "", 0, models.TeamClassInvited), 2),
			standing(team(4, "D", "", 0, models.TeamClassInvited), 1),
			standing(team(5, "C", "", 0, models.TeamClassInvited), 1),
			standing(team(6, "B", "", 0, models.TeamClassInvited), 2),
		}
		qualifiers, remainder, err := SelectQualifiers(standings, models.RuleGroupBased)
		if err != nil {
			t.Fatal(err)
		}

		wantOrder := []int{2, 1, 5, 4} // groups A, B, C, D
		for i, want := range wantOrder {
			if qualifiers[i].Team.ID != want {
				t.Errorf("qualifier %d = team %d, want %d", i, qualifiers[i].Team.ID, want)
			}
		}
		if len(remainder) != 2 {
			t.Fatalf("remainder has %d teams, want 2", len(remainder))
		}
		for _, s := range remainder {
			if s.GroupRank == 1 {
				t.Errorf("group winner %d left in training pool", s.Team.ID)
			}
		}
	})

	t.Run("overall ranking picks the top four", func(t *testing.T) {
		standings := []*models.TeamStanding{
			overallStanding(team(1, "A", "", 0, models.TeamClassInvited), 1, 3),
			overallStanding(team(2, "A", "", 0, models.TeamClassInvited), 2, 5),
			overallStanding(team(3, "B", "", 0, models.TeamClassInvited), 1, 1),
			overallStanding(team(4, "B", "", 0, models.TeamClassInvited), 2, 4),
			overallStanding(team(5, "C", "", 0, models.TeamClassInvited), 1, 2),
		}
		qualifiers, remainder, err := SelectQualifiers(standings, models.RuleOverallRanking)
		if err != nil {
			t.Fatal(err)
		}
		wantOrder := []int{3, 5, 1, 4}
		for i, want := range wantOrder {
			if qualifiers[i].Team.ID != want {
				t.Errorf("qualifier %d = team %d, want %d", i, qualifiers[i].Team.ID, want)
			}
		}
		if len(remainder) != 1 || remainder[0].Team.ID != 2 {
			t.Errorf("remainder = %+v, want only team 2", remainder)
		}
	})

	t.Run("fewer than four qualifiers is an error", func(t *testing.T) {
		standings := []*models.TeamStanding{
			standing(team(1, "A", "", 0, models.TeamClassInvited), 1),
			standing(team(2, "B", "", 0, models.TeamClassInvited), 1),
			standing(team(3, "C", "", 0, models.TeamClassInvited), 1),
		}
		_, _, err := SelectQualifiers(standings, models.RuleGroupBased)
		if !errors.Is(err, ErrInsufficientQualifiers) {
			t.Errorf("err = %v, want ErrInsufficientQualifiers", err)
		}
	})

	t.Run("extra group winners fall back to the training pool", func(t *testing.T) {
		standings := []*models.TeamStanding{
			standing(team(1, "A", "", 0, models.TeamClassInvited), 1),
			standing(team(2, "B", "", 0, models.TeamClassInvited), 1),
			standing(team(3, "C", "", 0, models.TeamClassInvited), 1),
			standing(team(4, "D", "", 0, models.TeamClassInvited), 1),
			standing(team(5, "E", "", 0, models.TeamClassInvited), 1),
		}
		qualifiers, remainder, err := SelectQualifiers(standings, models.RuleGroupBased)
		if err != nil {
			t.Fatal(err)
		}
		if len(qualifiers) != 4 {
			t.Fatalf("got %d qualifiers, want 4", len(qualifiers))
		}
		if len(remainder) != 1 || remainder[0].Team.ID != 5 {
			t.Errorf("fifth group winner should play training, remainder = %+v", remainder)
		}
	})
}
