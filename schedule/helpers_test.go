package schedule

import (
	"time"

	"github.com/matchdaylab/finalday/models"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// team builds a test team; empty group/region and zero league mean "not set".
func team(id int, group, region string, league int, class models.TeamClass) models.Team {
	t := models.Team{ID: id, Name: "Team", Class: class}
	if group != "" {
		t.GroupID = strPtr(group)
	}
	if region != "" {
		t.Region = strPtr(region)
	}
	if league != 0 {
		t.LeagueNumber = intPtr(league)
	}
	return t
}

func standing(t models.Team, groupRank int) *models.TeamStanding {
	return &models.TeamStanding{Team: t, GroupRank: groupRank}
}

func overallStanding(t models.Team, groupRank, overall int) *models.TeamStanding {
	s := standing(t, groupRank)
	s.OverallRank = intPtr(overall)
	return s
}

func mustClock(hhmm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2026-08-30 "+hhmm)
	if err != nil {
		panic(err)
	}
	return t
}
