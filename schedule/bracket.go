package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/matchdaylab/finalday/models"
)

// Bracket match UIDs. Winner/loser slots reference these before the schedule
// is persisted and storage ids exist.
const (
	UIDSemifinal1 = "SF1"
	UIDSemifinal2 = "SF2"
	UIDThirdPlace = "TP"
	UIDFinal      = "F"
)

type BracketParams struct {
	TournamentID int
	VenueID      int
	Date         time.Time
	Rule         models.QualificationRule
	Start        time.Time
	Duration     time.Duration
	Interval     time.Duration
}

// BuildBracket builds the four final-day matches: two semifinals with concrete
// teams, then a third-place match and a final holding loser/winner slots that
// resolve once the semifinals complete. Kickoffs run back to back from
// p.Start with p.Duration+p.Interval spacing.
//
// Group-based pairing crosses the sorted group winners (first vs third group,
// second vs fourth) so neighbouring groups do not meet immediately. Overall
// ranking pairs 1v4 and 2v3.
func BuildBracket(qualifiers []models.QualifyingTeam, p BracketParams) ([]*models.Match, error) {
	if len(qualifiers) < bracketSize {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientQualifiers, bracketSize, len(qualifiers))
	}

	seeded := make([]models.QualifyingTeam, len(qualifiers))
	copy(seeded, qualifiers)

	var sf1Home, sf1Away, sf2Home, sf2Away models.QualifyingTeam
	switch p.Rule {
	case models.RuleOverallRanking:
		sort.SliceStable(seeded, func(i, j int) bool {
			return overallOf(seeded[i]) < overallOf(seeded[j])
		})
		seeded = seeded[:bracketSize]
		sf1Home, sf1Away = seeded[0], seeded[3]
		sf2Home, sf2Away = seeded[1], seeded[2]
	default:
		sort.SliceStable(seeded, func(i, j int) bool {
			return qualifierGroup(seeded[i]) < qualifierGroup(seeded[j])
		})
		seeded = seeded[:bracketSize]
		sf1Home, sf1Away = seeded[0], seeded[2]
		sf2Home, sf2Away = seeded[1], seeded[3]
	}

	step := p.Duration + p.Interval
	newMatch := func(uid string, order int, stage models.Stage, home, away models.TeamSlot) *models.Match {
		u := uid
		return &models.Match{
			TournamentID: p.TournamentID,
			VenueID:      p.VenueID,
			Stage:        stage,
			Date:         p.Date,
			Kickoff:      p.Start.Add(time.Duration(order-1) * step),
			Duration:     p.Duration,
			OrderIndex:   order,
			BracketUID:   &u,
			Home:         home,
			Away:         away,
			Status:       models.MatchStatusScheduled,
		}
	}

	matches := []*models.Match{
		newMatch(UIDSemifinal1, 1, models.StageSemifinal,
			models.FixedSlot(sf1Home.Team.ID), models.FixedSlot(sf1Away.Team.ID)),
		newMatch(UIDSemifinal2, 2, models.StageSemifinal,
			models.FixedSlot(sf2Home.Team.ID), models.FixedSlot(sf2Away.Team.ID)),
		newMatch(UIDThirdPlace, 3, models.StageThirdPlace,
			models.LoserSlot(UIDSemifinal1), models.LoserSlot(UIDSemifinal2)),
		newMatch(UIDFinal, 4, models.StageFinal,
			models.WinnerSlot(UIDSemifinal1), models.WinnerSlot(UIDSemifinal2)),
	}

	return matches, nil
}

func qualifierGroup(q models.QualifyingTeam) string {
	if q.Team.GroupID == nil {
		return ""
	}
	return *q.Team.GroupID
}

func overallOf(q models.QualifyingTeam) int {
	if q.OverallRank == nil {
		// Teams without an overall rank seed last.
		return int(^uint(0) >> 1)
	}
	return *q.OverallRank
}
