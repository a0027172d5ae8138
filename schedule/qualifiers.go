package schedule

import (
	"fmt"
	"sort"

	"github.com/matchdaylab/finalday/models"
)

// bracketSize is the number of teams the final-day bracket takes: two
// semifinals, a third-place match, and a final.
const bracketSize = 4

// SelectQualifiers splits a standings snapshot into the four bracket teams
// and the remainder that plays training matches.
//
// Under the group-based rule the group winners advance, ordered by group id.
// Under the overall-ranking rule the top four of the overall table advance.
// Group winners beyond the fourth (more than four groups) stay in the
// training pool.
func SelectQualifiers(standings []*models.TeamStanding, rule models.QualificationRule) ([]models.QualifyingTeam, []*models.TeamStanding, error) {
	var candidates []*models.TeamStanding

	switch rule {
	case models.RuleOverallRanking:
		for _, s := range standings {
			if s.OverallRank != nil {
				candidates = append(candidates, s)
			}
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return *candidates[i].OverallRank < *candidates[j].OverallRank
		})
	default:
		for _, s := range standings {
			if s.GroupRank == 1 {
				candidates = append(candidates, s)
			}
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return groupOf(candidates[i]) < groupOf(candidates[j])
		})
	}

	if len(candidates) < bracketSize {
		return nil, nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientQualifiers, bracketSize, len(candidates))
	}
	candidates = candidates[:bracketSize]

	qualified := make(map[int]bool, bracketSize)
	qualifiers := make([]models.QualifyingTeam, 0, bracketSize)
	for _, c := range candidates {
		qualified[c.Team.ID] = true
		qualifiers = append(qualifiers, models.QualifyingTeam{
			Team:        c.Team,
			GroupRank:   c.GroupRank,
			OverallRank: c.OverallRank,
		})
	}

	remainder := make([]*models.TeamStanding, 0, len(standings)-bracketSize)
	for _, s := range standings {
		if !qualified[s.Team.ID] {
			remainder = append(remainder, s)
		}
	}

	return qualifiers, remainder, nil
}

func groupOf(s *models.TeamStanding) string {
	if s.Team.GroupID == nil {
		return ""
	}
	return *s.Team.GroupID
}
