package schedule

import (
	"fmt"
	"sort"

	"github.com/matchdaylab/finalday/models"
)

// AssignVenues distributes the training pool across venues. Teams are ordered
// best-remaining first (group rank ascending, group id breaking ties) and
// dealt round-robin over the venue list, so each venue gets a comparable mix
// of strong and weak teams and pool sizes differ by at most one.
func AssignVenues(teams []*models.TeamStanding, venues []*models.Venue) (map[int][]*models.TeamStanding, error) {
	if len(venues) == 0 {
		return nil, fmt.Errorf("%w: %d teams need a training venue", ErrNoEligibleVenue, len(teams))
	}

	ordered := make([]*models.TeamStanding, len(teams))
	copy(ordered, teams)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].GroupRank != ordered[j].GroupRank {
			return ordered[i].GroupRank < ordered[j].GroupRank
		}
		if gi, gj := groupOf(ordered[i]), groupOf(ordered[j]); gi != gj {
			return gi < gj
		}
		return ordered[i].Team.ID < ordered[j].Team.ID
	})

	pools := make(map[int][]*models.TeamStanding, len(venues))
	for i, t := range ordered {
		v := venues[i%len(venues)]
		pools[v.ID] = append(pools[v.ID], t)
	}

	return pools, nil
}
