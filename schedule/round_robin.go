package schedule

import (
	"sort"
	"time"

	"github.com/matchdaylab/finalday/models"
)

// TrainingOrderBase is the first order index used for training matches.
// Bracket matches number from 1, so the two numbering spaces never collide.
const TrainingOrderBase = 100

// TrainingParams locates the generated matches on a venue and day. Kickoff
// times are assigned afterwards by the slot planner.
type TrainingParams struct {
	TournamentID int
	VenueID      int
	Date         time.Time
	// OrderBase overrides TrainingOrderBase when non-zero.
	OrderBase int
}

type candidate struct {
	home, away *models.TeamStanding
	score      int
}

// GenerateTrainingMatches emits one match for every legal pair in a venue's
// pool: all pairs except those from the same preliminary group, ordered by
// pairing score ascending. The sort is stable over the enumeration order, so
// identical input produces identical output. A pool of fewer than two teams
// yields no matches.
func GenerateTrainingMatches(pool []*models.TeamStanding, played PlayedPairIndex, p TrainingParams) []*models.Match {
	var candidates []candidate
	for i := 0; i < len(pool); i++ {
		for j := i + 1; j < len(pool); j++ {
			score, forbidden := ScorePair(pool[i].Team, pool[j].Team, played)
			if forbidden {
				continue
			}
			candidates = append(candidates, candidate{home: pool[i], away: pool[j], score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score < candidates[j].score
	})

	base := p.OrderBase
	if base == 0 {
		base = TrainingOrderBase
	}

	matches := make([]*models.Match, 0, len(candidates))
	for k, c := range candidates {
		m := &models.Match{
			TournamentID: p.TournamentID,
			VenueID:      p.VenueID,
			Stage:        models.StageTraining,
			Date:         p.Date,
			OrderIndex:   base + k,
			Home:         models.FixedSlot(c.home.Team.ID),
			Away:         models.FixedSlot(c.away.Team.ID),
			Status:       models.MatchStatusScheduled,
			IsRematch:    played.Played(c.home.Team.ID, c.away.Team.ID),
			RankRange:    rankRange(c.home, c.away),
			LeagueNumber: sharedLeague(c.home.Team, c.away.Team),
		}
		matches = append(matches, m)
	}

	return matches
}

func rankRange(a, b *models.TeamStanding) *models.RankRange {
	lo, hi := a.GroupRank, b.GroupRank
	if lo > hi {
		lo, hi = hi, lo
	}
	return &models.RankRange{From: lo, To: hi}
}

func sharedLeague(a, b models.Team) *int {
	if a.LeagueNumber != nil && b.LeagueNumber != nil && *a.LeagueNumber == *b.LeagueNumber {
		n := *a.LeagueNumber
		return &n
	}
	return nil
}
