package schedule

import "github.com/matchdaylab/finalday/models"

// Pairing penalties. A candidate pairing accumulates every penalty that
// applies; lower totals are scheduled first.
const (
	penaltyRematch    = 100
	penaltyBothLocal  = 50
	penaltySameRegion = 30
	penaltySameLeague = 20
)

type pairKey struct {
	lo, hi int
}

func newPairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// PlayedPairIndex records which team pairs have already met in a non-training
// stage this tournament.
type PlayedPairIndex map[pairKey]struct{}

// NewPlayedPairIndex builds the index from a match history. Training matches
// and matches without two concrete teams are ignored.
func NewPlayedPairIndex(history []*models.Match) PlayedPairIndex {
	idx := make(PlayedPairIndex, len(history))
	for _, m := range history {
		if m.Stage == models.StageTraining {
			continue
		}
		if !m.Scoreable() {
			continue
		}
		idx[newPairKey(*m.Home.TeamID, *m.Away.TeamID)] = struct{}{}
	}
	return idx
}

func (idx PlayedPairIndex) Played(a, b int) bool {
	_, ok := idx[newPairKey(a, b)]
	return ok
}

// ScorePair scores the desirability of pairing two teams. Lower is better.
// Teams from the same preliminary group already met and must not be paired
// again; forbidden is true and the score is meaningless in that case.
func ScorePair(a, b models.Team, played PlayedPairIndex) (score int, forbidden bool) {
	if a.GroupID != nil && b.GroupID != nil && *a.GroupID == *b.GroupID {
		return 0, true
	}
	if played.Played(a.ID, b.ID) {
		score += penaltyRematch
	}
	if a.Class == models.TeamClassLocal && b.Class == models.TeamClassLocal {
		score += penaltyBothLocal
	}
	if a.Region != nil && b.Region != nil && *a.Region == *b.Region {
		score += penaltySameRegion
	}
	if a.LeagueNumber != nil && b.LeagueNumber != nil && *a.LeagueNumber == *b.LeagueNumber {
		score += penaltySameLeague
	}
	return score, false
}
