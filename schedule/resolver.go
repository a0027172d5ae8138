package schedule

import (
	"fmt"

	"github.com/matchdaylab/finalday/models"
)

// Resolution carries the team substitutions for the final and third-place
// matches once both semifinals are decided. Semifinal 1 maps to the home side
// of both downstream matches, semifinal 2 to the away side.
type Resolution struct {
	FinalHomeTeamID      int `json:"final_home_team_id"`
	FinalAwayTeamID      int `json:"final_away_team_id"`
	ThirdPlaceHomeTeamID int `json:"third_place_home_team_id"`
	ThirdPlaceAwayTeamID int `json:"third_place_away_team_id"`
}

// ResolveBracket determines the final and third-place line-ups from the two
// semifinals. A nil resolution with a nil error means at least one semifinal
// has not completed yet; that is an expected transient state, not an error.
// A completed semifinal that is tied with no decisive shootout yields
// ErrUndeterminedOutcome and nothing is resolved.
func ResolveBracket(sf1, sf2 *models.Match) (*Resolution, error) {
	if !completed(sf1) || !completed(sf2) {
		return nil, nil
	}

	w1, l1, err := matchOutcome(sf1)
	if err != nil {
		return nil, err
	}
	w2, l2, err := matchOutcome(sf2)
	if err != nil {
		return nil, err
	}

	return &Resolution{
		FinalHomeTeamID:      w1,
		FinalAwayTeamID:      w2,
		ThirdPlaceHomeTeamID: l1,
		ThirdPlaceAwayTeamID: l2,
	}, nil
}

func completed(m *models.Match) bool {
	return m != nil && m.Status == models.MatchStatusCompleted && m.Score != nil
}

// matchOutcome returns the winner and loser team ids of a completed match.
// Total goals decide; a tie falls through to the penalty shootout when one
// was recorded.
func matchOutcome(m *models.Match) (winnerID, loserID int, err error) {
	if !m.Scoreable() {
		return 0, 0, fmt.Errorf("%w: match %s completed with unresolved slots", ErrUndeterminedOutcome, matchRef(m))
	}

	home, away := *m.Home.TeamID, *m.Away.TeamID
	s := m.Score

	switch {
	case s.HomeTotal() > s.AwayTotal():
		return home, away, nil
	case s.HomeTotal() < s.AwayTotal():
		return away, home, nil
	}

	if s.HasShootout() {
		switch {
		case *s.HomePK > *s.AwayPK:
			return home, away, nil
		case *s.HomePK < *s.AwayPK:
			return away, home, nil
		}
	}

	return 0, 0, fmt.Errorf("%w: match %s tied %d-%d with no decisive shootout",
		ErrUndeterminedOutcome, matchRef(m), s.HomeTotal(), s.AwayTotal())
}

func matchRef(m *models.Match) string {
	if m.BracketUID != nil {
		return *m.BracketUID
	}
	return fmt.Sprintf("#%d", m.ID)
}
