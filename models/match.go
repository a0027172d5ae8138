package models

import "time"

type Stage string

const (
	StageSemifinal  Stage = "semifinal"
	StageThirdPlace Stage = "third_place"
	StageFinal      Stage = "final"
	StageTraining   Stage = "training"
)

type MatchStatus string

const (
	MatchStatusScheduled MatchStatus = "scheduled"
	MatchStatusCompleted MatchStatus = "completed"
)

// SlotKind tags the four states a bracket slot can be in. Exactly one of the
// TeamSlot payload fields is set for each kind.
type SlotKind string

const (
	SlotFixed  SlotKind = "fixed"
	SlotSeed   SlotKind = "seed"
	SlotWinner SlotKind = "winner"
	SlotLoser  SlotKind = "loser"
)

// TeamSlot is one side of a match. Until the slot resolves to a concrete team
// it carries either a seed label ("A1") or a reference to the bracket match
// whose winner or loser will fill it.
type TeamSlot struct {
	Kind           SlotKind `json:"kind" db:"kind"`
	TeamID         *int     `json:"team_id,omitempty" db:"team_id"`
	SeedLabel      *string  `json:"seed_label,omitempty" db:"seed_label"`
	SourceMatchUID *string  `json:"source_match_uid,omitempty" db:"source_uid"`
}

func FixedSlot(teamID int) TeamSlot {
	return TeamSlot{Kind: SlotFixed, TeamID: &teamID}
}

func SeedSlot(label string) TeamSlot {
	return TeamSlot{Kind: SlotSeed, SeedLabel: &label}
}

func WinnerSlot(sourceUID string) TeamSlot {
	return TeamSlot{Kind: SlotWinner, SourceMatchUID: &sourceUID}
}

func LoserSlot(sourceUID string) TeamSlot {
	return TeamSlot{Kind: SlotLoser, SourceMatchUID: &sourceUID}
}

// Resolved reports whether the slot holds a concrete team.
func (s TeamSlot) Resolved() bool {
	return s.Kind == SlotFixed && s.TeamID != nil
}

// Score holds per-half goals and an optional penalty shootout.
type Score struct {
	HomeHalf1 int  `json:"home_half1"`
	HomeHalf2 int  `json:"home_half2"`
	AwayHalf1 int  `json:"away_half1"`
	AwayHalf2 int  `json:"away_half2"`
	HomePK    *int `json:"home_pk,omitempty"`
	AwayPK    *int `json:"away_pk,omitempty"`
}

func (s Score) HomeTotal() int { return s.HomeHalf1 + s.HomeHalf2 }
func (s Score) AwayTotal() int { return s.AwayHalf1 + s.AwayHalf2 }

func (s Score) HasShootout() bool {
	return s.HomePK != nil && s.AwayPK != nil
}

// RankRange is the span of group ranks a training match draws from, kept as
// structured data instead of being encoded into a notes string.
type RankRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type Match struct {
	ID           int           `json:"id" db:"id"`
	TournamentID int           `json:"tournament_id" db:"tournament_id"`
	VenueID      int           `json:"venue_id" db:"venue_id"`
	Stage        Stage         `json:"stage" db:"stage"`
	Date         time.Time     `json:"date" db:"match_date"`
	Kickoff      time.Time     `json:"kickoff" db:"kickoff"`
	Duration     time.Duration `json:"duration"`
	OrderIndex   int           `json:"order_index" db:"order_index"`

	// BracketUID identifies a bracket match independently of its storage id,
	// so winner/loser slots can reference it before the schedule is persisted.
	BracketUID *string `json:"bracket_uid,omitempty" db:"bracket_uid"`

	Home TeamSlot `json:"home"`
	Away TeamSlot `json:"away"`

	Score  *Score      `json:"score,omitempty" db:"score"`
	Status MatchStatus `json:"status" db:"status"`

	LeagueNumber *int       `json:"league_number,omitempty" db:"league_number"`
	RankRange    *RankRange `json:"rank_range,omitempty"`
	IsRematch    bool       `json:"is_rematch" db:"is_rematch"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Scoreable reports whether both sides are concrete teams. A match with an
// unresolved slot has no team ids and cannot take a score.
func (m *Match) Scoreable() bool {
	return m.Home.Resolved() && m.Away.Resolved()
}
