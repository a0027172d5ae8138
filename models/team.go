package models

// TeamClass separates teams entered by the hosting association from guest
// entries. Both play the preliminary rounds; the distinction only affects
// final-day pairing penalties.
type TeamClass string

const (
	TeamClassLocal   TeamClass = "local"
	TeamClassInvited TeamClass = "invited"
)

type Team struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	GroupID      *string   `json:"group_id,omitempty" db:"group_id"`
	Region       *string   `json:"region,omitempty" db:"region"`
	LeagueNumber *int      `json:"league_number,omitempty" db:"league_number"`
	Class        TeamClass `json:"class" db:"class"`
}

// TeamStanding is a team together with its preliminary-round result: the rank
// within its group and, when overall standings are computed, its rank across
// all groups. A standings snapshot is the input to a scheduling run.
type TeamStanding struct {
	Team        Team `json:"team"`
	GroupRank   int  `json:"group_rank" db:"group_rank"`
	OverallRank *int `json:"overall_rank,omitempty" db:"overall_rank"`
}
