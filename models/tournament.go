package models

import "time"

// QualificationRule selects how the four bracket teams are chosen from the
// preliminary standings.
type QualificationRule string

const (
	// RuleGroupBased advances the winner of each preliminary group.
	RuleGroupBased QualificationRule = "group_based"
	// RuleOverallRanking advances the top four teams of the overall table.
	RuleOverallRanking QualificationRule = "overall_ranking"
)

// QualifyingTeam is a team that has earned a bracket place.
type QualifyingTeam struct {
	Team        Team `json:"team"`
	GroupRank   int  `json:"group_rank"`
	OverallRank *int `json:"overall_rank,omitempty"`
}

// FinalDayConfig is the timing and qualification configuration for a
// tournament's final day.
type FinalDayConfig struct {
	TournamentID     int               `json:"tournament_id" db:"tournament_id"`
	Date             time.Time         `json:"date" db:"final_date"`
	Rule             QualificationRule `json:"qualification_rule" db:"qualification_rule"`
	StartTime        time.Time         `json:"start_time" db:"start_time"`
	BracketDuration  time.Duration     `json:"bracket_duration"`
	BracketInterval  time.Duration     `json:"bracket_interval"`
	TrainingDuration time.Duration     `json:"training_duration"`
	TrainingInterval time.Duration     `json:"training_interval"`
}
