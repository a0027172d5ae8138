package models

import "time"

type Venue struct {
	ID      int     `json:"id" db:"id"`
	Name    string  `json:"name" db:"name"`
	GroupID *string `json:"group_id,omitempty" db:"group_id"`

	HostsTraining bool `json:"hosts_training" db:"hosts_training"`
	HostsBracket  bool `json:"hosts_bracket" db:"hosts_bracket"`

	// MixedUse venues run BracketMatchCount bracket matches first, then
	// switch to training-match spacing for the rest of the day.
	MixedUse          bool `json:"mixed_use" db:"mixed_use"`
	BracketMatchCount int  `json:"bracket_match_count" db:"bracket_match_count"`

	// StartTime overrides the tournament-wide start time when set.
	StartTime *time.Time `json:"start_time,omitempty" db:"start_time"`
}

// EffectiveStart returns the venue's own start time, falling back to the
// tournament default.
func (v *Venue) EffectiveStart(fallback time.Time) time.Time {
	if v.StartTime != nil {
		return *v.StartTime
	}
	return fallback
}
