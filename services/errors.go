package services

import "errors"

var (
	ErrTournamentNotFound = errors.New("tournament not found")

	// ErrBracketNotGenerated is returned when resolution is requested for a
	// final day whose bracket has not been scheduled yet.
	ErrBracketNotGenerated = errors.New("final day bracket has not been generated")

	ErrScheduleGenerationFailed = errors.New("final day schedule generation failed")
	ErrBracketResolveFailed     = errors.New("bracket resolution failed")
)
