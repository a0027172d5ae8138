package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/matchdaylab/finalday/models"
	"github.com/matchdaylab/finalday/repositories"
	"github.com/matchdaylab/finalday/schedule"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type ResolveState string

const (
	// ResolvePending means at least one semifinal is still unfinished. This
	// is an expected state, not a failure.
	ResolvePending ResolveState = "pending"
	ResolveApplied ResolveState = "resolved"
)

// ScheduleSummary reports a finished regeneration run. UnderfilledVenues
// lists training venues that received fewer than two teams: they produced no
// matches and usually indicate a venue/pool misconfiguration.
type ScheduleSummary struct {
	TournamentID      int                      `json:"tournament_id"`
	Rule              models.QualificationRule `json:"qualification_rule"`
	BracketVenueID    int                      `json:"bracket_venue_id"`
	Matches           []*models.Match          `json:"matches"`
	TrainingMatches   int                      `json:"training_matches"`
	UnderfilledVenues []int                    `json:"underfilled_venues,omitempty"`
}

type ScheduleService interface {
	// RegenerateFinalDay recomputes the whole final-day schedule and replaces
	// the stored match set for that date in a single transaction.
	RegenerateFinalDay(ctx context.Context, tournamentID int) (*ScheduleSummary, error)
	// ResolveFinalDay propagates semifinal results into the final and
	// third-place matches once both semifinals are completed.
	ResolveFinalDay(ctx context.Context, tournamentID int) (ResolveState, *schedule.Resolution, error)
	ListFinalDay(ctx context.Context, tournamentID int) ([]*models.Match, error)
}

type scheduleService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	venueRepo      repositories.VenueRepository
	matchRepo      repositories.MatchRepository
	logger         *slog.Logger

	// runs serializes regeneration per tournament: concurrent requests for
	// the same tournament share one computation.
	runs singleflight.Group
}

func NewScheduleService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	venueRepo repositories.VenueRepository,
	matchRepo repositories.MatchRepository,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		venueRepo:      venueRepo,
		matchRepo:      matchRepo,
		logger:         logger,
	}
}

// snapshot is the immutable input to one scheduling run.
type snapshot struct {
	standings []*models.TeamStanding
	venues    []*models.Venue
	history   []*models.Match
}

func (s *scheduleService) RegenerateFinalDay(ctx context.Context, tournamentID int) (*ScheduleSummary, error) {
	cfg, err := s.loadConfig(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%d:%s", tournamentID, cfg.Date.Format("2006-01-02"))
	v, err, shared := s.runs.Do(key, func() (interface{}, error) {
		return s.regenerate(ctx, tournamentID, cfg)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Info("regeneration shared with a concurrent request",
			slog.Int("tournament_id", tournamentID))
	}
	return v.(*ScheduleSummary), nil
}

func (s *scheduleService) regenerate(ctx context.Context, tournamentID int, cfg *models.FinalDayConfig) (*ScheduleSummary, error) {
	snap, err := s.loadSnapshot(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScheduleGenerationFailed, err)
	}

	qualifiers, remainder, err := schedule.SelectQualifiers(snap.standings, cfg.Rule)
	if err != nil {
		return nil, err
	}

	var bracketVenue *models.Venue
	for _, v := range snap.venues {
		if v.HostsBracket {
			bracketVenue = v
			break
		}
	}
	if bracketVenue == nil {
		return nil, fmt.Errorf("%w: no venue hosts the bracket", schedule.ErrNoEligibleVenue)
	}

	bracket, err := schedule.BuildBracket(qualifiers, schedule.BracketParams{
		TournamentID: tournamentID,
		VenueID:      bracketVenue.ID,
		Date:         cfg.Date,
		Rule:         cfg.Rule,
		Start:        bracketVenue.EffectiveStart(cfg.StartTime),
		Duration:     cfg.BracketDuration,
		Interval:     cfg.BracketInterval,
	})
	if err != nil {
		return nil, err
	}

	var trainingVenues []*models.Venue
	for _, v := range snap.venues {
		if v.HostsTraining {
			trainingVenues = append(trainingVenues, v)
		}
	}

	pools := map[int][]*models.TeamStanding{}
	if len(remainder) > 0 {
		pools, err = schedule.AssignVenues(remainder, trainingVenues)
		if err != nil {
			return nil, err
		}
	}

	played := schedule.NewPlayedPairIndex(snap.history)
	timing := schedule.SlotTiming{
		BracketDuration:  cfg.BracketDuration,
		BracketInterval:  cfg.BracketInterval,
		TrainingDuration: cfg.TrainingDuration,
		TrainingInterval: cfg.TrainingInterval,
	}

	byVenue := map[int][]*models.Match{bracketVenue.ID: bracket}
	var underfilled []int
	trainingCount := 0

	for _, v := range trainingVenues {
		pool := pools[v.ID]
		if len(pool) < 2 {
			underfilled = append(underfilled, v.ID)
			s.logger.Warn("training venue received fewer than two teams",
				slog.Int("tournament_id", tournamentID),
				slog.Int("venue_id", v.ID),
				slog.Int("pool_size", len(pool)))
			continue
		}
		generated := schedule.GenerateTrainingMatches(pool, played, schedule.TrainingParams{
			TournamentID: tournamentID,
			VenueID:      v.ID,
			Date:         cfg.Date,
		})
		trainingCount += len(generated)
		byVenue[v.ID] = append(byVenue[v.ID], generated...)
	}

	// Plan time slots per venue. A mixed-use venue switches from bracket to
	// training spacing after its configured bracket match count; otherwise
	// the boundary is however many bracket matches the venue hosts.
	all := make([]*models.Match, 0, len(bracket)+trainingCount)
	for _, v := range snap.venues {
		dayMatches := byVenue[v.ID]
		if len(dayMatches) == 0 {
			continue
		}
		bracketCount := 0
		for _, m := range dayMatches {
			if m.Stage != models.StageTraining {
				bracketCount++
			}
		}
		if v.MixedUse && v.BracketMatchCount > 0 {
			bracketCount = v.BracketMatchCount
		}
		plans := schedule.ComputeSlots(v.EffectiveStart(cfg.StartTime), bracketCount, len(dayMatches), timing)
		schedule.ApplySlots(dayMatches, plans)
		all = append(all, dayMatches...)
	}

	if err := s.matchRepo.ReplaceDateSchedule(ctx, tournamentID, cfg.Date, all); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScheduleGenerationFailed, err)
	}

	s.logger.Info("final day schedule regenerated",
		slog.Int("tournament_id", tournamentID),
		slog.String("date", cfg.Date.Format("2006-01-02")),
		slog.Int("bracket_matches", len(bracket)),
		slog.Int("training_matches", trainingCount),
		slog.Int("underfilled_venues", len(underfilled)))

	return &ScheduleSummary{
		TournamentID:      tournamentID,
		Rule:              cfg.Rule,
		BracketVenueID:    bracketVenue.ID,
		Matches:           all,
		TrainingMatches:   trainingCount,
		UnderfilledVenues: underfilled,
	}, nil
}

func (s *scheduleService) loadSnapshot(ctx context.Context, tournamentID int) (*snapshot, error) {
	var snap snapshot
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		standings, err := s.teamRepo.ListStandings(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load standings: %w", err)
		}
		snap.standings = standings
		return nil
	})
	g.Go(func() error {
		venues, err := s.venueRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load venues: %w", err)
		}
		snap.venues = venues
		return nil
	})
	g.Go(func() error {
		history, err := s.matchRepo.ListHistory(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load match history: %w", err)
		}
		snap.history = history
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *scheduleService) ResolveFinalDay(ctx context.Context, tournamentID int) (ResolveState, *schedule.Resolution, error) {
	cfg, err := s.loadConfig(ctx, tournamentID)
	if err != nil {
		return "", nil, err
	}

	matches, err := s.matchRepo.ListByDate(ctx, tournamentID, cfg.Date)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBracketResolveFailed, err)
	}

	byUID := make(map[string]*models.Match, len(matches))
	for _, m := range matches {
		if m.BracketUID != nil {
			byUID[*m.BracketUID] = m
		}
	}
	sf1, sf2 := byUID[schedule.UIDSemifinal1], byUID[schedule.UIDSemifinal2]
	third, final := byUID[schedule.UIDThirdPlace], byUID[schedule.UIDFinal]
	if sf1 == nil || sf2 == nil || third == nil || final == nil {
		return "", nil, fmt.Errorf("%w: tournament %d on %s", ErrBracketNotGenerated, tournamentID, cfg.Date.Format("2006-01-02"))
	}

	res, err := schedule.ResolveBracket(sf1, sf2)
	if err != nil {
		return "", nil, err
	}
	if res == nil {
		return ResolvePending, nil, nil
	}

	err = s.matchRepo.ApplyResolution(ctx,
		final.ID, models.FixedSlot(res.FinalHomeTeamID), models.FixedSlot(res.FinalAwayTeamID),
		third.ID, models.FixedSlot(res.ThirdPlaceHomeTeamID), models.FixedSlot(res.ThirdPlaceAwayTeamID))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBracketResolveFailed, err)
	}

	s.logger.Info("bracket resolved",
		slog.Int("tournament_id", tournamentID),
		slog.Int("final_home", res.FinalHomeTeamID),
		slog.Int("final_away", res.FinalAwayTeamID))

	return ResolveApplied, res, nil
}

func (s *scheduleService) ListFinalDay(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	cfg, err := s.loadConfig(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return s.matchRepo.ListByDate(ctx, tournamentID, cfg.Date)
}

func (s *scheduleService) loadConfig(ctx context.Context, tournamentID int) (*models.FinalDayConfig, error) {
	cfg, err := s.tournamentRepo.GetFinalDayConfig(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrTournamentNotFound, tournamentID)
		}
		return nil, fmt.Errorf("failed to load final day config for tournament %d: %w", tournamentID, err)
	}
	return cfg, nil
}
