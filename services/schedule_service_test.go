package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/matchdaylab/finalday/models"
	"github.com/matchdaylab/finalday/repositories"
	"github.com/matchdaylab/finalday/schedule"
)

type fakeTournamentRepo struct {
	cfg *models.FinalDayConfig
}

func (f *fakeTournamentRepo) GetFinalDayConfig(_ context.Context, tournamentID int) (*models.FinalDayConfig, error) {
	if f.cfg == nil || f.cfg.TournamentID != tournamentID {
		return nil, repositories.ErrTournamentNotFound
	}
	return f.cfg, nil
}

type fakeTeamRepo struct {
	standings []*models.TeamStanding
}

func (f *fakeTeamRepo) ListStandings(context.Context, int) ([]*models.TeamStanding, error) {
	return f.standings, nil
}

type fakeVenueRepo struct {
	venues []*models.Venue
}

func (f *fakeVenueRepo) ListByTournament(context.Context, int) ([]*models.Venue, error) {
	return f.venues, nil
}

type fakeMatchRepo struct {
	history      []*models.Match
	stored       []*models.Match
	replaceCalls int
}

func (f *fakeMatchRepo) ReplaceDateSchedule(_ context.Context, _ int, _ time.Time, matches []*models.Match) error {
	f.replaceCalls++
	f.stored = make([]*models.Match, len(matches))
	for i, m := range matches {
		m.ID = i + 1
		f.stored[i] = m
	}
	return nil
}

func (f *fakeMatchRepo) ListByDate(context.Context, int, time.Time) ([]*models.Match, error) {
	return f.stored, nil
}

func (f *fakeMatchRepo) ListHistory(context.Context, int) ([]*models.Match, error) {
	return f.history, nil
}

func (f *fakeMatchRepo) UpdateSlots(_ context.Context, _ repositories.SQLExecutor, id int, home, away models.TeamSlot) error {
	for _, m := range f.stored {
		if m.ID == id {
			m.Home, m.Away = home, away
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (f *fakeMatchRepo) ApplyResolution(ctx context.Context, finalID int, finalHome, finalAway models.TeamSlot, thirdID int, thirdHome, thirdAway models.TeamSlot) error {
	if err := f.UpdateSlots(ctx, nil, finalID, finalHome, finalAway); err != nil {
		return err
	}
	return f.UpdateSlots(ctx, nil, thirdID, thirdHome, thirdAway)
}

func testDate() time.Time {
	return time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
}

func testConfig() *models.FinalDayConfig {
	return &models.FinalDayConfig{
		TournamentID:     1,
		Date:             testDate(),
		Rule:             models.RuleGroupBased,
		StartTime:        time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
		BracketDuration:  60 * time.Minute,
		BracketInterval:  20 * time.Minute,
		TrainingDuration: 50 * time.Minute,
		TrainingInterval: 15 * time.Minute,
	}
}

func testStandings() []*models.TeamStanding {
	groups := []string{"A", "B", "C", "D"}
	var standings []*models.TeamStanding
	id := 0
	for _, g := range groups {
		for rank := 1; rank <= 2; rank++ {
			id++
			group := g
			standings = append(standings, &models.TeamStanding{
				Team:      models.Team{ID: id, Name: group, GroupID: &group, Class: models.TeamClassInvited},
				GroupRank: rank,
			})
		}
	}
	return standings
}

func newTestService(tournaments *fakeTournamentRepo, teams *fakeTeamRepo, venues *fakeVenueRepo, matches *fakeMatchRepo) ScheduleService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewScheduleService(tournaments, teams, venues, matches, logger)
}

func TestRegenerateFinalDay(t *testing.T) {
	t.Run("replaces the whole day in one store call", func(t *testing.T) {
		store := &fakeMatchRepo{}
		svc := newTestService(
			&fakeTournamentRepo{cfg: testConfig()},
			&fakeTeamRepo{standings: testStandings()},
			&fakeVenueRepo{venues: []*models.Venue{
				{ID: 1, HostsBracket: true},
				{ID: 2, HostsTraining: true},
				{ID: 3, HostsTraining: true},
			}},
			store,
		)

		summary, err := svc.RegenerateFinalDay(context.Background(), 1)
		if err != nil {
			t.Fatal(err)
		}

		if store.replaceCalls != 1 {
			t.Errorf("store replaced %d times, want 1", store.replaceCalls)
		}
		// 4 bracket matches plus one training match per training venue:
		// the four runners-up split 2/2 across venues 2 and 3.
		if len(summary.Matches) != 6 {
			t.Fatalf("got %d matches, want 6", len(summary.Matches))
		}
		if summary.BracketVenueID != 1 {
			t.Errorf("bracket venue = %d, want 1", summary.BracketVenueID)
		}
		if summary.TrainingMatches != 2 {
			t.Errorf("training matches = %d, want 2", summary.TrainingMatches)
		}
		if len(summary.UnderfilledVenues) != 0 {
			t.Errorf("unexpected underfilled venues %v", summary.UnderfilledVenues)
		}

		for _, m := range summary.Matches {
			if m.Kickoff.IsZero() {
				t.Errorf("match order %d has no kickoff", m.OrderIndex)
			}
		}
		if got := summary.Matches[0].Kickoff.Format("15:04"); got != "09:00" {
			t.Errorf("first semifinal kickoff = %s, want 09:00", got)
		}
	})

	t.Run("underfilled venues are reported, not fatal", func(t *testing.T) {
		// Five groups: four winners qualify via group order, the fifth winner
		// is the only training team left.
		var standings []*models.TeamStanding
		for i, g := range []string{"A", "B", "C", "D", "E"} {
			group := g
			standings = append(standings, &models.TeamStanding{
				Team:      models.Team{ID: i + 1, GroupID: &group, Class: models.TeamClassInvited},
				GroupRank: 1,
			})
		}

		store := &fakeMatchRepo{}
		svc := newTestService(
			&fakeTournamentRepo{cfg: testConfig()},
			&fakeTeamRepo{standings: standings},
			&fakeVenueRepo{venues: []*models.Venue{
				{ID: 1, HostsBracket: true},
				{ID: 2, HostsTraining: true},
			}},
			store,
		)

		summary, err := svc.RegenerateFinalDay(context.Background(), 1)
		if err != nil {
			t.Fatal(err)
		}
		if summary.TrainingMatches != 0 {
			t.Errorf("training matches = %d, want 0", summary.TrainingMatches)
		}
		if len(summary.UnderfilledVenues) != 1 || summary.UnderfilledVenues[0] != 2 {
			t.Errorf("underfilled venues = %v, want [2]", summary.UnderfilledVenues)
		}
		if len(summary.Matches) != 4 {
			t.Errorf("got %d matches, want the 4 bracket matches", len(summary.Matches))
		}
	})

	t.Run("no bracket venue aborts before any write", func(t *testing.T) {
		store := &fakeMatchRepo{}
		svc := newTestService(
			&fakeTournamentRepo{cfg: testConfig()},
			&fakeTeamRepo{standings: testStandings()},
			&fakeVenueRepo{venues: []*models.Venue{{ID: 2, HostsTraining: true}}},
			store,
		)

		_, err := svc.RegenerateFinalDay(context.Background(), 1)
		if !errors.Is(err, schedule.ErrNoEligibleVenue) {
			t.Fatalf("err = %v, want ErrNoEligibleVenue", err)
		}
		if store.replaceCalls != 0 {
			t.Error("store must not be touched when the run fails")
		}
	})

	t.Run("unknown tournament", func(t *testing.T) {
		svc := newTestService(&fakeTournamentRepo{}, &fakeTeamRepo{}, &fakeVenueRepo{}, &fakeMatchRepo{})
		_, err := svc.RegenerateFinalDay(context.Background(), 99)
		if !errors.Is(err, ErrTournamentNotFound) {
			t.Errorf("err = %v, want ErrTournamentNotFound", err)
		}
	})
}

func storedBracket(sf1Score, sf2Score *models.Score) *fakeMatchRepo {
	uid := func(s string) *string { return &s }
	status := func(s *models.Score) models.MatchStatus {
		if s != nil {
			return models.MatchStatusCompleted
		}
		return models.MatchStatusScheduled
	}
	return &fakeMatchRepo{stored: []*models.Match{
		{ID: 1, BracketUID: uid(schedule.UIDSemifinal1), Stage: models.StageSemifinal,
			Home: models.FixedSlot(1), Away: models.FixedSlot(2), Score: sf1Score, Status: status(sf1Score)},
		{ID: 2, BracketUID: uid(schedule.UIDSemifinal2), Stage: models.StageSemifinal,
			Home: models.FixedSlot(3), Away: models.FixedSlot(4), Score: sf2Score, Status: status(sf2Score)},
		{ID: 3, BracketUID: uid(schedule.UIDThirdPlace), Stage: models.StageThirdPlace,
			Home: models.LoserSlot(schedule.UIDSemifinal1), Away: models.LoserSlot(schedule.UIDSemifinal2)},
		{ID: 4, BracketUID: uid(schedule.UIDFinal), Stage: models.StageFinal,
			Home: models.WinnerSlot(schedule.UIDSemifinal1), Away: models.WinnerSlot(schedule.UIDSemifinal2)},
	}}
}

func TestResolveFinalDay(t *testing.T) {
	pk := func(n int) *int { return &n }

	t.Run("applies winners and losers downstream", func(t *testing.T) {
		store := storedBracket(
			&models.Score{HomeHalf1: 2, AwayHalf1: 1},
			&models.Score{HomeHalf1: 1, AwayHalf2: 1, HomePK: pk(4), AwayPK: pk(3)},
		)
		svc := newTestService(&fakeTournamentRepo{cfg: testConfig()}, &fakeTeamRepo{}, &fakeVenueRepo{}, store)

		state, res, err := svc.ResolveFinalDay(context.Background(), 1)
		if err != nil {
			t.Fatal(err)
		}
		if state != ResolveApplied {
			t.Fatalf("state = %s, want resolved", state)
		}
		if res.FinalHomeTeamID != 1 || res.FinalAwayTeamID != 3 {
			t.Errorf("final = %d vs %d, want 1 vs 3", res.FinalHomeTeamID, res.FinalAwayTeamID)
		}

		final, third := store.stored[3], store.stored[2]
		if !final.Scoreable() || !third.Scoreable() {
			t.Fatal("downstream matches should hold concrete teams after resolution")
		}
		if *final.Home.TeamID != 1 || *final.Away.TeamID != 3 {
			t.Errorf("stored final = %d vs %d", *final.Home.TeamID, *final.Away.TeamID)
		}
		if *third.Home.TeamID != 2 || *third.Away.TeamID != 4 {
			t.Errorf("stored third place = %d vs %d", *third.Home.TeamID, *third.Away.TeamID)
		}
	})

	t.Run("pending while a semifinal is open", func(t *testing.T) {
		store := storedBracket(&models.Score{HomeHalf1: 2}, nil)
		svc := newTestService(&fakeTournamentRepo{cfg: testConfig()}, &fakeTeamRepo{}, &fakeVenueRepo{}, store)

		state, res, err := svc.ResolveFinalDay(context.Background(), 1)
		if err != nil {
			t.Fatal(err)
		}
		if state != ResolvePending || res != nil {
			t.Errorf("state = %s, res = %v; want pending and nil", state, res)
		}
		if store.stored[3].Scoreable() {
			t.Error("final must stay unresolved while pending")
		}
	})

	t.Run("undetermined outcome leaves slots untouched", func(t *testing.T) {
		store := storedBracket(
			&models.Score{HomeHalf1: 1, AwayHalf1: 1},
			&models.Score{HomeHalf1: 2},
		)
		svc := newTestService(&fakeTournamentRepo{cfg: testConfig()}, &fakeTeamRepo{}, &fakeVenueRepo{}, store)

		_, _, err := svc.ResolveFinalDay(context.Background(), 1)
		if !errors.Is(err, schedule.ErrUndeterminedOutcome) {
			t.Fatalf("err = %v, want ErrUndeterminedOutcome", err)
		}
		if store.stored[3].Scoreable() || store.stored[2].Scoreable() {
			t.Error("undetermined outcome must not substitute any slot")
		}
	})

	t.Run("missing bracket", func(t *testing.T) {
		svc := newTestService(&fakeTournamentRepo{cfg: testConfig()}, &fakeTeamRepo{}, &fakeVenueRepo{}, &fakeMatchRepo{})
		_, _, err := svc.ResolveFinalDay(context.Background(), 1)
		if !errors.Is(err, ErrBracketNotGenerated) {
			t.Errorf("err = %v, want ErrBracketNotGenerated", err)
		}
	})
}
