package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/matchdaylab/finalday/models"
)

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchVenueInvalid  = errors.New("match venue conflict or invalid")
	ErrScheduleReplaceTxn = errors.New("schedule replacement transaction failed")
)

type MatchRepository interface {
	// ReplaceDateSchedule atomically swaps the given date's match set: either
	// the old set remains or the new set fully replaces it.
	ReplaceDateSchedule(ctx context.Context, tournamentID int, date time.Time, matches []*models.Match) error
	ListByDate(ctx context.Context, tournamentID int, date time.Time) ([]*models.Match, error)
	// ListHistory returns completed non-training matches, the input for the
	// played-pair index.
	ListHistory(ctx context.Context, tournamentID int) ([]*models.Match, error)
	UpdateSlots(ctx context.Context, exec SQLExecutor, id int, home, away models.TeamSlot) error
	// ApplyResolution writes both downstream slot substitutions in one
	// transaction so the bracket never persists half-resolved.
	ApplyResolution(ctx context.Context, finalID int, finalHome, finalAway models.TeamSlot, thirdID int, thirdHome, thirdAway models.TeamSlot) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	id, tournament_id, venue_id, stage, match_date, kickoff, duration_min, order_index, bracket_uid,
	home_kind, home_team_id, home_seed_label, home_source_uid,
	away_kind, away_team_id, away_seed_label, away_source_uid,
	score, status, league_number, rank_from, rank_to, is_rematch, created_at`

func (r *postgresMatchRepository) ReplaceDateSchedule(ctx context.Context, tournamentID int, date time.Time, matches []*models.Match) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", ErrScheduleReplaceTxn, err)
	}

	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				txErr = fmt.Errorf("%w (rollback also failed: %v)", txErr, rbErr)
			}
		}
	}()

	_, txErr = tx.ExecContext(ctx,
		`DELETE FROM matches WHERE tournament_id = $1 AND match_date = $2`,
		tournamentID, date)
	if txErr != nil {
		return fmt.Errorf("%w: delete old schedule: %w", ErrScheduleReplaceTxn, txErr)
	}

	for _, m := range matches {
		if txErr = r.create(ctx, tx, m); txErr != nil {
			return fmt.Errorf("%w: insert match order %d: %w", ErrScheduleReplaceTxn, m.OrderIndex, txErr)
		}
	}

	if txErr = tx.Commit(); txErr != nil {
		return fmt.Errorf("%w: commit: %w", ErrScheduleReplaceTxn, txErr)
	}
	return nil
}

func (r *postgresMatchRepository) create(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	scoreJSON, err := marshalScore(m.Score)
	if err != nil {
		return err
	}

	var kickoff *time.Time
	if !m.Kickoff.IsZero() {
		kickoff = &m.Kickoff
	}
	var rankFrom, rankTo *int
	if m.RankRange != nil {
		rankFrom, rankTo = &m.RankRange.From, &m.RankRange.To
	}

	query := `
		INSERT INTO matches
			(tournament_id, venue_id, stage, match_date, kickoff, duration_min, order_index, bracket_uid,
			 home_kind, home_team_id, home_seed_label, home_source_uid,
			 away_kind, away_team_id, away_seed_label, away_source_uid,
			 score, status, league_number, rank_from, rank_to, is_rematch)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id, created_at`

	return exec.QueryRowContext(ctx, query,
		m.TournamentID,
		m.VenueID,
		m.Stage,
		m.Date,
		kickoff,
		int(m.Duration/time.Minute),
		m.OrderIndex,
		m.BracketUID,
		m.Home.Kind, m.Home.TeamID, m.Home.SeedLabel, m.Home.SourceMatchUID,
		m.Away.Kind, m.Away.TeamID, m.Away.SeedLabel, m.Away.SourceMatchUID,
		scoreJSON,
		m.Status,
		m.LeagueNumber,
		rankFrom,
		rankTo,
		m.IsRematch,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *postgresMatchRepository) ListByDate(ctx context.Context, tournamentID int, date time.Time) ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE tournament_id = $1 AND match_date = $2
		ORDER BY venue_id ASC, order_index ASC`

	return r.list(ctx, query, tournamentID, date)
}

func (r *postgresMatchRepository) ListHistory(ctx context.Context, tournamentID int) ([]*models.Match, error) {
	query := `
		SELECT ` + matchColumns + `
		FROM matches
		WHERE tournament_id = $1 AND stage <> $2 AND status = $3
		ORDER BY match_date ASC, order_index ASC`

	return r.list(ctx, query, tournamentID, models.StageTraining, models.MatchStatusCompleted)
}

func (r *postgresMatchRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateSlots(ctx context.Context, exec SQLExecutor, id int, home, away models.TeamSlot) error {
	query := `
		UPDATE matches
		SET home_kind = $1, home_team_id = $2, home_seed_label = $3, home_source_uid = $4,
		    away_kind = $5, away_team_id = $6, away_seed_label = $7, away_source_uid = $8
		WHERE id = $9`

	result, err := exec.ExecContext(ctx, query,
		home.Kind, home.TeamID, home.SeedLabel, home.SourceMatchUID,
		away.Kind, away.TeamID, away.SeedLabel, away.SourceMatchUID,
		id,
	)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) ApplyResolution(ctx context.Context, finalID int, finalHome, finalAway models.TeamSlot, thirdID int, thirdHome, thirdAway models.TeamSlot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin resolution transaction: %w", err)
	}

	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				txErr = fmt.Errorf("%w (rollback also failed: %v)", txErr, rbErr)
			}
		}
	}()

	if txErr = r.UpdateSlots(ctx, tx, finalID, finalHome, finalAway); txErr != nil {
		return fmt.Errorf("failed to update final slots: %w", txErr)
	}
	if txErr = r.UpdateSlots(ctx, tx, thirdID, thirdHome, thirdAway); txErr != nil {
		return fmt.Errorf("failed to update third place slots: %w", txErr)
	}
	if txErr = tx.Commit(); txErr != nil {
		return fmt.Errorf("failed to commit resolution: %w", txErr)
	}
	return nil
}

func scanMatch(rows *sql.Rows) (*models.Match, error) {
	var (
		m           models.Match
		kickoff     sql.NullTime
		durationMin int
		scoreJSON   []byte
		rankFrom    sql.NullInt64
		rankTo      sql.NullInt64
	)

	err := rows.Scan(
		&m.ID, &m.TournamentID, &m.VenueID, &m.Stage, &m.Date, &kickoff, &durationMin, &m.OrderIndex, &m.BracketUID,
		&m.Home.Kind, &m.Home.TeamID, &m.Home.SeedLabel, &m.Home.SourceMatchUID,
		&m.Away.Kind, &m.Away.TeamID, &m.Away.SeedLabel, &m.Away.SourceMatchUID,
		&scoreJSON, &m.Status, &m.LeagueNumber, &rankFrom, &rankTo, &m.IsRematch, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if kickoff.Valid {
		m.Kickoff = kickoff.Time
	}
	m.Duration = time.Duration(durationMin) * time.Minute
	if rankFrom.Valid && rankTo.Valid {
		m.RankRange = &models.RankRange{From: int(rankFrom.Int64), To: int(rankTo.Int64)}
	}
	if len(scoreJSON) > 0 {
		var score models.Score
		if err := json.Unmarshal(scoreJSON, &score); err != nil {
			return nil, fmt.Errorf("failed to decode score for match %d: %w", m.ID, err)
		}
		m.Score = &score
	}

	return &m, nil
}

func marshalScore(s *models.Score) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode score: %w", err)
	}
	return data, nil
}
