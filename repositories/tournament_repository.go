package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/matchdaylab/finalday/models"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	GetFinalDayConfig(ctx context.Context, tournamentID int) (*models.FinalDayConfig, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) GetFinalDayConfig(ctx context.Context, tournamentID int) (*models.FinalDayConfig, error) {
	query := `
		SELECT id, final_date, qualification_rule, start_time,
		       bracket_duration_min, bracket_interval_min,
		       training_duration_min, training_interval_min
		FROM tournaments
		WHERE id = $1`

	var (
		cfg              models.FinalDayConfig
		bracketDuration  int
		bracketInterval  int
		trainingDuration int
		trainingInterval int
	)
	err := r.db.QueryRowContext(ctx, query, tournamentID).Scan(
		&cfg.TournamentID,
		&cfg.Date,
		&cfg.Rule,
		&cfg.StartTime,
		&bracketDuration,
		&bracketInterval,
		&trainingDuration,
		&trainingInterval,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	cfg.BracketDuration = time.Duration(bracketDuration) * time.Minute
	cfg.BracketInterval = time.Duration(bracketInterval) * time.Minute
	cfg.TrainingDuration = time.Duration(trainingDuration) * time.Minute
	cfg.TrainingInterval = time.Duration(trainingInterval) * time.Minute

	return &cfg, nil
}
