package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/matchdaylab/finalday/models"
)

var ErrVenueNotFound = errors.New("venue not found")

type VenueRepository interface {
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Venue, error)
}

type postgresVenueRepository struct {
	db *sql.DB
}

func NewPostgresVenueRepository(db *sql.DB) VenueRepository {
	return &postgresVenueRepository{db: db}
}

func (r *postgresVenueRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Venue, error) {
	query := `
		SELECT id, name, group_id, hosts_training, hosts_bracket, mixed_use, bracket_match_count, start_time
		FROM venues
		WHERE tournament_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]*models.Venue, 0)
	for rows.Next() {
		var v models.Venue
		if scanErr := rows.Scan(
			&v.ID,
			&v.Name,
			&v.GroupID,
			&v.HostsTraining,
			&v.HostsBracket,
			&v.MixedUse,
			&v.BracketMatchCount,
			&v.StartTime,
		); scanErr != nil {
			return nil, scanErr
		}
		venues = append(venues, &v)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return venues, nil
}
