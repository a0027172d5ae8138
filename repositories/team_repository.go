package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/matchdaylab/finalday/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	// ListStandings returns the standings snapshot for the tournament: every
	// team joined with its preliminary group rank and optional overall rank.
	ListStandings(ctx context.Context, tournamentID int) ([]*models.TeamStanding, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) ListStandings(ctx context.Context, tournamentID int) ([]*models.TeamStanding, error) {
	query := `
		SELECT t.id, t.name, t.group_id, t.region, t.league_number, t.class,
		       s.group_rank, s.overall_rank
		FROM teams t
		JOIN standings s ON s.team_id = t.id
		WHERE t.tournament_id = $1
		ORDER BY s.group_rank ASC, t.group_id ASC, t.id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.TeamStanding, 0)
	for rows.Next() {
		var s models.TeamStanding
		if scanErr := rows.Scan(
			&s.Team.ID,
			&s.Team.Name,
			&s.Team.GroupID,
			&s.Team.Region,
			&s.Team.LeagueNumber,
			&s.Team.Class,
			&s.GroupRank,
			&s.OverallRank,
		); scanErr != nil {
			return nil, scanErr
		}
		standings = append(standings, &s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return standings, nil
}
