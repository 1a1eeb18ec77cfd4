package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"flashquest-backend/internal/models"
)

type PlayerRepo struct {
	pool *pgxpool.Pool
}

func NewPlayerRepo(pool *pgxpool.Pool) *PlayerRepo {
	return &PlayerRepo{pool: pool}
}

// Create inserts a new player. New accounts start with streak=1, points=0
// and last_active set to the signup date.
func (r *PlayerRepo) Create(ctx context.Context, player *models.Player) error {
	query := `
		INSERT INTO players (id, email, name, password_hash, points, streak, last_active)
		VALUES ($1, $2, $3, $4, 0, 1, $5)
		RETURNING created_at`

	player.ID = uuid.New()
	player.Points = 0
	player.Streak = 1
	today := time.Now().UTC().Truncate(24 * time.Hour)
	player.LastActive = &today

	return r.pool.QueryRow(ctx, query,
		player.ID, player.Email, player.Name, player.PasswordHash, today,
	).Scan(&player.CreatedAt)
}

func (r *PlayerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	player := &models.Player{}
	query := `SELECT id, email, name, password_hash, points, streak, last_active, created_at
		FROM players WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&player.ID, &player.Email, &player.Name, &player.PasswordHash,
		&player.Points, &player.Streak, &player.LastActive, &player.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return player, nil
}

func (r *PlayerRepo) GetByName(ctx context.Context, name string) (*models.Player, error) {
	player := &models.Player{}
	query := `SELECT id, email, name, password_hash, points, streak, last_active, created_at
		FROM players WHERE name = $1`

	err := r.pool.QueryRow(ctx, query, name).Scan(
		&player.ID, &player.Email, &player.Name, &player.PasswordHash,
		&player.Points, &player.Streak, &player.LastActive, &player.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return player, nil
}

// EmailOrNameTaken reports whether a player already exists with the given
// email or name (case-sensitive, as stored).
func (r *PlayerRepo) EmailOrNameTaken(ctx context.Context, email, name string) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM players WHERE email = $1 OR name = $2)",
		email, name,
	).Scan(&taken)
	return taken, err
}

// AddPoints awards points for a correct answer. Points only ever increase.
func (r *PlayerRepo) AddPoints(ctx context.Context, playerID uuid.UUID, points int) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE players SET points = points + $1 WHERE id = $2",
		points, playerID,
	)
	return err
}

// SetStreak writes the streak and last-active date computed by the streak
// rule. Single UPDATE, last write wins on a same-day race.
func (r *PlayerRepo) SetStreak(ctx context.Context, playerID uuid.UUID, streak int, lastActive time.Time) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE players SET streak = $1, last_active = $2 WHERE id = $3",
		streak, lastActive, playerID,
	)
	return err
}

// ListByPoints returns all players ordered by points descending, for the
// leaderboard.
func (r *PlayerRepo) ListByPoints(ctx context.Context) ([]models.Player, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, name, password_hash, points, streak, last_active, created_at
		FROM players
		ORDER BY points DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(
			&p.ID, &p.Email, &p.Name, &p.PasswordHash,
			&p.Points, &p.Streak, &p.LastActive, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		players = append(players, p)
	}

	return players, rows.Err()
}
