package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

const playerSelect = `SELECT p.id, p.name, coalesce(p.position, ''), coalesce(p.jersey_num, 0),
				coalesce(p.description, ''), p.release_id, coalesce(p.photo_file_id, 0),
				coalesce(f.key, ''), p.created, coalesce(p.updated, 'epoch'::timestamptz)
			FROM players p
			LEFT JOIN files f ON f.id = p.photo_file_id`

func scanPlayer(row pgx.Row) (*model.Player, error) {
	p := &model.Player{}
	err := row.Scan(&p.ID, &p.Name, &p.Position, &p.Jersey, &p.Description,
		&p.ReleaseID, &p.PhotoFileID, &p.PhotoKey, &p.Created, &p.Updated)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (db *postgresDB) ListPlayers(ctx context.Context) ([]model.Player, error) {
	const query = playerSelect + ` ORDER BY p.release_id DESC, p.id`
	return db.queryPlayers(ctx, query, pgx.NamedArgs{})
}

func (db *postgresDB) ListReleasePlayers(ctx context.Context, releaseID int32) ([]model.Player, error) {
	if _, err := db.GetRelease(ctx, releaseID); err != nil {
		return nil, err
	}
	const query = playerSelect + ` WHERE p.release_id=@releaseID ORDER BY p.jersey_num, p.id`
	return db.queryPlayers(ctx, query, pgx.NamedArgs{"releaseID": releaseID})
}

func (db *postgresDB) queryPlayers(ctx context.Context, query string, args pgx.NamedArgs) ([]model.Player, error) {
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error querying players: %w", err)
	}
	defer rows.Close()

	results := make([]model.Player, 0, 16)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning player: %w", err)
		}
		results = append(results, *p)
	}
	return results, rows.Err()
}

func (db *postgresDB) GetPlayer(ctx context.Context, id int32) (*model.Player, error) {
	const query = playerSelect + ` WHERE p.id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("error scanning player %d: %w", id, err)
	}
	return p, nil
}

// CreatePlayer inserts a player after checking the release's player limit.
// The release row is locked so concurrent inserts cannot push a release past
// MaxPlayersPerRelease.
func (db *postgresDB) CreatePlayer(ctx context.Context, p *model.Player) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting create player transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const lockQuery = `SELECT 1 FROM releases WHERE id=@releaseID FOR UPDATE`

	var one int
	err = tx.QueryRow(ctx, lockQuery, pgx.NamedArgs{"releaseID": p.ReleaseID}).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrReleaseNotFound
		}
		return fmt.Errorf("error locking release %d: %w", p.ReleaseID, err)
	}

	const countQuery = `SELECT count(*) FROM players WHERE release_id=@releaseID`

	var count int
	if err := tx.QueryRow(ctx, countQuery, pgx.NamedArgs{"releaseID": p.ReleaseID}).Scan(&count); err != nil {
		return fmt.Errorf("error counting players in release %d: %w", p.ReleaseID, err)
	}
	if count >= model.MaxPlayersPerRelease {
		return ErrReleaseFull
	}

	const insertQuery = `INSERT INTO players (name, position, jersey_num, description, release_id, photo_file_id, created)
						VALUES (@name, nullif(@position, ''), nullif(@jersey, 0), nullif(@description, ''),
							@releaseID, nullif(@photoFileID, 0), @now)
						RETURNING id, created`

	args := pgx.NamedArgs{
		"name":        p.Name,
		"position":    p.Position,
		"jersey":      p.Jersey,
		"description": p.Description,
		"releaseID":   p.ReleaseID,
		"photoFileID": p.PhotoFileID,
		"now":         db.clock.Now().UTC(),
	}
	if err := tx.QueryRow(ctx, insertQuery, args).Scan(&p.ID, &p.Created); err != nil {
		return fmt.Errorf("error inserting player: %w", err)
	}

	return tx.Commit(ctx)
}

func (db *postgresDB) UpdatePlayer(ctx context.Context, p *model.Player) error {
	const query = `UPDATE players
					SET name=@name, position=nullif(@position, ''), jersey_num=nullif(@jersey, 0),
						description=nullif(@description, ''), photo_file_id=nullif(@photoFileID, 0),
						updated=@now
					WHERE id=@id`

	args := pgx.NamedArgs{
		"id":          p.ID,
		"name":        p.Name,
		"position":    p.Position,
		"jersey":      p.Jersey,
		"description": p.Description,
		"photoFileID": p.PhotoFileID,
		"now":         db.clock.Now().UTC(),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating player %d: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

func (db *postgresDB) DeletePlayer(ctx context.Context, id int32) error {
	const query = `DELETE FROM players WHERE id=@id`

	tag, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting player %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}
