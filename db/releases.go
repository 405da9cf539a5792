package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

const releaseSelect = `SELECT r.id, r.name, coalesce(r.description, ''), coalesce(r.logo_file_id, 0),
				coalesce(f.key, ''), r.created, coalesce(r.updated, 'epoch'::timestamptz),
				(SELECT count(*) FROM players p WHERE p.release_id = r.id)
			FROM releases r
			LEFT JOIN files f ON f.id = r.logo_file_id`

func scanRelease(row pgx.Row) (*model.Release, string, error) {
	r := &model.Release{}
	var logoKey string
	err := row.Scan(&r.ID, &r.Name, &r.Description, &r.LogoFileID, &logoKey,
		&r.Created, &r.Updated, &r.PlayersCount)
	if err != nil {
		return nil, "", err
	}
	return r, logoKey, nil
}

func (db *postgresDB) ListReleases(ctx context.Context) ([]model.Release, error) {
	const query = releaseSelect + ` ORDER BY r.created DESC`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing releases: %w", err)
	}
	defer rows.Close()

	results := make([]model.Release, 0, 8)
	for rows.Next() {
		r, logoKey, err := scanRelease(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning release: %w", err)
		}
		r.LogoURL = logoKey // swapped for a presigned link by the controller
		results = append(results, *r)
	}
	return results, rows.Err()
}

func (db *postgresDB) GetRelease(ctx context.Context, id int32) (*model.Release, error) {
	const query = releaseSelect + ` WHERE r.id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	r, logoKey, err := scanRelease(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReleaseNotFound
		}
		return nil, fmt.Errorf("error scanning release %d: %w", id, err)
	}
	r.LogoURL = logoKey
	return r, nil
}

func (db *postgresDB) CreateRelease(ctx context.Context, r *model.Release) error {
	const query = `INSERT INTO releases (name, description, logo_file_id, created)
					VALUES (@name, nullif(@description, ''), nullif(@logoFileID, 0), @now)
					RETURNING id, created`

	args := pgx.NamedArgs{
		"name":        r.Name,
		"description": r.Description,
		"logoFileID":  r.LogoFileID,
		"now":         db.clock.Now().UTC(),
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&r.ID, &r.Created); err != nil {
		return fmt.Errorf("error inserting release: %w", err)
	}
	return nil
}

func (db *postgresDB) UpdateRelease(ctx context.Context, r *model.Release) error {
	const query = `UPDATE releases
					SET name=@name, description=nullif(@description, ''),
						logo_file_id=nullif(@logoFileID, 0), updated=@now
					WHERE id=@id`

	args := pgx.NamedArgs{
		"id":          r.ID,
		"name":        r.Name,
		"description": r.Description,
		"logoFileID":  r.LogoFileID,
		"now":         db.clock.Now().UTC(),
	}
	tag, err := db.pool.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating release %d: %w", r.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReleaseNotFound
	}
	return nil
}

// DeleteRelease removes the release. Its players, and their votes, go with
// it through the ON DELETE CASCADE constraints.
func (db *postgresDB) DeleteRelease(ctx context.Context, id int32) error {
	const query = `DELETE FROM releases WHERE id=@id`

	tag, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting release %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrReleaseNotFound
	}
	return nil
}
