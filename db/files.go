package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

const fileSelect = `SELECT id, key, filename, content_type, coalesce(size_bytes, 0),
				coalesce(description, ''), coalesce(user_id, 0), created
			FROM files`

func scanFile(row pgx.Row) (*model.File, error) {
	f := &model.File{}
	err := row.Scan(&f.ID, &f.Key, &f.Filename, &f.ContentType, &f.Size,
		&f.Description, &f.UserID, &f.Created)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (db *postgresDB) CreateFile(ctx context.Context, f *model.File) error {
	const query = `INSERT INTO files (key, filename, content_type, size_bytes, description, user_id, created)
					VALUES (@key, @filename, @contentType, nullif(@size, 0), nullif(@description, ''),
						nullif(@userID, 0), @now)
					RETURNING id, created`

	args := pgx.NamedArgs{
		"key":         f.Key,
		"filename":    f.Filename,
		"contentType": f.ContentType,
		"size":        f.Size,
		"description": f.Description,
		"userID":      f.UserID,
		"now":         db.clock.Now().UTC(),
	}
	if err := db.pool.QueryRow(ctx, query, args).Scan(&f.ID, &f.Created); err != nil {
		return fmt.Errorf("error inserting file metadata: %w", err)
	}
	return nil
}

func (db *postgresDB) GetFile(ctx context.Context, id int32) (*model.File, error) {
	const query = fileSelect + ` WHERE id=@id`

	f, err := scanFile(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("error scanning file %d: %w", id, err)
	}
	return f, nil
}

func (db *postgresDB) GetFileByKey(ctx context.Context, key string) (*model.File, error) {
	const query = fileSelect + ` WHERE key=@key`

	f, err := scanFile(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"key": key}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("error scanning file %s: %w", key, err)
	}
	return f, nil
}

func (db *postgresDB) DeleteFileByKey(ctx context.Context, key string) error {
	const query = `DELETE FROM files WHERE key=@key`

	tag, err := db.pool.Exec(ctx, query, pgx.NamedArgs{"key": key})
	if err != nil {
		return fmt.Errorf("error deleting file %s: %w", key, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFileNotFound
	}
	return nil
}

func (db *postgresDB) ListFiles(ctx context.Context) ([]model.File, error) {
	const query = fileSelect + ` ORDER BY id`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	defer rows.Close()

	results := make([]model.File, 0, 16)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning file: %w", err)
		}
		results = append(results, *f)
	}
	return results, rows.Err()
}

// GetUserAvatar returns the first file owned by the user, which the app
// treats as their avatar.
func (db *postgresDB) GetUserAvatar(ctx context.Context, userID int32) (*model.File, error) {
	const query = fileSelect + ` WHERE user_id=@userID ORDER BY id LIMIT 1`

	f, err := scanFile(db.pool.QueryRow(ctx, query, pgx.NamedArgs{"userID": userID}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("error scanning avatar for user %d: %w", userID, err)
	}
	return f, nil
}
