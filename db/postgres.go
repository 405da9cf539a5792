package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

var (
	ErrUserNotFound     error = errors.New("user not found")
	ErrPlayerNotFound   error = errors.New("player not found")
	ErrCategoryNotFound error = errors.New("category not found")
	ErrReleaseNotFound  error = errors.New("release not found")
	ErrFileNotFound     error = errors.New("file not found")
	ErrCategoryFull     error = errors.New("category has no places left")
	ErrReleaseFull      error = errors.New("release already has the maximum number of players")
)

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func (db *postgresDB) GetOrCreateUser(ctx context.Context, telegramID int64) (*model.User, error) {
	// A single statement upsert so that two concurrent first-contact calls
	// for the same telegram id always resolve to the same row.
	const query = `INSERT INTO users (telegram_id, created)
					VALUES (@telegramID, @now)
					ON CONFLICT (telegram_id) DO UPDATE SET telegram_id=EXCLUDED.telegram_id
					RETURNING id, telegram_id, coalesce(username, ''),
						coalesce(name_first, ''), coalesce(name_last, ''), created`

	args := pgx.NamedArgs{
		"telegramID": telegramID,
		"now":        db.clock.Now().UTC(),
	}
	row := db.pool.QueryRow(ctx, query, args)
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName, &u.Created); err != nil {
		return nil, fmt.Errorf("error upserting user %d: %w", telegramID, err)
	}
	return u, nil
}

func (db *postgresDB) UpdateUserProfile(ctx context.Context, telegramID int64, username, firstName, lastName string) (*model.User, error) {
	const query = `INSERT INTO users (telegram_id, username, name_first, name_last, created)
					VALUES (@telegramID, @username, @first, @last, @now)
					ON CONFLICT (telegram_id) DO UPDATE
						SET username=EXCLUDED.username,
							name_first=EXCLUDED.name_first,
							name_last=EXCLUDED.name_last
					RETURNING id, telegram_id, coalesce(username, ''),
						coalesce(name_first, ''), coalesce(name_last, ''), created`

	args := pgx.NamedArgs{
		"telegramID": telegramID,
		"username":   username,
		"first":      firstName,
		"last":       lastName,
		"now":        db.clock.Now().UTC(),
	}
	row := db.pool.QueryRow(ctx, query, args)
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName, &u.Created); err != nil {
		return nil, fmt.Errorf("error updating user profile %d: %w", telegramID, err)
	}
	return u, nil
}

func (db *postgresDB) ListUsers(ctx context.Context) ([]model.User, error) {
	const query = `SELECT id, telegram_id, coalesce(username, ''),
						coalesce(name_first, ''), coalesce(name_last, ''), created
					FROM users ORDER BY id`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	results := make([]model.User, 0, 16)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName, &u.Created); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		results = append(results, u)
	}
	return results, rows.Err()
}

func (db *postgresDB) GetUser(ctx context.Context, id int32) (*model.User, error) {
	const query = `SELECT id, telegram_id, coalesce(username, ''),
						coalesce(name_first, ''), coalesce(name_last, ''), created
					FROM users WHERE id=@id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	u := &model.User{}
	err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName, &u.Created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user %d: %w", id, err)
	}
	return u, nil
}

func (db *postgresDB) ListCategories(ctx context.Context) ([]model.CategoryOccupancy, error) {
	const query = `SELECT c.id, c.name, c.title, coalesce(c.description, ''),
						c.max_places, c.sort_order, count(v.id)
					FROM categories c
					LEFT JOIN votes v ON v.category_id = c.id
					GROUP BY c.id
					ORDER BY c.sort_order`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing categories: %w", err)
	}
	defer rows.Close()

	results := make([]model.CategoryOccupancy, 0, 4)
	for rows.Next() {
		var c model.Category
		var votes int
		if err := rows.Scan(&c.ID, &c.Name, &c.Title, &c.Description, &c.MaxPlaces, &c.SortOrder, &votes); err != nil {
			return nil, fmt.Errorf("error scanning category: %w", err)
		}
		results = append(results, model.NewCategoryOccupancy(c, votes))
	}
	return results, rows.Err()
}

func (db *postgresDB) GetCategory(ctx context.Context, id int32) (*model.CategoryOccupancy, error) {
	const query = `SELECT c.id, c.name, c.title, coalesce(c.description, ''),
						c.max_places, c.sort_order, count(v.id)
					FROM categories c
					LEFT JOIN votes v ON v.category_id = c.id
					WHERE c.id=@id
					GROUP BY c.id`

	row := db.pool.QueryRow(ctx, query, pgx.NamedArgs{"id": id})
	var c model.Category
	var votes int
	err := row.Scan(&c.ID, &c.Name, &c.Title, &c.Description, &c.MaxPlaces, &c.SortOrder, &votes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error scanning category %d: %w", id, err)
	}
	result := model.NewCategoryOccupancy(c, votes)
	return &result, nil
}
