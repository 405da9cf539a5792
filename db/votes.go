package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

// SubmitVote records the vote for (playerID, userID) in categoryID, moving an
// existing vote for the pair if one exists. The category row is locked for
// the duration of the transaction so two concurrent submissions can never
// both pass the capacity check and jointly overshoot max_places.
//
// Capacity counts distinct voters, not vote rows, so a user who already
// holds a vote in the category can keep voting players into it (including a
// different player) without tripping the limit: they occupy one slot no
// matter how many of their votes point there.
func (db *postgresDB) SubmitVote(ctx context.Context, playerID, userID, categoryID int32) (*model.Vote, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error starting vote transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const lockQuery = `SELECT max_places FROM categories WHERE id=@categoryID FOR UPDATE`

	var maxPlaces int
	err = tx.QueryRow(ctx, lockQuery, pgx.NamedArgs{"categoryID": categoryID}).Scan(&maxPlaces)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error locking category %d: %w", categoryID, err)
	}

	const countQuery = `SELECT count(DISTINCT user_id), count(*) FILTER (WHERE user_id=@userID)
						FROM votes WHERE category_id=@categoryID`

	var voters, mine int
	args := pgx.NamedArgs{
		"categoryID": categoryID,
		"userID":     userID,
	}
	if err := tx.QueryRow(ctx, countQuery, args).Scan(&voters, &mine); err != nil {
		return nil, fmt.Errorf("error counting votes in category %d: %w", categoryID, err)
	}

	if mine == 0 && voters >= maxPlaces {
		return nil, ErrCategoryFull
	}

	const upsertQuery = `INSERT INTO votes (player_id, user_id, category_id, created)
						VALUES (@playerID, @userID, @categoryID, @now)
						ON CONFLICT (player_id, user_id) DO UPDATE
							SET category_id=EXCLUDED.category_id, updated=@now
						RETURNING id, player_id, user_id, category_id, created, coalesce(updated, 'epoch'::timestamptz)`

	args = pgx.NamedArgs{
		"playerID":   playerID,
		"userID":     userID,
		"categoryID": categoryID,
		"now":        db.clock.Now().UTC(),
	}
	v := &model.Vote{}
	err = tx.QueryRow(ctx, upsertQuery, args).Scan(&v.ID, &v.PlayerID, &v.UserID, &v.CategoryID, &v.Created, &v.Updated)
	if err != nil {
		return nil, fmt.Errorf("error upserting vote (player=%d, user=%d): %w", playerID, userID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("error committing vote: %w", err)
	}
	return v, nil
}

func (db *postgresDB) GetUserVotes(ctx context.Context, userID int32) ([]model.VoteDetail, error) {
	const query = voteDetailSelect + ` WHERE v.user_id=@userID ORDER BY c.sort_order, v.id`
	return db.queryVoteDetails(ctx, query, pgx.NamedArgs{"userID": userID})
}

func (db *postgresDB) ListVotes(ctx context.Context) ([]model.VoteDetail, error) {
	const query = voteDetailSelect + ` ORDER BY v.id`
	return db.queryVoteDetails(ctx, query, pgx.NamedArgs{})
}

const voteDetailSelect = `SELECT v.id, v.player_id, v.user_id, v.category_id, v.created,
				coalesce(v.updated, 'epoch'::timestamptz),
				p.id, p.name, coalesce(p.position, ''), coalesce(p.jersey_num, 0),
				coalesce(p.description, ''), p.release_id, coalesce(p.photo_file_id, 0),
				coalesce(f.key, ''), p.created, coalesce(p.updated, 'epoch'::timestamptz),
				c.id, c.name, c.title, coalesce(c.description, ''), c.max_places, c.sort_order,
				u.id, u.telegram_id, coalesce(u.username, ''), coalesce(u.name_first, ''),
				coalesce(u.name_last, ''), u.created
			FROM votes v
			JOIN players p ON p.id = v.player_id
			LEFT JOIN files f ON f.id = p.photo_file_id
			JOIN categories c ON c.id = v.category_id
			JOIN users u ON u.id = v.user_id`

func (db *postgresDB) queryVoteDetails(ctx context.Context, query string, args pgx.NamedArgs) ([]model.VoteDetail, error) {
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error querying vote details: %w", err)
	}
	defer rows.Close()

	results := make([]model.VoteDetail, 0, 16)
	for rows.Next() {
		var d model.VoteDetail
		err := rows.Scan(&d.ID, &d.PlayerID, &d.UserID, &d.CategoryID, &d.Created, &d.Updated,
			&d.Player.ID, &d.Player.Name, &d.Player.Position, &d.Player.Jersey,
			&d.Player.Description, &d.Player.ReleaseID, &d.Player.PhotoFileID,
			&d.Player.PhotoKey, &d.Player.Created, &d.Player.Updated,
			&d.Category.ID, &d.Category.Name, &d.Category.Title, &d.Category.Description,
			&d.Category.MaxPlaces, &d.Category.SortOrder,
			&d.User.ID, &d.User.TelegramID, &d.User.Username, &d.User.FirstName,
			&d.User.LastName, &d.User.Created)
		if err != nil {
			return nil, fmt.Errorf("error scanning vote detail: %w", err)
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

func (db *postgresDB) ListPlayerBallots(ctx context.Context, userID, releaseID int32) ([]model.PlayerBallot, error) {
	const query = `SELECT p.id, p.name, p.release_id, coalesce(f.key, ''),
						coalesce(v.category_id, 0), coalesce(c.name, '')
					FROM players p
					LEFT JOIN files f ON f.id = p.photo_file_id
					LEFT JOIN votes v ON v.player_id = p.id AND v.user_id = @userID
					LEFT JOIN categories c ON c.id = v.category_id
					WHERE (@releaseID = 0 OR p.release_id = @releaseID)
					ORDER BY p.id`

	args := pgx.NamedArgs{
		"userID":    userID,
		"releaseID": releaseID,
	}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error listing player ballots: %w", err)
	}
	defer rows.Close()

	results := make([]model.PlayerBallot, 0, 16)
	for rows.Next() {
		var b model.PlayerBallot
		var photoKey string
		if err := rows.Scan(&b.ID, &b.Name, &b.ReleaseID, &photoKey, &b.CategoryID, &b.CategoryName); err != nil {
			return nil, fmt.Errorf("error scanning player ballot: %w", err)
		}
		// The photo key travels in PhotoURL until the controller swaps it
		// for a presigned link.
		b.PhotoURL = photoKey
		results = append(results, b)
	}
	return results, rows.Err()
}

func (db *postgresDB) GetNextUnvotedPlayer(ctx context.Context, userID, releaseID int32) (*model.Player, error) {
	const query = playerSelect + ` WHERE (@releaseID = 0 OR p.release_id = @releaseID)
						AND NOT EXISTS (
							SELECT 1 FROM votes v WHERE v.player_id = p.id AND v.user_id = @userID
						)
					ORDER BY p.id LIMIT 1`

	args := pgx.NamedArgs{
		"userID":    userID,
		"releaseID": releaseID,
	}
	row := db.pool.QueryRow(ctx, query, args)
	p, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // every player in scope already has this user's vote
		}
		return nil, fmt.Errorf("error finding next unvoted player: %w", err)
	}
	return p, nil
}
