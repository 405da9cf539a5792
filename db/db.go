package db

import (
	"context"

	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

type DB interface {
	// GetOrCreateUser resolves a telegram id to the internal user row,
	// creating it on first contact. Safe under concurrent first-contact
	// races: the unique constraint on telegram_id guarantees a single row.
	GetOrCreateUser(ctx context.Context, telegramID int64) (*model.User, error)
	UpdateUserProfile(ctx context.Context, telegramID int64, username, firstName, lastName string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int32) (*model.User, error)

	// Categories are seeded once; only reads exist. Both calls annotate the
	// category with its live vote count.
	ListCategories(ctx context.Context) ([]model.CategoryOccupancy, error)
	GetCategory(ctx context.Context, id int32) (*model.CategoryOccupancy, error)

	// SubmitVote records or migrates the vote for (playerID, userID) inside a
	// transaction that serializes the capacity check per category. Returns
	// ErrCategoryFull when the category is at max_places and the user holds
	// no vote in it yet.
	SubmitVote(ctx context.Context, playerID, userID, categoryID int32) (*model.Vote, error)
	GetUserVotes(ctx context.Context, userID int32) ([]model.VoteDetail, error)
	ListVotes(ctx context.Context) ([]model.VoteDetail, error)

	// ListPlayerBallots returns every player (optionally limited to a
	// release, releaseID == 0 means all) annotated with the given user's
	// current assignment. GetNextUnvotedPlayer returns (nil, nil) once the
	// user has voted on every player in scope.
	ListPlayerBallots(ctx context.Context, userID, releaseID int32) ([]model.PlayerBallot, error)
	GetNextUnvotedPlayer(ctx context.Context, userID, releaseID int32) (*model.Player, error)

	ListPlayers(ctx context.Context) ([]model.Player, error)
	GetPlayer(ctx context.Context, id int32) (*model.Player, error)
	CreatePlayer(ctx context.Context, p *model.Player) error
	UpdatePlayer(ctx context.Context, p *model.Player) error
	DeletePlayer(ctx context.Context, id int32) error

	ListReleases(ctx context.Context) ([]model.Release, error)
	GetRelease(ctx context.Context, id int32) (*model.Release, error)
	CreateRelease(ctx context.Context, r *model.Release) error
	UpdateRelease(ctx context.Context, r *model.Release) error
	DeleteRelease(ctx context.Context, id int32) error
	ListReleasePlayers(ctx context.Context, releaseID int32) ([]model.Player, error)

	CreateFile(ctx context.Context, f *model.File) error
	GetFile(ctx context.Context, id int32) (*model.File, error)
	GetFileByKey(ctx context.Context, key string) (*model.File, error)
	DeleteFileByKey(ctx context.Context, key string) error
	ListFiles(ctx context.Context) ([]model.File, error)
	GetUserAvatar(ctx context.Context, userID int32) (*model.File, error)
}
