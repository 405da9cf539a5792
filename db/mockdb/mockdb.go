package mockdb

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

type DB struct {
	mock.Mock
}

func (db *DB) GetOrCreateUser(ctx context.Context, telegramID int64) (*model.User, error) {
	args := db.Called(ctx, telegramID)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (db *DB) UpdateUserProfile(ctx context.Context, telegramID int64, username, firstName, lastName string) (*model.User, error) {
	args := db.Called(ctx, telegramID, username, firstName, lastName)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	args := db.Called(ctx)

	var r []model.User
	if args.Get(0) != nil {
		r = args.Get(0).([]model.User)
	}
	return r, args.Error(1)
}

func (db *DB) GetUser(ctx context.Context, id int32) (*model.User, error) {
	args := db.Called(ctx, id)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (db *DB) ListCategories(ctx context.Context) ([]model.CategoryOccupancy, error) {
	args := db.Called(ctx)

	var r []model.CategoryOccupancy
	if args.Get(0) != nil {
		r = args.Get(0).([]model.CategoryOccupancy)
	}
	return r, args.Error(1)
}

func (db *DB) GetCategory(ctx context.Context, id int32) (*model.CategoryOccupancy, error) {
	args := db.Called(ctx, id)

	var c *model.CategoryOccupancy
	if args.Get(0) != nil {
		c = args.Get(0).(*model.CategoryOccupancy)
	}
	return c, args.Error(1)
}

func (db *DB) SubmitVote(ctx context.Context, playerID, userID, categoryID int32) (*model.Vote, error) {
	args := db.Called(ctx, playerID, userID, categoryID)

	var v *model.Vote
	if args.Get(0) != nil {
		v = args.Get(0).(*model.Vote)
	}
	return v, args.Error(1)
}

func (db *DB) GetUserVotes(ctx context.Context, userID int32) ([]model.VoteDetail, error) {
	args := db.Called(ctx, userID)

	var r []model.VoteDetail
	if args.Get(0) != nil {
		r = args.Get(0).([]model.VoteDetail)
	}
	return r, args.Error(1)
}

func (db *DB) ListVotes(ctx context.Context) ([]model.VoteDetail, error) {
	args := db.Called(ctx)

	var r []model.VoteDetail
	if args.Get(0) != nil {
		r = args.Get(0).([]model.VoteDetail)
	}
	return r, args.Error(1)
}

func (db *DB) ListPlayerBallots(ctx context.Context, userID, releaseID int32) ([]model.PlayerBallot, error) {
	args := db.Called(ctx, userID, releaseID)

	var r []model.PlayerBallot
	if args.Get(0) != nil {
		r = args.Get(0).([]model.PlayerBallot)
	}
	return r, args.Error(1)
}

func (db *DB) GetNextUnvotedPlayer(ctx context.Context, userID, releaseID int32) (*model.Player, error) {
	args := db.Called(ctx, userID, releaseID)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func (db *DB) ListPlayers(ctx context.Context) ([]model.Player, error) {
	args := db.Called(ctx)

	var r []model.Player
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Player)
	}
	return r, args.Error(1)
}

func (db *DB) GetPlayer(ctx context.Context, id int32) (*model.Player, error) {
	args := db.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func (db *DB) CreatePlayer(ctx context.Context, p *model.Player) error {
	args := db.Called(ctx, p)
	return args.Error(0)
}

func (db *DB) UpdatePlayer(ctx context.Context, p *model.Player) error {
	args := db.Called(ctx, p)
	return args.Error(0)
}

func (db *DB) DeletePlayer(ctx context.Context, id int32) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) ListReleases(ctx context.Context) ([]model.Release, error) {
	args := db.Called(ctx)

	var r []model.Release
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Release)
	}
	return r, args.Error(1)
}

func (db *DB) GetRelease(ctx context.Context, id int32) (*model.Release, error) {
	args := db.Called(ctx, id)

	var r *model.Release
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Release)
	}
	return r, args.Error(1)
}

func (db *DB) CreateRelease(ctx context.Context, r *model.Release) error {
	args := db.Called(ctx, r)
	return args.Error(0)
}

func (db *DB) UpdateRelease(ctx context.Context, r *model.Release) error {
	args := db.Called(ctx, r)
	return args.Error(0)
}

func (db *DB) DeleteRelease(ctx context.Context, id int32) error {
	args := db.Called(ctx, id)
	return args.Error(0)
}

func (db *DB) ListReleasePlayers(ctx context.Context, releaseID int32) ([]model.Player, error) {
	args := db.Called(ctx, releaseID)

	var r []model.Player
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Player)
	}
	return r, args.Error(1)
}

func (db *DB) CreateFile(ctx context.Context, f *model.File) error {
	args := db.Called(ctx, f)
	return args.Error(0)
}

func (db *DB) GetFile(ctx context.Context, id int32) (*model.File, error) {
	args := db.Called(ctx, id)

	var f *model.File
	if args.Get(0) != nil {
		f = args.Get(0).(*model.File)
	}
	return f, args.Error(1)
}

func (db *DB) GetFileByKey(ctx context.Context, key string) (*model.File, error) {
	args := db.Called(ctx, key)

	var f *model.File
	if args.Get(0) != nil {
		f = args.Get(0).(*model.File)
	}
	return f, args.Error(1)
}

func (db *DB) DeleteFileByKey(ctx context.Context, key string) error {
	args := db.Called(ctx, key)
	return args.Error(0)
}

func (db *DB) ListFiles(ctx context.Context) ([]model.File, error) {
	args := db.Called(ctx)

	var r []model.File
	if args.Get(0) != nil {
		r = args.Get(0).([]model.File)
	}
	return r, args.Error(1)
}

func (db *DB) GetUserAvatar(ctx context.Context, userID int32) (*model.File, error) {
	args := db.Called(ctx, userID)

	var f *model.File
	if args.Get(0) != nil {
		f = args.Get(0).(*model.File)
	}
	return f, args.Error(1)
}
