package mockcontroller

import (
	"context"
	"io"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/mock"

	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

type C struct {
	mock.Mock
}

func (c *C) SubmitVote(ctx context.Context, telegramID int64, playerID, categoryID int32) (*model.Vote, error) {
	args := c.Called(ctx, telegramID, playerID, categoryID)

	var v *model.Vote
	if args.Get(0) != nil {
		v = args.Get(0).(*model.Vote)
	}
	return v, args.Error(1)
}

func (c *C) ListPlayersForVoting(ctx context.Context, telegramID int64, releaseID int32) ([]model.PlayerBallot, error) {
	args := c.Called(ctx, telegramID, releaseID)

	var r []model.PlayerBallot
	if args.Get(0) != nil {
		r = args.Get(0).([]model.PlayerBallot)
	}
	return r, args.Error(1)
}

func (c *C) NextPlayerForVoting(ctx context.Context, telegramID int64, releaseID int32) (*model.Player, error) {
	args := c.Called(ctx, telegramID, releaseID)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func (c *C) UserVotingStats(ctx context.Context, telegramID int64) ([]model.UserCategoryVotes, error) {
	args := c.Called(ctx, telegramID)

	var r []model.UserCategoryVotes
	if args.Get(0) != nil {
		r = args.Get(0).([]model.UserCategoryVotes)
	}
	return r, args.Error(1)
}

func (c *C) AllVotes(ctx context.Context) ([]model.VoteDetail, error) {
	args := c.Called(ctx)

	var r []model.VoteDetail
	if args.Get(0) != nil {
		r = args.Get(0).([]model.VoteDetail)
	}
	return r, args.Error(1)
}

func (c *C) ListCategories(ctx context.Context) ([]model.CategoryOccupancy, error) {
	args := c.Called(ctx)

	var r []model.CategoryOccupancy
	if args.Get(0) != nil {
		r = args.Get(0).([]model.CategoryOccupancy)
	}
	return r, args.Error(1)
}

func (c *C) GetCategory(ctx context.Context, id int32) (*model.CategoryOccupancy, error) {
	args := c.Called(ctx, id)

	var r *model.CategoryOccupancy
	if args.Get(0) != nil {
		r = args.Get(0).(*model.CategoryOccupancy)
	}
	return r, args.Error(1)
}

func (c *C) CategoryStatistics(ctx context.Context) ([]model.CategoryStats, error) {
	args := c.Called(ctx)

	var r []model.CategoryStats
	if args.Get(0) != nil {
		r = args.Get(0).([]model.CategoryStats)
	}
	return r, args.Error(1)
}

func (c *C) VotingResults(ctx context.Context) ([]model.CategoryResult, error) {
	args := c.Called(ctx)

	var r []model.CategoryResult
	if args.Get(0) != nil {
		r = args.Get(0).([]model.CategoryResult)
	}
	return r, args.Error(1)
}

func (c *C) ListPlayers(ctx context.Context) ([]model.Player, error) {
	args := c.Called(ctx)

	var r []model.Player
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Player)
	}
	return r, args.Error(1)
}

func (c *C) GetPlayer(ctx context.Context, id int32) (*model.Player, error) {
	args := c.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func (c *C) CreatePlayer(ctx context.Context, p *model.Player) (*model.Player, error) {
	args := c.Called(ctx, p)

	var r *model.Player
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Player)
	}
	return r, args.Error(1)
}

func (c *C) UpdatePlayer(ctx context.Context, p *model.Player) (*model.Player, error) {
	args := c.Called(ctx, p)

	var r *model.Player
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Player)
	}
	return r, args.Error(1)
}

func (c *C) DeletePlayer(ctx context.Context, id int32) error {
	args := c.Called(ctx, id)
	return args.Error(0)
}

func (c *C) ListReleases(ctx context.Context) ([]model.Release, error) {
	args := c.Called(ctx)

	var r []model.Release
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Release)
	}
	return r, args.Error(1)
}

func (c *C) GetRelease(ctx context.Context, id int32) (*model.Release, error) {
	args := c.Called(ctx, id)

	var r *model.Release
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Release)
	}
	return r, args.Error(1)
}

func (c *C) CreateRelease(ctx context.Context, r *model.Release) (*model.Release, error) {
	args := c.Called(ctx, r)

	var res *model.Release
	if args.Get(0) != nil {
		res = args.Get(0).(*model.Release)
	}
	return res, args.Error(1)
}

func (c *C) UpdateRelease(ctx context.Context, r *model.Release) (*model.Release, error) {
	args := c.Called(ctx, r)

	var res *model.Release
	if args.Get(0) != nil {
		res = args.Get(0).(*model.Release)
	}
	return res, args.Error(1)
}

func (c *C) DeleteRelease(ctx context.Context, id int32) error {
	args := c.Called(ctx, id)
	return args.Error(0)
}

func (c *C) ListReleasePlayers(ctx context.Context, releaseID int32) ([]model.Player, error) {
	args := c.Called(ctx, releaseID)

	var r []model.Player
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Player)
	}
	return r, args.Error(1)
}

func (c *C) UploadFile(ctx context.Context, data []byte, filename, contentType, description string, userID int32) (*model.File, error) {
	args := c.Called(ctx, data, filename, contentType, description, userID)

	var f *model.File
	if args.Get(0) != nil {
		f = args.Get(0).(*model.File)
	}
	return f, args.Error(1)
}

func (c *C) GetFileURL(ctx context.Context, key string) (string, error) {
	args := c.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (c *C) DownloadFile(ctx context.Context, key string) (io.ReadCloser, string, error) {
	args := c.Called(ctx, key)

	var r io.ReadCloser
	if args.Get(0) != nil {
		r = args.Get(0).(io.ReadCloser)
	}
	return r, args.String(1), args.Error(2)
}

func (c *C) DeleteFile(ctx context.Context, key string) error {
	args := c.Called(ctx, key)
	return args.Error(0)
}

func (c *C) ListFiles(ctx context.Context) ([]model.File, error) {
	args := c.Called(ctx)

	var r []model.File
	if args.Get(0) != nil {
		r = args.Get(0).([]model.File)
	}
	return r, args.Error(1)
}

func (c *C) UserAvatar(ctx context.Context, userID int32) (*model.File, error) {
	args := c.Called(ctx, userID)

	var f *model.File
	if args.Get(0) != nil {
		f = args.Get(0).(*model.File)
	}
	return f, args.Error(1)
}

func (c *C) ListUsers(ctx context.Context) ([]model.User, error) {
	args := c.Called(ctx)

	var r []model.User
	if args.Get(0) != nil {
		r = args.Get(0).([]model.User)
	}
	return r, args.Error(1)
}

func (c *C) GetUser(ctx context.Context, id int32) (*model.User, error) {
	args := c.Called(ctx, id)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (c *C) HandleTelegramUpdate(ctx context.Context, update *tgbotapi.Update) error {
	args := c.Called(ctx, update)
	return args.Error(0)
}

func (c *C) IsAdmin(telegramID int64) bool {
	args := c.Called(telegramID)
	return args.Bool(0)
}
