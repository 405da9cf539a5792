package controller

import (
	"context"
	"io"

	"github.com/itbasis/go-clock"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Emazov/myach-pro-tier-list-backend/db"
	"github.com/Emazov/myach-pro-tier-list-backend/model"
	"github.com/Emazov/myach-pro-tier-list-backend/storage"
	"github.com/Emazov/myach-pro-tier-list-backend/telegram"
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	// SubmitVote resolves the telegram user, verifies the player and
	// category, and records or migrates the vote under the category's
	// capacity rules.
	SubmitVote(ctx context.Context, telegramID int64, playerID, categoryID int32) (*model.Vote, error)
	// ListPlayersForVoting returns players (releaseID == 0 means all
	// releases) annotated with the requester's current assignment and
	// resolved photo URLs.
	ListPlayersForVoting(ctx context.Context, telegramID int64, releaseID int32) ([]model.PlayerBallot, error)
	// NextPlayerForVoting picks a player the user has not voted on yet, or
	// nil when none remain.
	NextPlayerForVoting(ctx context.Context, telegramID int64, releaseID int32) (*model.Player, error)
	UserVotingStats(ctx context.Context, telegramID int64) ([]model.UserCategoryVotes, error)
	AllVotes(ctx context.Context) ([]model.VoteDetail, error)

	ListCategories(ctx context.Context) ([]model.CategoryOccupancy, error)
	GetCategory(ctx context.Context, id int32) (*model.CategoryOccupancy, error)
	CategoryStatistics(ctx context.Context) ([]model.CategoryStats, error)
	VotingResults(ctx context.Context) ([]model.CategoryResult, error)

	ListPlayers(ctx context.Context) ([]model.Player, error)
	GetPlayer(ctx context.Context, id int32) (*model.Player, error)
	CreatePlayer(ctx context.Context, p *model.Player) (*model.Player, error)
	UpdatePlayer(ctx context.Context, p *model.Player) (*model.Player, error)
	DeletePlayer(ctx context.Context, id int32) error

	ListReleases(ctx context.Context) ([]model.Release, error)
	GetRelease(ctx context.Context, id int32) (*model.Release, error)
	CreateRelease(ctx context.Context, r *model.Release) (*model.Release, error)
	UpdateRelease(ctx context.Context, r *model.Release) (*model.Release, error)
	DeleteRelease(ctx context.Context, id int32) error
	ListReleasePlayers(ctx context.Context, releaseID int32) ([]model.Player, error)

	UploadFile(ctx context.Context, data []byte, filename, contentType, description string, userID int32) (*model.File, error)
	GetFileURL(ctx context.Context, key string) (string, error)
	DownloadFile(ctx context.Context, key string) (io.ReadCloser, string, error)
	DeleteFile(ctx context.Context, key string) error
	ListFiles(ctx context.Context) ([]model.File, error)
	UserAvatar(ctx context.Context, userID int32) (*model.File, error)

	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id int32) (*model.User, error)

	HandleTelegramUpdate(ctx context.Context, update *tgbotapi.Update) error

	// IsAdmin is the entire authorization model: equality against the one
	// configured admin telegram id.
	IsAdmin(telegramID int64) bool
}

// AdminConfig is the authorization policy, injected so tests can substitute
// their own admin id.
type AdminConfig struct {
	TelegramID int64
}

type controller struct {
	clock    clock.Clock
	db       db.DB
	storage  storage.Client
	telegram telegram.Client
	admin    AdminConfig
}

func New(clock clock.Clock, db db.DB, storage storage.Client, telegram telegram.Client, admin AdminConfig) (C, error) {
	c := &controller{
		clock:    clock,
		db:       db,
		storage:  storage,
		telegram: telegram,
		admin:    admin,
	}
	return c, nil
}

func (c *controller) IsAdmin(telegramID int64) bool {
	return c.admin.TelegramID != 0 && telegramID == c.admin.TelegramID
}
