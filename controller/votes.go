package controller

import (
	"context"
	"fmt"

	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

func (c *controller) SubmitVote(ctx context.Context, telegramID int64, playerID, categoryID int32) (*model.Vote, error) {
	user, err := c.db.GetOrCreateUser(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("error resolving user: %w", err)
	}

	if _, err := c.db.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}
	if _, err := c.db.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	return c.db.SubmitVote(ctx, playerID, user.ID, categoryID)
}

func (c *controller) ListPlayersForVoting(ctx context.Context, telegramID int64, releaseID int32) ([]model.PlayerBallot, error) {
	user, err := c.db.GetOrCreateUser(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("error resolving user: %w", err)
	}

	ballots, err := c.db.ListPlayerBallots(ctx, user.ID, releaseID)
	if err != nil {
		return nil, err
	}

	for i := range ballots {
		// ListPlayerBallots leaves the raw photo key in PhotoURL.
		url, err := c.storage.FileURL(ctx, ballots[i].PhotoURL)
		if err != nil {
			return nil, fmt.Errorf("error resolving photo url for player %d: %w", ballots[i].ID, err)
		}
		ballots[i].PhotoURL = url
	}
	return ballots, nil
}

func (c *controller) NextPlayerForVoting(ctx context.Context, telegramID int64, releaseID int32) (*model.Player, error) {
	user, err := c.db.GetOrCreateUser(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("error resolving user: %w", err)
	}

	p, err := c.db.GetNextUnvotedPlayer(ctx, user.ID, releaseID)
	if err != nil || p == nil {
		return nil, err
	}
	if err := c.resolvePlayerPhoto(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *controller) UserVotingStats(ctx context.Context, telegramID int64) ([]model.UserCategoryVotes, error) {
	user, err := c.db.GetOrCreateUser(ctx, telegramID)
	if err != nil {
		return nil, fmt.Errorf("error resolving user: %w", err)
	}

	votes, err := c.db.GetUserVotes(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	// Group by category, preserving the sort_order the query returned.
	index := make(map[int32]int)
	stats := make([]model.UserCategoryVotes, 0, 4)
	for _, v := range votes {
		i, ok := index[v.CategoryID]
		if !ok {
			i = len(stats)
			index[v.CategoryID] = i
			stats = append(stats, model.UserCategoryVotes{
				ID:        v.Category.ID,
				Name:      v.Category.Name,
				Title:     v.Category.Title,
				MaxPlaces: v.Category.MaxPlaces,
				Players:   make([]model.PlayerName, 0, 2),
			})
		}
		stats[i].Players = append(stats[i].Players, model.PlayerName{ID: v.Player.ID, Name: v.Player.Name})
	}
	return stats, nil
}

func (c *controller) AllVotes(ctx context.Context) ([]model.VoteDetail, error) {
	return c.db.ListVotes(ctx)
}
