package controller

import (
	"context"
	"fmt"
	"sort"

	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

func (c *controller) ListCategories(ctx context.Context) ([]model.CategoryOccupancy, error) {
	return c.db.ListCategories(ctx)
}

func (c *controller) GetCategory(ctx context.Context, id int32) (*model.CategoryOccupancy, error) {
	return c.db.GetCategory(ctx, id)
}

// CategoryStatistics is the admin view: every category with its raw vote
// total and the per-player breakdown.
func (c *controller) CategoryStatistics(ctx context.Context) ([]model.CategoryStats, error) {
	categories, byCategory, err := c.groupVotes(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]model.CategoryStats, 0, len(categories))
	for _, cat := range categories {
		standing := rankPlayers(byCategory[cat.ID])
		results = append(results, model.CategoryStats{
			ID:          cat.ID,
			Name:        cat.Name,
			Title:       cat.Title,
			Description: cat.Description,
			MaxPlaces:   cat.MaxPlaces,
			VotesCount:  cat.VotesCount,
			PlayerStats: standing,
		})
	}
	return results, nil
}

// VotingResults is the public standings: per category, players ranked by
// vote count with their photos resolved to presigned URLs.
func (c *controller) VotingResults(ctx context.Context) ([]model.CategoryResult, error) {
	categories, byCategory, err := c.groupVotes(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]model.CategoryResult, 0, len(categories))
	for _, cat := range categories {
		standing := rankPlayers(byCategory[cat.ID])
		for i := range standing {
			url, err := c.storage.FileURL(ctx, standing[i].PhotoURL)
			if err != nil {
				return nil, fmt.Errorf("error resolving photo url for player %d: %w", standing[i].PlayerID, err)
			}
			standing[i].PhotoURL = url
		}
		results = append(results, model.CategoryResult{
			ID:      cat.ID,
			Name:    cat.Name,
			Title:   cat.Title,
			Players: standing,
		})
	}
	return results, nil
}

// groupVotes loads every category (in display order) and every vote, and
// buckets the votes per category keyed by player.
func (c *controller) groupVotes(ctx context.Context) ([]model.CategoryOccupancy, map[int32]map[int32]*model.PlayerResult, error) {
	categories, err := c.db.ListCategories(ctx)
	if err != nil {
		return nil, nil, err
	}
	votes, err := c.db.ListVotes(ctx)
	if err != nil {
		return nil, nil, err
	}

	byCategory := make(map[int32]map[int32]*model.PlayerResult, len(categories))
	for _, v := range votes {
		players, ok := byCategory[v.CategoryID]
		if !ok {
			players = make(map[int32]*model.PlayerResult)
			byCategory[v.CategoryID] = players
		}
		pr, ok := players[v.PlayerID]
		if !ok {
			pr = &model.PlayerResult{
				PlayerID: v.Player.ID,
				Name:     v.Player.Name,
				PhotoURL: v.Player.PhotoKey, // raw key, resolved later if needed
			}
			players[v.PlayerID] = pr
		}
		pr.VotesCount++
	}
	return categories, byCategory, nil
}

// rankPlayers orders a category's players by descending vote count; ties
// break by ascending player id so the order is deterministic.
func rankPlayers(players map[int32]*model.PlayerResult) []model.PlayerResult {
	standing := make([]model.PlayerResult, 0, len(players))
	for _, pr := range players {
		standing = append(standing, *pr)
	}
	sort.Slice(standing, func(i, j int) bool {
		if standing[i].VotesCount != standing[j].VotesCount {
			return standing[i].VotesCount > standing[j].VotesCount
		}
		return standing[i].PlayerID < standing[j].PlayerID
	})
	return standing
}
