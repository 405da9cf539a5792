package controller

import (
	"context"
	"fmt"

	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

func (c *controller) ListPlayers(ctx context.Context) ([]model.Player, error) {
	players, err := c.db.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.resolvePlayerPhotos(ctx, players); err != nil {
		return nil, err
	}
	return players, nil
}

func (c *controller) GetPlayer(ctx context.Context, id int32) (*model.Player, error) {
	p, err := c.db.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.resolvePlayerPhoto(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *controller) CreatePlayer(ctx context.Context, p *model.Player) (*model.Player, error) {
	if p.PhotoFileID != 0 {
		f, err := c.db.GetFile(ctx, p.PhotoFileID)
		if err != nil {
			return nil, err
		}
		p.PhotoKey = f.Key
	}

	// CreatePlayer enforces the release existence and player limit.
	if err := c.db.CreatePlayer(ctx, p); err != nil {
		return nil, err
	}
	if err := c.resolvePlayerPhoto(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *controller) UpdatePlayer(ctx context.Context, p *model.Player) (*model.Player, error) {
	old, err := c.db.GetPlayer(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	// Absent fields keep their old values, matching partial updates from
	// the admin panel.
	if p.Name == "" {
		p.Name = old.Name
	}
	if p.Position == "" {
		p.Position = old.Position
	}
	if p.Jersey == 0 {
		p.Jersey = old.Jersey
	}
	if p.Description == "" {
		p.Description = old.Description
	}
	if p.PhotoFileID == 0 {
		p.PhotoFileID = old.PhotoFileID
	} else if p.PhotoFileID != old.PhotoFileID {
		if _, err := c.db.GetFile(ctx, p.PhotoFileID); err != nil {
			return nil, err
		}
	}
	p.ReleaseID = old.ReleaseID

	if err := c.db.UpdatePlayer(ctx, p); err != nil {
		return nil, err
	}
	return c.GetPlayer(ctx, p.ID)
}

func (c *controller) DeletePlayer(ctx context.Context, id int32) error {
	return c.db.DeletePlayer(ctx, id)
}

func (c *controller) resolvePlayerPhoto(ctx context.Context, p *model.Player) error {
	url, err := c.storage.FileURL(ctx, p.PhotoKey)
	if err != nil {
		return fmt.Errorf("error resolving photo url for player %d: %w", p.ID, err)
	}
	p.PhotoURL = url
	return nil
}

func (c *controller) resolvePlayerPhotos(ctx context.Context, players []model.Player) error {
	for i := range players {
		if err := c.resolvePlayerPhoto(ctx, &players[i]); err != nil {
			return err
		}
	}
	return nil
}
