package controller

import (
	"context"
	"fmt"

	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

func (c *controller) ListReleases(ctx context.Context) ([]model.Release, error) {
	releases, err := c.db.ListReleases(ctx)
	if err != nil {
		return nil, err
	}
	for i := range releases {
		if err := c.resolveReleaseLogo(ctx, &releases[i]); err != nil {
			return nil, err
		}
	}
	return releases, nil
}

func (c *controller) GetRelease(ctx context.Context, id int32) (*model.Release, error) {
	r, err := c.db.GetRelease(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.resolveReleaseLogo(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (c *controller) CreateRelease(ctx context.Context, r *model.Release) (*model.Release, error) {
	if r.LogoFileID != 0 {
		if _, err := c.db.GetFile(ctx, r.LogoFileID); err != nil {
			return nil, err
		}
	}
	if err := c.db.CreateRelease(ctx, r); err != nil {
		return nil, err
	}
	return c.GetRelease(ctx, r.ID)
}

func (c *controller) UpdateRelease(ctx context.Context, r *model.Release) (*model.Release, error) {
	old, err := c.db.GetRelease(ctx, r.ID)
	if err != nil {
		return nil, err
	}

	if r.Name == "" {
		r.Name = old.Name
	}
	if r.Description == "" {
		r.Description = old.Description
	}
	if r.LogoFileID == 0 {
		r.LogoFileID = old.LogoFileID
	} else if r.LogoFileID != old.LogoFileID {
		if _, err := c.db.GetFile(ctx, r.LogoFileID); err != nil {
			return nil, err
		}
	}

	if err := c.db.UpdateRelease(ctx, r); err != nil {
		return nil, err
	}
	return c.GetRelease(ctx, r.ID)
}

func (c *controller) DeleteRelease(ctx context.Context, id int32) error {
	return c.db.DeleteRelease(ctx, id)
}

func (c *controller) ListReleasePlayers(ctx context.Context, releaseID int32) ([]model.Player, error) {
	players, err := c.db.ListReleasePlayers(ctx, releaseID)
	if err != nil {
		return nil, err
	}
	if err := c.resolvePlayerPhotos(ctx, players); err != nil {
		return nil, err
	}
	return players, nil
}

func (c *controller) resolveReleaseLogo(ctx context.Context, r *model.Release) error {
	// ListReleases/GetRelease leave the raw logo key in LogoURL.
	url, err := c.storage.FileURL(ctx, r.LogoURL)
	if err != nil {
		return fmt.Errorf("error resolving logo url for release %d: %w", r.ID, err)
	}
	r.LogoURL = url
	return nil
}
