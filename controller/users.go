package controller

import (
	"context"

	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

func (c *controller) ListUsers(ctx context.Context) ([]model.User, error) {
	return c.db.ListUsers(ctx)
}

func (c *controller) GetUser(ctx context.Context, id int32) (*model.User, error) {
	return c.db.GetUser(ctx, id)
}
