package mockstorage

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

type Client struct {
	mock.Mock
}

func (c *Client) Upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	args := c.Called(ctx, data, filename, contentType)
	return args.String(0), args.Error(1)
}

func (c *Client) FileURL(ctx context.Context, key string) (string, error) {
	args := c.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (c *Client) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	args := c.Called(ctx, key)

	var r io.ReadCloser
	if args.Get(0) != nil {
		r = args.Get(0).(io.ReadCloser)
	}
	return r, args.String(1), args.Error(2)
}

func (c *Client) Delete(ctx context.Context, key string) error {
	args := c.Called(ctx, key)
	return args.Error(0)
}

func (c *Client) List(ctx context.Context, prefix string) ([]model.File, error) {
	args := c.Called(ctx, prefix)

	var r []model.File
	if args.Get(0) != nil {
		r = args.Get(0).([]model.File)
	}
	return r, args.Error(1)
}
