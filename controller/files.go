package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/Emazov/myach-pro-tier-list-backend/db"
	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

func (c *controller) UploadFile(ctx context.Context, data []byte, filename, contentType, description string, userID int32) (*model.File, error) {
	key, err := c.storage.Upload(ctx, data, filename, contentType)
	if err != nil {
		return nil, err
	}

	f := &model.File{
		Key:         key,
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Description: description,
		UserID:      userID,
	}
	if err := c.db.CreateFile(ctx, f); err != nil {
		return nil, fmt.Errorf("error saving file metadata for %s: %w", key, err)
	}

	url, err := c.storage.FileURL(ctx, key)
	if err != nil {
		return nil, err
	}
	f.URL = url
	return f, nil
}

func (c *controller) GetFileURL(ctx context.Context, key string) (string, error) {
	return c.storage.FileURL(ctx, key)
}

func (c *controller) DownloadFile(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return c.storage.Download(ctx, key)
}

// DeleteFile removes the object first and then its metadata row. A missing
// metadata row is not an error: the bucket can hold objects that were never
// registered in the database.
func (c *controller) DeleteFile(ctx context.Context, key string) error {
	if err := c.storage.Delete(ctx, key); err != nil {
		return err
	}
	if err := c.db.DeleteFileByKey(ctx, key); err != nil {
		if errors.Is(err, db.ErrFileNotFound) {
			log.Printf("no metadata row for deleted object %s", key)
			return nil
		}
		return err
	}
	return nil
}

func (c *controller) ListFiles(ctx context.Context) ([]model.File, error) {
	files, err := c.db.ListFiles(ctx)
	if err != nil {
		return nil, err
	}
	for i := range files {
		url, err := c.storage.FileURL(ctx, files[i].Key)
		if err != nil {
			return nil, err
		}
		files[i].URL = url
	}
	return files, nil
}

func (c *controller) UserAvatar(ctx context.Context, userID int32) (*model.File, error) {
	f, err := c.db.GetUserAvatar(ctx, userID)
	if err != nil {
		return nil, err
	}
	url, err := c.storage.FileURL(ctx, f.Key)
	if err != nil {
		return nil, err
	}
	f.URL = url
	return f, nil
}
