package model

import "time"

// File is the metadata row for an object stored in the R2 bucket. The key is
// the object name in the bucket; URL is a presigned link filled in on read.
type File struct {
	ID          int32     `json:"id"`
	Key         string    `json:"key"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size,omitempty"`
	Description string    `json:"description,omitempty"`
	UserID      int32     `json:"userId,omitempty"`
	URL         string    `json:"url,omitempty"`
	Created     time.Time `json:"createdAt"`
}
