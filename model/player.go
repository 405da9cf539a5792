package model

import "time"

// Player belongs to exactly one release. The photo is stored as a reference
// into the files table and resolved into a presigned URL on the way out.
type Player struct {
	ID          int32     `json:"id"`
	Name        string    `json:"name"`
	Position    string    `json:"position,omitempty"`
	Jersey      int       `json:"number,omitempty"`
	Description string    `json:"description,omitempty"`
	ReleaseID   int32     `json:"releaseId"`
	PhotoFileID int32     `json:"photoFileId,omitempty"`
	PhotoKey    string    `json:"-"`
	PhotoURL    string    `json:"photoUrl,omitempty"`
	Created     time.Time `json:"createdAt"`
	Updated     time.Time `json:"updatedAt,omitempty"`
}

// PlayerBallot is a player annotated with the requesting user's current
// category assignment, if that user has already voted for the player.
type PlayerBallot struct {
	ID           int32  `json:"id"`
	Name         string `json:"name"`
	ReleaseID    int32  `json:"releaseId"`
	PhotoURL     string `json:"photoUrl,omitempty"`
	CategoryID   int32  `json:"categoryId,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
}
