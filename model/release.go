package model

import "time"

// MaxPlayersPerRelease caps the roster size of a single release.
const MaxPlayersPerRelease = 20

// Release is one edition of the game: a named roster of players to vote on.
// The logo is a reference into the files table, resolved into a presigned URL
// on the way out.
type Release struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	LogoFileID   int32     `json:"logoFileId,omitempty"`
	LogoURL      string    `json:"logoUrl,omitempty"`
	PlayersCount int       `json:"playersCount"`
	Created      time.Time `json:"createdAt"`
	Updated      time.Time `json:"updatedAt,omitempty"`
}
