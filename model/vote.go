package model

import "time"

// Vote binds a (player, user) pair to a category. There is at most one vote
// per pair; resubmitting moves the vote to the new category instead of
// creating a second row.
type Vote struct {
	ID         int32     `json:"id"`
	PlayerID   int32     `json:"playerId"`
	UserID     int32     `json:"userId"`
	CategoryID int32     `json:"categoryId"`
	Created    time.Time `json:"createdAt"`
	Updated    time.Time `json:"updatedAt,omitempty"`
}

// VoteDetail is a vote joined with the entities it references, used by the
// admin listing and the per-user stats view.
type VoteDetail struct {
	Vote
	Player   Player   `json:"player"`
	Category Category `json:"category"`
	User     User     `json:"user"`
}
