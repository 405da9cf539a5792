package model

import "time"

// User is a telegram account known to the app. Rows are created on first
// contact (a vote or /start) keyed by the telegram id.
type User struct {
	ID         int32     `json:"id"`
	TelegramID int64     `json:"telegramId"`
	Username   string    `json:"username,omitempty"`
	FirstName  string    `json:"firstName,omitempty"`
	LastName   string    `json:"lastName,omitempty"`
	Created    time.Time `json:"createdAt"`
}

// DisplayName picks the friendliest non-empty identifier for greetings and
// logs.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return u.Username
	default:
		return "player"
	}
}
