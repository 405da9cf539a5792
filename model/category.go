package model

// Category is a capacity-bounded bucket players get voted into. The set of
// categories is seeded once; the application only reads them.
type Category struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	MaxPlaces   int    `json:"maxPlaces"`
	SortOrder   int    `json:"sortOrder"`
}

// CategoryOccupancy is a category annotated with its live vote count.
type CategoryOccupancy struct {
	Category
	VotesCount int `json:"votesCount"`
	PlacesLeft int `json:"placesLeft"`
}

// NewCategoryOccupancy clamps placesLeft at zero so an over-full category
// never reports a negative number.
func NewCategoryOccupancy(c Category, votes int) CategoryOccupancy {
	left := c.MaxPlaces - votes
	if left < 0 {
		left = 0
	}
	return CategoryOccupancy{Category: c, VotesCount: votes, PlacesLeft: left}
}

// PlayerResult is one row of a category standing: a player and how many
// votes they collected in that category.
type PlayerResult struct {
	PlayerID   int32  `json:"id"`
	Name       string `json:"name"`
	PhotoURL   string `json:"photoUrl,omitempty"`
	VotesCount int    `json:"votesCount"`
}

// CategoryResult is the public standings view for one category, players
// ranked by descending vote count.
type CategoryResult struct {
	ID      int32          `json:"id"`
	Name    string         `json:"name"`
	Title   string         `json:"title"`
	Players []PlayerResult `json:"players"`
}

// CategoryStats is the admin view: per-player breakdown plus raw totals.
type CategoryStats struct {
	ID          int32          `json:"id"`
	Name        string         `json:"name"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	MaxPlaces   int            `json:"maxPlaces"`
	VotesCount  int            `json:"votesCount"`
	PlayerStats []PlayerResult `json:"playerStats"`
}

// UserCategoryVotes groups one user's votes by category for the personal
// stats view.
type UserCategoryVotes struct {
	ID        int32        `json:"id"`
	Name      string       `json:"name"`
	Title     string       `json:"title"`
	MaxPlaces int          `json:"maxPlaces"`
	Players   []PlayerName `json:"players"`
}

type PlayerName struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}
