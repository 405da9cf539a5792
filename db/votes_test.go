package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

// newTestRelease creates a release with players directly through the test db.
func newTestRelease(t *testing.T, name string, playerCount int) (*model.Release, []model.Player) {
	t.Helper()
	ctx := context.Background()

	release := &model.Release{Name: name}
	if err := testDB.CreateRelease(ctx, release); err != nil {
		t.Fatalf("error creating release: %v", err)
	}

	players := make([]model.Player, 0, playerCount)
	for i := 1; i <= playerCount; i++ {
		p := &model.Player{
			Name:      fmt.Sprintf("%s player %d", name, i),
			Jersey:    i,
			ReleaseID: release.ID,
		}
		if err := testDB.CreatePlayer(ctx, p); err != nil {
			t.Fatalf("error creating player: %v", err)
		}
		players = append(players, *p)
	}
	return release, players
}

func newTestUser(t *testing.T) *model.User {
	t.Helper()
	u, err := testDB.GetOrCreateUser(context.Background(), nextTelegramID())
	if err != nil {
		t.Fatalf("error creating user: %v", err)
	}
	return u
}

func categoryByName(t *testing.T, name string) model.CategoryOccupancy {
	t.Helper()
	categories, err := testDB.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("error listing categories: %v", err)
	}
	for _, c := range categories {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("category %q is not seeded", name)
	return model.CategoryOccupancy{}
}

func TestSubmitVote_createAndMigrate(t *testing.T) {
	ctx := context.Background()
	_, players := newTestRelease(t, "migrate", 1)
	user := newTestUser(t)
	good := categoryByName(t, "good")
	normal := categoryByName(t, "normal")

	v1, err := testDB.SubmitVote(ctx, players[0].ID, user.ID, good.ID)
	if err != nil {
		t.Fatalf("error submitting vote: %v", err)
	}
	if v1.CategoryID != good.ID {
		t.Errorf("vote in wrong category, wanted: %d, got: %d", good.ID, v1.CategoryID)
	}

	// A second submission for the same pair migrates the vote, it must not
	// create a second row.
	v2, err := testDB.SubmitVote(ctx, players[0].ID, user.ID, normal.ID)
	if err != nil {
		t.Fatalf("error migrating vote: %v", err)
	}
	if v2.ID != v1.ID {
		t.Errorf("migration created a new vote row: %d vs %d", v2.ID, v1.ID)
	}
	if v2.CategoryID != normal.ID {
		t.Errorf("vote did not migrate, wanted category %d, got: %d", normal.ID, v2.CategoryID)
	}

	votes, err := testDB.GetUserVotes(ctx, user.ID)
	if err != nil {
		t.Fatalf("error loading user votes: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("expected exactly one vote for the pair, got %d", len(votes))
	}
	if votes[0].Category.Name != "normal" {
		t.Errorf("unexpected category after migration: %s", votes[0].Category.Name)
	}
}

func TestSubmitVote_unknownCategory(t *testing.T) {
	ctx := context.Background()
	_, players := newTestRelease(t, "nocat", 1)
	user := newTestUser(t)

	_, err := testDB.SubmitVote(ctx, players[0].ID, user.ID, 99999)
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("wanted ErrCategoryNotFound, got: %v", err)
	}
}

// TestSubmitVote_capacityScenario covers the full capacity story on the goat
// category (maxPlaces=2): two users fill it, a third is rejected, and an
// occupant can still move their pick around inside the full category.
func TestSubmitVote_capacityScenario(t *testing.T) {
	ctx := context.Background()
	_, players := newTestRelease(t, "goatcap", 4)
	userA := newTestUser(t)
	userB := newTestUser(t)
	userC := newTestUser(t)
	goat := categoryByName(t, "goat")
	if goat.MaxPlaces != 2 {
		t.Fatalf("expected goat to seed with maxPlaces=2, got %d", goat.MaxPlaces)
	}

	if _, err := testDB.SubmitVote(ctx, players[0].ID, userA.ID, goat.ID); err != nil {
		t.Fatalf("user A vote failed: %v", err)
	}
	if _, err := testDB.SubmitVote(ctx, players[1].ID, userB.ID, goat.ID); err != nil {
		t.Fatalf("user B vote failed: %v", err)
	}

	// The category is full now, a third user must be turned away.
	_, err := testDB.SubmitVote(ctx, players[2].ID, userC.ID, goat.ID)
	if !errors.Is(err, ErrCategoryFull) {
		t.Fatalf("wanted ErrCategoryFull for user C, got: %v", err)
	}

	// User A already occupies a slot, so voting another player into the
	// full category is allowed and does not add a voter.
	if _, err := testDB.SubmitVote(ctx, players[3].ID, userA.ID, goat.ID); err != nil {
		t.Fatalf("occupant re-vote failed: %v", err)
	}

	votes, err := testDB.ListVotes(ctx)
	if err != nil {
		t.Fatalf("error listing votes: %v", err)
	}
	voters := make(map[int32]bool)
	for _, v := range votes {
		if v.CategoryID == goat.ID {
			voters[v.UserID] = true
		}
	}
	// userC never got in; only A and B hold goat slots.
	if len(voters) != 2 {
		t.Errorf("expected 2 distinct goat voters, got %d", len(voters))
	}
	if voters[userC.ID] {
		t.Errorf("rejected user ended up with a goat vote")
	}
}

// TestSubmitVote_concurrent hammers a full-capacity category from many
// users at once. No interleaving may overshoot maxPlaces distinct voters.
func TestSubmitVote_concurrent(t *testing.T) {
	ctx := context.Background()
	_, players := newTestRelease(t, "race", 10)
	goat := categoryByName(t, "goat")

	users := make([]*model.User, 10)
	for i := range users {
		users[i] = newTestUser(t)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := range users {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := testDB.SubmitVote(ctx, players[i].ID, users[i].ID, goat.ID)
			if err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
				return
			}
			if !errors.Is(err, ErrCategoryFull) {
				t.Errorf("unexpected error under concurrency: %v", err)
			}
		}(i)
	}
	wg.Wait()

	// goat may already hold voters from earlier tests, so only bound the
	// total from above.
	votes, err := testDB.ListVotes(ctx)
	if err != nil {
		t.Fatalf("error listing votes: %v", err)
	}
	voters := make(map[int32]bool)
	for _, v := range votes {
		if v.CategoryID == goat.ID {
			voters[v.UserID] = true
		}
	}
	if len(voters) > goat.MaxPlaces {
		t.Errorf("capacity invariant broken: %d distinct voters in a category of %d", len(voters), goat.MaxPlaces)
	}
	if accepted > goat.MaxPlaces {
		t.Errorf("accepted %d new voters into a category of %d", accepted, goat.MaxPlaces)
	}
}

func TestGetNextUnvotedPlayer_exhaustion(t *testing.T) {
	ctx := context.Background()
	release, _ := newTestRelease(t, "exhaust", 3)
	user := newTestUser(t)
	good := categoryByName(t, "good")

	seen := make(map[int32]bool)
	for {
		p, err := testDB.GetNextUnvotedPlayer(ctx, user.ID, release.ID)
		if err != nil {
			t.Fatalf("error getting next player: %v", err)
		}
		if p == nil {
			break
		}
		if seen[p.ID] {
			t.Fatalf("player %d suggested twice", p.ID)
		}
		seen[p.ID] = true

		if _, err := testDB.SubmitVote(ctx, p.ID, user.ID, good.ID); err != nil {
			t.Fatalf("error voting for suggested player: %v", err)
		}
	}

	if len(seen) != 3 {
		t.Errorf("expected to walk all 3 players before exhaustion, saw %d", len(seen))
	}
}

func TestListPlayerBallots(t *testing.T) {
	ctx := context.Background()
	release, players := newTestRelease(t, "ballots", 2)
	user := newTestUser(t)
	bad := categoryByName(t, "bad")

	if _, err := testDB.SubmitVote(ctx, players[0].ID, user.ID, bad.ID); err != nil {
		t.Fatalf("error submitting vote: %v", err)
	}

	ballots, err := testDB.ListPlayerBallots(ctx, user.ID, release.ID)
	if err != nil {
		t.Fatalf("error listing ballots: %v", err)
	}
	if len(ballots) != 2 {
		t.Fatalf("expected 2 ballots, got %d", len(ballots))
	}
	if ballots[0].CategoryID != bad.ID || ballots[0].CategoryName != "bad" {
		t.Errorf("voted player not annotated: %+v", ballots[0])
	}
	if ballots[1].CategoryID != 0 {
		t.Errorf("unvoted player has an assignment: %+v", ballots[1])
	}
}
