package db

import (
	"context"
	"errors"
	"testing"

	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

func TestCreatePlayer_releaseLimit(t *testing.T) {
	ctx := context.Background()
	release, _ := newTestRelease(t, "packed", model.MaxPlayersPerRelease)

	extra := &model.Player{
		Name:      "one too many",
		ReleaseID: release.ID,
	}
	err := testDB.CreatePlayer(ctx, extra)
	if !errors.Is(err, ErrReleaseFull) {
		t.Fatalf("wanted ErrReleaseFull, got: %v", err)
	}

	players, err := testDB.ListReleasePlayers(ctx, release.ID)
	if err != nil {
		t.Fatalf("error listing release players: %v", err)
	}
	if len(players) != model.MaxPlayersPerRelease {
		t.Errorf("roster size changed on a rejected insert: %d", len(players))
	}
}

func TestCreatePlayer_unknownRelease(t *testing.T) {
	p := &model.Player{Name: "orphan", ReleaseID: 99999}
	err := testDB.CreatePlayer(context.Background(), p)
	if !errors.Is(err, ErrReleaseNotFound) {
		t.Errorf("wanted ErrReleaseNotFound, got: %v", err)
	}
}

func TestListReleasePlayers_ordering(t *testing.T) {
	ctx := context.Background()
	release := &model.Release{Name: "ordering"}
	if err := testDB.CreateRelease(ctx, release); err != nil {
		t.Fatalf("error creating release: %v", err)
	}

	// Insert out of jersey order to verify the sort.
	for _, jersey := range []int{10, 7, 9} {
		p := &model.Player{Name: "ordering player", Jersey: jersey, ReleaseID: release.ID}
		if err := testDB.CreatePlayer(ctx, p); err != nil {
			t.Fatalf("error creating player: %v", err)
		}
	}

	players, err := testDB.ListReleasePlayers(ctx, release.ID)
	if err != nil {
		t.Fatalf("error listing release players: %v", err)
	}
	wantJerseys := []int{7, 9, 10}
	for i, p := range players {
		if p.Jersey != wantJerseys[i] {
			t.Errorf("player %d out of order, wanted jersey %d, got %d", i, wantJerseys[i], p.Jersey)
		}
	}
}

func TestPlayerCRUD(t *testing.T) {
	ctx := context.Background()
	release, players := newTestRelease(t, "crud", 1)

	p, err := testDB.GetPlayer(ctx, players[0].ID)
	if err != nil {
		t.Fatalf("error reading player back: %v", err)
	}
	if p.ReleaseID != release.ID {
		t.Errorf("player in wrong release: %d", p.ReleaseID)
	}

	p.Name = "renamed"
	p.Position = "GK"
	if err := testDB.UpdatePlayer(ctx, p); err != nil {
		t.Fatalf("error updating player: %v", err)
	}

	p, err = testDB.GetPlayer(ctx, p.ID)
	if err != nil {
		t.Fatalf("error re-reading player: %v", err)
	}
	if p.Name != "renamed" || p.Position != "GK" {
		t.Errorf("update not persisted: %+v", p)
	}
	if p.Updated.IsZero() {
		t.Errorf("updated timestamp not set")
	}

	if err := testDB.DeletePlayer(ctx, p.ID); err != nil {
		t.Fatalf("error deleting player: %v", err)
	}
	if _, err := testDB.GetPlayer(ctx, p.ID); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("wanted ErrPlayerNotFound after delete, got: %v", err)
	}
	if err := testDB.DeletePlayer(ctx, p.ID); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("wanted ErrPlayerNotFound on double delete, got: %v", err)
	}
}

func TestDeleteRelease_cascades(t *testing.T) {
	ctx := context.Background()
	release, players := newTestRelease(t, "cascade", 2)
	user := newTestUser(t)
	normal := categoryByName(t, "normal")

	if _, err := testDB.SubmitVote(ctx, players[0].ID, user.ID, normal.ID); err != nil {
		t.Fatalf("error submitting vote: %v", err)
	}

	if err := testDB.DeleteRelease(ctx, release.ID); err != nil {
		t.Fatalf("error deleting release: %v", err)
	}

	if _, err := testDB.GetRelease(ctx, release.ID); !errors.Is(err, ErrReleaseNotFound) {
		t.Errorf("wanted ErrReleaseNotFound after delete, got: %v", err)
	}
	if _, err := testDB.GetPlayer(ctx, players[0].ID); !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("player survived release delete: %v", err)
	}

	votes, err := testDB.GetUserVotes(ctx, user.ID)
	if err != nil {
		t.Fatalf("error loading user votes: %v", err)
	}
	if len(votes) != 0 {
		t.Errorf("votes survived release delete: %d", len(votes))
	}
}

func TestReleaseCRUD(t *testing.T) {
	ctx := context.Background()

	r := &model.Release{Name: "season one", Description: "first run"}
	if err := testDB.CreateRelease(ctx, r); err != nil {
		t.Fatalf("error creating release: %v", err)
	}

	r.Name = "season 1"
	r.Description = ""
	if err := testDB.UpdateRelease(ctx, r); err != nil {
		t.Fatalf("error updating release: %v", err)
	}

	got, err := testDB.GetRelease(ctx, r.ID)
	if err != nil {
		t.Fatalf("error reading release back: %v", err)
	}
	if got.Name != "season 1" || got.Description != "" {
		t.Errorf("update not persisted: %+v", got)
	}
	if got.PlayersCount != 0 {
		t.Errorf("empty release reports %d players", got.PlayersCount)
	}

	if err := testDB.UpdateRelease(ctx, &model.Release{ID: 99999, Name: "ghost"}); !errors.Is(err, ErrReleaseNotFound) {
		t.Errorf("wanted ErrReleaseNotFound updating missing release, got: %v", err)
	}
}

func TestFileMetadata(t *testing.T) {
	ctx := context.Background()
	user := newTestUser(t)

	f := &model.File{
		Key:         "avatars/test-key-1",
		Filename:    "me.png",
		ContentType: "image/png",
		Size:        1234,
		UserID:      user.ID,
	}
	if err := testDB.CreateFile(ctx, f); err != nil {
		t.Fatalf("error creating file metadata: %v", err)
	}

	byKey, err := testDB.GetFileByKey(ctx, f.Key)
	if err != nil {
		t.Fatalf("error reading file by key: %v", err)
	}
	if byKey.ID != f.ID || byKey.ContentType != "image/png" {
		t.Errorf("file read back wrong: %+v", byKey)
	}

	avatar, err := testDB.GetUserAvatar(ctx, user.ID)
	if err != nil {
		t.Fatalf("error reading avatar: %v", err)
	}
	if avatar.Key != f.Key {
		t.Errorf("wrong avatar, wanted key %s, got %s", f.Key, avatar.Key)
	}

	if err := testDB.DeleteFileByKey(ctx, f.Key); err != nil {
		t.Fatalf("error deleting file metadata: %v", err)
	}
	if _, err := testDB.GetFileByKey(ctx, f.Key); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("wanted ErrFileNotFound after delete, got: %v", err)
	}
	if err := testDB.DeleteFileByKey(ctx, f.Key); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("wanted ErrFileNotFound on double delete, got: %v", err)
	}
}
