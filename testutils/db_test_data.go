package testutils

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/itbasis/go-clock"

	"github.com/Emazov/myach-pro-tier-list-backend/containers"
	"github.com/Emazov/myach-pro-tier-list-backend/db"
	"github.com/Emazov/myach-pro-tier-list-backend/model"
)

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     clock.Clock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()
	clock := clock.New()

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}

// InsertTestRelease creates a release with the given number of players named
// "<name> player N". The returned release and players have their IDs filled.
func InsertTestRelease(d db.DB, name string, playerCount int) (*model.Release, []model.Player, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	release := &model.Release{Name: name}
	if err := d.CreateRelease(ctx, release); err != nil {
		return nil, nil, fmt.Errorf("error creating test release: %w", err)
	}

	players := make([]model.Player, 0, playerCount)
	for i := 1; i <= playerCount; i++ {
		p := &model.Player{
			Name:      fmt.Sprintf("%s player %d", name, i),
			Jersey:    i,
			ReleaseID: release.ID,
		}
		if err := d.CreatePlayer(ctx, p); err != nil {
			return nil, nil, fmt.Errorf("error creating test player %d: %w", i, err)
		}
		players = append(players, *p)
	}
	return release, players, nil
}

// CategoryByName finds a seeded category, failing loudly when the schema
// seed and the test disagree.
func CategoryByName(d db.DB, name string) (*model.CategoryOccupancy, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	categories, err := d.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("category %q is not seeded", name)
}
