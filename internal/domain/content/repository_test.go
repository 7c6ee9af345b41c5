package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: ":memory:"}),
		&gorm.Config{},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Page{}, &ServiceCard{}))
	return NewRepository(db)
}

func TestPageUpsert(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	_, err := repo.GetPage(ctx, "home")
	assert.ErrorIs(t, err, ErrPageNotFound)

	first := &Page{Slug: "home", Title: "Welcome", Sections: []Section{{Body: "Intro text"}}}
	require.NoError(t, repo.UpsertPage(ctx, first))

	page, err := repo.GetPage(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, "Welcome", page.Title)
	require.Len(t, page.Sections, 1)

	// Saving the same slug again replaces the content in place.
	second := &Page{Slug: "home", Title: "Updated", Sections: []Section{
		{Heading: "About us", Body: "New intro"},
		{Body: "Second block"},
	}}
	require.NoError(t, repo.UpsertPage(ctx, second))

	page, err = repo.GetPage(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, "Updated", page.Title)
	assert.Len(t, page.Sections, 2)

	var count int64
	require.NoError(t, repo.db.Model(&Page{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestServiceCardCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	second := &ServiceCard{Title: "Remodels", SortOrder: 2, IsActive: true}
	first := &ServiceCard{Title: "New Builds", SortOrder: 1, IsActive: true}
	hidden := &ServiceCard{Title: "Legacy", SortOrder: 0, IsActive: false}
	for _, card := range []*ServiceCard{second, first, hidden} {
		require.NoError(t, repo.CreateService(ctx, card))
	}

	active, err := repo.ListServices(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "New Builds", active[0].Title, "display order follows sort_order")
	assert.Equal(t, "Remodels", active[1].Title)

	all, err := repo.ListServices(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	card, err := repo.GetService(ctx, first.ID)
	require.NoError(t, err)
	card.Summary = "Ground-up construction"
	require.NoError(t, repo.UpdateService(ctx, card))

	card, err = repo.GetService(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ground-up construction", card.Summary)

	require.NoError(t, repo.DeleteService(ctx, first.ID))
	_, err = repo.GetService(ctx, first.ID)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	assert.ErrorIs(t, repo.DeleteService(ctx, 9999), ErrServiceNotFound)
}
