package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quarrydata/statcan-cli/internal/core/domain"
)

func entry(title, description string) domain.CatalogEntry {
	return domain.CatalogEntry{
		Title:       title,
		DataID:      "18100205",
		Description: description,
		ReleaseDate: time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC),
		Language:    "en",
	}
}

func TestCatalogStore_Append_AssignsSequentialIDs(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, []domain.CatalogEntry{
		entry("first", ""), entry("second", ""),
	}))
	require.NoError(t, store.Append(ctx, []domain.CatalogEntry{entry("third", "")}))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, int64(1), entries[0].Seq)
	assert.Equal(t, int64(2), entries[1].Seq)
	assert.Equal(t, int64(3), entries[2].Seq)
}

func TestCatalogStore_Append_KeepsDuplicates(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	e := entry("duplicate", "same row twice")
	require.NoError(t, store.Append(ctx, []domain.CatalogEntry{e}))
	require.NoError(t, store.Append(ctx, []domain.CatalogEntry{e}))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCatalogStore_Match(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, []domain.CatalogEntry{
		entry("New housing price index", "Monthly prices"),
		entry("Population estimates", "Includes housing occupancy"),
		entry("Energy use", "Industrial sector"),
	}))

	entries, err := store.Match(ctx, "(housing)")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "New housing price index", entries[0].Title)
	assert.Equal(t, "Population estimates", entries[1].Title)
}

func TestCatalogStore_Match_EmptyAlternationMatchesAll(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, []domain.CatalogEntry{
		entry("a", ""), entry("b", ""),
	}))

	entries, err := store.Match(ctx, "()")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCatalogStore_Match_InvalidPattern(t *testing.T) {
	store := NewCatalogStore()

	_, err := store.Match(context.Background(), "(unbalanced")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogStore_List_Empty(t *testing.T) {
	store := NewCatalogStore()

	entries, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCatalogStore_Close(t *testing.T) {
	store := NewCatalogStore()
	assert.NoError(t, store.Close())
}
