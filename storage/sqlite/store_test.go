package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipefinder/storage"
)

func TestSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	favorites := store.Slot("favorites")
	theme := store.Slot("darkMode")

	_, err = favorites.Load(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, favorites.Save(ctx, []byte(`[{"idMeal":"1"}]`)))
	require.NoError(t, theme.Save(ctx, []byte(`true`)))
	require.NoError(t, favorites.Save(ctx, []byte(`[]`)))

	got, err := favorites.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)

	got, err = theme.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`true`), got)
}

func TestSlotSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slots.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Slot("favorites").Save(ctx, []byte(`["kept"]`)))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Slot("favorites").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`["kept"]`), got)
}
