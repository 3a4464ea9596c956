package favorites

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipefinder/mealdb"
	"recipefinder/storage"
)

func TestHookInitialState(t *testing.T) {
	store := NewStore(storage.NewMemorySlot(nil))
	h := NewHook(store)
	assert.Equal(t, Unknown, h.State())

	h.Mount(context.Background(), "1")
	defer h.Unmount()
	assert.Equal(t, NotFavorite, h.State())
}

func TestHookMountReadsStore(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemorySlot(nil))
	require.NoError(t, store.Write(ctx, []mealdb.Recipe{recipe("1", "Apple Pie")}))

	h := NewHook(store)
	h.Mount(ctx, "1")
	defer h.Unmount()
	assert.True(t, h.IsFavorite())

	// re-association recomputes
	h.Mount(ctx, "2")
	assert.Equal(t, NotFavorite, h.State())
	assert.Equal(t, "2", h.ID())
}

func TestToggleRoundTrip(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemorySlot(nil)
	store := NewStore(slot)
	require.NoError(t, store.Write(ctx, []mealdb.Recipe{recipe("1", "Apple Pie"), recipe("2", "Brownies")}))
	before := store.Read(ctx)

	h := NewHook(store)
	h.Mount(ctx, "3")
	defer h.Unmount()

	require.NoError(t, h.Toggle(ctx, recipe("3", "Cheesecake")))
	assert.Equal(t, Favorite, h.State())
	assert.Len(t, store.Read(ctx), 3)
	assert.Equal(t, "3", store.Read(ctx)[2].ID)

	require.NoError(t, h.Toggle(ctx, recipe("3", "Cheesecake")))
	assert.Equal(t, NotFavorite, h.State())
	assert.Equal(t, before, store.Read(ctx))
}

func TestToggleNeverDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemorySlot(nil))
	rng := rand.New(rand.NewSource(7))

	hooks := make([]*Hook, 0, 12)
	for i := 0; i < 12; i++ {
		h := NewHook(store)
		h.Mount(ctx, fmt.Sprint(i%4))
		defer h.Unmount()
		hooks = append(hooks, h)
	}

	for step := 0; step < 200; step++ {
		h := hooks[rng.Intn(len(hooks))]
		require.NoError(t, h.Toggle(ctx, recipe(h.ID(), "r")))

		seen := map[string]bool{}
		for _, r := range store.Read(ctx) {
			require.False(t, seen[r.ID], "duplicate id %s after step %d", r.ID, step)
			seen[r.ID] = true
		}
		for _, other := range hooks {
			assert.Equal(t, seen[other.ID()], other.IsFavorite())
		}
	}
}

func TestToggleOnStaleStoreDoesNotAppendTwice(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemorySlot(nil))

	h := NewHook(store)
	h.Mount(ctx, "1")
	defer h.Unmount()

	// written behind the hook's back, without a notification
	require.NoError(t, store.Write(ctx, []mealdb.Recipe{recipe("1", "Apple Pie")}))
	require.Equal(t, NotFavorite, h.State())

	require.NoError(t, h.Toggle(ctx, recipe("1", "Apple Pie")))
	assert.Len(t, store.Read(ctx), 1)
	assert.True(t, h.IsFavorite())
}

func TestTogglePropagatesToOtherHooks(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemorySlot(nil))

	card := NewHook(store)
	card.Mount(ctx, "52772")
	defer card.Unmount()

	detail := NewHook(store)
	detail.Mount(ctx, "52772")
	defer detail.Unmount()

	var changes []State
	detail.OnChange(func(s State) { changes = append(changes, s) })

	require.NoError(t, card.Toggle(ctx, recipe("52772", "Teriyaki")))
	assert.True(t, detail.IsFavorite())

	require.NoError(t, detail.Toggle(ctx, recipe("52772", "Teriyaki")))
	assert.False(t, card.IsFavorite())
	assert.Equal(t, []State{Favorite, NotFavorite}, changes)
}

func TestUnmountStopsFollowing(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemorySlot(nil))

	a := NewHook(store)
	a.Mount(ctx, "1")
	defer a.Unmount()

	b := NewHook(store)
	b.Mount(ctx, "1")
	b.Unmount()

	require.NoError(t, a.Toggle(ctx, recipe("1", "x")))
	assert.Equal(t, NotFavorite, b.State())
}

func TestToggleWithoutMount(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemorySlot(nil))

	h := NewHook(store)
	require.NoError(t, h.Toggle(ctx, recipe("9", "x")))
	assert.Equal(t, "9", h.ID())
	assert.True(t, h.IsFavorite())
	assert.True(t, store.Contains(ctx, "9"))
}

func TestToggleIDMismatch(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemorySlot(nil))

	h := NewHook(store)
	h.Mount(ctx, "1")
	defer h.Unmount()

	err := h.Toggle(ctx, recipe("2", "other"))
	assert.ErrorIs(t, err, ErrIDMismatch)
	assert.Empty(t, store.Read(ctx))
}

func TestToggleWriteFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	slot := &flakySlot{MemorySlot: storage.NewMemorySlot(nil)}
	store := NewStore(slot)

	h := NewHook(store)
	h.Mount(ctx, "1")
	defer h.Unmount()

	slot.failSave = true
	require.Error(t, h.Toggle(ctx, recipe("1", "x")))
	assert.Equal(t, NotFavorite, h.State())
}

type flakySlot struct {
	*storage.MemorySlot
	failSave bool
}

func (f *flakySlot) Save(ctx context.Context, data []byte) error {
	if f.failSave {
		return fmt.Errorf("storage full")
	}
	return f.MemorySlot.Save(ctx, data)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "favorite", Favorite.String())
	assert.Equal(t, "not-favorite", NotFavorite.String())
}
